// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser opens arXiv and InspireHEP pages in the local web browser.
// Every URL is checked against a strict allow-list before anything is
// launched, and every outcome is reported as a types.BrowserResult.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// arxivHosts are the only hosts OpenArxiv accepts.
var arxivHosts = map[string]bool{
	"arxiv.org":     true,
	"www.arxiv.org": true,
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Opener launches validated URLs with the platform's URL handler.
type Opener struct {
	webURL string
	goos   string
	exec   executor
	logger zerolog.Logger
}

// NewOpener returns an Opener whose record pages live under webURL.
func NewOpener(webURL string, logger zerolog.Logger) *Opener {
	if webURL == "" {
		webURL = types.DefaultWebURL
	}
	return &Opener{
		webURL: strings.TrimRight(webURL, "/"),
		goos:   runtime.GOOS,
		exec:   &osExecutor{},
		logger: logger.With().Str("component", "browser").Logger(),
	}
}

// ValidateArxivURL checks that rawURL is an http(s) URL on arxiv.org. The
// host is compared exactly, so "https://evil.com/arxiv" is rejected even
// though it mentions arxiv.
func ValidateArxivURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return errors.New("invalid URL format: URL must start with http:// or https://")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.User != nil || !arxivHosts[u.Host] {
		return fmt.Errorf("invalid URL: only arXiv URLs (arxiv.org) are allowed, got: %s", netloc(u))
	}
	return nil
}

// netloc renders the authority part of u including any user info.
func netloc(u *url.URL) string {
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}

// ValidateRecordID strips surrounding quotes and checks that the remaining
// identifier is a non-empty run of ASCII digits.
func ValidateRecordID(recordID string) (string, error) {
	id := inspire.StripQuotes(recordID)
	if id == "" || strings.TrimLeft(id, "0123456789") != "" {
		return id, fmt.Errorf("invalid record ID %q: the INSPIRE-HEP record ID must be a number", id)
	}
	return id, nil
}

// RecordURL returns the InspireHEP page of a validated record ID.
func (o *Opener) RecordURL(recordID string) string {
	return o.webURL + "/" + recordID
}

// OpenArxiv opens an arXiv URL after validating it.
func (o *Opener) OpenArxiv(rawURL string) types.BrowserResult {
	if err := ValidateArxivURL(rawURL); err != nil {
		o.logger.Warn().Str("url", rawURL).Msg("rejected arXiv URL")
		return failure(err.Error())
	}
	if err := o.launch(rawURL); err != nil {
		o.logger.Warn().Err(err).Str("url", rawURL).Msg("browser launch failed")
		return failure(fmt.Sprintf("Failed to open arXiv URL %s in browser: %v", rawURL, err))
	}
	return types.BrowserResult{
		Success: true,
		Message: fmt.Sprintf("Successfully opened arXiv URL %s in default browser", rawURL),
	}
}

// OpenRecord opens the InspireHEP page of a record.
func (o *Opener) OpenRecord(recordID string) types.BrowserResult {
	id, err := ValidateRecordID(recordID)
	if err != nil {
		return failure(err.Error())
	}
	pageURL := o.RecordURL(id)
	if err := o.launch(pageURL); err != nil {
		o.logger.Warn().Err(err).Str("url", pageURL).Msg("browser launch failed")
		return failure(fmt.Sprintf("Failed to open INSPIRE-HEP record %s in browser: %v", id, err))
	}
	return types.BrowserResult{
		Success: true,
		Message: fmt.Sprintf("Successfully opened INSPIRE-HEP record %s in default browser", id),
		URL:     pageURL,
	}
}

func failure(message string) types.BrowserResult {
	return types.BrowserResult{Error: true, Message: message}
}

// launch hands target to the platform URL handler.
func (o *Opener) launch(target string) error {
	name, args := launchCommand(o.goos, target)
	if _, err := o.exec.LookPath(name); err != nil {
		return fmt.Errorf("no URL handler found: %w", err)
	}
	return o.exec.Run(name, args...)
}

// launchCommand returns the command that opens target on goos.
func launchCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
