// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspire queries the InspireHEP literature API and normalizes its
// responses into compact records.
//
// The normalizer (Normalize, NormalizeHit) is a pure function over the raw
// response bytes and holds no state; the Client adds the HTTP round trip.
package inspire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/inspirehep-engine/internal/httputil"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// Client talks to the InspireHEP literature endpoint.
type Client struct {
	http   *http.Client
	cfg    types.InspireConfig
	logger zerolog.Logger
}

// NewClient returns a Client for cfg. A nil httpClient gets one with
// cfg.Timeout.
func NewClient(cfg types.InspireConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = types.DefaultAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = types.DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger.With().Str("component", "inspire-client").Logger(),
	}
}

// Search runs a literature search and normalizes the response. Transport
// failures are returned as errors; an upstream error document comes back as
// a passthrough Result.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) (Result, error) {
	params := BuildSearchParams(req)
	reqURL := c.cfg.APIURL + "?" + params.Encode()

	start := time.Now()
	body, err := httputil.Get(ctx, c.http, reqURL, c.header("application/json"))
	if err != nil {
		c.logger.Warn().Err(err).Str("q", params.Get("q")).Msg("search request failed")
		return Result{}, err
	}

	res, err := Normalize(body, req.IncludeAbstract)
	if err != nil {
		return Result{}, fmt.Errorf("decoding search response: %w", err)
	}

	ev := c.logger.Debug().Str("q", params.Get("q")).Dur("elapsed", time.Since(start))
	if res.Response != nil {
		ev = ev.Int("total_hits", res.Response.TotalHits).Int("hits", len(res.Response.Hits))
	}
	ev.Msg("search completed")
	return res, nil
}

// Bibtex fetches the BibTeX entry of one record. Surrounding quotes on
// recordID are stripped.
func (c *Client) Bibtex(ctx context.Context, recordID string) (types.BibtexCitation, error) {
	recordID = StripQuotes(recordID)
	reqURL := c.cfg.APIURL + "/" + url.PathEscape(recordID) + "?format=bibtex"

	body, err := httputil.Get(ctx, c.http, reqURL, c.header("application/x-bibtex"))
	if err != nil {
		c.logger.Warn().Err(err).Str("record_id", recordID).Msg("bibtex request failed")
		return types.BibtexCitation{}, err
	}
	return types.BibtexCitation{RecordID: recordID, BibTeX: string(body)}, nil
}

func (c *Client) header(accept string) http.Header {
	return http.Header{
		"Accept":     {accept},
		"User-Agent": {c.cfg.UserAgent},
	}
}

// ErrorDocument converts a failure into the document handed to tool callers.
// The HTTP status is attached when the failure was a non-2xx response.
func ErrorDocument(prefix string, err error) types.ErrorDocument {
	doc := types.NewErrorDocument(fmt.Sprintf("%s: %v", prefix, err))
	var se *httputil.StatusError
	if errors.As(err, &se) {
		code := se.StatusCode
		doc.StatusCode = &code
	}
	return doc
}
