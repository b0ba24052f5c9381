// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inspirehep-engine/internal/browser"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open arXiv or InspireHEP pages in the default browser",
}

var openArxivCmd = &cobra.Command{
	Use:   "arxiv <url>",
	Short: "Open an arxiv.org URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(newOpener().OpenArxiv(args[0]))
	},
}

var openRecordCmd = &cobra.Command{
	Use:   "record <record-id>",
	Short: "Open the InspireHEP page of a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(newOpener().OpenRecord(args[0]))
	},
}

func newOpener() *browser.Opener {
	return browser.NewOpener(loadConfig().Inspire.WebURL, logger)
}

func report(res types.BrowserResult) error {
	if res.Error {
		return errors.New(res.Message)
	}
	fmt.Fprintln(os.Stdout, res.Message)
	return nil
}

func init() {
	openCmd.AddCommand(openArxivCmd, openRecordCmd)
	rootCmd.AddCommand(openCmd)
}
