// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <record-id>",
	Short: "Print the BibTeX citation of an InspireHEP record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		citation, err := newClient(loadConfig()).Bibtex(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, strings.TrimRight(citation.BibTeX, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bibtexCmd)
}
