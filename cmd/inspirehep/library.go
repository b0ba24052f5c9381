// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/internal/library"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and export records saved with search --save",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		entries, err := listLibrary(cmd, limit)
		if err != nil {
			return err
		}
		if asJSON {
			return inspire.FormatJSON(entries, os.Stdout)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCITED\tSAVED\tTITLE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
				e.Record.ID, e.Record.CitationCount, e.SavedAt.Local().Format("2006-01-02"), e.Record.Title)
		}
		return tw.Flush()
	},
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved records as CSL-YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := listLibrary(cmd, limit)
		if err != nil {
			return err
		}
		records := make([]types.NormalizedRecord, len(entries))
		for i, e := range entries {
			records[i] = e.Record
		}
		return library.FormatCSL(records, os.Stdout)
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Print one saved record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.Open(loadConfig().Library.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(cmd.Context(), inspire.StripQuotes(args[0]))
		if err != nil {
			return err
		}
		return inspire.FormatJSON(entry, os.Stdout)
	},
}

func listLibrary(cmd *cobra.Command, limit int) ([]library.Entry, error) {
	store, err := library.Open(loadConfig().Library.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.List(cmd.Context(), limit)
}

func init() {
	libraryListCmd.Flags().Int("limit", 50, "maximum number of records")
	libraryListCmd.Flags().Bool("json", false, "output as JSON")
	libraryExportCmd.Flags().Int("limit", 10000, "maximum number of records")

	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd, libraryExportCmd)
	rootCmd.AddCommand(libraryCmd)
}
