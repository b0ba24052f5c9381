// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/internal/library"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search InspireHEP for papers",
	Long: `Search queries the InspireHEP literature API with its native search syntax
and prints normalized records.

Examples:
  inspirehep search --query "a Edward.Witten.1" --sort mostcited --size 5
  inspirehep search --query "t boson" --abstract --format json
  inspirehep search --query "refersto:recid:451647" --format csl --save`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("--query is required")
	}
	sort, _ := cmd.Flags().GetString("sort")
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	abstract, _ := cmd.Flags().GetBool("abstract")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	switch format {
	case "table", "json", "csl":
	default:
		return fmt.Errorf("unknown format %q (want table, json or csl)", format)
	}

	cfg := loadConfig()
	res, err := newClient(cfg).Search(cmd.Context(), types.SearchRequest{
		Query:           query,
		Sort:            sort,
		Page:            page,
		Size:            size,
		IncludeAbstract: abstract,
	})
	if err != nil {
		return err
	}
	if res.IsPassthrough() {
		// Upstream error documents are shown as-is.
		return inspire.FormatJSON(res, os.Stdout)
	}

	if save {
		if err := saveRecords(cmd, cfg, query, res.Response.Hits); err != nil {
			return err
		}
	}

	switch format {
	case "json":
		return inspire.FormatJSON(res, os.Stdout)
	case "csl":
		return library.FormatCSL(res.Response.Hits, os.Stdout)
	default:
		inspire.FormatTable(*res.Response, os.Stdout)
		return nil
	}
}

func saveRecords(cmd *cobra.Command, cfg types.Config, query string, records []types.NormalizedRecord) error {
	store, err := library.Open(cfg.Library.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Save(cmd.Context(), query, records)
	if err != nil {
		return err
	}
	logger.Info().Int("saved", n).Str("library", cfg.Library.Path).Msg("records saved")
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "InspireHEP search query")
	searchCmd.Flags().String("sort", "", "sort order: mostrecent or mostcited")
	searchCmd.Flags().Int("page", 0, "result page, starting at 1")
	searchCmd.Flags().Int("size", 0, fmt.Sprintf("results per page (max %d)", types.MaxPageSize))
	searchCmd.Flags().Bool("abstract", false, "include abstracts")
	searchCmd.Flags().String("format", "table", "output format: table, json or csl")
	searchCmd.Flags().Bool("save", false, "save the results to the local library")

	rootCmd.AddCommand(searchCmd)
}
