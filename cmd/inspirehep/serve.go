// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/inspirehep-engine/internal/browser"
	"github.com/pdiddy/inspirehep-engine/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the InspireHEP tools to an agent",
	Long: `Serve exposes search, get_bibtex_citation, open_arxiv_in_browser and
open_inspirehep_in_browser as tools.

By default requests are read from stdin, one JSON object per line:
  {"tool_name": "search", "arguments": {"query": "t boson", "size": 3}}
and each response is written to stdout as one JSON line. With --http the
tools are served over HTTP instead (GET /tools, POST /tools/{name}).`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	registry := tools.NewRegistry()
	opener := browser.NewOpener(cfg.Inspire.WebURL, logger)
	if err := tools.RegisterInspire(registry, newClient(cfg), opener); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if useHTTP, _ := cmd.Flags().GetBool("http"); useHTTP {
		return tools.ServeHTTP(ctx, cfg.Server.Address, registry, logger)
	}

	logger.Info().Msg("serving tools over stdio")
	return tools.NewStdioServer(registry, logger).Serve(ctx, os.Stdin, os.Stdout)
}

func init() {
	serveCmd.Flags().Bool("http", false, "serve over HTTP instead of stdio")
	serveCmd.Flags().String("addr", "", "HTTP listen address (default from server.address)")
	_ = viper.BindPFlag("server.address", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
