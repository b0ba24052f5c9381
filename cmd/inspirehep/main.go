// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the inspirehep CLI: literature
// search, BibTeX lookup, browser helpers, the local record library, and the
// tool server an agent talks to.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/inspirehep-engine/internal/inspire"
	"github.com/pdiddy/inspirehep-engine/internal/logging"
	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from configuration before any command runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the inspirehep CLI.
var rootCmd = &cobra.Command{
	Use:   "inspirehep",
	Short: "Search the InspireHEP high energy physics literature",
	Long: `inspirehep queries the InspireHEP literature database and returns compact,
normalized records. The same operations are available as tools over a
line-delimited stdio protocol or HTTP (see "inspirehep serve").`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(loadConfig().Log)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./inspirehep.yaml or ~/.config/inspirehep/inspirehep.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (console or json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	defaults := types.DefaultConfig()
	viper.SetDefault("inspire.api_url", defaults.Inspire.APIURL)
	viper.SetDefault("inspire.web_url", defaults.Inspire.WebURL)
	viper.SetDefault("inspire.timeout", defaults.Inspire.Timeout)
	viper.SetDefault("inspire.user_agent", defaults.Inspire.UserAgent)
	viper.SetDefault("library.path", defaults.Library.Path)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)
	viper.SetDefault("server.address", defaults.Server.Address)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inspirehep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inspirehep"))
		}
	}

	viper.SetEnvPrefix("INSPIREHEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and env apply.
	_ = viper.ReadInConfig()
}

// loadConfig assembles the configuration from viper's layered sources.
func loadConfig() types.Config {
	return types.Config{
		Inspire: types.InspireConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("inspire.timeout"),
				UserAgent: viper.GetString("inspire.user_agent"),
			},
			APIURL: viper.GetString("inspire.api_url"),
			WebURL: viper.GetString("inspire.web_url"),
		},
		Library: types.LibraryConfig{Path: viper.GetString("library.path")},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Server: types.ServerConfig{Address: viper.GetString("server.address")},
	}
}

func newClient(cfg types.Config) *inspire.Client {
	return inspire.NewClient(cfg.Inspire, nil, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
