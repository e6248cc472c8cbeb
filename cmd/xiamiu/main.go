// Package main is the xiamiu entry point. Without a subcommand it opens the
// terminal browser; the subcommands print catalog data for scripts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/config"
	"github.com/llehouerou/xiamiu/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *logging.Logger
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "xiamiu",
	Short: "Browse the xiamiu music catalog from the terminal",
	Long: `xiamiu browses artists, albums, songs and genres of a xiamiu catalog
server, with search, sorting, facet and genre filters, user comments and
star collections.

Run without arguments to open the interactive browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
	Args: cobra.NoArgs,
	RunE: runBrowser,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ~/.config/xiamiu/config.toml and ./config.toml)")

	rootCmd.AddCommand(listCmd, showCmd, searchCmd, loginCmd, logoutCmd, whoamiCmd)
}

// setup loads the configuration and builds the logger and API client.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lc := cfg.GetLogConfig()
	logger, err = logging.New(logging.Options{
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if verbose {
		logger.SetLevel("debug")
	}

	ac := cfg.GetAPIConfig()
	client = api.New(api.Options{
		BaseURL:           cfg.APIURL,
		Timeout:           ac.Timeout,
		RequestsPerSecond: ac.RequestsPerSecond,
		Logger:            logger.Logger,
	})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
