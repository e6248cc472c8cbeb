package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/app"
	"github.com/llehouerou/xiamiu/internal/lastfm"
	"github.com/llehouerou/xiamiu/internal/lrclib"
	"github.com/llehouerou/xiamiu/internal/lyrics"
	"github.com/llehouerou/xiamiu/internal/ui/coverart"
)

// runBrowser opens the interactive browser.
func runBrowser(_ *cobra.Command, _ []string) error {
	stateMgr, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	var lrc *lrclib.Client
	if cfg.LRCLibEnabled() {
		lrc = lrclib.New()
	}

	var similar lastfm.SimilarFetcher
	if cfg.HasLastfmConfig() {
		similar = lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	}

	images := coverart.Supported()
	var covers *coverart.Loader
	if images {
		covers = coverart.NewLoader(nil)
	}

	logger.Info("starting",
		zap.String("api_url", cfg.APIURL),
		zap.Bool("lastfm", similar != nil),
		zap.Bool("images", images))

	m := app.New(app.Options{
		Catalog:         client,
		State:           stateMgr,
		Lyrics:          lyrics.NewSource(client, lrc, logger.Logger),
		Similar:         similar,
		Covers:          covers,
		Images:          images,
		PageSize:        cfg.GetPageSize(),
		Locale:          cfg.Locale,
		Timeout:         cfg.GetAPIConfig().Timeout,
		RememberSession: cfg.RememberSession(),
		Logger:          logger.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
