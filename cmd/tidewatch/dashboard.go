package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
	"github.com/ngmaloney/tidewatch/internal/database"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/render"
	"github.com/ngmaloney/tidewatch/internal/schedule"
	"github.com/ngmaloney/tidewatch/internal/ui"
)

// dashboardCmd runs the terminal kiosk.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the terminal kiosk dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	d := cfg.Dashboard

	// The alternate screen owns stdout, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(d.LogFile), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if err := logger.InitLogger(logger.Options{
		Level:       cfg.LogLevel,
		OutputPaths: []string{d.LogFile},
	}); err != nil {
		return err
	}
	log := logger.GetLogger()

	theme := render.ParseTheme(d.Theme)
	var store ui.ThemeStore
	settings, err := database.Open(database.DBPath(d.DataDir))
	if err != nil {
		log.Warnw("Settings store unavailable, theme will not persist", "error", err)
	} else {
		defer settings.Close()
		store = settings
		if saved, err := settings.Theme(cmd.Context(), d.Theme); err != nil {
			log.Warnw("Failed to read saved theme", "error", err)
		} else {
			theme = render.ParseTheme(saved)
		}
	}

	loc := cfg.Zone()
	client := dashboard.NewClient(d.BackendURL, d.FetchTimeout, d.ProbeTimeout, log)
	model := ui.NewModel(ui.Options{
		Fetcher:            dashboard.NewFetcher(client, nil),
		Settings:           store,
		Location:           loc,
		Theme:              theme,
		CellWidthPx:        d.CellWidthPx,
		SwipeThreshold:     d.SwipeThreshold,
		DialSwipeThreshold: d.DialSwipeThreshold,
		ChartSettleDelay:   d.ChartSettleDelay,
		Logger:             log,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	sched := dashboard.StartScheduler(schedule.RealClock(), loc, dashboard.Intervals{
		Tide:      cfg.Refresh.Tide,
		Weather:   cfg.Refresh.Weather,
		Astronomy: cfg.Refresh.Astronomy,
		Network:   cfg.Refresh.Network,
	}, func(domains ...dashboard.Domain) {
		p.Send(ui.TriggerMsg{Domains: domains})
	})
	defer sched.Stop()

	log.Infow("Starting dashboard", "backend", d.BackendURL, "theme", string(theme))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
