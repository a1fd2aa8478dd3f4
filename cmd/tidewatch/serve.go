package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/tidewatch/internal/astronomy"
	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/metrics"
	"github.com/ngmaloney/tidewatch/internal/noaa"
	"github.com/ngmaloney/tidewatch/internal/schedule"
	"github.com/ngmaloney/tidewatch/internal/server"
	"github.com/ngmaloney/tidewatch/internal/tides"
	"github.com/ngmaloney/tidewatch/internal/usno"
	"github.com/ngmaloney/tidewatch/internal/weather"
)

var warmCache bool

// serveCmd runs the HTTP backend.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API backend",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&warmCache, "warm", true, "re-poll upstream APIs on the refresh intervals")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := logger.InitLogger(logger.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
	}); err != nil {
		return err
	}
	log := logger.GetLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	store, closeStore, err := cache.Open(ctx, cache.Options{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warnw("Failed to close cache", "error", err)
		}
	}()

	up := cfg.Upstream
	loc := cfg.Zone()
	clock := schedule.RealClock()

	tideClient := noaa.NewTideClient(noaa.Options{
		BaseURL:     up.TidesURL,
		UserAgent:   up.UserAgent,
		Application: up.Application,
		Timeout:     up.Timeout,
		Recorder:    m,
	})
	weatherClient := noaa.NewWeatherClient(noaa.Options{
		BaseURL:   up.WeatherURL,
		UserAgent: up.UserAgent,
		Timeout:   up.Timeout,
		Recorder:  m,
	})
	usnoClient := usno.NewClient(up.USNOURL, up.Timeout, m)

	deps := server.Dependencies{
		Config: cfg,
		Tides: tides.NewService(tideClient, store, clock, tides.Config{
			PredictionStation:  cfg.Location.PredictionStation,
			ObservationStation: cfg.Location.ObservationStation,
			StationName:        cfg.Location.StationName,
			Location:           loc,
		}, m),
		Weather: weather.NewService(weatherClient, store, clock, weather.Config{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
			StationID: cfg.Location.WeatherStation,
		}, m),
		Astronomy: astronomy.NewService(usnoClient, store, clock, astronomy.Config{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
			Location:  loc,
		}),
		Metrics: m,
		Logger:  log,
		Clock:   clock,
	}

	if warmCache {
		w := server.StartWarmer(deps, server.WarmIntervals{
			Tide:      cfg.Refresh.Tide,
			Weather:   cfg.Refresh.Weather,
			Astronomy: cfg.Refresh.Astronomy,
		}, 2*up.Timeout)
		defer w.Stop()
	}

	log.Infow("TideWatch backend configured",
		"location", cfg.Location.Name,
		"prediction_station", cfg.Location.PredictionStation,
		"weather_station", cfg.Location.WeatherStation,
		"redis", cfg.Redis.Address != "")

	return server.Run(ctx, cfg.Server.Addr(), server.SetupRouter(deps), log)
}
