package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/config"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/metrics"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config    *config.Config
	Tides     TideService
	Weather   WeatherService
	Astronomy AstronomyService
	Metrics   *metrics.Metrics
	Logger    *zap.SugaredLogger
	Clock     schedule.Clock
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Clock == nil {
		deps.Clock = schedule.RealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(MetricsMiddleware(deps.Metrics))
	r.Use(ErrorHandler(deps.Logger))
	r.Use(CORSMiddleware(deps.Config.Server))

	h := &Handler{deps: deps}

	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/config", h.Config)

		api.GET("/tide", h.Tide)
		api.GET("/tide/current", h.TideCurrent)
		api.GET("/tide/predictions", h.TidePredictions)
		api.GET("/tide/chart.svg", h.TideChartSVG)
		api.GET("/tide/dial.svg", h.TideDialSVG)

		api.GET("/weather", h.Weather)

		api.GET("/astronomy", h.Astronomy)
		api.GET("/astronomy/multi-day", h.AstronomyMultiDay)
	}

	if dir := deps.Config.Server.StaticDir; dir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(dir))))
	}

	return r
}
