package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngmaloney/tidewatch/internal/apperrors"
	"github.com/ngmaloney/tidewatch/internal/astronomy"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/render"
)

// TideService is the tide backend the handlers read.
type TideService interface {
	Snapshot(ctx context.Context) (*models.TideSnapshot, error)
	Current(ctx context.Context) (*models.CurrentLevel, error)
	Predictions(ctx context.Context) ([]models.TidePrediction, error)
}

// WeatherService is the weather backend the handlers read.
type WeatherService interface {
	Snapshot(ctx context.Context) (*models.WeatherSnapshot, error)
}

// AstronomyService is the astronomy backend the handlers read.
type AstronomyService interface {
	Today(ctx context.Context) (*models.AstronomySnapshot, error)
	Days(ctx context.Context, n int) ([]models.AstronomySnapshot, error)
}

const (
	defaultChartWidth  = 800
	defaultChartHeight = 300
	maxChartSide       = 4000
)

// Handler serves the /api endpoints.
type Handler struct {
	deps Dependencies
}

func (h *Handler) locationName() string {
	return h.deps.Config.Location.Name
}

func (h *Handler) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status":   models.StatusOK,
		"data":     data,
		"location": h.locationName(),
	})
}

// Health reports liveness and the configured location.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    models.StatusOK,
		Timestamp: h.deps.Clock.Now(),
		Location:  h.locationName(),
	})
}

// Config returns the location block the dashboard labels itself with and
// the theme colors for a browser frontend.
func (h *Handler) Config(c *gin.Context) {
	loc := h.deps.Config.Location
	colors := render.CSSColors(h.theme(c))
	c.JSON(http.StatusOK, models.ConfigResponse{
		Status: models.StatusOK,
		Location: models.LocationInfo{
			Name:               loc.Name,
			Latitude:           loc.Latitude,
			Longitude:          loc.Longitude,
			StationID:          loc.PredictionStation,
			ObservationStation: loc.ObservationStation,
		},
		Theme: &colors,
	})
}

func (h *Handler) Tide(c *gin.Context) {
	snap, err := h.deps.Tides.Snapshot(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch tide data"))
		return
	}
	h.ok(c, snap)
}

func (h *Handler) TideCurrent(c *gin.Context) {
	level, err := h.deps.Tides.Current(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch current water level"))
		return
	}
	if level == nil {
		_ = c.Error(apperrors.NotFound("No current data available"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusOK, "data": level})
}

func (h *Handler) TidePredictions(c *gin.Context) {
	preds, err := h.deps.Tides.Predictions(c.Request.Context())
	if err != nil || len(preds) == 0 {
		_ = c.Error(apperrors.Wrap(orNoData(err), apperrors.NotFoundError, "No predictions available"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusOK, "data": preds})
}

func (h *Handler) Weather(c *gin.Context) {
	snap, err := h.deps.Weather.Snapshot(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch weather data"))
		return
	}
	h.ok(c, snap)
}

func (h *Handler) Astronomy(c *gin.Context) {
	snap, err := h.deps.Astronomy.Today(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch astronomy data"))
		return
	}
	h.ok(c, snap)
}

// AstronomyMultiDay serves ?days=N (1..7, default 3).
func (h *Handler) AstronomyMultiDay(c *gin.Context) {
	days := astronomy.DefaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > astronomy.MaxDays {
			_ = c.Error(apperrors.ValidationFailed("Days must be between 1 and 7", "days="+raw))
			return
		}
		days = n
	}

	snaps, err := h.deps.Astronomy.Days(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, astronomy.ErrInvalidDays) {
			_ = c.Error(apperrors.ValidationFailed("Days must be between 1 and 7", err.Error()))
			return
		}
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch astronomy data"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   models.StatusOK,
		"data":     snaps,
		"days":     days,
		"location": h.locationName(),
	})
}

// TideChartSVG renders today's tide curve.
func (h *Handler) TideChartSVG(c *gin.Context) {
	width, err := dimension(c, "width", defaultChartWidth)
	if err != nil {
		_ = c.Error(err)
		return
	}
	height, err := dimension(c, "height", defaultChartHeight)
	if err != nil {
		_ = c.Error(err)
		return
	}

	preds, err := h.deps.Tides.Predictions(c.Request.Context())
	if err != nil {
		// An empty curve renders the insufficient-data message.
		preds = nil
	}

	now := h.deps.Clock.Now().In(h.deps.Config.Zone())
	plan := render.PlanChart(preds, now, render.DefaultChartOptions(float64(width), float64(height)))
	h.svg(c, func(b *strings.Builder) error {
		return render.RenderChartSVG(b, plan, h.palette(c))
	})
}

// TideDialSVG renders the tide-cycle dial.
func (h *Handler) TideDialSVG(c *gin.Context) {
	snap, err := h.deps.Tides.Snapshot(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Upstream(err, "Failed to fetch tide data"))
		return
	}
	arc := render.PlanDial(snap.Status.Percentage, snap.Status.IsRising)
	h.svg(c, func(b *strings.Builder) error {
		return render.RenderDialSVG(b, arc, h.palette(c))
	})
}

func (h *Handler) theme(c *gin.Context) render.Theme {
	theme := c.Query("theme")
	if theme == "" {
		theme = h.deps.Config.Dashboard.Theme
	}
	return render.ParseTheme(theme)
}

func (h *Handler) palette(c *gin.Context) render.Palette {
	return render.PaletteFor(h.theme(c))
}

func (h *Handler) svg(c *gin.Context, draw func(*strings.Builder) error) {
	var b strings.Builder
	if err := draw(&b); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render image"))
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(b.String()))
}

func dimension(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxChartSide {
		return 0, apperrors.ValidationFailed("Invalid "+name, name+"="+raw)
	}
	return n, nil
}

func orNoData(err error) error {
	if err == nil {
		return errors.New("empty prediction list")
	}
	return err
}
