package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

// ErrNoData is returned when a request succeeds but carries no readings.
var ErrNoData = errors.New("no data available")

// TideClient fetches predictions and observations from NOAA CO-OPS.
type TideClient interface {
	// GetPredictions returns high/low predictions between begin and end,
	// with times in begin's location.
	GetPredictions(ctx context.Context, stationID string, begin, end time.Time) ([]models.TidePrediction, error)

	// GetWaterLevel returns the latest reading of the last 30 minutes
	// before now, with its time in now's location.
	GetWaterLevel(ctx context.Context, stationID string, now time.Time) (*models.CurrentLevel, error)
}

// WeatherClient fetches observations and forecasts from api.weather.gov.
type WeatherClient interface {
	GetLatestObservation(ctx context.Context, stationID string) (*Observation, error)
	GetForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPeriod, error)
}

// Recorder receives one call per upstream request. *metrics.Metrics
// satisfies it.
type Recorder interface {
	ObserveUpstream(source string, start time.Time, err error)
}

// Options configures a client. Zero values fall back to the public APIs.
type Options struct {
	BaseURL     string
	UserAgent   string
	Application string
	Timeout     time.Duration
	Recorder    Recorder
}

func (o Options) httpClient() *http.Client {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON issues a GET and decodes a 200 response into out.
func getJSON(ctx context.Context, client *http.Client, requestURL, userAgent string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func observe(r Recorder, source string, start time.Time, err error) {
	if r != nil {
		r.ObserveUpstream(source, start, err)
	}
}
