package noaa

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

const defaultWeatherURL = "https://api.weather.gov"

// Quantity is a weather.gov measured value. Value is nil when the station
// did not report it.
type Quantity struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

// Observation is the subset of a station observation the dashboard shows,
// in the units weather.gov reports.
type Observation struct {
	Timestamp          string   `json:"timestamp"`
	TextDescription    string   `json:"textDescription"`
	Temperature        Quantity `json:"temperature"`
	Dewpoint           Quantity `json:"dewpoint"`
	WindDirection      Quantity `json:"windDirection"`
	WindSpeed          Quantity `json:"windSpeed"`
	Visibility         Quantity `json:"visibility"`
	RelativeHumidity   Quantity `json:"relativeHumidity"`
	BarometricPressure Quantity `json:"barometricPressure"`
}

// NOAAWeatherClient implements WeatherClient using the NOAA Weather API
type NOAAWeatherClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	recorder   Recorder

	mu           sync.Mutex
	forecastURLs map[string]string
}

// NewWeatherClient creates a new NOAA weather client
func NewWeatherClient(opts Options) *NOAAWeatherClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultWeatherURL
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "TideWatch/1.0 (github.com/ngmaloney/tidewatch)"
	}
	return &NOAAWeatherClient{
		baseURL:      baseURL,
		httpClient:   opts.httpClient(),
		userAgent:    ua,
		recorder:     opts.Recorder,
		forecastURLs: make(map[string]string),
	}
}

// GetLatestObservation retrieves the latest observation for a station
func (c *NOAAWeatherClient) GetLatestObservation(ctx context.Context, stationID string) (obs *Observation, err error) {
	start := time.Now()
	defer func() { observe(c.recorder, "weather_observation", start, err) }()

	var resp observationResponse
	obsURL := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, stationID)
	if err := getJSON(ctx, c.httpClient, obsURL, c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch observation: %w", err)
	}
	return &resp.Properties, nil
}

// GetForecast retrieves the point forecast periods for a location
func (c *NOAAWeatherClient) GetForecast(ctx context.Context, lat, lon float64) (periods []models.ForecastPeriod, err error) {
	start := time.Now()
	defer func() { observe(c.recorder, "weather_forecast", start, err) }()

	forecastURL, err := c.forecastURL(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to get grid point: %w", err)
	}

	var resp forecastResponse
	if err := getJSON(ctx, c.httpClient, forecastURL, c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	if len(resp.Properties.Periods) == 0 {
		return nil, ErrNoData
	}
	return resp.Properties.Periods, nil
}

// forecastURL resolves the forecast endpoint for a point. The answer does
// not change for a location, so it is looked up once.
func (c *NOAAWeatherClient) forecastURL(ctx context.Context, lat, lon float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)

	c.mu.Lock()
	cached, ok := c.forecastURLs[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var resp pointResponse
	if err := getJSON(ctx, c.httpClient, fmt.Sprintf("%s/points/%s", c.baseURL, key), c.userAgent, &resp); err != nil {
		return "", err
	}
	if resp.Properties.Forecast == "" {
		return "", fmt.Errorf("points response for %s has no forecast URL", key)
	}

	c.mu.Lock()
	c.forecastURLs[key] = resp.Properties.Forecast
	c.mu.Unlock()
	return resp.Properties.Forecast, nil
}

// Internal types for NOAA API responses

type pointResponse struct {
	Properties struct {
		GridID   string `json:"gridId"`
		GridX    int    `json:"gridX"`
		GridY    int    `json:"gridY"`
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []models.ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

type observationResponse struct {
	Properties Observation `json:"properties"`
}
