package noaa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngmaloney/tidewatch/internal/models"
)

const (
	defaultTidesURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	datum           = "MLLW" // Mean Lower Low Water
	units           = "english"

	waterLevelWindow = 30 * time.Minute
)

// NOAATideClient implements TideClient using the NOAA CO-OPS API
type NOAATideClient struct {
	baseURL     string
	application string
	httpClient  *http.Client
	recorder    Recorder
}

// NewTideClient creates a new NOAA tide client
func NewTideClient(opts Options) *NOAATideClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultTidesURL
	}
	app := opts.Application
	if app == "" {
		app = "TideWatch"
	}
	return &NOAATideClient{
		baseURL:     baseURL,
		application: app,
		httpClient:  opts.httpClient(),
		recorder:    opts.Recorder,
	}
}

func (c *NOAATideClient) params(stationID, product string) url.Values {
	params := url.Values{}
	params.Add("station", stationID)
	params.Add("product", product)
	params.Add("datum", datum)
	params.Add("units", units)
	params.Add("format", "json")
	params.Add("application", c.application)
	return params
}

// GetPredictions retrieves high/low predictions for a date range
func (c *NOAATideClient) GetPredictions(ctx context.Context, stationID string, begin, end time.Time) (preds []models.TidePrediction, err error) {
	start := time.Now()
	defer func() { observe(c.recorder, "noaa_predictions", start, err) }()

	params := c.params(stationID, "predictions")
	params.Add("begin_date", begin.Format("20060102"))
	params.Add("end_date", end.Format("20060102"))
	params.Add("time_zone", "lst_ldt") // station local time, DST aware
	params.Add("interval", "hilo")

	var resp predictionsResponse
	if err := getJSON(ctx, c.httpClient, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), "", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch tide predictions: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("NOAA error: %s", resp.Error.Message)
	}
	if len(resp.Predictions) == 0 {
		return nil, ErrNoData
	}

	loc := begin.Location()
	preds = make([]models.TidePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		t, err := time.ParseInLocation("2006-01-02 15:04", p.Time, loc)
		if err != nil {
			continue // Skip invalid times
		}
		height, err := roundHeight(p.Height)
		if err != nil {
			continue
		}
		tideType := models.TideLow
		if p.Type == "H" {
			tideType = models.TideHigh
		}
		preds = append(preds, models.TidePrediction{Time: t, Height: height, Type: tideType})
	}
	return preds, nil
}

// GetWaterLevel retrieves the most recent observed water level
func (c *NOAATideClient) GetWaterLevel(ctx context.Context, stationID string, now time.Time) (level *models.CurrentLevel, err error) {
	start := time.Now()
	defer func() { observe(c.recorder, "noaa_water_level", start, err) }()

	// The observation product is requested in GMT and converted back.
	gmt := now.UTC()
	params := c.params(stationID, "water_level")
	params.Add("begin_date", gmt.Add(-waterLevelWindow).Format("20060102 15:04"))
	params.Add("end_date", gmt.Format("20060102 15:04"))
	params.Add("time_zone", "gmt")

	var resp waterLevelResponse
	if err := getJSON(ctx, c.httpClient, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), "", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch water level: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("NOAA error: %s", resp.Error.Message)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoData
	}

	latest := resp.Data[len(resp.Data)-1]
	t, err := time.ParseInLocation("2006-01-02 15:04", latest.Time, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid observation time %q: %w", latest.Time, err)
	}
	height, err := roundHeight(latest.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid water level %q: %w", latest.Value, err)
	}

	return &models.CurrentLevel{
		Height:  height,
		Time:    t.In(now.Location()),
		Unit:    "ft",
		Station: stationID,
	}, nil
}

// roundHeight parses a NOAA height string to two decimal places.
func roundHeight(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Round(2).InexactFloat64(), nil
}

// Internal types for NOAA CO-OPS API responses

type apiError struct {
	Message string `json:"message"`
}

type predictionsResponse struct {
	Predictions []struct {
		Time   string `json:"t"`
		Height string `json:"v"`    // NOAA returns this as string
		Type   string `json:"type"` // "H" or "L"
	} `json:"predictions"`
	Error *apiError `json:"error"`
}

type waterLevelResponse struct {
	Metadata struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"metadata"`
	Data []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
	Error *apiError `json:"error"`
}
