package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/apperrors"
	"github.com/ngmaloney/tidewatch/internal/models"
)

const (
	DefaultFetchTimeout = 20 * time.Second
	DefaultProbeTimeout = 5 * time.Second

	maxBodyBytes = 4 << 20
)

// Client reads the backend's JSON endpoints.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	fetchTimeout time.Duration
	probeTimeout time.Duration
	log          *zap.SugaredLogger
}

// NewClient creates a backend client. Zero timeouts take the defaults.
func NewClient(baseURL string, fetchTimeout, probeTimeout time.Duration, log *zap.SugaredLogger) *Client {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		fetchTimeout: fetchTimeout,
		probeTimeout: probeTimeout,
		log:          log,
	}
}

// Config returns the location block the dashboard labels itself with.
func (c *Client) Config(ctx context.Context) (models.LocationInfo, error) {
	var resp models.ConfigResponse
	if err := c.get(ctx, "/api/config", c.fetchTimeout, &resp); err != nil {
		return models.LocationInfo{}, err
	}
	return resp.Location, nil
}

// Health probes the backend with the short probe timeout.
func (c *Client) Health(ctx context.Context) error {
	var resp models.HealthResponse
	return c.get(ctx, "/api/health", c.probeTimeout, &resp)
}

func (c *Client) Tide(ctx context.Context) (*models.TideSnapshot, error) {
	var snap models.TideSnapshot
	if err := c.getData(ctx, "/api/tide", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) Weather(ctx context.Context) (*models.WeatherSnapshot, error) {
	var snap models.WeatherSnapshot
	if err := c.getData(ctx, "/api/weather", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) Astronomy(ctx context.Context) (*models.AstronomySnapshot, error) {
	var snap models.AstronomySnapshot
	if err := c.getData(ctx, "/api/astronomy", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Outlook fetches sun and moon events for the next days days.
func (c *Client) Outlook(ctx context.Context, days int) ([]models.AstronomySnapshot, error) {
	var snaps []models.AstronomySnapshot
	path := fmt.Sprintf("/api/astronomy/multi-day?days=%d", days)
	if err := c.getData(ctx, path, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// getData decodes the envelope's data field into out.
func (c *Client) getData(ctx context.Context, path string, out interface{}) error {
	var env models.Envelope
	if err := c.get(ctx, path, c.fetchTimeout, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return apperrors.NewFetchError(apperrors.KindMalformed, path, "missing data", nil)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.NewFetchError(apperrors.KindMalformed, path, "failed to decode data", err)
	}
	return nil
}

// get fetches path and decodes the body into out after checking the
// envelope status.
func (c *Client) get(ctx context.Context, path string, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.NewFetchError(apperrors.KindTransport, path, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failed(apperrors.NewFetchError(apperrors.KindTransport, path, "request failed", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.failed(apperrors.NewFetchError(apperrors.KindTransport, path, "failed to read body", err))
	}

	var head struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		if resp.StatusCode != http.StatusOK {
			return c.failed(apperrors.NewFetchError(apperrors.KindTransport, path,
				fmt.Sprintf("backend returned status %d", resp.StatusCode), nil))
		}
		return c.failed(apperrors.NewFetchError(apperrors.KindMalformed, path, "invalid JSON", err))
	}
	if head.Status != models.StatusOK {
		msg := head.Message
		if msg == "" {
			msg = fmt.Sprintf("status %q (HTTP %d)", head.Status, resp.StatusCode)
		}
		return c.failed(apperrors.NewFetchError(apperrors.KindStatus, path, msg, nil))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return c.failed(apperrors.NewFetchError(apperrors.KindMalformed, path, "failed to decode response", err))
	}
	return nil
}

func (c *Client) failed(err *apperrors.FetchError) error {
	c.log.Warnw("Fetch failed", "endpoint", err.Endpoint, "kind", string(err.Kind), "error", err)
	return err
}
