// Package usno reads sun/moon events and moon phases from the US Naval
// Observatory astronomical applications API.
package usno

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://aa.usno.navy.mil/api"

// Recorder receives one call per upstream request.
type Recorder interface {
	ObserveUpstream(source string, start time.Time, err error)
}

// DayEvents holds one day's events as the API reports them, "15:04" local
// times. Missing events are empty strings.
type DayEvents struct {
	Sunrise   string
	Sunset    string
	SolarNoon string
	Moonrise  string
	Moonset   string
}

// Phase is a principal moon phase from the yearly table.
type Phase struct {
	Name  string
	Year  int
	Month int
	Day   int
	Time  string // "15:04"
}

// Date returns the phase's calendar date at midnight in loc.
func (p Phase) Date(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, 0, 0, 0, 0, loc)
}

// Client talks to the USNO API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

// NewClient creates a USNO client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration, recorder Recorder) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		recorder:   recorder,
	}
}

// UTCOffsetHours returns loc's whole-hour offset at t, DST included.
func UTCOffsetHours(t time.Time, loc *time.Location) int {
	_, offset := t.In(loc).Zone()
	return offset / 3600
}

// GetDay fetches sun and moon events for date at the given coordinates.
func (c *Client) GetDay(ctx context.Context, date time.Time, lat, lon float64, tzOffset int) (events *DayEvents, err error) {
	start := time.Now()
	defer func() { c.observe("usno_rstt", start, err) }()

	params := url.Values{}
	params.Add("date", date.Format("2006-01-02"))
	params.Add("coords", fmt.Sprintf("%s,%s", formatCoord(lat), formatCoord(lon)))
	params.Add("tz", strconv.Itoa(tzOffset))

	var resp onedayResponse
	if err := c.get(ctx, "/rstt/oneday", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch rise/set for %s: %w", date.Format("2006-01-02"), err)
	}
	if resp.Properties == nil {
		return nil, fmt.Errorf("rise/set response for %s has no properties", date.Format("2006-01-02"))
	}

	data := resp.Properties.Data
	return &DayEvents{
		Sunrise:   findPhenomenon(data.SunData, "Rise"),
		Sunset:    findPhenomenon(data.SunData, "Set"),
		SolarNoon: findPhenomenon(data.SunData, "Upper Transit"),
		Moonrise:  findPhenomenon(data.MoonData, "Rise"),
		Moonset:   findPhenomenon(data.MoonData, "Set"),
	}, nil
}

// GetPhases fetches the principal moon phases of a year.
func (c *Client) GetPhases(ctx context.Context, year, tzOffset int) (phases []Phase, err error) {
	start := time.Now()
	defer func() { c.observe("usno_phases", start, err) }()

	params := url.Values{}
	params.Add("year", strconv.Itoa(year))
	params.Add("tz", strconv.Itoa(tzOffset))

	var resp phasesResponse
	if err := c.get(ctx, "/moon/phases/year", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch moon phases for %d: %w", year, err)
	}

	phases = make([]Phase, 0, len(resp.PhaseData))
	for _, p := range resp.PhaseData {
		phases = append(phases, Phase{Name: p.Phase, Year: p.Year, Month: p.Month, Day: p.Day, Time: p.Time})
	}
	return phases, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
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

func (c *Client) observe(source string, start time.Time, err error) {
	if c.recorder != nil {
		c.recorder.ObserveUpstream(source, start, err)
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func findPhenomenon(events []phenomenon, name string) string {
	for _, e := range events {
		if e.Phen == name {
			if e.Time == "" {
				return "--:--"
			}
			return e.Time
		}
	}
	return ""
}

// Internal types for USNO API responses

type phenomenon struct {
	Phen string `json:"phen"`
	Time string `json:"time"`
}

type onedayResponse struct {
	Properties *struct {
		Data struct {
			SunData  []phenomenon `json:"sundata"`
			MoonData []phenomenon `json:"moondata"`
		} `json:"data"`
	} `json:"properties"`
}

type phasesResponse struct {
	PhaseData []struct {
		Phase string `json:"phase"`
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Day   int    `json:"day"`
		Time  string `json:"time"`
	} `json:"phasedata"`
}
