package models

import (
	"encoding/json"
	"time"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope wraps every /api response.
type Envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data,omitempty"`
	Message  string          `json:"message,omitempty"`
	Location string          `json:"location,omitempty"`
	Days     int             `json:"days,omitempty"`
}

// OK reports whether the server marked the response successful.
func (e Envelope) OK() bool {
	return e.Status == StatusOK
}

// LocationInfo is the location block of /api/config.
type LocationInfo struct {
	Name               string  `json:"name"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	StationID          string  `json:"station_id"`
	ObservationStation string  `json:"observation_station"`
}

// ThemeColors are the CSS colors a browser frontend draws with.
type ThemeColors struct {
	Name         string `json:"name"`
	Background   string `json:"background"`
	Foreground   string `json:"foreground"`
	Grid         string `json:"grid"`
	Curve        string `json:"curve"`
	CurveFill    string `json:"curve_fill"`
	NowLine      string `json:"now_line"`
	RisingStart  string `json:"rising_start"`
	RisingEnd    string `json:"rising_end"`
	FallingStart string `json:"falling_start"`
	FallingEnd   string `json:"falling_end"`
}

// ConfigResponse is the body of /api/config.
type ConfigResponse struct {
	Status   string       `json:"status"`
	Location LocationInfo `json:"location"`
	Theme    *ThemeColors `json:"theme,omitempty"`
}

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
}
