package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// TideType represents whether a tide is high or low
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// Layouts accepted for prediction timestamps besides RFC 3339. NOAA emits
// the first form for time_zone=lst_ldt; the others appear in hand-written
// fixtures. All are read in the local zone.
var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseTimestamp accepts RFC 3339 or one of the zone-less local layouts,
// interpreting the latter in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// TidePrediction is a single predicted high or low. Predictions are never
// mutated after they are received.
type TidePrediction struct {
	Time     time.Time
	Height   float64 // feet relative to MLLW (Mean Lower Low Water)
	Type     TideType
	Time12hr string // server-formatted "3:04 PM", may be empty
}

type tidePredictionJSON struct {
	Time     string   `json:"time"`
	Height   float64  `json:"height"`
	Type     TideType `json:"type"`
	Time12hr string   `json:"time_12hr,omitempty"`
}

func (p TidePrediction) MarshalJSON() ([]byte, error) {
	return json.Marshal(tidePredictionJSON{
		Time:     p.Time.Format(time.RFC3339),
		Height:   p.Height,
		Type:     p.Type,
		Time12hr: p.Time12hr,
	})
}

func (p *TidePrediction) UnmarshalJSON(data []byte) error {
	var raw tidePredictionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := ParseTimestamp(raw.Time, time.Local)
	if err != nil {
		return err
	}
	*p = TidePrediction{Time: t, Height: raw.Height, Type: raw.Type, Time12hr: raw.Time12hr}
	return nil
}

// IsHigh reports whether this is a high tide.
func (p TidePrediction) IsHigh() bool {
	return p.Type == TideHigh
}

// SortPredictions returns a time-ordered copy of preds.
func SortPredictions(preds []TidePrediction) []TidePrediction {
	sorted := make([]TidePrediction, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// PredictionsForDay returns predictions falling on date's calendar day in
// date's location, start inclusive, end exclusive.
func PredictionsForDay(preds []TidePrediction, date time.Time) []TidePrediction {
	var events []TidePrediction
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	for _, p := range preds {
		if !p.Time.Before(startOfDay) && p.Time.Before(endOfDay) {
			events = append(events, p)
		}
	}
	return events
}

// CurrentLevel is the latest observed water level.
type CurrentLevel struct {
	Height      float64   `json:"height"`
	Time        time.Time `json:"time"`
	Time12hr    string    `json:"time_12hr"`
	Unit        string    `json:"unit"`
	Station     string    `json:"station"`
	StationName string    `json:"station_name"`
}

// TideStatus describes where the water is within the current tide cycle.
type TideStatus struct {
	Direction      string          `json:"direction"`
	Percentage     float64         `json:"percentage"`
	IsRising       bool            `json:"is_rising"`
	HasPredictions bool            `json:"has_predictions"`
	PrevTide       *TidePrediction `json:"prev_tide,omitempty"`
	NextTide       *TidePrediction `json:"next_tide,omitempty"`
}

// UnknownStatus is reported when no bracketing predictions exist.
func UnknownStatus() TideStatus {
	return TideStatus{
		Direction:      "Unknown",
		Percentage:     0.5,
		IsRising:       true,
		HasPredictions: false,
	}
}

// TideSnapshot is everything one /api/tide fetch returns. The dashboard
// replaces it wholesale on every successful poll.
type TideSnapshot struct {
	Current            *CurrentLevel    `json:"current"`
	Predictions        []TidePrediction `json:"predictions"`
	NextHigh           *TidePrediction  `json:"next_high"`
	NextLow            *TidePrediction  `json:"next_low"`
	TodaysTides        []TidePrediction `json:"todays_tides"`
	Status             TideStatus       `json:"status"`
	PredictionStation  string           `json:"prediction_station"`
	ObservationStation string           `json:"observation_station"`
	StationName        string           `json:"station_name"`
	LastUpdate         time.Time        `json:"last_update"`
}
