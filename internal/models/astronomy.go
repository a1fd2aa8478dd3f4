package models

import "time"

// AstronomySnapshot holds one day's sun and moon events as 12-hour strings.
// Moonrise may be prefixed "-1 " (rose yesterday) and moonset "+1 " (sets
// tomorrow) when the event does not occur on the day itself.
type AstronomySnapshot struct {
	Date             string    `json:"date"`
	Sunrise          string    `json:"sunrise"`
	Sunset           string    `json:"sunset"`
	SolarNoon        string    `json:"solar_noon"`
	Moonrise         string    `json:"moonrise"`
	Moonset          string    `json:"moonset"`
	MoonPhase        string    `json:"moon_phase"`
	MoonIllumination int       `json:"moon_illumination"`
	MoonEmoji        string    `json:"moon_emoji"`
	LastUpdate       time.Time `json:"last_update"`
}

// MoonPhaseEvent is a principal phase instant from the USNO yearly table.
type MoonPhaseEvent struct {
	Phase string    `json:"phase"`
	Time  time.Time `json:"time"`
}
