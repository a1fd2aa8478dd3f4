package models

import "time"

// ForecastPeriod is one named period ("Tonight", "Friday", ...) of the
// weather.gov point forecast.
type ForecastPeriod struct {
	Number           int    `json:"number"`
	Name             string `json:"name"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	IsDaytime        bool   `json:"isDaytime"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	Icon             string `json:"icon"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

// WeatherSnapshot combines the latest station observation with the first
// forecast period. Nil pointers and "N/A" strings mean the value was not
// reported.
type WeatherSnapshot struct {
	Temperature          *int     `json:"temperature"`
	TemperatureUnit      string   `json:"temperature_unit"`
	Conditions           string   `json:"conditions"`
	WindSpeed            string   `json:"wind_speed"`     // "12 mph"
	WindDirection        string   `json:"wind_direction"` // 16-point compass
	WindDirectionDegrees *float64 `json:"wind_direction_degrees"`
	Visibility           string   `json:"visibility"` // "9.9 mi"
	Humidity             *float64 `json:"humidity"`
	Pressure             *float64 `json:"pressure"` // pascals
	Dewpoint             *int     `json:"dewpoint"`

	DetailedForecast string           `json:"detailed_forecast"`
	Icon             string           `json:"icon"`
	IsDaytime        bool             `json:"is_daytime"`
	ForecastPeriods  []ForecastPeriod `json:"forecast_periods"`

	LastUpdate time.Time `json:"last_update"`
	StationID  string    `json:"station_id"`
}

// NotReported is the marker weather fields carry when the station omits a value.
const NotReported = "N/A"
