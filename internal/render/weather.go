package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

const (
	TemperaturePlaceholder = "--°F"
	WindPlaceholder        = "-- mph"
	VisibilityPlaceholder  = "-- mi"
	TimePlaceholder        = "--:--"

	// visibilityFullScale is the distance, in miles, of a full gauge.
	visibilityFullScale = 10.0
)

// WeatherView is the display-ready weather panel.
type WeatherView struct {
	Temperature   string
	Conditions    string
	Icon          string
	Wind          string
	WindDirection string
	Visibility    string
	// VisibilityFraction fills the visibility gauge, 0..1.
	VisibilityFraction float64
	Forecast           string
}

// BuildWeatherView formats a snapshot. A nil snapshot yields the
// placeholder view; calling it repeatedly is harmless.
func BuildWeatherView(w *models.WeatherSnapshot) WeatherView {
	if w == nil {
		return WeatherView{
			Temperature:   TemperaturePlaceholder,
			Conditions:    "Weather unavailable",
			Icon:          ConditionIcon("", true),
			Wind:          WindPlaceholder,
			WindDirection: Placeholder,
			Visibility:    VisibilityPlaceholder,
		}
	}

	v := WeatherView{
		Temperature:   TemperaturePlaceholder,
		Conditions:    w.Conditions,
		Icon:          ConditionIcon(w.Conditions, w.IsDaytime),
		Wind:          WindPlaceholder,
		WindDirection: Placeholder,
		Visibility:    VisibilityPlaceholder,
		Forecast:      w.DetailedForecast,
	}
	if w.Temperature != nil {
		unit := w.TemperatureUnit
		if unit == "" {
			unit = "F"
		}
		v.Temperature = fmt.Sprintf("%d°%s", *w.Temperature, unit)
	}
	if reported(w.WindSpeed) {
		v.Wind = w.WindSpeed
	}
	if reported(w.WindDirection) {
		v.WindDirection = w.WindDirection
	}
	if reported(w.Visibility) {
		v.Visibility = w.Visibility
		v.VisibilityFraction = VisibilityFraction(w.Visibility)
	}
	if v.Conditions == "" || v.Conditions == models.NotReported {
		v.Conditions = Placeholder
	}
	return v
}

func reported(s string) bool {
	return s != "" && s != models.NotReported
}

// VisibilityFraction maps "9.9 mi" onto the gauge. Unparseable input is 0.
func VisibilityFraction(visibility string) float64 {
	fields := strings.Fields(visibility)
	if len(fields) == 0 {
		return 0
	}
	miles, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || miles < 0 {
		return 0
	}
	return clamp01(miles / visibilityFullScale)
}

var conditionIcons = []struct {
	keywords []string
	day      string
	night    string
}{
	{[]string{"thunder", "storm"}, "⛈️", "⛈️"},
	{[]string{"snow", "flurr", "blizzard"}, "❄️", "❄️"},
	{[]string{"sleet", "ice", "freezing", "hail"}, "🌨️", "🌨️"},
	{[]string{"rain", "shower", "drizzle"}, "🌧️", "🌧️"},
	{[]string{"fog", "mist", "haze", "smoke"}, "🌫️", "🌫️"},
	{[]string{"partly", "mostly sunny", "mostly clear"}, "⛅", "☁️"},
	{[]string{"cloud", "overcast"}, "☁️", "☁️"},
	{[]string{"wind", "breez"}, "💨", "💨"},
	{[]string{"clear", "sunny", "fair"}, "☀️", "🌙"},
}

// ConditionIcon maps a weather.gov condition phrase onto an emoji.
func ConditionIcon(conditions string, isDaytime bool) string {
	c := strings.ToLower(conditions)
	for _, entry := range conditionIcons {
		for _, kw := range entry.keywords {
			if strings.Contains(c, kw) {
				if isDaytime {
					return entry.day
				}
				return entry.night
			}
		}
	}
	return "🌡️"
}

// AstronomyView is the display-ready sun and moon panel.
type AstronomyView struct {
	Sunrise          string
	Sunset           string
	SolarNoon        string
	Moonrise         string
	Moonset          string
	MoonPhase        string
	MoonEmoji        string
	MoonIllumination string
}

// BuildAstronomyView formats a snapshot, using placeholders for nil.
func BuildAstronomyView(a *models.AstronomySnapshot) AstronomyView {
	if a == nil {
		return AstronomyView{
			Sunrise:          TimePlaceholder,
			Sunset:           TimePlaceholder,
			SolarNoon:        TimePlaceholder,
			Moonrise:         TimePlaceholder,
			Moonset:          TimePlaceholder,
			MoonPhase:        Placeholder,
			MoonEmoji:        "🌙",
			MoonIllumination: Placeholder,
		}
	}
	orDash := func(s string) string {
		if s == "" || s == "None" {
			return TimePlaceholder
		}
		return s
	}
	emoji := a.MoonEmoji
	if emoji == "" {
		emoji = "🌙"
	}
	return AstronomyView{
		Sunrise:          orDash(a.Sunrise),
		Sunset:           orDash(a.Sunset),
		SolarNoon:        orDash(a.SolarNoon),
		Moonrise:         orDash(a.Moonrise),
		Moonset:          orDash(a.Moonset),
		MoonPhase:        a.MoonPhase,
		MoonEmoji:        emoji,
		MoonIllumination: fmt.Sprintf("%d%%", a.MoonIllumination),
	}
}

// NextTideView is one "Next High"/"Next Low" line.
type NextTideView struct {
	Time   string
	Height string
}

// BuildNextTide formats a prediction, with placeholders for nil.
func BuildNextTide(p *models.TidePrediction, loc *time.Location) NextTideView {
	if p == nil {
		return NextTideView{Time: TimePlaceholder, Height: Placeholder + " ft"}
	}
	t := p.Time12hr
	if t == "" {
		if loc == nil {
			loc = time.Local
		}
		t = Format12Hour(p.Time.In(loc))
	}
	return NextTideView{Time: t, Height: FormatHeight(p.Height)}
}
