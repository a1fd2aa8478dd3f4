package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/tidewatch/internal/render"
)

const gaugeWidth = 10

// viewWeather renders conditions, the sun and moon block and the outlook
// strip.
func (m Model) viewWeather(width int) string {
	w := render.BuildWeatherView(m.weather())
	wrapped := lipgloss.NewStyle().Width(max(width-2, 10))

	var lines []string
	lines = append(lines,
		m.styles.Title.Render("Weather"),
		w.Icon+" "+m.styles.Clock.Render(w.Temperature)+"  "+m.styles.Value.Render(w.Conditions),
		m.styles.Label.Render("Wind       ")+m.styles.Value.Render(strings.TrimSpace(w.Wind+" "+w.WindDirection)),
		m.styles.Label.Render("Visibility ")+m.styles.Value.Render(w.Visibility)+" "+m.gauge(w.VisibilityFraction),
	)
	if w.Forecast != "" {
		lines = append(lines, wrapped.Render(m.styles.Muted.Render(w.Forecast)))
	}

	a := render.BuildAstronomyView(m.astronomy())
	lines = append(lines,
		"",
		m.styles.Title.Render("Sun & Moon"),
		m.styles.Label.Render("Sunrise  ")+m.styles.Value.Render(a.Sunrise)+"   "+
			m.styles.Label.Render("Sunset  ")+m.styles.Value.Render(a.Sunset),
		m.styles.Label.Render("Moonrise ")+m.styles.Value.Render(a.Moonrise)+"   "+
			m.styles.Label.Render("Moonset ")+m.styles.Value.Render(a.Moonset),
		a.MoonEmoji+" "+m.styles.Value.Render(a.MoonPhase)+" "+m.styles.Muted.Render(a.MoonIllumination),
	)

	if strip := m.viewOutlook(); strip != "" {
		lines = append(lines, "", strip)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// viewOutlook lists the next few days' sun times and moon phase.
func (m Model) viewOutlook() string {
	if len(m.state.Outlook) == 0 {
		return ""
	}
	var rows []string
	for i := range m.state.Outlook {
		snap := &m.state.Outlook[i]
		a := render.BuildAstronomyView(snap)
		day := snap.Date
		if d, err := time.ParseInLocation("2006-01-02", snap.Date, m.opts.Location); err == nil {
			day = d.Format("Mon Jan 2")
		}
		rows = append(rows,
			m.styles.Label.Width(tableLabelWidth).Render(day)+
				m.styles.Value.Render(a.Sunrise+" – "+a.Sunset)+"  "+a.MoonEmoji)
	}
	return strings.Join(rows, "\n")
}

// gauge draws a fraction as a bar of gaugeWidth cells.
func (m Model) gauge(fraction float64) string {
	filled := int(fraction*gaugeWidth + 0.5)
	filled = min(max(filled, 0), gaugeWidth)
	return m.styles.GaugeFill.Render(strings.Repeat("█", filled)) +
		m.styles.GaugeRest.Render(strings.Repeat("░", gaugeWidth-filled))
}
