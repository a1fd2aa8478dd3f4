package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/render"
)

const (
	tableLabelWidth = 12
	tableSlotWidth  = 20
)

// tide, weather and astronomy return the snapshot to render, or nil when
// the last fetch of that domain failed. The snapshot itself stays in state.
func (m Model) tide() *models.TideSnapshot {
	if !m.state.TideOK {
		return nil
	}
	return m.state.Tide
}

func (m Model) weather() *models.WeatherSnapshot {
	if !m.state.WeatherOK {
		return nil
	}
	return m.state.Weather
}

func (m Model) astronomy() *models.AstronomySnapshot {
	if !m.state.AstronomyOK {
		return nil
	}
	return m.state.Astronomy
}

func (m Model) predictions() []models.TidePrediction {
	if t := m.tide(); t != nil {
		return t.Predictions
	}
	return nil
}

func (m Model) tideStatus() models.TideStatus {
	if t := m.tide(); t != nil {
		return t.Status
	}
	return models.UnknownStatus()
}

// viewHeader renders the location, clock and connectivity rows.
func (m Model) viewHeader() string {
	name := m.state.Location
	if name == "" {
		name = "TideWatch"
	}
	third := max(m.width/3, 1)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(third).Render(m.styles.Title.Render("🌊 "+name)),
		lipgloss.NewStyle().Width(third).Align(lipgloss.Center).Render(m.styles.Clock.Render(render.FormatClock(m.now))),
		lipgloss.NewStyle().Width(m.width-2*third).Align(lipgloss.Right).Render(m.styles.Muted.Render(render.FormatDate(m.now))),
	)

	conn := m.styles.Online.Render("● Online")
	if !m.state.Online {
		conn = m.styles.Offline.Render("○ Offline")
	}
	status := []string{conn}
	if t := m.tide(); t != nil && t.StationName != "" {
		status = append(status, m.styles.Muted.Render(t.StationName))
	}
	updated := render.FormatLastUpdated(m.state.LastUpdated)
	if !m.state.LastUpdated.IsZero() {
		updated = render.FormatLastUpdated(m.state.LastUpdated.In(m.opts.Location))
	}
	status = append(status, m.styles.Muted.Render(updated))
	if m.loading {
		status = append(status, m.spinner.View()+m.styles.Muted.Render(" loading"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, strings.Join(status, m.styles.Muted.Render("  ·  ")), "")
}

// viewToday is the first panel: the dial widget beside weather and sky.
func (m Model) viewToday() string {
	var dial string
	if m.state.Dial.Index() == DialLevels {
		dial = m.viewLevels()
	} else {
		st := m.tideStatus()
		dial = renderDial(render.PlanDial(st.Percentage, st.IsRising), st.Direction, m.styles.Palette)
	}
	dial = lipgloss.NewStyle().Height(dialRows).MaxHeight(dialRows).PaddingLeft(2).Render(dial)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Tide"),
		"",
		dial,
		m.dots(m.state.Dial.Index(), leftWidth),
	)
	left = lipgloss.NewStyle().Width(leftWidth).Render(left)

	right := m.viewWeather(max(m.width-leftWidth-1, 0))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// viewLevels is the dial widget's second face: observed level and the
// next high and low.
func (m Model) viewLevels() string {
	level := render.Placeholder + " ft"
	observed := render.TimePlaceholder
	tide := m.tide()
	if tide != nil && tide.Current != nil {
		cur := tide.Current
		level = render.FormatHeight(cur.Height)
		observed = cur.Time12hr
		if observed == "" {
			observed = render.Format12Hour(cur.Time.In(m.opts.Location))
		}
	}

	var high, low *models.TidePrediction
	if tide != nil {
		high, low = tide.NextHigh, tide.NextLow
	}
	nh := render.BuildNextTide(high, m.opts.Location)
	nl := render.BuildNextTide(low, m.opts.Location)

	lines := []string{
		m.styles.Label.Render("Water level"),
		m.styles.Clock.Render(level),
		m.styles.Muted.Render("at " + observed),
		"",
		m.styles.High.Render(render.MarkerHigh) + " " + m.styles.Label.Render("Next high"),
		"  " + m.styles.Value.Render(nh.Time+"  "+nh.Height),
		m.styles.Low.Render(render.MarkerLow) + " " + m.styles.Label.Render("Next low"),
		"  " + m.styles.Value.Render(nl.Time+"  "+nl.Height),
	}
	return strings.Join(lines, "\n")
}

// viewTides is the second panel: today's curve above the tide table.
func (m Model) viewTides() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Today's Tides"),
		m.chart,
		"",
		m.viewTable(),
	)
}

// tableRows is the height viewTable occupies.
func tableRows() int {
	return render.TableDays + 1
}

// chartSize is the cell area left for the chart on the tides panel.
func (m Model) chartSize() (cols, rows int) {
	return m.width, m.bodyRows() - 2 - tableRows()
}

func (m Model) viewTable() string {
	days := render.BuildTideTable(m.predictions(), m.opts.Location, m.now)
	if len(days) == 0 {
		return m.styles.Muted.Render("No tide predictions available")
	}

	header := m.styles.Label.Width(tableLabelWidth).Render("Date")
	for i := 1; i <= render.SlotsPerDay; i++ {
		header += m.styles.Label.Width(tableSlotWidth).Render(fmt.Sprintf("Tide %d", i))
	}
	lines := []string{header}

	for _, day := range days {
		label := day.Label
		if sameDay(day.Date, m.now) {
			label = "Today"
		}
		row := m.styles.Value.Width(tableLabelWidth).Render(label)
		for _, slot := range day.Slots {
			row += lipgloss.NewStyle().Width(tableSlotWidth).Render(m.slot(slot))
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) slot(s render.TableSlot) string {
	if s.Empty {
		return m.styles.Muted.Render(render.Placeholder)
	}
	marker := m.styles.Low.Render(s.Marker)
	if s.IsHigh {
		marker = m.styles.High.Render(s.Marker)
	}
	return fmt.Sprintf("%s %s %s", marker, m.styles.Value.Render(s.Height), m.styles.Muted.Render(s.Time))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
