package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/tidewatch/internal/render"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Palette render.Palette

	App       lipgloss.Style
	Title     lipgloss.Style
	Clock     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Pane      lipgloss.Style
	PaneTitle lipgloss.Style
	High      lipgloss.Style
	Low       lipgloss.Style
	Online    lipgloss.Style
	Offline   lipgloss.Style
	DotOn     lipgloss.Style
	DotOff    lipgloss.Style
	GaugeFill lipgloss.Style
	GaugeRest lipgloss.Style
}

// NewStyles derives the dashboard styles from a palette.
func NewStyles(p render.Palette) Styles {
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Curve)

	return Styles{
		Palette: p,

		App: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(p.Background)),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),

		Label: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),

		Value: lipgloss.NewStyle().Foreground(fg),
		Muted: lipgloss.NewStyle().Foreground(muted),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Grid)).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),

		High:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.RisingEnd)),
		Low:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.FallingStart)),
		Online:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.RisingEnd)),
		Offline:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.NowLine)).Bold(true),
		DotOn:     lipgloss.NewStyle().Foreground(accent),
		DotOff:    lipgloss.NewStyle().Foreground(muted),
		GaugeFill: lipgloss.NewStyle().Foreground(accent),
		GaugeRest: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Track)),
	}
}
