// Package ui is the Bubble Tea kiosk dashboard.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
	"github.com/ngmaloney/tidewatch/internal/render"
)

// Panels of the primary swipe view.
const (
	PanelToday = iota
	PanelTides
)

// Panels of the dial widget.
const (
	DialGauge = iota
	DialLevels
)

const (
	headerRows = 3
	leftWidth  = dialCols + 4
)

// ThemeStore persists the theme preference.
type ThemeStore interface {
	SetTheme(ctx context.Context, theme string) error
}

// Options configure the dashboard model.
type Options struct {
	Fetcher            *dashboard.Fetcher
	Settings           ThemeStore
	Location           *time.Location
	Theme              render.Theme
	CellWidthPx        int
	SwipeThreshold     int
	DialSwipeThreshold int
	ChartSettleDelay   time.Duration
	Now                func() time.Time
	Logger             *zap.SugaredLogger
}

type dragTarget int

const (
	dragNone dragTarget = iota
	dragView
	dragDial
)

// Model represents the dashboard's state
type Model struct {
	opts   Options
	state  *dashboard.AppState
	styles Styles
	keys   keyMap

	help    help.Model
	spinner spinner.Model
	loading bool

	width  int
	height int
	now    time.Time

	drag     dragTarget
	chart    string
	chartGen int
}

// NewModel creates the dashboard model
func NewModel(opts Options) Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = 8
	}
	if opts.ChartSettleDelay <= 0 {
		opts.ChartSettleDelay = 100 * time.Millisecond
	}

	styles := NewStyles(render.PaletteFor(opts.Theme))
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = styles.Title

	return Model{
		opts:    opts,
		state:   dashboard.NewAppState(render.ParseTheme(string(opts.Theme)), opts.SwipeThreshold, opts.DialSwipeThreshold),
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		loading: true,
		now:     opts.Now().In(opts.Location),
	}
}

// State exposes the dashboard state for rendering and tests.
func (m Model) State() *dashboard.AppState {
	return m.state
}

// Init loads the location label and runs the first full refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		m.fetch(dashboard.DomainConfig, dashboard.DomainOutlook),
		m.refreshAll(),
	)
}

func (m Model) fetch(domains ...dashboard.Domain) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(domains))
	for _, d := range domains {
		cmds = append(cmds, fetchCmd(m.opts.Fetcher, d, m.state.Next(d)))
	}
	return tea.Batch(cmds...)
}

func (m Model) refreshAll() tea.Cmd {
	reqs := make([]dashboard.Request, 0, len(dashboard.RefreshDomains))
	for _, d := range dashboard.RefreshDomains {
		reqs = append(reqs, dashboard.Request{Domain: d, Seq: m.state.Next(d)})
	}
	return refreshAllCmd(m.opts.Fetcher, reqs)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.redrawChart()
		return m, nil

	case TriggerMsg:
		return m, m.fetch(msg.Domains...)

	case resultMsg:
		m.apply(msg.result)
		return m, nil

	case refreshedMsg:
		for _, r := range msg.results {
			m.apply(r)
		}
		return m, nil

	case tickMsg:
		prev := m.now
		m.now = time.Time(msg).In(m.opts.Location)
		if prev.Truncate(time.Minute) != m.now.Truncate(time.Minute) {
			m.redrawChart()
		}
		return m, tickCmd()

	case settleMsg:
		if msg.gen == m.chartGen {
			m.redrawChart()
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.opts.Logger.Warnw("Failed to save theme", "theme", string(msg.theme), "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) apply(r dashboard.Result) {
	if !m.state.Apply(r) {
		m.opts.Logger.Debugw("Dropped stale response", "domain", string(r.Domain), "seq", r.Seq)
		return
	}
	if r.Err != nil {
		m.opts.Logger.Infow("Refresh failed, showing placeholders", "domain", string(r.Domain), "error", r.Err)
	}
	if r.Domain == dashboard.DomainTide {
		m.loading = false
		m.redrawChart()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Today):
		m.state.View.Jump(PanelToday)
	case key.Matches(msg, m.keys.Tides):
		if m.state.View.Jump(PanelTides) {
			cmd := m.settle()
			return m, cmd
		}
	case key.Matches(msg, m.keys.DialPrev):
		m.state.Dial.Jump(DialGauge)
	case key.Matches(msg, m.keys.DialNext):
		m.state.Dial.Jump(DialLevels)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAll()
	case key.Matches(msg, m.keys.Theme):
		cmd := m.toggleTheme()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggleTheme() tea.Cmd {
	m.state.Theme = m.state.Theme.Toggle()
	m.styles = NewStyles(render.PaletteFor(m.state.Theme))
	m.spinner.Style = m.styles.Title
	m.redrawChart()
	if m.opts.Settings == nil {
		return nil
	}
	return saveThemeCmd(m.opts.Settings, m.state.Theme)
}

// settle schedules the chart redraw that follows a switch to the chart
// panel. Only the latest switch redraws.
func (m *Model) settle() tea.Cmd {
	m.chartGen++
	return settleCmd(m.opts.ChartSettleDelay, m.chartGen)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := msg.X * m.opts.CellWidthPx
	l := m.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i, ok := l.viewDots.hit(msg.X, msg.Y); ok {
			if m.state.View.Jump(i) && i == PanelTides {
				cmd := m.settle()
				return m, cmd
			}
			return m, nil
		}
		if m.state.View.Index() == PanelToday {
			if i, ok := l.dialDots.hit(msg.X, msg.Y); ok {
				m.state.Dial.Jump(i)
				return m, nil
			}
			if l.dial.contains(msg.X, msg.Y) {
				m.drag = dragDial
				m.state.Dial.Press(px)
				return m, nil
			}
		}
		if l.body.contains(msg.X, msg.Y) {
			m.drag = dragView
			m.state.View.Press(px)
		}

	case tea.MouseActionMotion:
		switch m.drag {
		case dragDial:
			m.state.Dial.Move(px)
		case dragView:
			m.state.View.Move(px)
		}

	case tea.MouseActionRelease:
		target := m.drag
		m.drag = dragNone
		switch target {
		case dragDial:
			m.state.Dial.Release(px)
		case dragView:
			if m.state.View.Release(px) && m.state.View.Index() == PanelTides {
				cmd := m.settle()
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m *Model) redrawChart() {
	cols, rows := m.chartSize()
	if cols <= 0 || rows <= 0 {
		m.chart = ""
		return
	}
	m.chart = renderChart(m.predictions(), m.now, m.styles.Palette, cols, rows, m.opts.CellWidthPx)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	if m.state.View.Index() == PanelTides {
		body = m.viewTides()
	} else {
		body = m.viewToday()
	}
	body = lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyRows()).
		MaxHeight(m.bodyRows()).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.dots(m.state.View.Index(), m.width),
		m.help.View(m.keys),
	)
}

// bodyRows is what is left between the header and the dot and help rows.
func (m Model) bodyRows() int {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	return max(m.height-headerRows-footer, 0)
}
