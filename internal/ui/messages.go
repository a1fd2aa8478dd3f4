package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
	"github.com/ngmaloney/tidewatch/internal/render"
)

// TriggerMsg asks the model to refresh the given domains. The scheduler
// sends it through the running program.
type TriggerMsg struct {
	Domains []dashboard.Domain
}

// resultMsg carries one finished fetch
type resultMsg struct {
	result dashboard.Result
}

// refreshedMsg carries every fetch of a manual refresh.
type refreshedMsg struct {
	results []dashboard.Result
}

type tickMsg time.Time

// settleMsg redraws the chart once the panel switch has laid out.
type settleMsg struct {
	gen int
}

type themeSavedMsg struct {
	theme render.Theme
	err   error
}

func fetchCmd(f *dashboard.Fetcher, d dashboard.Domain, seq uint64) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{result: f.Fetch(context.Background(), d, seq)}
	}
}

func refreshAllCmd(f *dashboard.Fetcher, reqs []dashboard.Request) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{results: f.FetchAll(context.Background(), reqs)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func settleCmd(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
}

func saveThemeCmd(store ThemeStore, theme render.Theme) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return themeSavedMsg{theme: theme, err: store.SetTheme(ctx, string(theme))}
	}
}
