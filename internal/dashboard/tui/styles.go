package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#FFA116") // LeetCode orange
	muted  = lipgloss.Color("#6C7086")
	danger = lipgloss.Color("#E53935")
	border = lipgloss.Color("#3B4252")
)

type Styles struct {
	Title  lipgloss.Style
	Pinned lipgloss.Style
	Label  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Table  table.Styles
}

func DefaultStyles() Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#1E1E2E")).
		Background(accent).
		Bold(false)

	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pinned: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true),
		Status: lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(danger),
		Help:   lipgloss.NewStyle().Foreground(muted),
		Table:  ts,
	}
}
