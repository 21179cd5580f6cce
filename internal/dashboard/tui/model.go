// Package tui renders the leaderboard dashboard in the terminal.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"leetboard/internal/dashboard"
	"leetboard/internal/domain/model"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Loader fetches the snapshot the dashboard displays.
type Loader func(ctx context.Context) (model.Snapshot, error)

type snapshotMsg struct {
	snapshot model.Snapshot
	err      error
}

const pinMark = "★"

// sortKeys maps a key press to the field it sorts by.
var sortKeys = map[string]dashboard.Field{
	"1": dashboard.FieldTotal,
	"2": dashboard.FieldEasy,
	"3": dashboard.FieldMedium,
	"4": dashboard.FieldHard,
	"s": dashboard.FieldSection,
	"n": dashboard.FieldName,
}

type Model struct {
	ctx       context.Context
	load      Loader
	exportDir string

	state  dashboard.State
	loaded bool
	table  table.Model
	styles Styles
	status string
	err    error
	width  int
	height int
}

// New builds the dashboard. Exports are written to exportDir.
func New(ctx context.Context, load Loader, exportDir string) Model {
	styles := DefaultStyles()
	t := table.New(
		table.WithColumns(columns("")),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(styles.Table),
	)
	return Model{
		ctx:       ctx,
		load:      load,
		exportDir: exportDir,
		table:     t,
		styles:    styles,
		status:    "Loading leaderboard...",
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.load(m.ctx)
		return snapshotMsg{snapshot: snap, err: err}
	}
}

// State exposes the current view state.
func (m Model) State() dashboard.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Title, pinned panel, status and help take roughly 12 lines.
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.state = dashboard.Load(msg.snapshot)
		m.loaded = true
		m.status = fmt.Sprintf("Loaded %d students", len(msg.snapshot))
		m.refreshTable()
		m.table.GotoTop()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.status = "Reloading..."
			return m, m.fetch()
		}
		if !m.loaded {
			return m, nil
		}

		if field, ok := sortKeys[key]; ok {
			m.state = dashboard.Sort(m.state, field)
			m.status = fmt.Sprintf("Sorted by %s (%s)", field, m.state.Directions[field])
			m.refreshTable()
			return m, nil
		}

		switch key {
		case "f":
			m.state = dashboard.Filter(m.state, m.nextSection())
			m.status = "Section: " + m.state.Section
			m.refreshTable()
			m.table.GotoTop()
			return m, nil
		case "enter", "p":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.state.Working) {
				return m, nil
			}
			roll := m.state.Working[idx].Roll
			m.state = dashboard.Pin(m.state, roll)
			m.status = "Pinned " + roll
			m.refreshTable()
			m.table.GotoTop()
			return m, nil
		case "e":
			path, err := m.export()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.status = "Exported " + path
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// nextSection cycles all -> each section -> all.
func (m Model) nextSection() string {
	options := append([]string{dashboard.AllSections}, m.state.Sections...)
	for i, opt := range options {
		if opt == m.state.Section {
			return options[(i+1)%len(options)]
		}
	}
	return dashboard.AllSections
}

func (m Model) export() (string, error) {
	path := filepath.Join(m.exportDir, dashboard.ExportFilename(m.state))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := dashboard.Export(m.state, f); err != nil {
		f.Close()
		return "", fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

func (m *Model) refreshTable() {
	m.table.SetColumns(columns(m.state.SortedBy))
	rows := make([]table.Row, 0, len(m.state.Working))
	for i, r := range m.state.Working {
		rank := strconv.Itoa(i + 1)
		if m.state.Pinned != "" && r.Roll == m.state.Pinned {
			rank = pinMark + rank
		}
		rows = append(rows, table.Row{
			rank,
			r.Roll,
			r.Name,
			r.SectionOrDefault(),
			dashboard.FormatCount(r.TotalSolved),
			dashboard.FormatCount(r.EasySolved),
			dashboard.FormatCount(r.MediumSolved),
			dashboard.FormatCount(r.HardSolved),
			r.Info,
		})
	}
	m.table.SetRows(rows)
}

func columns(sortedBy dashboard.Field) []table.Column {
	title := func(name string, f dashboard.Field) string {
		if f != "" && f == sortedBy {
			return name + " •"
		}
		return name
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Roll", Width: 10},
		{Title: title("Name", dashboard.FieldName), Width: 22},
		{Title: title("Section", dashboard.FieldSection), Width: 9},
		{Title: title("Total", dashboard.FieldTotal), Width: 7},
		{Title: title("Easy", dashboard.FieldEasy), Width: 6},
		{Title: title("Med", dashboard.FieldMedium), Width: 6},
		{Title: title("Hard", dashboard.FieldHard), Width: 6},
		{Title: "Note", Width: 28},
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("LeetCode Leaderboard"))
	if m.loaded {
		b.WriteString(m.styles.Status.Render(fmt.Sprintf("  section: %s  students: %d", m.state.Section, len(m.state.Working))))
	}
	b.WriteString("\n\n")

	if rec, ok := dashboard.PinnedRecord(m.state); ok {
		b.WriteString(m.pinnedPanel(rec))
		b.WriteString("\n")
	}

	if m.loaded {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("f filter • 1-4 sort counts • s section • n name • enter/p pin • e export • ctrl+r reload • q quit"))
	return b.String()
}

func (m Model) pinnedPanel(r model.StudentRecord) string {
	line := func(label, value string) string {
		return m.styles.Label.Render(label+": ") + value
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Pinned Student"),
		line("Name", r.Name),
		line("Roll Number", r.Roll),
		line("Section", r.SectionOrDefault()),
		line("Total Solved", dashboard.FormatCount(r.TotalSolved)),
		line("Easy Solved", dashboard.FormatCount(r.EasySolved)),
		line("Medium Solved", dashboard.FormatCount(r.MediumSolved)),
		line("Hard Solved", dashboard.FormatCount(r.HardSolved)),
	)
	return m.styles.Pinned.Render(body)
}
