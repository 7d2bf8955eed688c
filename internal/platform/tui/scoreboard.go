package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the view list sidebar
	maxScores          = 100 // Max rows to load
)

// BoardView selects what the scoreboard lists.
type BoardView int

const (
	ViewTopRuns BoardView = iota // Best runs of everyone
	ViewLeaders                  // Best score per player
	ViewMyRuns                   // Recent runs of the current player
	boardViewCount
)

// Title returns the sidebar label.
func (v BoardView) Title() string {
	switch v {
	case ViewTopRuns:
		return "Top runs"
	case ViewLeaders:
		return "Leaders"
	case ViewMyRuns:
		return "My runs"
	default:
		return "?"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for browsing the score history.
type ScoreboardModel struct {
	store       *storage.Store
	player      string
	view        BoardView
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for store. player selects the
// "My runs" view.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:       store,
		player:      player,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns of the current view.
func (m *ScoreboardModel) columns() []table.Column {
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	dateWidth := min(20, max(14, tableWidth-34))

	switch m.view {
	case ViewLeaders:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Best", Width: 8},
			{Title: "Updated", Width: dateWidth},
		}
	case ViewMyRuns:
		return []table.Column{
			{Title: "Score", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: dateWidth},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: dateWidth},
		}
	}
}

// createTable creates a table for the current view and rows.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the rows of the current view and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows, m.loadErr = m.fetchRows()
	m.table = m.createTable()
	m.table.GotoTop()
}

func (m *ScoreboardModel) fetchRows() ([]table.Row, error) {
	if m.store == nil {
		return nil, nil
	}

	switch m.view {
	case ViewLeaders:
		leaders, err := m.store.Leaders(maxScores)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(leaders))
		for i, l := range leaders {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				l.Player,
				fmt.Sprintf("%d", l.Score),
				l.UpdatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	case ViewMyRuns:
		runs, err := m.store.PlayerScores(m.player, maxScores)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(runs))
		for i, r := range runs {
			rows[i] = table.Row{
				fmt.Sprintf("%d", r.Score),
				FormatDuration(r.Duration()),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	default:
		runs, err := m.store.TopScores(maxScores)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(runs))
		for i, r := range runs {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				r.Player,
				fmt.Sprintf("%d", r.Score),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil
	}
}

// FormatDuration renders a run length as m:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % boardViewCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + boardViewCount - 1) % boardViewCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES - " + m.view.Title()
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar listing the views.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for v := BoardView(0); v < boardViewCount; v++ {
		cursor := "  "
		style := lipgloss.NewStyle()
		if v == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.Title()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, boardViewCount)
	for v := BoardView(0); v < boardViewCount; v++ {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.Title()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+v.Title()+" "))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// centerText pads each line of text to center it within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
