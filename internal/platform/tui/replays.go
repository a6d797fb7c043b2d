package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/replay"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

const maxReplays = 100 // Max replays to load per filter

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Verify     key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.NextFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Verify},
		{k.NextFilter, k.PrevFilter, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel is the Bubble Tea model listing archived replays.
type ReplayBrowserModel struct {
	filters   []string // "" means every variant
	filter    int
	store     *storage.Store
	records   []replay.Record
	table     table.Model
	help      help.Model
	keys      ReplayKeyMap
	width     int
	height    int
	status    string
	loadErr   error
	quitting  bool
	goingBack bool
}

// NewReplayBrowserModel creates a replay browser over the store.
func NewReplayBrowserModel(store *storage.Store, width, height int) ReplayBrowserModel {
	filters := []string{""}
	for _, g := range registry.List() {
		filters = append(filters, g.ID)
	}

	m := ReplayBrowserModel{
		filters: filters,
		store:   store,
		keys:    DefaultReplayKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the table sized to the window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Variant", Width: 12},
		{Title: "Frames", Width: 8},
		{Title: "Pieces", Width: 7},
		{Title: "Rows", Width: 6},
		{Title: "End", Width: 18},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
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

// load fetches the records for the current filter.
func (m *ReplayBrowserModel) load() {
	m.records, m.loadErr = nil, nil
	if m.store != nil {
		if variant := m.filters[m.filter]; variant == "" {
			m.records, m.loadErr = m.store.RecentReplays(maxReplays)
		} else {
			m.records, m.loadErr = m.store.ReplaysByVariant(variant, maxReplays)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded records.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		end := r.EndReason
		if end == "" {
			end = "abandoned"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			r.Variant,
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.Rows),
			end,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// verifySelected re-simulates the selected record.
func (m *ReplayBrowserModel) verifySelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return
	}
	rec := m.records[i]
	res, err := replay.Verify(rec)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", shortID(rec.ID), err)
		return
	}
	m.status = fmt.Sprintf("%s: verified, %d frames, digest %s", shortID(rec.ID), res.Frames, res.Digest)
}

// Init initializes the replay browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.status = ""
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "REPLAYS - all variants"
	if v := m.filters[m.filter]; v != "" {
		title = "REPLAYS - " + v
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ReplayBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Replay archive unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot load replays:\n" + m.loadErr.Error())
	case len(m.records) == 0:
		return emptyStyle.Render("No replays recorded yet.\nFinish a game to archive one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// RunReplayBrowser runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplayBrowser(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
