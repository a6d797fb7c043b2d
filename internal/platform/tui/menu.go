package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one registered variant.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// menuExit is how the picker was left.
type menuExit int

const (
	menuOpen menuExit = iota
	menuPlay
	menuReplays
	menuQuit
)

// MenuModel is the variant picker. It quits its program on any exit so a
// standalone run returns to the caller; SessionModel reads the exit instead.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	exit      menuExit
}

// NewMenuModel creates a picker listing every registered variant.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	infos := registry.List()
	items := make([]MenuItem, len(infos))
	for i, info := range infos {
		items[i] = MenuItem{GameID: info.ID, Title: info.Title, Description: info.Description}
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.exit = menuQuit
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.exit = menuPlay
			return m, tea.Quit
		}
	case MenuActionReplays:
		m.exit = menuReplays
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.exit == menuQuit {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		titleStyle.Render("B L O C K S"),
		"",
		"Select a variant",
		"",
	}
	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+item.Title+" <"))
		} else {
			lines = append(lines, "  "+item.Title+"  ")
		}
	}
	if len(m.items) > 0 {
		lines = append(lines, "", dimStyle.Render(m.items[m.cursor].Description))
	}
	lines = append(lines, "", dimStyle.Render(m.help.View(m.keyMapper.MenuKeys())))
	if m.config.Seed != 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("seed %d", m.config.Seed)))
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen variant, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	if m.exit != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.exit == menuQuit
}

// WantsReplays returns true if user requested the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.exit == menuReplays
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to sit in the middle of width, measuring printable
// width so styled text centers correctly.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the picker in its own program.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.exit {
	case menuPlay:
		res.GameID = m.items[m.cursor].GameID
	case menuReplays:
		res.WantsReplays = true
	default:
		res.Quit = true
	}
	return res, nil
}
