package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/replay"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Games taller than this get a help line under the board.
const minHeightForHelp = 25

// recorder is implemented by games whose sessions can be archived.
type recorder interface {
	Recording() (replay.Record, bool)
}

// resizer is implemented by games that can follow a terminal resize without
// restarting the session.
type resizer interface {
	Resize(w, h int)
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model

	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool

	archived bool // Whether the current session has been archived
	savedID  string
	saveErr  error
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store disables replay archiving.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
}

// screenHeight is the part of the terminal the game draws into.
func screenHeight(h int) int {
	if h >= minHeightForHelp {
		return h - 1
	}
	return h
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = screenHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.archive()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.archive()
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, screenHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = NewSeed()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.archived = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.archive()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// archive saves the current session to the replay store, once per session.
// Sessions without a single simulated frame are not worth keeping.
func (m *Model) archive() {
	if m.archived || m.store == nil {
		return
	}
	m.archived = true

	r, ok := m.game.(recorder)
	if !ok {
		return
	}
	rec, ok := r.Recording()
	if !ok || rec.Frames == 0 {
		return
	}
	m.savedID, m.saveErr = m.store.SaveReplay(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// status is the message shown in front of the help line.
func (m Model) status() string {
	switch {
	case m.saveErr != nil:
		return "replay not saved: " + m.saveErr.Error()
	case m.savedID != "" && m.archived:
		return "replay " + shortID(m.savedID) + " saved"
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if m.config.ScreenH >= minHeightForHelp {
		line := helpStyle.Render(m.help.View(m.keyMapper.Keys()))
		if s := m.status(); s != "" {
			line = statusStyle.Render(s) + "  " + line
		}
		out += "\n" + line
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// SavedReplay returns the ID of the last archived replay, if any.
func (m Model) SavedReplay() string {
	return m.savedID
}

// shortID trims a replay ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program with the given model and returns the
// ID of the replay archived for the last session, if any.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (string, error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.SavedReplay(), nil
	}
	return "", nil
}
