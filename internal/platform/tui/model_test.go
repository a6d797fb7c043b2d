package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/replay"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 77}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send feeds messages through Update the way the Bubble Tea runtime does.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}
	return m
}

func TestModelAppliesKeysOnTick(t *testing.T) {
	m := NewModel(blocks.New(blocks.VariantZen), nil, testConfig())
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, TickMsg{})
	if m.gameState.Pieces != 1 || m.gameState.Tick != 1 {
		t.Errorf("state = %+v, expected one locked piece at tick 1", m.gameState)
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame not cleared after tick")
	}
}

func TestModelArchivesOnGameOver(t *testing.T) {
	store := openStore(t)
	m := NewModel(blocks.New(blocks.VariantMarathon), store, testConfig())
	m.Init()

	m = send(t, m, TickMsg{}, TickMsg{}, runeKey('c'), TickMsg{}, runeKey('F'), TickMsg{})
	if !m.gameState.GameOver {
		t.Fatalf("state = %+v, expected game over", m.gameState)
	}
	if m.SavedReplay() == "" {
		t.Fatalf("no replay archived, error: %v", m.saveErr)
	}

	// A second game-over tick must not archive again.
	m = send(t, m, TickMsg{})
	if n, _ := store.Count(); n != 1 {
		t.Errorf("Count() = %d, expected 1", n)
	}

	rec, err := store.Replay(m.SavedReplay())
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if rec.EndReason != "forfeit" || rec.Frames != 3 {
		t.Errorf("record = %+v, expected forfeit after 3 frames", rec)
	}
	if _, err := replay.Verify(rec); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}

	if !strings.Contains(m.View(), "saved") {
		t.Error("view does not report the saved replay")
	}
}

func TestModelRestartStartsNewSession(t *testing.T) {
	store := openStore(t)
	m := NewModel(blocks.New(blocks.VariantMarathon), store, testConfig())
	m.Init()

	m = send(t, m, TickMsg{}, runeKey('F'), TickMsg{})
	m = send(t, m, runeKey('r'), TickMsg{})
	if m.gameState.GameOver || m.gameState.Tick != 0 {
		t.Errorf("state after restart = %+v", m.gameState)
	}

	// Quitting mid-session archives the running session too.
	m = send(t, m, TickMsg{}, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("expected quitting")
	}
	if n, _ := store.Count(); n != 2 {
		t.Errorf("Count() = %d, expected 2", n)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m := NewModel(blocks.New(blocks.VariantZen), nil, testConfig())
	m.embedded = true
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, TickMsg{})
	if m.BackToMenu() {
		t.Fatal("back accepted while playing")
	}

	m = send(t, m, runeKey('p'), TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v, expected true, false", m.BackToMenu(), m.IsQuitting())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "[]", core.ColorCyan)
	s.DrawText(2, 0, "ab")
	s.DrawTextColored(0, 1, "xy", core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "[]") || !strings.Contains(lines[0], "ab") || !strings.Contains(lines[1], "xy") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
}
