package registry

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

type stubGame struct {
	id  string
	cfg *config.BlocksConfig
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Description() string                  { return "a stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Configure(cfg config.BlocksConfig)    { g.cfg = &cfg }

func TestRegisterAndList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Error("Exists() returned unexpected results")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz_stub_a" || info.ID == "zz_stub_b" {
			ids = append(ids, info.ID)
			if info.Description != "a stub" {
				t.Errorf("%s Description = %q, expected %q", info.ID, info.Description, "a stub")
			}
		}
	}
	if len(ids) != 2 || ids[0] != "zz_stub_a" || ids[1] != "zz_stub_b" {
		t.Errorf("List() ids = %v, expected sorted stubs", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register() did not panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestCreateWith(t *testing.T) {
	Register("zz_cfg", func() Game { return &stubGame{id: "zz_cfg"} })

	cfg := config.DefaultBlocksConfig()
	cfg.Preview = 2

	g, err := CreateWith("zz_cfg", cfg)
	if err != nil {
		t.Fatalf("CreateWith() failed: %v", err)
	}
	stub := g.(*stubGame)
	if stub.cfg == nil || stub.cfg.Preview != 2 {
		t.Errorf("Configure() not called with the config: %+v", stub.cfg)
	}

	if _, err := CreateWith("zz_unknown", cfg); err == nil {
		t.Error("CreateWith() of an unknown id succeeded")
	}
}
