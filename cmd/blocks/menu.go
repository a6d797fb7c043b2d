package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant and Tab to
browse archived replays. After a game ends you return to the menu.

Examples:
  blocks menu
  blocks menu --fps 30
  blocks menu --db ./replays.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	blocksCfg, err := loadBlocksConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay archive", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig(0)
	seeded := cmd.Flags().Changed("seed")

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsReplays {
			goBack, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.CreateWith(menuResult.GameID, blocksCfg)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// A fixed seed replays the same piece order every round.
		cfg.Seed = tui.NewSeed()
		if seeded {
			cfg.Seed = flagSeed
		}

		savedID, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		if savedID != "" {
			logger.Debug("replay archived", "replay", savedID)
		}
	}
}
