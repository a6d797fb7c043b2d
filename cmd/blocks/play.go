package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagNoArchive bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: blocks).

Controls:
  Left/Right, h/l  - Shift
  j/s              - Soft drop one cell
  Down             - Sonic drop (to the floor, no lock)
  Space            - Hard drop
  Up/x, z, a       - Rotate right, left, 180
  c                - Hold
  p                - Pause
  Shift+F          - Forfeit
  r                - Restart (after game over)
  Esc/b            - Back (when paused or over)
  q/Ctrl+C         - Quit

Finished sessions are archived to the replay database unless --no-archive
is set.

Difficulty options:
  easy   - Half gravity, longer lock delay
  normal - Default timings
  hard   - Fast gravity, short lock delay, fewer resets
  fixed  - Use the config file as-is
  zen    - No gravity

Examples:
  blocks play
  blocks play blocks_zen
  blocks play --difficulty hard
  blocks play --seed 42 --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoArchive, "no-archive", false, "Do not archive finished sessions")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := string(blocks.VariantMarathon)
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'blocks list' to see available variants", gameID)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	blocksCfg, err := loadBlocksConfig()
	if err != nil {
		return err
	}

	game, err := registry.CreateWith(gameID, blocksCfg)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoArchive {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open replay archive, playing without it", "error", err)
			store = nil
		}
	}

	seed := sessionSeed(cmd)
	logger.Debug("starting session", "game", gameID, "seed", seed)

	savedID, runErr := tui.Run(game, store, runtimeConfig(seed))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	if savedID != "" {
		logger.Info("replay archived", "replay", savedID)
	}
	return nil
}
