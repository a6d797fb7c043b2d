// blocks is a deterministic falling-block puzzle for the terminal.
//
// Usage:
//
//	blocks list              - List available variants
//	blocks play [variant]    - Play a variant (default: blocks)
//	blocks menu              - Pick variants interactively
//	blocks serve             - Start SSH server for remote play
//	blocks replays ...       - List, verify, export and import archived replays
//	blocks bag               - Check the bag randomizer for a seed
//	blocks config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set randomizer seed for a reproducible session
//	--db <path>          - Set replay archive path (default: ~/.blocks/replays.db)
//	--config <path>      - Load a custom config YAML
//	--difficulty <name>  - Apply a difficulty preset
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"

	// Import games to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint32
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a deterministic falling-block puzzle in your terminal",
	Long: `Blocks is a falling-block puzzle for the terminal. Every session is
determined by its seed and the keys pressed, so finished games are archived
as replays that can be verified and shared.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  replays  - Browse and verify archived replays
  bag      - Inspect the piece randomizer
  config   - Print the effective configuration

Examples:
  blocks play
  blocks play blocks_20g --difficulty hard
  blocks play --seed 42
  blocks serve --ssh :2222
  blocks replays verify --all`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Randomizer seed (random when not set)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/replays.db", "Path to replay archive")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed, zen")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(bagCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger from --log-level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "blocks",
		ReportTimestamp: true,
		Level:           level,
	}), nil
}

// loadBlocksConfig resolves --config and --difficulty into a validated config.
func loadBlocksConfig() (config.BlocksConfig, error) {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return config.BlocksConfig{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BlocksConfig{}, err
	}
	config.ApplyBlocksPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.BlocksConfig{}, err
	}
	return cfg, nil
}

// sessionSeed returns --seed when given and a time-based seed otherwise.
// Zero is a valid seed, so the flag's presence decides.
func sessionSeed(cmd *cobra.Command) uint32 {
	if cmd.Flags().Changed("seed") {
		return flagSeed
	}
	return tui.NewSeed()
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig(seed uint32) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = seed
	return cfg
}
