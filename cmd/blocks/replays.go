package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/replay"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagReplayVariant string
	flagReplayLimit   int
	flagVerifyAll     bool
	flagExportOut     string
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage archived replays",
	Long: `List, inspect, verify and share archived sessions.

A replay stores the seed, the configuration and every input event of a
session. Verifying re-simulates the events on a fresh session and checks
that the frame count, final board and end reason match.

Replay IDs can be shortened to any unique prefix.

Examples:
  blocks replays list
  blocks replays list --variant blocks_20g --limit 5
  blocks replays show 3f2a
  blocks replays verify --all
  blocks replays export 3f2a -o best.yaml
  blocks replays import best.yaml`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent replays",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			var (
				recs []replay.Record
				err  error
			)
			if flagReplayVariant != "" {
				recs, err = store.ReplaysByVariant(flagReplayVariant, flagReplayLimit)
			} else {
				recs, err = store.RecentReplays(flagReplayLimit)
			}
			if err != nil {
				return err
			}
			printReplays(recs)
			return nil
		})
	},
}

var replaysBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse replays interactively",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			cfg := runtimeConfig(0)
			_, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
			return err
		})
	},
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a replay and its final board",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			rec, err := store.Replay(args[0])
			if err != nil {
				return err
			}
			printRecord(rec)

			events, err := replay.DecodeTrace(rec.Trace)
			if err != nil {
				return err
			}
			res, err := replay.Run(rec.Config.Setup(rec.Seed), events)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Print(boardText(res.Snapshot, rec.Config.HiddenRows()))
			return nil
		})
	},
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify [id]",
	Short: "Re-simulate replays and check their results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

var replaysExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a replay to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			rec, err := store.Replay(args[0])
			if err != nil {
				return err
			}
			if flagExportOut == "" {
				data, err := replay.Marshal(rec)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			}
			if err := replay.WriteFile(flagExportOut, rec); err != nil {
				return err
			}
			fmt.Printf("Exported %s to %s\n", shortID(rec.ID), flagExportOut)
			return nil
		})
	},
}

var replaysImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Verify a replay file and add it to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		rec, err := replay.ReadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := replay.Verify(rec); err != nil {
			return fmt.Errorf("refusing to import %s: %w", args[0], err)
		}
		return withStore(func(store *storage.Store) error {
			id, err := store.SaveReplay(rec)
			if err != nil {
				return err
			}
			fmt.Printf("Imported replay %s\n", shortID(id))
			return nil
		})
	},
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			rec, err := store.Replay(args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteReplay(rec.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted replay %s\n", shortID(rec.ID))
			return nil
		})
	},
}

var replaysStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals per variant",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			all, err := store.VariantStats()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No replays archived yet.")
				return nil
			}
			fmt.Printf("  %-12s  %8s  %10s  %8s  %8s  %9s\n", "Variant", "Sessions", "Frames", "Pieces", "Rows", "Best rows")
			fmt.Printf("  %-12s  %8s  %10s  %8s  %8s  %9s\n", "-------", "--------", "------", "------", "----", "---------")
			for _, s := range all {
				fmt.Printf("  %-12s  %8d  %10d  %8d  %8d  %9d\n", s.Variant, s.Sessions, s.Frames, s.Pieces, s.Rows, s.MostRows)
			}
			return nil
		})
	},
}

func init() {
	replaysListCmd.Flags().StringVar(&flagReplayVariant, "variant", "", "Only list replays of this variant")
	replaysListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays")
	replaysVerifyCmd.Flags().BoolVar(&flagVerifyAll, "all", false, "Verify every archived replay")
	replaysExportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default: stdout)")

	replaysCmd.AddCommand(
		replaysListCmd,
		replaysBrowseCmd,
		replaysShowCmd,
		replaysVerifyCmd,
		replaysExportCmd,
		replaysImportCmd,
		replaysDeleteCmd,
		replaysStatsCmd,
	)
}

func runVerify(_ *cobra.Command, args []string) error {
	if len(args) == 0 && !flagVerifyAll {
		return errors.New("give a replay id or --all")
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		var recs []replay.Record
		if len(args) == 1 {
			rec, err := store.Replay(args[0])
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		} else {
			total, err := store.Count()
			if err != nil {
				return err
			}
			recs, err = store.RecentReplays(total)
			if err != nil {
				return err
			}
		}

		failed := 0
		for _, rec := range recs {
			res, err := replay.Verify(rec)
			if err != nil {
				failed++
				logger.Error("replay failed", "replay", shortID(rec.ID), "variant", rec.Variant, "error", err)
				continue
			}
			logger.Info("replay ok", "replay", shortID(rec.ID), "variant", rec.Variant, "frames", res.Frames, "digest", res.Digest)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d replays failed verification", failed, len(recs))
		}
		return nil
	})
}

// withStore opens the replay archive for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay archive: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func printReplays(recs []replay.Record) {
	if len(recs) == 0 {
		fmt.Println("No replays found.")
		return
	}
	fmt.Printf("  %-8s  %-12s  %8s  %6s  %5s  %-10s  %s\n", "ID", "Variant", "Frames", "Pieces", "Rows", "End", "Date")
	fmt.Printf("  %-8s  %-12s  %8s  %6s  %5s  %-10s  %s\n", "--", "-------", "------", "------", "----", "---", "----")
	for _, r := range recs {
		fmt.Printf("  %-8s  %-12s  %8d  %6d  %5d  %-10s  %s\n",
			shortID(r.ID), r.Variant, r.Frames, r.Pieces, r.Rows, endLabel(r.EndReason),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printRecord(rec replay.Record) {
	fmt.Printf("Replay   %s\n", rec.ID)
	fmt.Printf("Variant  %s\n", rec.Variant)
	fmt.Printf("Seed     %d\n", rec.Seed)
	fmt.Printf("Board    %dx%d (%d visible)\n", rec.Config.Board.Width, rec.Config.Board.Height, rec.Config.Board.VisibleRows)
	fmt.Printf("Frames   %d\n", rec.Frames)
	fmt.Printf("Pieces   %d\n", rec.Pieces)
	fmt.Printf("Rows     %d\n", rec.Rows)
	fmt.Printf("End      %s\n", endLabel(rec.EndReason))
	fmt.Printf("Digest   %s\n", rec.Digest)
	fmt.Printf("Date     %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}

func endLabel(reason string) string {
	if reason == "" {
		return "abandoned"
	}
	return reason
}

// boardText draws the locked cells of a snapshot with piece initials. A rule
// separates the spawn zone from the visible rows.
func boardText(snap core.Snapshot, hidden int) string {
	catalog := core.DefaultCatalog()
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		if y == hidden && hidden > 0 {
			b.WriteString("+" + strings.Repeat("-", snap.Width) + "+\n")
		}
		b.WriteByte('|')
		for x := 0; x < snap.Width; x++ {
			c, _ := snap.Cell(x, y)
			switch {
			case c.Filled && c.Type >= 0 && c.Type < len(catalog):
				b.WriteString(catalog[c.Type].Name)
			case c.Filled:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", snap.Width) + "+\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
