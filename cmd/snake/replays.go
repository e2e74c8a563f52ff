package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagReplayMode  string
	flagReplayLimit int
	flagPlain       bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse, verify and delete recorded games",
	Long: `Every finished or abandoned game is recorded with its seed and the
headings the player chose. A recording can be re-simulated to check that it
reproduces the stored outcome.

Examples:
  snake replays list
  snake replays list --mode ramp --plain
  snake replays show 3f2c9a1e-...
  snake replays verify
  snake replays delete 3f2c9a1e-...`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded games",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one recorded game",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysShow,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify [id]",
	Short: "Re-simulate recorded games and compare outcomes",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a recorded game",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysCmd.PersistentFlags().StringVar(&flagReplayMode, "mode", "", "Only replays of this mode")
	replaysCmd.PersistentFlags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays")
	replaysListCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive browser")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func checkModeFlag() {
	if flagReplayMode != "" && !registry.Exists(flagReplayMode) {
		fatal("Error: unknown mode %q", flagReplayMode)
	}
}

func runReplaysList(cmd *cobra.Command, args []string) {
	checkModeFlag()
	e := setup(false)
	defer e.Close()

	store := e.mustStore()
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		w, h, err := term.GetSize(fd)
		if err != nil {
			w, h = 80, 24
		}
		if err := tui.RunReplays(store, flagReplayMode, flagReplayLimit, w, h); err != nil {
			store.Close()
			fatal("Error: %v", err)
		}
		return
	}

	recs, err := store.RecentReplays(flagReplayMode, flagReplayLimit)
	if err != nil {
		store.Close()
		fatal("Error retrieving replays: %v", err)
	}

	if len(recs) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record the first one!")
		return
	}

	fmt.Printf("  %-36s  %-8s  %-5s  %-6s  %-15s  %s\n", "ID", "Mode", "Score", "Ticks", "End", "Date")
	fmt.Printf("  %-36s  %-8s  %-5s  %-6s  %-15s  %s\n", "--", "----", "-----", "-----", "---", "----")
	for _, r := range recs {
		fmt.Printf("  %-36s  %-8s  %-5d  %-6d  %-15s  %s\n",
			r.ID, r.Mode, r.Final.Eaten, r.Ticks(), endReason(r), r.StartedAt.Format("2006-01-02 15:04"))
	}
}

func endReason(r replay.Recording) string {
	if r.Final.Cause == "" {
		return "abandoned"
	}
	return string(r.Final.Cause)
}

func lookupReplay(store *storage.Store, id string) replay.Recording {
	rec, err := store.ReplayByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		fatal("Error: no replay with ID %q", id)
	}
	if err != nil {
		store.Close()
		fatal("Error: %v", err)
	}
	return rec
}

func runReplaysShow(cmd *cobra.Command, args []string) {
	e := setup(false)
	defer e.Close()

	store := e.mustStore()
	defer store.Close()

	r := lookupReplay(store, args[0])

	fmt.Printf("Replay %s\n", r.ID)
	fmt.Println()
	fmt.Printf("  Mode:     %s\n", r.Mode)
	fmt.Printf("  Player:   %s\n", r.Player)
	fmt.Printf("  Started:  %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Duration: %s\n", r.Duration)
	fmt.Printf("  Board:    %dx%d, cell %d\n", r.Width, r.Height, r.CellSize)
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Score:    %d\n", r.Final.Eaten)
	fmt.Printf("  Ticks:    %d\n", r.Ticks())
	fmt.Printf("  End:      %s\n", endReason(r))
	fmt.Printf("  Length:   %d\n", len(r.Final.Body))
	fmt.Printf("  Moves:    %s\n", replay.EncodeMoves(r.Moves))
}

func runReplaysVerify(cmd *cobra.Command, args []string) {
	checkModeFlag()
	e := setup(false)
	defer e.Close()

	store := e.mustStore()
	defer store.Close()

	var recs []replay.Recording
	if len(args) == 1 {
		recs = []replay.Recording{lookupReplay(store, args[0])}
	} else {
		var err error
		recs, err = store.RecentReplays(flagReplayMode, flagReplayLimit)
		if err != nil {
			store.Close()
			fatal("Error retrieving replays: %v", err)
		}
	}

	failed := 0
	for _, r := range recs {
		if err := replay.Verify(r); err != nil {
			failed++
			fmt.Printf("  FAIL  %s  %v\n", r.ID, err)
			continue
		}
		fmt.Printf("  ok    %s  %d ticks, score %d\n", r.ID, r.Ticks(), r.Final.Eaten)
	}

	fmt.Println()
	fmt.Printf("%d verified, %d failed\n", len(recs)-failed, failed)
	if failed > 0 {
		store.Close()
		os.Exit(1)
	}
}

func runReplaysDelete(cmd *cobra.Command, args []string) {
	e := setup(false)
	defer e.Close()

	store := e.mustStore()
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			fatal("Error: no replay with ID %q", args[0])
		}
		fatal("Error: %v", err)
	}
	fmt.Printf("Deleted replay %s\n", args[0])
}
