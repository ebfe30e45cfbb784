package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/on-the-run/internal/game"
	"github.com/vovakirdan/on-the-run/internal/platform/tui"
	"github.com/vovakirdan/on-the-run/internal/state"
	"github.com/vovakirdan/on-the-run/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsBoard bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the longest runs",
	Long: `Display the longest-surviving finished runs and overall stats.

Examples:
  ontherun runs
  ontherun runs --limit 25
  ontherun runs --board`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBoard, "board", false, "Browse runs in an interactive table")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRunsBoard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.TopRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Longest Runs - On The Run")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ontherun play' and see how long you last!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-14s  %-8s  %-4s  %-12s  %s\n", "Rank", "Survived", "Ending", "Cash", "Buys", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-14s  %-8s  %-4s  %-12s  %s\n", "----", "--------", "------", "----", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-14s  %-8s  %-4d  %-12s  %s\n",
			i+1,
			game.FormatElapsed(r.Survival),
			state.Reason(r.Reason),
			fmt.Sprintf("$%.0f", r.Money),
			r.Purchases,
			r.Slot,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.RunStats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d   Best: %s   Average: %s   Top cash: $%.0f\n",
		stats.Runs,
		game.FormatElapsed(stats.BestSurvival),
		game.FormatElapsed(stats.AvgSurvival),
		stats.MostMoney,
	)
}
