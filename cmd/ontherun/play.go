package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/game"
	"github.com/vovakirdan/on-the-run/internal/platform/tui"
	"github.com/vovakirdan/on-the-run/internal/storage"
)

var (
	flagSlot  string
	flagFresh bool
	flagTheme string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in this terminal. A run saved in the slot is resumed
from the title screen; it is saved again when you pause or quit.

Controls:
  WASD/Arrows  - Move
  Enter/Space  - Start, leave the shop, play again
  1-9          - Buy from the dealer
  P            - Pause
  Esc/B        - Back to the title screen
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower withdrawal, police show up later, dealers reopen sooner
  normal - The defaults
  hard   - Faster withdrawal, police show up early, dealers lie low longer

Examples:
  ontherun play
  ontherun play --difficulty hard
  ontherun play --slot weekend --fresh
  ontherun play --config ./my-city.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addSessionFlags(playCmd)
	playCmd.Flags().StringVar(&flagSlot, "slot", tui.DefaultSlot, "Save slot to resume and save into")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore the saved run and start over")
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	game.SetConfig(cfg)

	// Logs would tear the alternate screen, so they go to a file.
	logFile := redirectLogs()
	if logFile != nil {
		defer logFile.Close()
	}

	session, err := game.Create(flagVariant, game.WithLogger(log.Default()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'ontherun list' to see available variants.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, saves are disabled: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(session, tui.Options{
		Store: store,
		Slot:  flagSlot,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Theme:  tui.ThemeByName(flagTheme),
		Logger: log.Default(),
		Fresh:  flagFresh,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// redirectLogs sends the default logger to ~/.ontherun/ontherun.log, or
// discards it when the file cannot be opened.
func redirectLogs() *os.File {
	log.SetOutput(io.Discard)

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".ontherun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "ontherun.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return f
}
