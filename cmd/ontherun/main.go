// ontherun is a top-down chase game for the terminal: keep your buzz up,
// keep your cash up, and stay away from the police.
//
// Usage:
//
//	ontherun play            - Play in this terminal
//	ontherun sim             - Run a headless scripted game and print a summary
//	ontherun runs            - Show the longest runs
//	ontherun serve           - Start SSH server for remote play
//	ontherun config          - Print the effective configuration
//	ontherun list            - List game variants
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.ontherun/ontherun.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/game"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Shared by the commands that build sessions
	flagConfig     string
	flagDifficulty string
	flagVariant    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ontherun",
	Short: "On The Run - a chase game for your terminal",
	Long: `On The Run drops you in a generated city with a fading buzz and a
little cash. Score supplies off the street, pick up dropped money, visit
the dealers when you run low, and stay out of reach of the police.

Available commands:
  play     - Play in this terminal
  sim      - Headless scripted run
  runs     - View the longest runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration
  list     - Show game variants

Examples:
  ontherun play
  ontherun play --difficulty hard
  ontherun sim --ticks 3600 --seed 42
  ontherun serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ontherun/ontherun.db", "Path to saves and runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// addSessionFlags registers the flags that shape a session's config.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagVariant, "variant", game.IDDefault, "Game variant (see 'ontherun list')")
}

// loadConfig loads the config named by --config and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParseDifficulty(flagDifficulty)
		if !ok {
			return config.Config{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		cfg = config.ApplyPreset(cfg, preset)
	}
	return cfg, nil
}
