package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/on-the-run/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a session would use, as YAML. The result
reflects --config, the search path and --difficulty. Redirect it to a file
to start a custom config.

Search order:
  --config path -> ~/.ontherun/config.yaml -> ./configs/ontherun.yaml -> built-in

Examples:
  ontherun config
  ontherun config --difficulty easy > ~/.ontherun/config.yaml
  ontherun config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addSessionFlags(configCmd)
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
