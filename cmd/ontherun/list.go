package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/on-the-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows the registered variants of the game, for use with --variant.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE")
	for _, v := range variants {
		fmt.Fprintf(w, "  %s\t%s\n", v.ID, v.Title)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Play one with 'ontherun play --variant <id>'.")
}
