package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search products by name",
	Long: `Search products whose name contains the query, ignoring case.

Examples:
  agil search mouse
  agil search "teclado mec" --human`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	log := mustOpenLogger()
	defer log.Sync()

	inv, _ := mustLoadInventory(log)
	results := inv.SearchByName(strings.Join(args, " "))

	if humanOutput {
		printDetailsHuman(results)
	} else {
		outputJSON(nonNil(results))
	}
	return nil
}
