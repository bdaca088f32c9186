package main

import (
	"github.com/agilstore/agil/internal/product"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listCategory string

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only products in this category (case-insensitive)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	Long: `List all products in insertion order.

With --category the SQLite cache is used (rebuilt automatically when stale).

Examples:
  agil list
  agil list --human
  agil list --category perifericos`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	log := mustOpenLogger()
	defer log.Sync()

	inv, dataFile := mustLoadInventory(log)

	var products []product.Product
	if listCategory == "" {
		products = inv.List()
	} else {
		db := mustOpenFreshCache(dataFile, log)
		defer db.Close()

		var err error
		products, err = db.ListByCategory(listCategory)
		if err != nil {
			exitWithError(ExitError, "listing category: %v", err)
		}
		log.Debug("listed category", zap.String("category", listCategory), zap.Int("count", len(products)))
	}

	if humanOutput {
		printTableHuman(products)
	} else {
		outputJSON(nonNil(products))
	}
	return nil
}
