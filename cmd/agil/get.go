package main

import (
	"errors"
	"fmt"

	"github.com/agilstore/agil/internal/inventory"
	"github.com/agilstore/agil/internal/product"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a product by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := product.ParseID(args[0])
	if err != nil {
		exitWithError(ExitError, "invalid id %q", args[0])
	}

	log := mustOpenLogger()
	defer log.Sync()

	inv, _ := mustLoadInventory(log)
	p, err := inv.FindByID(id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			exitWithError(ExitNotFound, "product %d not found", id)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Print(product.Detail(p))
	} else {
		outputJSON(p)
	}
	return nil
}
