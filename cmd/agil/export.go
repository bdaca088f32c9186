package main

import (
	"fmt"
	"os"

	"github.com/agilstore/agil/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatCSV, "Export format (csv, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export products to CSV or JSON",
	Long: `Export all products to CSV or JSON.

Examples:
  agil export > products.csv
  agil export --format json -o backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	log := mustOpenLogger()
	defer log.Sync()

	inv, _ := mustLoadInventory(log)
	products := inv.List()

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			exitWithError(ExitError, "creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, exportFormat, products); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	log.Info("exported products", zap.String("format", exportFormat), zap.Int("count", len(products)))
	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Exported %d products to %s\n", len(products), exportOutput)
	}
	return nil
}
