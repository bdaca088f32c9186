package main

import (
	"fmt"
	"time"

	"github.com/agilstore/agil/internal/config"
	"github.com/agilstore/agil/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// IndexRebuildResult is the response for the index rebuild command.
type IndexRebuildResult struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
	Path     string `json:"path"`
}

// IndexStatusResult is the response for the index status command.
type IndexStatusResult struct {
	Path     string    `json:"path"`
	Products int       `json:"products"`
	InSync   bool      `json:"in_sync"`
	LastSync time.Time `json:"last_sync,omitempty"`
}

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite query cache",
	Long: `Manage the SQLite query cache.

The JSON products file is the source of truth. The cache in .agil/products.db
next to it is derived data and can be deleted at any time.`,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from the products file",
	Args:  cobra.NoArgs,
	RunE:  runIndexRebuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the query cache is up to date",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	log := mustOpenLogger()
	defer log.Sync()

	dataFile := mustResolveDataFile()
	db := mustOpenCache(dataFile)
	defer db.Close()

	count, err := db.RebuildFromFile(dataFile)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}
	log.Info("query cache rebuilt", zap.Int("products", count))

	if humanOutput {
		fmt.Printf("Rebuilt cache with %d products\n", count)
	} else {
		outputJSON(IndexRebuildResult{
			Status:   "rebuilt",
			Products: count,
			Path:     config.DBPath(dataFile),
		})
	}
	return nil
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	dataFile := mustResolveDataFile()
	db := mustOpenCache(dataFile)
	defer db.Close()

	stale, err := db.NeedsRebuild(dataFile)
	if err != nil {
		exitWithError(ExitError, "checking cache: %v", err)
	}
	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting cached products: %v", err)
	}
	lastSync, _ := db.LastSync()

	result := IndexStatusResult{
		Path:     config.DBPath(dataFile),
		Products: count,
		InSync:   !stale,
		LastSync: lastSync,
	}

	if humanOutput {
		fmt.Printf("%s %s\n", padRight("path:", 10), result.Path)
		fmt.Printf("%s %d\n", padRight("products:", 10), result.Products)
		fmt.Printf("%s %v\n", padRight("in sync:", 10), result.InSync)
		if !lastSync.IsZero() {
			fmt.Printf("%s %s\n", padRight("synced:", 10), lastSync.Local().Format(time.RFC1123))
		}
	} else {
		outputJSON(result)
	}
	return nil
}

// mustOpenFreshCache opens the query cache and rebuilds it if the products
// file changed since the last rebuild.
func mustOpenFreshCache(dataFile string, log *zap.Logger) *storage.DB {
	db := mustOpenCache(dataFile)

	stale, err := db.NeedsRebuild(dataFile)
	if err != nil || stale {
		count, err := db.RebuildFromFile(dataFile)
		if err != nil {
			db.Close()
			exitWithError(ExitDataError, "rebuilding cache: %v", err)
		}
		log.Info("query cache refreshed", zap.Int("products", count))
	}
	return db
}
