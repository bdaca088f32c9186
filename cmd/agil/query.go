package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agilstore/agil/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only SQL query against the products cache",
	Long: `Run a read-only SQL query against the products cache.

The cache has one table:
  products(id INTEGER, name TEXT, category TEXT, quantity INTEGER, price REAL)

Examples:
  agil query "SELECT category, SUM(quantity) AS stock FROM products GROUP BY category"
  agil query "SELECT name FROM products WHERE quantity < 5" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	log := mustOpenLogger()
	defer log.Sync()

	dataFile := mustResolveDataFile()
	db := mustOpenFreshCache(dataFile, log)
	defer db.Close()

	rows, err := db.Query(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotReadOnly) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitError, "query failed: %v", err)
	}

	if !humanOutput {
		if rows == nil {
			rows = []storage.Row{}
		}
		outputJSON(rows)
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No rows")
		return nil
	}

	cols := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	fmt.Println(strings.Join(cols, " | "))
	for _, row := range rows {
		vals := make([]string, len(cols))
		for i, col := range cols {
			vals[i] = fmt.Sprintf("%v", row[col])
		}
		fmt.Println(strings.Join(vals, " | "))
	}
	return nil
}
