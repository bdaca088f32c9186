// Package main provides the agil CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/agilstore/agil/internal/config"
	"github.com/agilstore/agil/internal/inventory"
	"github.com/agilstore/agil/internal/logging"
	"github.com/agilstore/agil/internal/session"
	"github.com/agilstore/agil/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// dataFlag overrides the products file location
	dataFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agil",
	Short: "AgilStore inventory manager",
	Long: `agil manages the AgilStore product inventory.

Run without a subcommand to open the interactive menu:
  1. Adicionar Produto
  2. Listar Produtos
  3. Atualizar Produto
  4. Excluir Produto
  5. Buscar Produto
  6. Sair

Products are stored in a JSON file (default ./products.json). The location
can be set with --data, $AGIL_DATA_FILE (also read from .env) or data_file in
~/.config/agil/config.yml.

Subcommands such as list, get, search and export are non-interactive and
output JSON by default for scripting.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env if present (ignore error if not found)
		_ = godotenv.Load()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Path to the products JSON file")
	rootCmd.Version = Version
}

func runInteractive(cmd *cobra.Command, args []string) error {
	dataFile := mustResolveDataFile()
	log := mustOpenLogger()
	defer log.Sync()

	log.Info("starting interactive session", zap.String("data_file", dataFile), zap.String("version", Version))

	inv := inventory.New(storage.NewFileStore(dataFile), log)
	if err := inv.Load(); err != nil {
		session.WriteLoadWarning(os.Stdout, err)
	}

	err := session.New(inv, os.Stdin, os.Stdout, log).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, session.ErrInput) {
			log.Error("session aborted", zap.Error(err))
			exitWithError(ExitError, "%v", err)
		}
		return err
	}
	return nil
}

// mustResolveDataFile returns the products file path, exits on error.
func mustResolveDataFile() string {
	path, err := config.ResolveDataFile(dataFlag)
	if err != nil {
		exitWithError(ExitConfigError, "resolving data file: %v", err)
	}
	return path
}

// mustOpenLogger builds the file logger. A logger that cannot be opened is
// replaced by a no-op one, since logging never blocks inventory work.
func mustOpenLogger() *zap.Logger {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	log, err := logging.New(logging.Options{Path: cfg.LogPath(), Level: cfg.Level()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return log
}

// mustLoadInventory loads the inventory for non-interactive commands.
// Unlike the interactive menu, an unreadable store is an error here.
func mustLoadInventory(log *zap.Logger) (*inventory.Manager, string) {
	dataFile := mustResolveDataFile()
	inv := inventory.New(storage.NewFileStore(dataFile), log)
	if err := inv.Load(); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return inv, dataFile
}

// mustOpenCache opens the SQLite query cache for a data file, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenCache(dataFile string) *storage.DB {
	if err := config.EnsureCacheDir(dataFile); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	db, err := storage.OpenDB(config.DBPath(dataFile))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
