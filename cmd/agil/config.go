package main

import (
	"fmt"
	"strings"

	"github.com/agilstore/agil/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DataFile string `json:"data_file,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in ~/.config/agil/config.yml.

Usage:
  agil config                              # Show all config
  agil config data-file                    # Get specific value
  agil config data-file ~/loja/products.json
  agil config log-level debug

Keys:
  data-file   Products JSON file (overridden by --data and $AGIL_DATA_FILE)
  log-file    Log file (default ~/.local/state/agil/agil.log)
  log-level   Log level (debug, info, warn, error)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("data-file:  %s\n", cfg.DataFile)
			fmt.Printf("log-file:   %s\n", cfg.LogPath())
			fmt.Printf("log-level:  %s\n", cfg.Level())
		} else {
			outputJSON(ConfigResponse{
				DataFile: cfg.DataFile,
				LogFile:  cfg.LogPath(),
				LogLevel: cfg.Level(),
			})
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch normalizedKey {
		case "data-file":
			value = cfg.DataFile
		case "log-file":
			value = cfg.LogPath()
		case "log-level":
			value = cfg.Level()
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(normalizedKey, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch normalizedKey {
	case "data-file":
		expanded := config.ExpandPath(value)
		if err := config.ValidateDataFile(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.DataFile = expanded

	case "log-file":
		cfg.LogFile = config.ExpandPath(value)

	case "log-level":
		if err := config.ValidateLogLevel(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.LogLevel = value

	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (data-file, data_file, DATA_FILE) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
