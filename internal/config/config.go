// Package config resolves where the inventory data lives and handles the
// user's global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDataFile is used when no other location is configured.
	DefaultDataFile = "products.json"
	// DataFileEnv overrides the configured data file.
	DataFileEnv = "AGIL_DATA_FILE"
	// CacheDir holds derived files next to the data file.
	CacheDir = ".agil"
	// DBFile is the SQLite query cache inside CacheDir.
	DBFile = "products.db"
)

// CachePath returns the cache directory for a data file.
func CachePath(dataFile string) string {
	return filepath.Join(filepath.Dir(dataFile), CacheDir)
}

// DBPath returns the path of the SQLite query cache for a data file.
func DBPath(dataFile string) string {
	return filepath.Join(CachePath(dataFile), DBFile)
}

// ResolveDataFile picks the products file. Precedence: the explicit flag
// value, then $AGIL_DATA_FILE, then data_file from the global config, then
// ./products.json. The result is absolute.
func ResolveDataFile(flagValue string) (string, error) {
	path := flagValue
	if path == "" {
		path = os.Getenv(DataFileEnv)
	}
	if path == "" {
		cfg, err := LoadGlobalConfig()
		if err != nil {
			return "", err
		}
		path = cfg.DataFile
	}
	if path == "" {
		path = DefaultDataFile
	}

	abs, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("resolving data file: %w", err)
	}
	return abs, nil
}

// EnsureCacheDir creates the cache directory for a data file.
func EnsureCacheDir(dataFile string) error {
	if err := os.MkdirAll(CachePath(dataFile), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	return nil
}

// ValidateDataFile checks that the data file's directory exists and that
// the path is not itself a directory.
func ValidateDataFile(path string) error {
	if path == "" {
		return nil // Empty falls back to the default
	}

	expanded := ExpandPath(path)
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", expanded)
	}

	dir := filepath.Dir(expanded)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
