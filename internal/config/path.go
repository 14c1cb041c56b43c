// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultDataDir      = "data"
	DefaultHistoryLimit = 100
	DefaultPrecision    = 6
	DefaultAngleMode    = "degrees"
)

// File names inside the data directory.
const (
	HistoryFile   = "history.json"
	FavoritesFile = "favorites.json"
	CurrencyFile  = "currency.json"
)

// Paths holds the locations of the persisted data files.
type Paths struct {
	DataDir   string
	History   string
	Favorites string
	Currency  string
}

// NewPaths resolves the data file locations under dataDir.
// An empty dataDir falls back to DefaultDataDir.
func NewPaths(dataDir string) Paths {
	if strings.TrimSpace(dataDir) == "" {
		dataDir = DefaultDataDir
	}
	dataDir = ExpandPath(dataDir)

	return Paths{
		DataDir:   dataDir,
		History:   filepath.Join(dataDir, HistoryFile),
		Favorites: filepath.Join(dataDir, FavoritesFile),
		Currency:  filepath.Join(dataDir, CurrencyFile),
	}
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
