// Package config loads the mdiff CLI configuration.
package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used by the CLI layer. Tests swap it for an
// in-memory filesystem.
var AppFs = afero.NewOsFs()

// Config holds the application configuration.
type Config struct {
	// SnapshotsDir is where the filesystem store keeps snapshots.
	SnapshotsDir string

	// Storage selects the store backend (filesystem or sqlite).
	Storage string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	// IgnoreDirs are extra directory names the scanner skips on top of
	// its built-in ignore list.
	IgnoreDirs []string

	// SkipUpdateCheck disables the daily update check.
	SkipUpdateCheck bool
}

// Load reads configuration from .mdiff.yaml (searched in the working
// directory, the home directory and ~/.config/mdiff), MDIFF_* environment
// variables, and an optional .env file.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	dataDir := filepath.Join(home, ".mdiff")

	viper.SetConfigName(".mdiff")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "mdiff"))

	viper.SetEnvPrefix("MDIFF")
	viper.AutomaticEnv()

	viper.SetDefault("snapshots_dir", filepath.Join(dataDir, "snapshots"))
	viper.SetDefault("storage", "filesystem")
	viper.SetDefault("sqlite_path", filepath.Join(dataDir, "snapshots.db"))
	viper.SetDefault("skip_update_check", false)

	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	return &Config{
		SnapshotsDir:    viper.GetString("snapshots_dir"),
		Storage:         viper.GetString("storage"),
		SQLitePath:      viper.GetString("sqlite_path"),
		IgnoreDirs:      viper.GetStringSlice("ignore_dirs"),
		SkipUpdateCheck: viper.GetBool("skip_update_check"),
	}, nil
}

// DataDir returns the directory mdiff uses for its own state files,
// such as the update check timestamp.
func DataDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mdiff"), nil
}
