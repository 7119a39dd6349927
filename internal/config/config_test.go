package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".mdiff", "snapshots"), cfg.SnapshotsDir)
	assert.Equal(t, "filesystem", cfg.Storage)
	assert.Equal(t, filepath.Join(home, ".mdiff", "snapshots.db"), cfg.SQLitePath)
	assert.Empty(t, cfg.IgnoreDirs)
	assert.False(t, cfg.SkipUpdateCheck)
}

func TestLoad_ConfigFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	content := `snapshots_dir: /var/lib/mdiff
storage: sqlite
sqlite_path: /var/lib/mdiff/snapshots.db
ignore_dirs:
  - build
  - dist
skip_update_check: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mdiff.yaml"), []byte(content), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/mdiff", cfg.SnapshotsDir)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "/var/lib/mdiff/snapshots.db", cfg.SQLitePath)
	assert.Equal(t, []string{"build", "dist"}, cfg.IgnoreDirs)
	assert.True(t, cfg.SkipUpdateCheck)
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("MDIFF_STORAGE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage)
}

func TestDataDir(t *testing.T) {
	dir, err := DataDir()
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mdiff"), dir)
}
