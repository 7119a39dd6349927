package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiff-dev/mdiff/internal/config"
	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
)

func writeMigration(t *testing.T, root, app, name, content string) {
	t.Helper()
	dir := filepath.Join(root, app, "migrations")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunSnapshot_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	cfg := &config.Config{}

	root := t.TempDir()
	writeMigration(t, root, "users", "0001_initial.py", "create users")
	writeMigration(t, root, "users", "__init__.py", "")

	require.NoError(t, runSnapshot(ctx, cfg, st, "feature/login", root))

	// The label is escaped before storage.
	snap, err := st.Load(ctx, "feature-login")
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, snap.Apps())
	assert.Equal(t, 1, snap.TotalFiles())

	// A second run with the same label updates in place.
	writeMigration(t, root, "users", "0002_email.py", "add email")
	require.NoError(t, runSnapshot(ctx, cfg, st, "feature/login", root))

	snap, err = st.Load(ctx, "feature-login")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalFiles())

	infos, err := st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestRunSnapshot_ScansConfiguredFilesystem(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// The scanner reads config.AppFs, not the OS filesystem directly.
	orig := config.AppFs
	config.AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { config.AppFs = orig })

	require.NoError(t, afero.WriteFile(config.AppFs,
		"/project/users/migrations/0001_initial.py", []byte("x"), 0o644))

	require.NoError(t, runSnapshot(ctx, &config.Config{}, st, "mem", "/project"))

	snap, err := st.Load(ctx, "mem")
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, snap.Apps())
}

func TestRunSnapshot_NoMigrations(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	err := runSnapshot(ctx, &config.Config{}, st, "empty", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't find any migration")
}

func TestRunSnapshot_InvalidPath(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	err := runSnapshot(ctx, &config.Config{}, st, "s", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, snapshot.ErrInvalidPath)
}

func TestRunCompare_NumberModeSignalsDrift(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	cfg := &config.Config{}

	rootA := t.TempDir()
	writeMigration(t, rootA, "authors", "0004_x.py", "x")
	require.NoError(t, runSnapshot(ctx, cfg, st, "master", rootA))

	rootB := t.TempDir()
	writeMigration(t, rootB, "authors", "0005_y.py", "y")
	require.NoError(t, runSnapshot(ctx, cfg, st, "develop", rootB))

	err := runCompare(ctx, st, "master", "develop", true, false)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)

	// Identical snapshots exit cleanly.
	assert.NoError(t, runCompare(ctx, st, "master", "master", true, false))
}

func TestRunCompare_UnknownSnapshot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	err := runCompare(ctx, st, "nope", "nada", false, false)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}

func TestRunRemove_SpecificAndAll(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	cfg := &config.Config{}

	root := t.TempDir()
	writeMigration(t, root, "users", "0001_initial.py", "x")
	require.NoError(t, runSnapshot(ctx, cfg, st, "a", root))
	require.NoError(t, runSnapshot(ctx, cfg, st, "b", root))

	// Unknown labels are reported, not fatal.
	require.NoError(t, runRemove(ctx, st, []string{"a", "ghost"}, false))

	infos, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "b", infos[0].Label)

	// rm all with --yes skips the prompt and wipes everything.
	require.NoError(t, runRemove(ctx, st, []string{"all"}, true))

	infos, err = st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}
