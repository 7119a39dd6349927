package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const migrationsDir = "migrations"

// migrationFile matches the migration naming convention: a sequential
// numeric prefix followed by a descriptive name, e.g. 0004_add_index.py.
// Package markers such as __init__.py never match.
var migrationFile = regexp.MustCompile(`^\d+_.+\.py$`)

// defaultIgnoreDirs are directory names that never contain project
// migrations and are skipped wholesale during the walk.
var defaultIgnoreDirs = []string{
	".git", ".hg", ".svn",
	".tox", ".pytest_cache", ".mypy_cache", "__pycache__",
	"venv", ".venv", "env", ".direnv",
	"node_modules", "site-packages",
}

// Scanner discovers migration files under a project root and produces
// snapshots. It only reads the filesystem it was given.
type Scanner struct {
	fs     afero.Fs
	ignore map[string]struct{}
}

// NewScanner creates a scanner over fs. Extra directory names to ignore
// can be supplied on top of the built-in ignore list.
func NewScanner(fs afero.Fs, extraIgnore ...string) *Scanner {
	ignore := make(map[string]struct{}, len(defaultIgnoreDirs)+len(extraIgnore))
	for _, name := range defaultIgnoreDirs {
		ignore[name] = struct{}{}
	}
	for _, name := range extraIgnore {
		if name != "" {
			ignore[name] = struct{}{}
		}
	}
	return &Scanner{fs: fs, ignore: ignore}
}

// Scan walks root and returns a snapshot labeled label, containing one
// group per application directory that owns a migrations folder with at
// least one migration file. Unreadable paths are skipped and reported
// as warnings alongside the snapshot; only an unusable root is fatal.
func (s *Scanner) Scan(root, label string) (*Snapshot, []Warning, error) {
	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidPath, root)
	}

	snap := &Snapshot{
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Groups:    make(map[string]*AppGroup),
	}
	var warnings []Warning

	walkErr := afero.Walk(s.fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err})
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !fi.IsDir() {
			return nil
		}
		if _, skip := s.ignore[fi.Name()]; skip && path != root {
			return filepath.SkipDir
		}
		if fi.Name() != migrationsDir || path == root {
			return nil
		}

		group, groupWarnings := s.collectGroup(root, path)
		warnings = append(warnings, groupWarnings...)
		if group != nil {
			snap.Groups[group.App] = group
		}
		// Migration folders are flat; nothing below them to visit.
		return filepath.SkipDir
	})
	if walkErr != nil {
		return nil, warnings, fmt.Errorf("mdiff: scan %s: %w", root, walkErr)
	}
	return snap, warnings, nil
}

// MigrationDirs returns the migrations folders Scan would visit under
// root. Watch mode registers them with the filesystem notifier.
func (s *Scanner) MigrationDirs(root string) ([]string, error) {
	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, root)
	}

	var dirs []string
	_ = afero.Walk(s.fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !fi.IsDir() {
			return nil
		}
		if _, skip := s.ignore[fi.Name()]; skip && path != root {
			return filepath.SkipDir
		}
		if fi.Name() == migrationsDir && path != root {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	return dirs, nil
}

// collectGroup enumerates the migration files of one migrations folder
// and fingerprints each of them. A group is only materialized when at
// least one migration file exists.
func (s *Scanner) collectGroup(root, dir string) (*AppGroup, []Warning) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, []Warning{{Path: dir, Err: err}}
	}

	records := make(map[string]Record)
	var warnings []Warning
	for _, entry := range entries {
		if entry.IsDir() || !migrationFile.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err})
			continue
		}
		sum := sha256.Sum256(data)
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		records[name] = Record{Name: name, Hash: hex.EncodeToString(sum[:])}
	}

	if len(records) == 0 {
		return nil, warnings
	}
	return &AppGroup{App: appName(root, dir), Records: records}, warnings
}

// appName converts the owning directory of a migrations folder into a
// dotted application name relative to the scan root, for example
// <root>/src/apps/users/migrations -> src.apps.users.
func appName(root, migrationsPath string) string {
	parent := filepath.Dir(migrationsPath)
	rel, err := filepath.Rel(root, parent)
	if err != nil || rel == "." {
		return filepath.Base(parent)
	}
	return strings.ReplaceAll(rel, string(filepath.Separator), ".")
}
