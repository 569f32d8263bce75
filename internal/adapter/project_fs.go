// Package adapter contains filesystem, git, tmux and persistence adapters
// for the tps CLI.
package adapter

import (
	"os"
	"path/filepath"
	"sort"

	m "tps.dev/pkg/tps/internal/model"
)

// ProjectFS abstracts the filesystem operations the discovery walk relies
// on. It intentionally hides direct `os` access so the resolver can be
// tested without touching the disk.
type ProjectFS interface {
	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) bool

	// Subdirs returns the names of the immediate child directories of
	// path, sorted. Symlinks that resolve to directories are included.
	Subdirs(path m.Path) ([]string, error)

	// Canonical resolves symlinks and returns the canonical form of path.
	Canonical(path m.Path) (m.Path, error)
}

// LocalProjectFS is the os-backed ProjectFS implementation.
type LocalProjectFS struct{}

// NewLocalProjectFS constructs a LocalProjectFS ready to be wired into
// the resolver.
func NewLocalProjectFS() *LocalProjectFS {
	return &LocalProjectFS{}
}

// DirExists reports whether path exists and is a directory.
func (fs *LocalProjectFS) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))

	return err == nil && info.IsDir()
}

// Subdirs returns the sorted names of the immediate child directories.
func (fs *LocalProjectFS) Subdirs(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, err
	}

	var names []string

	for _, entry := range entries {
		if isDirOrSymlinkDir(entry, string(path)) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// Canonical resolves symlinks so aliased paths share one identity.
func (fs *LocalProjectFS) Canonical(path m.Path) (m.Path, error) {
	resolved, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// isDirOrSymlinkDir reports whether the entry is a directory or a symlink
// that resolves to one. parentDir is needed to build the full path for
// symlink resolution.
func isDirOrSymlinkDir(entry os.DirEntry, parentDir string) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(parentDir, entry.Name()))

	return err == nil && info.IsDir()
}
