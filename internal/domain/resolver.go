package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"tps.dev/pkg/tps/internal/adapter"
	m "tps.dev/pkg/tps/internal/model"
)

// gitMetadataDir is never a project candidate nor a traversal target.
const gitMetadataDir = ".git"

// ErrRootUnreadable marks a directory that exists but cannot be
// enumerated. Discovery aborts on it: a silently partial project list
// would mislead the user into thinking projects are gone.
var ErrRootUnreadable = errors.New("cannot read directory")

// Resolver turns configured root directories into a flat, de-duplicated
// list of selectable project paths, expanding bare repositories into
// their linked worktrees instead of treating them as plain directories.
type Resolver struct {
	fs         adapter.ProjectFS
	classifier adapter.RepoClassifier
}

// NewResolver constructs a Resolver over the given filesystem and
// classifier ports.
func NewResolver(fs adapter.ProjectFS, classifier adapter.RepoClassifier) *Resolver {
	return &Resolver{fs: fs, classifier: classifier}
}

// Discover walks the roots with an iterative worklist and returns every
// project path found, sorted and free of duplicates. Roots themselves
// are never results; their children are. A missing root is skipped, an
// unreadable directory aborts the walk with ErrRootUnreadable.
func (r *Resolver) Discover(roots []m.Path) ([]m.Path, error) {
	visited := make(map[m.Path]struct{})
	results := make(map[m.Path]struct{})

	work := make([]m.Path, len(roots))
	copy(work, roots)

	for len(work) > 0 {
		dir := work[len(work)-1]
		work = work[:len(work)-1]

		if !r.fs.DirExists(dir) {
			continue
		}

		// The visited set is keyed by canonical paths so symlink cycles
		// and aliased roots terminate after one expansion.
		key := r.canonical(dir)
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		names, err := r.fs.Subdirs(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, dir, err)
		}

		for _, name := range names {
			if name == gitMetadataDir {
				continue
			}

			child := m.Path(filepath.Join(string(dir), name))

			switch c := r.classifier.Classify(child); c.Kind {
			case m.BareRepo:
				// The bare repository itself is never a project; each
				// linked worktree is, as a leaf.
				for _, worktree := range c.Worktrees {
					results[m.Path(filepath.Join(string(child), worktree))] = struct{}{}
				}
			case m.Repo:
				// A checkout is a leaf project.
				results[child] = struct{}{}
			default:
				// A plain directory is a project in its own right and a
				// place to keep descending into.
				results[child] = struct{}{}
				work = append(work, child)
			}
		}
	}

	out := make([]m.Path, 0, len(results))
	for path := range results {
		out = append(out, path)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// canonical resolves dir's symlinks, falling back to the logical path
// when resolution fails.
func (r *Resolver) canonical(dir m.Path) m.Path {
	resolved, err := r.fs.Canonical(dir)
	if err != nil {
		return dir
	}

	return resolved
}
