package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tps.dev/pkg/tps/internal/adapter"
	"tps.dev/pkg/tps/internal/controller"
	m "tps.dev/pkg/tps/internal/model"
)

// ErrNoProjects is returned when discovery plus the explicit project
// list yields nothing to choose from.
var ErrNoProjects = errors.New("no projects found")

// SwitchOptions carries one invocation's effective configuration,
// already normalized by the caller.
type SwitchOptions struct {
	Homes       []m.Path
	Extra       []m.Path
	SkipCurrent bool
	WorkingDir  m.Path
	Mode        m.SortMode
	Store       adapter.CacheStore
	Capacity    int
}

// Switcher composes discovery, ranking, selection and session handling
// into the interactive switch flow.
type Switcher struct {
	resolver *Resolver
	mux      adapter.Multiplexer
	ui       controller.UI
}

// NewSwitcher wires a Switcher from its collaborators.
func NewSwitcher(resolver *Resolver, mux adapter.Multiplexer, ui controller.UI) *Switcher {
	return &Switcher{resolver: resolver, mux: mux, ui: ui}
}

// Switch runs the full flow: discover projects and list sessions
// concurrently, rank, let the user pick, ensure a session exists and
// hand the terminal over, then record the access. Aborting the picker
// is not an error and records nothing.
func (s *Switcher) Switch(ctx context.Context, opts SwitchOptions) error {
	var (
		discovered []m.Path
		sessions   []m.Session
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		discovered, err = s.resolver.Discover(opts.Homes)

		return err
	})

	group.Go(func() error {
		var err error
		sessions, err = s.mux.Sessions(groupCtx)

		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	paths := MergePaths(discovered, opts.Extra)
	if opts.SkipCurrent {
		paths = withoutPath(paths, opts.WorkingDir)
	}

	if len(paths) == 0 {
		return ErrNoProjects
	}

	cache := s.loadCache(opts)
	defer cache.Close()

	projects := make([]m.Project, 0, len(paths))
	for _, path := range paths {
		projects = append(projects, m.NewProject(path, sessions))
	}

	Rank(projects, opts.Mode, cache)

	selected, ok, err := s.ui.PickProject(projects)
	if err != nil {
		return fmt.Errorf("project selection failed: %w", err)
	}

	if !ok {
		return nil
	}

	if err := s.attach(ctx, selected); err != nil {
		return err
	}

	cache.RegisterAccess(selected.Path)

	return nil
}

// loadCache picks the cache for the invocation: recency ranking needs
// the persisted store, alphabetical mode keeps bookkeeping in memory
// only. Store failures degrade to an ephemeral cache with a warning
// rather than blocking the switch.
func (s *Switcher) loadCache(opts SwitchOptions) *AccessCache {
	if opts.Mode != m.SortRecent || opts.Store == nil {
		return NewEphemeralCache(opts.Capacity)
	}

	cache, err := LoadAccessCache(opts.Store, opts.Capacity)
	if err != nil {
		slog.Warn("recency history unavailable, continuing without it", "error", err)

		return NewEphemeralCache(opts.Capacity)
	}

	return cache
}

func (s *Switcher) attach(ctx context.Context, project m.Project) error {
	if !s.mux.Inside() {
		return s.mux.Attach(project.SessionName, string(project.Path), project.Session != nil)
	}

	if project.Session == nil {
		if err := s.mux.NewSession(ctx, project.SessionName, string(project.Path)); err != nil {
			return err
		}
	}

	return s.mux.SwitchClient(ctx, project.SessionName)
}

// MergePaths appends extras to the discovered list, dropping duplicates
// while keeping the first occurrence's position.
func MergePaths(discovered, extra []m.Path) []m.Path {
	seen := make(map[m.Path]struct{}, len(discovered)+len(extra))
	merged := make([]m.Path, 0, len(discovered)+len(extra))

	for _, path := range discovered {
		seen[path] = struct{}{}
		merged = append(merged, path)
	}

	for _, path := range extra {
		if _, dup := seen[path]; dup {
			continue
		}

		seen[path] = struct{}{}
		merged = append(merged, path)
	}

	return merged
}

func withoutPath(paths []m.Path, drop m.Path) []m.Path {
	kept := paths[:0]

	for _, path := range paths {
		if path != drop {
			kept = append(kept, path)
		}
	}

	return kept
}
