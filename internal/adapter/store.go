package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for access-store load failures. Callers decide whether
// to abort or fall back to an in-memory cache.
var (
	// ErrStoreCorrupt marks a store whose contents do not parse as a
	// flat path-to-timestamp mapping.
	ErrStoreCorrupt = errors.New("access store is corrupt")

	// ErrStoreUnreadable marks an I/O failure distinct from "not found".
	ErrStoreUnreadable = errors.New("access store is unreadable")

	// ErrStoreBusy marks a store locked by another running instance.
	ErrStoreBusy = errors.New("access store is locked by another instance")
)

// CacheStore persists the recency cache's entry map. Load acquires
// ownership of the store; Release gives it up. Save may only be called
// between the two.
type CacheStore interface {
	Load() (map[string]int64, error)
	Save(entries map[string]int64) error
	Release()
}

// FileCacheStore keeps the entry map in a single TOML file and guards
// the load-to-flush window with an advisory file lock, so two concurrent
// invocations cannot silently overwrite each other's history.
type FileCacheStore struct {
	path string
	lock *flock.Flock
	held bool
}

// NewFileCacheStore constructs a store backed by the TOML file at path.
func NewFileCacheStore(path string) *FileCacheStore {
	return &FileCacheStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load locks the store and deserializes it. A missing file yields an
// empty map bound to the path for later persistence.
func (s *FileCacheStore) Load() (map[string]int64, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int64{}, nil
	}

	if err != nil {
		s.Release()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreadable, err)
	}

	entries := map[string]int64{}
	if err := toml.Unmarshal(raw, &entries); err != nil {
		s.Release()
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}

	return entries, nil
}

// Save serializes the entry map back to disk, creating any missing
// parent directory first.
func (s *FileCacheStore) Save(entries map[string]int64) error {
	raw, err := toml.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, 0o644)
}

// Release drops the advisory lock. Safe to call more than once.
func (s *FileCacheStore) Release() {
	if s.held {
		_ = s.lock.Unlock()
		s.held = false
	}
}

// acquire takes the advisory lock without blocking. Losing the race is
// reported as ErrStoreBusy rather than waiting on an interactive path.
func (s *FileCacheStore) acquire() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreadable, err)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreadable, err)
	}

	if !locked {
		return ErrStoreBusy
	}

	s.held = true

	return nil
}
