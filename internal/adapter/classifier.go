package adapter

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "tps.dev/pkg/tps/internal/model"
)

// RepoClassifier determines a directory's relationship to git so the
// resolver can decide whether to expand it, list it, or unpack its
// worktrees. Implementations must never fail: unreadable metadata
// degrades to NotARepo.
type RepoClassifier interface {
	Classify(path m.Path) m.Classification
}

// GitDirClassifier classifies directories by reading git metadata
// straight off disk, without spawning a git process per directory.
type GitDirClassifier struct{}

// NewGitDirClassifier constructs a GitDirClassifier.
func NewGitDirClassifier() *GitDirClassifier {
	return &GitDirClassifier{}
}

// Classify inspects path and reports whether it is a checkout, a bare
// repository (with its linked worktree names), or an ordinary directory.
func (c *GitDirClassifier) Classify(path m.Path) m.Classification {
	dir := string(path)

	// A .git entry (directory for checkouts, file for linked worktrees)
	// marks a non-bare repository.
	if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
		return m.Classification{Kind: m.Repo}
	}

	if !looksLikeGitDir(dir) {
		return m.Classification{Kind: m.NotARepo}
	}

	if !isBare(dir) {
		return m.Classification{Kind: m.Repo}
	}

	return m.Classification{
		Kind:      m.BareRepo,
		Worktrees: worktreeNames(dir),
	}
}

// looksLikeGitDir reports whether dir is itself a git directory: a HEAD
// file next to objects/ and refs/ directories.
func looksLikeGitDir(dir string) bool {
	head, err := os.Stat(filepath.Join(dir, "HEAD"))
	if err != nil || head.IsDir() {
		return false
	}

	for _, sub := range []string{"objects", "refs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}

	return true
}

// isBare reports whether the repository config sets core.bare = true.
func isBare(dir string) bool {
	f, err := os.Open(filepath.Join(dir, "config"))
	if err != nil {
		return false
	}
	defer f.Close()

	inCore := false
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") {
			inCore = strings.HasPrefix(line, "[core]")
			continue
		}

		if !inCore {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(key) == "bare" {
			return strings.TrimSpace(value) == "true"
		}
	}

	return false
}

// worktreeNames lists the linked worktrees registered under a bare
// repository, sorted. A missing worktrees directory means none.
func worktreeNames(dir string) []string {
	entries, err := os.ReadDir(filepath.Join(dir, "worktrees"))
	if err != nil {
		return nil
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names
}
