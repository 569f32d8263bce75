package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tps.dev/pkg/tps/internal/model"
)

// writeBareRepo lays out the on-disk shape of a bare repository with the
// given linked worktree names.
func writeBareRepo(t *testing.T, dir string, worktrees ...string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "objects"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "refs"), 0o755))

	config := "[core]\n\trepositoryformatversion = 0\n\tfilemode = true\n\tbare = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o644))

	for _, name := range worktrees {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "worktrees", name), 0o755))
	}
}

// writeCheckout lays out a plain non-bare checkout (a .git directory).
func writeCheckout(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
}

func TestClassify_PlainDirectory(t *testing.T) {
	dir := t.TempDir()

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.NotARepo, c.Kind)
	assert.Empty(t, c.Worktrees)
}

func TestClassify_Checkout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	writeCheckout(t, dir)

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.Repo, c.Kind)
}

func TestClassify_LinkedWorktreeCheckout(t *testing.T) {
	// Linked worktrees carry a .git file, not a directory.
	dir := filepath.Join(t.TempDir(), "wt-a")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /srv/bare/worktrees/wt-a\n"), 0o644))

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.Repo, c.Kind)
}

func TestClassify_BareRepoWithWorktrees(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app.git")
	writeBareRepo(t, dir, "wt-b", "wt-a")

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.BareRepo, c.Kind)
	assert.Equal(t, []string{"wt-a", "wt-b"}, c.Worktrees, "worktree names are sorted")
}

func TestClassify_BareRepoWithoutWorktrees(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty.git")
	writeBareRepo(t, dir)

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.BareRepo, c.Kind)
	assert.Empty(t, c.Worktrees)
}

func TestClassify_GitDirNotBare(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd")
	writeBareRepo(t, dir)

	config := "[core]\n\tbare = false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o644))

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.Repo, c.Kind)
}

func TestClassify_BareFlagOutsideCoreSectionIgnored(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd")
	writeBareRepo(t, dir)

	config := "[core]\n\tfilemode = true\n[other]\n\tbare = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o644))

	c := NewGitDirClassifier().Classify(m.Path(dir))

	assert.Equal(t, m.Repo, c.Kind)
}

func TestClassify_MissingDirectory(t *testing.T) {
	c := NewGitDirClassifier().Classify(m.Path(filepath.Join(t.TempDir(), "gone")))

	assert.Equal(t, m.NotARepo, c.Kind)
}
