package model

// RepoKind classifies a directory's relationship to git.
type RepoKind int

const (
	// NotARepo marks an ordinary directory with no repository metadata.
	NotARepo RepoKind = iota

	// Repo marks a non-bare repository (or a linked worktree checkout).
	Repo

	// BareRepo marks a bare repository, a container for linked worktrees.
	BareRepo
)

// Classification is the result of inspecting one directory.
// Worktrees is populated only for BareRepo and holds the linked
// worktree names in sorted order.
type Classification struct {
	Kind      RepoKind
	Worktrees []string
}
