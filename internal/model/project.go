package model

import "strings"

// Path represents an absolute filesystem path identifying a project.
type Path string

// Session describes a live tmux session as reported by list-sessions.
type Session struct {
	Name     string
	Windows  int
	Created  string
	Attached bool
}

// Project is a selectable working directory, optionally paired with the
// tmux session that already exists for it.
type Project struct {
	Path        Path
	SessionName string
	Session     *Session
}

// SessionNameFor derives the tmux session name for a project path.
// tmux treats dots as window separators in target specs, so they are
// replaced before the path is used as a session name.
func SessionNameFor(path Path) string {
	return strings.ReplaceAll(string(path), ".", "_")
}

// NewProject builds a Project for path, linking the session whose name
// matches the path's session name, if one is running.
func NewProject(path Path, sessions []Session) Project {
	p := Project{
		Path:        path,
		SessionName: SessionNameFor(path),
	}

	for i := range sessions {
		if sessions[i].Name == p.SessionName {
			p.Session = &sessions[i]
			break
		}
	}

	return p
}
