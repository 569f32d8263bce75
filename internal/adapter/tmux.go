package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	m "tps.dev/pkg/tps/internal/model"
)

// Multiplexer is the narrow surface of the terminal multiplexer the
// switcher needs: enumerate sessions, create one, and hand the terminal
// over to it.
type Multiplexer interface {
	// Sessions lists the currently running sessions. A multiplexer with
	// no running server reports zero sessions, not an error.
	Sessions(ctx context.Context) ([]m.Session, error)

	// NewSession creates a detached session named name rooted at dir.
	NewSession(ctx context.Context, name, dir string) error

	// SwitchClient switches the current client to the named session.
	// Only valid when Inside reports true.
	SwitchClient(ctx context.Context, name string) error

	// Attach attaches the terminal to the named session, creating it at
	// dir first when exists is false. Used from outside the multiplexer.
	Attach(name, dir string, exists bool) error

	// Inside reports whether this process runs inside the multiplexer.
	Inside() bool
}

// sessionLine matches one line of `tmux list-sessions` default output,
// e.g. `/home/u/src: 2 windows (created Mon Aug 24 10:01:02 2026) (attached)`.
var sessionLine = regexp.MustCompile(`^(.+): (\d+) windows? \(created ([^)]+)\)`)

// TmuxAdapter drives a local tmux server through its CLI.
type TmuxAdapter struct {
	exec CommandExecutor
}

// NewTmuxAdapter constructs a TmuxAdapter on top of the given executor.
func NewTmuxAdapter(exec CommandExecutor) *TmuxAdapter {
	return &TmuxAdapter{exec: exec}
}

// Sessions parses `tmux list-sessions`.
func (t *TmuxAdapter) Sessions(ctx context.Context) ([]m.Session, error) {
	out, err := t.exec.Output(ctx, "tmux", "list-sessions")
	if err != nil {
		// Exit status 1 with "no server running" just means no sessions.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(string(exitErr.Stderr), "no server running") {
			return nil, nil
		}

		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}

	return parseSessions(string(out)), nil
}

func parseSessions(out string) []m.Session {
	var sessions []m.Session

	for _, line := range strings.Split(out, "\n") {
		match := sessionLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		windows, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		sessions = append(sessions, m.Session{
			Name:     match[1],
			Windows:  windows,
			Created:  match[3],
			Attached: strings.Contains(line, "(attached)"),
		})
	}

	return sessions
}

// NewSession creates a detached session rooted at dir.
func (t *TmuxAdapter) NewSession(ctx context.Context, name, dir string) error {
	out, err := t.exec.CombinedOutput(ctx, "tmux", "new-session", "-d", "-c", dir, "-s", name)
	if err != nil {
		return fmt.Errorf("tmux new-session %q: %w: %s", name, err, strings.TrimSpace(string(out)))
	}

	return nil
}

// SwitchClient switches the current tmux client to the named session.
func (t *TmuxAdapter) SwitchClient(ctx context.Context, name string) error {
	out, err := t.exec.CombinedOutput(ctx, "tmux", "switch-client", "-t", name)
	if err != nil {
		return fmt.Errorf("tmux switch-client %q: %w: %s", name, err, strings.TrimSpace(string(out)))
	}

	return nil
}

// Attach hands the terminal to the named session, creating it when needed.
func (t *TmuxAdapter) Attach(name, dir string, exists bool) error {
	if exists {
		return t.exec.Interactive("tmux", "attach-session", "-t", name)
	}

	return t.exec.Interactive("tmux", "new-session", "-c", dir, "-s", name)
}

// Inside reports whether the process already runs under tmux.
func (t *TmuxAdapter) Inside() bool {
	return os.Getenv("TMUX") != ""
}
