package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records invocations and replays canned responses.
type fakeExecutor struct {
	output []byte
	err    error
	calls  [][]string
}

func (f *fakeExecutor) record(name string, args []string) {
	f.calls = append(f.calls, append([]string{name}, args...))
}

func (f *fakeExecutor) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	return f.output, f.err
}

func (f *fakeExecutor) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	return f.output, f.err
}

func (f *fakeExecutor) Interactive(name string, args ...string) error {
	f.record(name, args)
	return f.err
}

func TestParseSessions(t *testing.T) {
	out := `/home/alice/code/app: 2 windows (created Mon Aug 24 10:01:02 2026)
/home/alice/_dotfiles: 1 window (created Sun Aug 23 09:00:00 2026) (attached)
garbage line without the expected shape
`

	sessions := parseSessions(out)

	require.Len(t, sessions, 2)

	assert.Equal(t, "/home/alice/code/app", sessions[0].Name)
	assert.Equal(t, 2, sessions[0].Windows)
	assert.Equal(t, "Mon Aug 24 10:01:02 2026", sessions[0].Created)
	assert.False(t, sessions[0].Attached)

	assert.Equal(t, "/home/alice/_dotfiles", sessions[1].Name)
	assert.Equal(t, 1, sessions[1].Windows)
	assert.True(t, sessions[1].Attached)
}

func TestParseSessions_Empty(t *testing.T) {
	assert.Empty(t, parseSessions(""))
}

func TestSessions_UsesListSessions(t *testing.T) {
	exec := &fakeExecutor{output: []byte("/p: 1 window (created now)\n")}
	tmux := NewTmuxAdapter(exec)

	sessions, err := tmux.Sessions(context.Background())
	require.NoError(t, err)

	require.Len(t, sessions, 1)
	assert.Equal(t, [][]string{{"tmux", "list-sessions"}}, exec.calls)
}

func TestSessions_PropagatesErrors(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	tmux := NewTmuxAdapter(exec)

	_, err := tmux.Sessions(context.Background())

	require.Error(t, err)
}

func TestNewSession_Arguments(t *testing.T) {
	exec := &fakeExecutor{}
	tmux := NewTmuxAdapter(exec)

	err := tmux.NewSession(context.Background(), "/p/app", "/home/alice/app")
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"tmux", "new-session", "-d", "-c", "/home/alice/app", "-s", "/p/app"},
	}, exec.calls)
}

func TestNewSession_ErrorCarriesOutput(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1"), output: []byte("duplicate session\n")}
	tmux := NewTmuxAdapter(exec)

	err := tmux.NewSession(context.Background(), "/p/app", "/home/alice/app")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate session")
}

func TestSwitchClient_Arguments(t *testing.T) {
	exec := &fakeExecutor{}
	tmux := NewTmuxAdapter(exec)

	err := tmux.SwitchClient(context.Background(), "/p/app")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"tmux", "switch-client", "-t", "/p/app"}}, exec.calls)
}

func TestAttach_ExistingSession(t *testing.T) {
	exec := &fakeExecutor{}
	tmux := NewTmuxAdapter(exec)

	require.NoError(t, tmux.Attach("/p/app", "/home/alice/app", true))

	assert.Equal(t, [][]string{{"tmux", "attach-session", "-t", "/p/app"}}, exec.calls)
}

func TestAttach_CreatesMissingSession(t *testing.T) {
	exec := &fakeExecutor{}
	tmux := NewTmuxAdapter(exec)

	require.NoError(t, tmux.Attach("/p/app", "/home/alice/app", false))

	assert.Equal(t, [][]string{
		{"tmux", "new-session", "-c", "/home/alice/app", "-s", "/p/app"},
	}, exec.calls)
}

func TestInside(t *testing.T) {
	tmux := NewTmuxAdapter(&fakeExecutor{})

	t.Setenv("TMUX", "")
	assert.False(t, tmux.Inside())

	t.Setenv("TMUX", "/tmp/tmux-1000/default,123,0")
	assert.True(t, tmux.Inside())
}
