package adapter

import (
	"context"
	"os"
	"os/exec"
)

// CommandExecutor abstracts command execution so the tmux adapter can be
// tested with canned responses instead of a live tmux server.
type CommandExecutor interface {
	// Output runs a command and returns its stdout. On a non-zero exit
	// the returned error carries stderr (exec.ExitError).
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// CombinedOutput runs a command and returns stdout and stderr mixed.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)

	// Interactive runs a command attached to this process's terminal and
	// blocks until it exits. Used for attaching tmux from outside tmux.
	Interactive(name string, args ...string) error
}

// RealExecutor executes commands with os/exec.
type RealExecutor struct{}

// NewRealExecutor returns a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Output runs a command and returns its stdout.
func (e *RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CombinedOutput runs a command and returns combined stdout+stderr.
func (e *RealExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Interactive runs a command wired to the current terminal.
func (e *RealExecutor) Interactive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
