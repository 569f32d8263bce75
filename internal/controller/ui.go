// Package controller provides the interactive and plain-text frontends
// for the tps CLI.
package controller

import (
	m "tps.dev/pkg/tps/internal/model"
)

// UI is the selection surface the switch workflow talks to. The second
// return value is false when the user aborted without choosing.
type UI interface {
	PickProject(projects []m.Project) (m.Project, bool, error)
}
