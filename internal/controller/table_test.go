package controller

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	m "tps.dev/pkg/tps/internal/model"
)

func TestRenderProjects(t *testing.T) {
	projects := []m.Project{
		{
			Path:        "/code/app",
			SessionName: "/code/app",
			Session:     &m.Session{Name: "/code/app", Windows: 3},
		},
		{
			Path:        "/code/web",
			SessionName: "/code/web",
		},
	}

	accessed := time.Date(2026, 8, 24, 10, 30, 0, 0, time.Local).Unix()
	lastAccess := func(path m.Path) int64 {
		if path == "/code/app" {
			return accessed
		}

		return 0
	}

	var out strings.Builder
	RenderProjects(&out, projects, lastAccess)

	rendered := strings.ToUpper(out.String())

	assert.Contains(t, rendered, "PROJECT")
	assert.Contains(t, rendered, "/CODE/APP")
	assert.Contains(t, rendered, "3")
	assert.Contains(t, rendered, "2026-08-24 10:30")
	assert.Contains(t, rendered, "/CODE/WEB")
	assert.Contains(t, rendered, "TOTAL 2")
}

func TestRenderProjects_Empty(t *testing.T) {
	var out strings.Builder

	RenderProjects(&out, nil, func(m.Path) int64 { return 0 })

	assert.Contains(t, strings.ToUpper(out.String()), "TOTAL 0")
}

