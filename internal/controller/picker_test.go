package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tps.dev/pkg/tps/internal/model"
)

func TestProjectItem(t *testing.T) {
	bare := projectItem{project: m.Project{Path: "/code/web"}}

	assert.Equal(t, "/code/web", bare.Title())
	assert.Equal(t, "/code/web", bare.FilterValue())
	assert.Equal(t, "no session", bare.Description())

	attached := projectItem{project: m.Project{
		Path: "/code/app",
		Session: &m.Session{
			Name:     "/code/app",
			Windows:  2,
			Created:  "Mon Aug 24 10:01:02 2026",
			Attached: true,
		},
	}}

	assert.Equal(t, "2 windows, created Mon Aug 24 10:01:02 2026 (attached)", attached.Description())
}

func TestPickerModel_EnterSelects(t *testing.T) {
	pm := newPickerModel([]m.Project{
		{Path: "/code/app"},
		{Path: "/code/web"},
	})

	updated, _ := pm.Update(tea.KeyMsg{Type: tea.KeyEnter})

	picked, ok := updated.(pickerModel)
	require.True(t, ok)
	require.NotNil(t, picked.choice)
	assert.Equal(t, m.Path("/code/app"), picked.choice.Path)
}

func TestPickerModel_EscapeAborts(t *testing.T) {
	pm := newPickerModel([]m.Project{{Path: "/code/app"}})

	updated, _ := pm.Update(tea.KeyMsg{Type: tea.KeyEsc})

	aborted, ok := updated.(pickerModel)
	require.True(t, ok)
	assert.Nil(t, aborted.choice)
}

func TestPickerModel_WindowSizeResizesList(t *testing.T) {
	pm := newPickerModel([]m.Project{{Path: "/code/app"}})

	updated, _ := pm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	resized, ok := updated.(pickerModel)
	require.True(t, ok)
	assert.Positive(t, resized.list.Width())
	assert.Positive(t, resized.list.Height())
}
