package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "tps.dev/pkg/tps/internal/model"
)

var pickerStyle = lipgloss.NewStyle().Margin(1, 2)

// projectItem adapts a Project to the bubbles list item interfaces.
type projectItem struct {
	project m.Project
}

func (i projectItem) Title() string {
	return string(i.project.Path)
}

func (i projectItem) Description() string {
	s := i.project.Session
	if s == nil {
		return "no session"
	}

	desc := fmt.Sprintf("%d windows, created %s", s.Windows, s.Created)
	if s.Attached {
		desc += " (attached)"
	}

	return desc
}

func (i projectItem) FilterValue() string {
	return string(i.project.Path)
}

// pickerModel is the Bubble Tea model behind the project picker.
type pickerModel struct {
	list   list.Model
	choice *m.Project
}

func newPickerModel(projects []m.Project) pickerModel {
	items := make([]list.Item, 0, len(projects))
	for _, project := range projects {
		items = append(items, projectItem{project: project})
	}

	delegate := list.NewDefaultDelegate()

	l := list.New(items, delegate, 0, 0)
	l.Title = "Switch project"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return pickerModel{list: l}
}

func (pm pickerModel) Init() tea.Cmd {
	return nil
}

func (pm pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := pickerStyle.GetFrameSize()
		pm.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		// While the filter input is focused the list owns every key.
		if pm.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := pm.list.SelectedItem().(projectItem); ok {
				pm.choice = &item.project
			}

			return pm, tea.Quit

		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.list, cmd = pm.list.Update(msg)

	return pm, cmd
}

func (pm pickerModel) View() string {
	return pickerStyle.Render(pm.list.View())
}

// TUIPicker runs the fuzzy-filterable project list full screen.
type TUIPicker struct{}

// NewTUIPicker constructs a TUIPicker.
func NewTUIPicker() *TUIPicker {
	return &TUIPicker{}
}

// PickProject shows the picker and returns the chosen project. Quitting
// without a selection returns ok = false and no error.
func (p *TUIPicker) PickProject(projects []m.Project) (m.Project, bool, error) {
	program := tea.NewProgram(newPickerModel(projects), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return m.Project{}, false, err
	}

	pm, ok := final.(pickerModel)
	if !ok || pm.choice == nil {
		return m.Project{}, false, nil
	}

	return *pm.choice, true, nil
}
