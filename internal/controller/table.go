package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	m "tps.dev/pkg/tps/internal/model"
)

// RenderProjects writes a plain table of projects for the list command.
// lastAccess reports the recorded access time for a path, 0 for never.
func RenderProjects(w io.Writer, projects []m.Project, lastAccess func(m.Path) int64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Project", "Session", "Windows", "Last Access"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, project := range projects {
		session, windows := "-", "-"
		if project.Session != nil {
			session = project.Session.Name
			windows = fmt.Sprintf("%d", project.Session.Windows)
		}

		access := "-"
		if ts := lastAccess(project.Path); ts > 0 {
			access = time.Unix(ts, 0).Format("2006-01-02 15:04")
		}

		table.Append([]string{string(project.Path), session, windows, access})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(projects)), "", "", ""})
	table.Render()
}
