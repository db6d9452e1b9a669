package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/styles"
)

func printProject(w io.Writer, heading string, p *model.Project) {
	lines := []string{
		styles.Title.Render(heading),
		styles.KeyValue("name", p.DisplayName()),
		styles.KeyValue("id", styles.ID.Render(p.Manifest.ID)),
		styles.KeyValue("path", p.Path),
		styles.KeyValue("rack", fmt.Sprintf("%d slots", p.Manifest.RackSize)),
		styles.KeyValue("textures", fmt.Sprintf("%d", len(p.Manifest.Textures))),
		styles.KeyValue("modified", p.Manifest.ModifiedAt.Local().Format("2006-01-02 15:04:05")),
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func printProjects(w io.Writer, projects []model.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no projects"))
		return
	}
	nameWidth := len("NAME")
	for _, p := range projects {
		nameWidth = max(nameWidth, lipgloss.Width(p.DisplayName()))
	}
	name := lipgloss.NewStyle().Width(nameWidth + 2)
	count := lipgloss.NewStyle().Width(10)

	fmt.Fprintln(w, styles.Title.Render(name.Render("NAME")+count.Render("TEXTURES")+"PATH"))
	for _, p := range projects {
		fmt.Fprintln(w, name.Render(p.DisplayName())+
			count.Render(fmt.Sprintf("%d", len(p.Manifest.Textures)))+
			styles.Dim.Render(p.Path))
	}
}

func printTextures(w io.Writer, m *project.Manager, p *model.Project) {
	if len(p.Manifest.Textures) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no textures"))
		return
	}
	for _, t := range p.Manifest.Textures {
		fmt.Fprintf(w, "%s  %s  %s\n",
			styles.ID.Render(t.ID),
			t.OriginalName,
			styles.Dim.Render(m.TexturePath(p, t).Absolute()))
	}
}

func printReport(w io.Writer, report project.Report) {
	if report.Consistent() {
		fmt.Fprintln(w, styles.OK.Render("consistent"))
		return
	}
	var b strings.Builder
	for _, t := range report.Missing {
		fmt.Fprintf(&b, "%s %s (%s)\n", styles.Problem.Render("missing"), t.Filename(), t.OriginalName)
	}
	for _, name := range report.Orphans {
		fmt.Fprintf(&b, "%s %s\n", styles.Caution.Render("orphan "), name)
	}
	fmt.Fprint(w, b.String())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
