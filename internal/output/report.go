package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

// barWidth is the score bar width used by RenderReport.
var barWidth = 20

// SetWidth sizes report elements for a terminal of the given column count.
func SetWidth(cols int) {
	barWidth = min(max(cols/4, 10), 40)
}

// RenderReport formats a report for the terminal.
func RenderReport(r *analyzer.Report) string {
	var sb strings.Builder

	sb.WriteString(Section("RepoLens · " + r.Repo.FullName()))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, " %s %s  %s\n", StyleLabel.Render("Score"), ScoreBar(r.Score, barWidth), GradeBadge(r.Grade))

	framework := r.Detected.Framework
	if framework == analyzer.UnknownFramework {
		framework = StyleMuted.Render(framework)
	} else {
		framework = StyleBold.Render(framework)
	}
	fmt.Fprintf(&sb, " %s %s\n", StyleLabel.Render("Framework"), framework)

	stack := StyleMuted.Render("none detected")
	if len(r.Detected.Stack) > 0 {
		stack = strings.Join(r.Detected.Stack, ", ")
	}
	fmt.Fprintf(&sb, " %s %s\n", StyleLabel.Render("Stack"), stack)
	fmt.Fprintf(&sb, " %s %d\n", StyleLabel.Render("Dependencies"), r.Detected.RawDepsCount)
	if pm := r.Important.PackageManager; pm != "" {
		fmt.Fprintf(&sb, " %s %s\n", StyleLabel.Render("Package manager"), pm)
	}

	sb.WriteString(Section("Signals"))
	sb.WriteString("\n\n")
	tbl := NewTable("Signal", "State")
	manifest := Check(false)
	if p := r.Important.ManifestPath; p != "" {
		manifest = StyleSuccess.Render(p)
	}
	tbl.AddRow("package.json", manifest)
	tbl.AddRow("README", Check(r.Important.HasReadme))
	tbl.AddRow("Dockerfile", Check(r.Important.HasDockerfile))
	tbl.AddRow("docker-compose.yml", Check(r.Important.HasDockerCompose))
	tbl.AddRow(".env.example", Check(r.Important.HasEnvExample))
	tbl.AddRow("LICENSE", Check(r.Important.HasLicense))
	tbl.AddRow("Tests", Check(r.Important.HasTests))
	for _, line := range strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n") {
		sb.WriteString(" " + line + "\n")
	}

	sb.WriteString(Section("Run locally"))
	sb.WriteString("\n\n")
	for _, step := range r.RunSteps {
		fmt.Fprintf(&sb, "   $ %s\n", step)
	}

	sb.WriteString(Section("Warnings"))
	sb.WriteString("\n\n")
	if len(r.Warnings) == 0 {
		sb.WriteString(" " + StyleSuccess.Render("No major issues detected") + "\n")
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, " %s %s\n", StyleWarning.Render("!"), w)
	}

	return sb.String()
}
