package analyzer

import (
	"fmt"
	"strings"
)

const (
	markFound    = "✅ Found"
	markMissing  = "❌ Missing"
	markNotFound = "❌ Not found"
	markNotSeen  = "❌ Not detected"
)

// RenderMarkdown formats a report as the RepoLens Markdown document. It is
// a pure function of the report fields; Markdown itself is ignored.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# RepoLens Report\n\n")

	sb.WriteString("## Repo\n")
	fmt.Fprintf(&sb, "- **%s/%s**\n", r.Repo.Owner, r.Repo.Name)
	fmt.Fprintf(&sb, "- Score: **%d/100** (%s)\n\n", r.Score, Grade(r.Score))

	sb.WriteString("## Tech Stack\n")
	fmt.Fprintf(&sb, "- Framework: **%s**\n", r.Detected.Framework)
	if len(r.Detected.Stack) == 0 {
		sb.WriteString("- (No stack detected)\n")
	}
	for _, s := range r.Detected.Stack {
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	if r.Important.PackageManager != "" {
		fmt.Fprintf(&sb, "- Package manager: %s\n", r.Important.PackageManager)
	}
	sb.WriteString("\n")

	sig := r.Important
	sb.WriteString("## Key Signals\n")
	manifestLine := markNotFound
	if sig.ManifestPath != "" {
		manifestLine = "`" + sig.ManifestPath + "`"
	}
	fmt.Fprintf(&sb, "- package.json: %s\n", manifestLine)
	fmt.Fprintf(&sb, "- README: %s\n", mark(sig.HasReadme, markMissing))
	fmt.Fprintf(&sb, "- Dockerfile: %s\n", mark(sig.HasDockerfile, markMissing))
	fmt.Fprintf(&sb, "- docker-compose.yml: %s\n", mark(sig.HasDockerCompose, markMissing))
	fmt.Fprintf(&sb, "- .env.example: %s\n", mark(sig.HasEnvExample, markMissing))
	fmt.Fprintf(&sb, "- Tests: %s\n\n", mark(sig.HasTests, markNotSeen))

	sb.WriteString("## Run locally\n")
	for i, step := range r.RunSteps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "`%s`\n", step)
	}
	sb.WriteString("\n")

	sb.WriteString("## Warnings\n")
	if len(r.Warnings) == 0 {
		sb.WriteString("- ✅ No major issues detected\n")
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "- ⚠️ %s\n", w)
	}

	return sb.String()
}

func mark(ok bool, missing string) string {
	if ok {
		return markFound
	}
	return missing
}
