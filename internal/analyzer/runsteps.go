package analyzer

import "github.com/blackwell-systems/repolens/internal/manifest"

// Run step commands.
const (
	StepInstall     = "npm install"
	StepRunDev      = "npm run dev"
	StepStart       = "npm start"
	StepBuild       = "npm run build"
	StepPlaceholder = "# No dev/start script found"
)

// InferRunSteps derives bootstrap commands from the manifest scripts.
// Exactly one branch applies, in priority order dev, start, build. The
// result always starts with the install step. Without a manifest the
// default install + dev pair is returned.
func InferRunSteps(m *manifest.Manifest) []string {
	if m == nil {
		return []string{StepInstall, StepRunDev}
	}

	if _, ok := m.Script("dev"); ok {
		return []string{StepInstall, StepRunDev}
	}
	if _, ok := m.Script("start"); ok {
		return []string{StepInstall, StepStart}
	}
	if _, ok := m.Script("build"); ok {
		return []string{StepInstall, StepBuild, StepStart}
	}
	return []string{StepInstall, StepPlaceholder}
}
