// Package analyzer turns a dependency manifest, a repository file tree and a
// README into a health report: detected stack, run steps, warnings, a
// 0-100 score and a rendered Markdown document.
package analyzer

// UnknownFramework is the framework label used when no rule matches.
const UnknownFramework = "Unknown"

// EntryType discriminates file tree entries.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
	EntryOther     EntryType = "other"
)

// TreeEntry is a single path in a repository listing. Path uses "/"
// separators and is relative to the repository root.
type TreeEntry struct {
	Path string    `json:"path" yaml:"path"`
	Type EntryType `json:"type" yaml:"type"`
}

// Repo identifies the analyzed repository.
type Repo struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
}

// FullName returns "owner/name".
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Classification is the classifier output.
type Classification struct {
	// Framework is the primary framework, or UnknownFramework.
	Framework string `json:"framework" yaml:"framework"`

	// Stack lists detected tools in rule-table order, without duplicates.
	Stack []string `json:"stack" yaml:"stack"`

	// RawDepsCount is the number of merged dependency entries.
	RawDepsCount int `json:"rawDepsCount" yaml:"raw_deps_count"`
}

// Signals are the facts derived from the file tree and README. They are
// computed once per analysis and never mutated.
type Signals struct {
	// ManifestPath is the resolved package.json path, or "" when not found.
	ManifestPath     string `json:"packageJsonPath" yaml:"package_json_path"`
	HasDockerfile    bool   `json:"hasDockerfile" yaml:"has_dockerfile"`
	HasDockerCompose bool   `json:"hasDockerCompose" yaml:"has_docker_compose"`
	HasEnvExample    bool   `json:"hasEnvExample" yaml:"has_env_example"`
	HasLicense       bool   `json:"hasLicense" yaml:"has_license"`
	HasReadme        bool   `json:"hasReadme" yaml:"has_readme"`
	HasTests         bool   `json:"hasTests" yaml:"has_tests"`

	// PackageManager is inferred from lockfiles next to the manifest or at
	// the repository root. Informational only; it does not affect scoring.
	PackageManager string `json:"packageManager,omitempty" yaml:"package_manager,omitempty"`
}

// Report is the complete result of one analysis.
type Report struct {
	Repo      Repo           `json:"repo" yaml:"repo"`
	Detected  Classification `json:"detected" yaml:"detected"`
	RunSteps  []string       `json:"runSteps" yaml:"run_steps"`
	Warnings  []string       `json:"warnings" yaml:"warnings"`
	Important Signals        `json:"important" yaml:"important"`
	Score     int            `json:"score" yaml:"score"`
	Grade     string         `json:"grade" yaml:"grade"`
	Markdown  string         `json:"generatedMarkdown" yaml:"generated_markdown"`
}
