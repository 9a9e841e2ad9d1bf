package analyzer

import (
	"path"
	"strings"
)

// Exact repository paths checked by ExtractSignals.
const (
	pathDockerfile    = "Dockerfile"
	pathDockerCompose = "docker-compose.yml"
	pathEnvExample    = ".env.example"
	pathLicense       = "LICENSE"
)

// testMarkers are matched case-insensitively as substrings of every path.
var testMarkers = []string{
	"__tests__",
	"/test/",
	"/tests/",
	"jest.config",
	"vitest.config",
}

// lockfiles map lockfile names to package managers, in priority order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"bun.lockb", "bun"},
	{"bun.lock", "bun"},
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// ExtractSignals derives the tree and README signals. A nil or empty tree
// leaves every tree-derived signal false; that is a degraded state, not an
// error. manifestPath is the resolved manifest location, "" when absent.
func ExtractSignals(tree []TreeEntry, manifestPath string, readme *string) Signals {
	files := make(map[string]bool, len(tree))
	for _, e := range tree {
		files[e.Path] = true
	}

	return Signals{
		ManifestPath:     manifestPath,
		HasDockerfile:    files[pathDockerfile],
		HasDockerCompose: files[pathDockerCompose],
		HasEnvExample:    files[pathEnvExample],
		HasLicense:       files[pathLicense],
		HasReadme:        readme != nil && *readme != "",
		HasTests:         hasTests(tree),
		PackageManager:   detectPackageManager(files, manifestPath),
	}
}

func hasTests(tree []TreeEntry) bool {
	for _, e := range tree {
		low := strings.ToLower(e.Path)
		for _, marker := range testMarkers {
			if strings.Contains(low, marker) {
				return true
			}
		}
	}
	return false
}

// detectPackageManager looks for a lockfile beside the manifest first and
// then at the repository root.
func detectPackageManager(files map[string]bool, manifestPath string) string {
	if manifestPath == "" {
		return ""
	}
	dirs := []string{path.Dir(manifestPath)}
	if dirs[0] != "." {
		dirs = append(dirs, ".")
	}
	for _, dir := range dirs {
		for _, lf := range lockfiles {
			if files[path.Join(dir, lf.file)] {
				return lf.manager
			}
		}
	}
	return ""
}

// TreePaths returns the entry paths in tree order.
func TreePaths(tree []TreeEntry) []string {
	paths := make([]string, 0, len(tree))
	for _, e := range tree {
		paths = append(paths, e.Path)
	}
	return paths
}
