package analyzer

import "testing"

func files(paths ...string) []TreeEntry {
	tree := make([]TreeEntry, 0, len(paths))
	for _, p := range paths {
		tree = append(tree, TreeEntry{Path: p, Type: EntryFile})
	}
	return tree
}

func strPtr(s string) *string { return &s }

func TestExtractSignals_NilTree(t *testing.T) {
	sig := ExtractSignals(nil, "", nil)
	if sig != (Signals{}) {
		t.Errorf("expected zero Signals for nil tree, got %+v", sig)
	}
}

func TestExtractSignals_ExactPathMatch(t *testing.T) {
	tree := files(
		"Dockerfile",
		"docker-compose.yml",
		".env.example",
		"LICENSE",
	)
	sig := ExtractSignals(tree, "package.json", strPtr("# hi"))

	if !sig.HasDockerfile || !sig.HasDockerCompose || !sig.HasEnvExample || !sig.HasLicense {
		t.Errorf("expected all file signals set, got %+v", sig)
	}
	if !sig.HasReadme {
		t.Error("expected HasReadme=true")
	}
	if sig.ManifestPath != "package.json" {
		t.Errorf("ManifestPath = %q, want package.json", sig.ManifestPath)
	}
}

func TestExtractSignals_NestedAndCaseVariantsDoNotMatch(t *testing.T) {
	tree := files(
		"api/Dockerfile",
		"docker-compose.yaml",
		"deploy/docker-compose.yml",
		"api/.env.example",
		"LICENSE.md",
		"license",
		"dockerfile",
	)
	sig := ExtractSignals(tree, "", nil)

	if sig.HasDockerfile {
		t.Error("nested or lower-case Dockerfile must not match")
	}
	if sig.HasDockerCompose {
		t.Error("docker-compose.yaml or nested compose must not match")
	}
	if sig.HasEnvExample {
		t.Error("nested .env.example must not match")
	}
	if sig.HasLicense {
		t.Error("LICENSE.md or license must not match")
	}
}

func TestExtractSignals_Tests(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"jest dir", "src/__tests__/app.test.js", true},
		{"nested test dir", "packages/core/test/index.js", true},
		{"nested tests dir upper-case", "src/Tests/util.spec.ts", true},
		{"jest config", "jest.config.js", true},
		{"vitest config", "vitest.config.ts", true},
		{"root test dir has no leading slash", "test/index.js", false},
		{"test in filename only", "src/contest.js", false},
		{"plain source", "src/index.js", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sig := ExtractSignals(files(tc.path), "", nil)
			if sig.HasTests != tc.want {
				t.Errorf("HasTests for %q = %v, want %v", tc.path, sig.HasTests, tc.want)
			}
		})
	}
}

func TestExtractSignals_Readme(t *testing.T) {
	if ExtractSignals(nil, "", nil).HasReadme {
		t.Error("nil README should be missing")
	}
	if ExtractSignals(nil, "", strPtr("")).HasReadme {
		t.Error("empty README should be missing")
	}
	if !ExtractSignals(nil, "", strPtr("x")).HasReadme {
		t.Error("non-empty README should be found")
	}
}

func TestExtractSignals_PackageManager(t *testing.T) {
	tests := []struct {
		name         string
		paths        []string
		manifestPath string
		want         string
	}{
		{"no manifest", []string{"yarn.lock"}, "", ""},
		{"npm", []string{"package.json", "package-lock.json"}, "package.json", "npm"},
		{"pnpm", []string{"package.json", "pnpm-lock.yaml"}, "package.json", "pnpm"},
		{"bun beats yarn", []string{"package.json", "yarn.lock", "bun.lockb"}, "package.json", "bun"},
		{"beside nested manifest", []string{"web/package.json", "web/yarn.lock", "package-lock.json"}, "web/package.json", "yarn"},
		{"root lockfile for nested manifest", []string{"web/package.json", "pnpm-lock.yaml"}, "web/package.json", "pnpm"},
		{"none", []string{"package.json"}, "package.json", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractSignals(files(tc.paths...), tc.manifestPath, nil).PackageManager
			if got != tc.want {
				t.Errorf("PackageManager = %q, want %q", got, tc.want)
			}
		})
	}
}
