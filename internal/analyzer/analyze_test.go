package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NoData(t *testing.T) {
	r := Analyze(Input{Repo: Repo{Owner: "o", Name: "r", URL: "https://github.com/o/r"}})

	assert.Equal(t, UnknownFramework, r.Detected.Framework)
	assert.Empty(t, r.Detected.Stack)
	assert.Equal(t, []string{StepInstall, StepRunDev}, r.RunSteps)
	assert.Equal(t, Signals{}, r.Important)
	assert.Len(t, r.Warnings, 8)
	// 100 - 25 - 20 - 15 - 10 - 10 - 10 (8 warnings)
	assert.Equal(t, 10, r.Score)
	assert.Equal(t, "Pain", r.Grade)
}

func TestAnalyze_NextJS(t *testing.T) {
	raw := `{"dependencies": {"next": "14.0.0"}}`
	r := Analyze(Input{
		Repo:     Repo{Owner: "o", Name: "r"},
		Manifest: &raw,
		Tree:     files("package.json"),
	})

	assert.Equal(t, "Next.js", r.Detected.Framework)
	assert.Equal(t, 1, r.Detected.RawDepsCount)
	assert.Equal(t, "package.json", r.Important.ManifestPath)
	assert.NotContains(t, r.Warnings, WarnNoManifest)
	assert.NotContains(t, r.Warnings, WarnTreeUnavailable)
	// 100 - 20 (readme) - 15 - 10 - 10 - 10 (6 warnings)
	assert.Equal(t, 35, r.Score)
	assert.Equal(t, []string{StepInstall, "# No dev/start script found"}, r.RunSteps)
}

func TestAnalyze_Healthy(t *testing.T) {
	raw := `{
		"dependencies": {"react": "18", "react-dom": "18"},
		"devDependencies": {"vite": "5", "typescript": "5", "vitest": "1"},
		"scripts": {"dev": "vite", "build": "vite build"}
	}`
	readme := strings.Repeat("Documentation. ", 20)
	r := Analyze(Input{
		Repo:     Repo{Owner: "acme", Name: "web"},
		Manifest: &raw,
		Tree: files(
			"package.json", "pnpm-lock.yaml", "Dockerfile", "docker-compose.yml",
			".env.example", "LICENSE", "README.md", "vitest.config.ts", "src/main.tsx",
		),
		Readme: &readme,
	})

	assert.Equal(t, "React", r.Detected.Framework)
	assert.Equal(t, []string{"TypeScript", "Vite", "Vitest"}, r.Detected.Stack)
	assert.Equal(t, []string{StepInstall, StepRunDev}, r.RunSteps)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, "Elite", r.Grade)
	assert.Equal(t, "pnpm", r.Important.PackageManager)
	assert.Contains(t, r.Markdown, "- ✅ No major issues detected")
}

func TestAnalyze_MalformedManifestTreatedAsAbsent(t *testing.T) {
	raw := `{"dependencies": {"next": `
	r := Analyze(Input{Manifest: &raw, Tree: files("package.json")})

	assert.Equal(t, UnknownFramework, r.Detected.Framework)
	assert.Equal(t, []string{StepInstall, StepRunDev}, r.RunSteps)
	// The path was found in the tree, so no manifest penalty applies.
	assert.Equal(t, "package.json", r.Important.ManifestPath)
}

func TestAnalyze_Idempotent(t *testing.T) {
	raw := `{"dependencies": {"express": "4", "zod": "3", "jest": "29"}, "scripts": {"start": "node index.js"}}`
	readme := "short"
	in := Input{
		Repo:     Repo{Owner: "o", Name: "r"},
		Manifest: &raw,
		Tree:     files("package.json", "Dockerfile", "src/__tests__/a.test.js"),
		Readme:   &readme,
	}

	first := Analyze(in)
	for i := 0; i < 5; i++ {
		again := Analyze(in)
		require.Equal(t, first, again)
		require.Equal(t, first.Markdown, again.Markdown)
	}
}

// fakeSource serves canned data and records requested paths.
type fakeSource struct {
	tree      []TreeEntry
	files     map[string]string
	treeErr   error
	requested []string
}

func (f *fakeSource) Tree(_ context.Context, _, _ string) ([]TreeEntry, error) {
	return f.tree, f.treeErr
}

func (f *fakeSource) File(_ context.Context, _, _, path string) (*string, error) {
	f.requested = append(f.requested, path)
	if s, ok := f.files[path]; ok {
		return &s, nil
	}
	return nil, nil
}

func TestRun_FetchesManifestAndReadme(t *testing.T) {
	src := &fakeSource{
		tree: files("apps/web/package.json", "README.md"),
		files: map[string]string{
			"apps/web/package.json": `{"dependencies": {"nuxt": "3"}, "scripts": {"start": "nuxt start"}}`,
			"README.md":             "# web",
		},
	}

	r, err := Run(context.Background(), src, Repo{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Equal(t, []string{"apps/web/package.json", ReadmePath}, src.requested)
	assert.Equal(t, "Nuxt", r.Detected.Framework)
	assert.Equal(t, []string{StepInstall, StepStart}, r.RunSteps)
	assert.Contains(t, r.Warnings, WarnReadmeTooSmall)
}

func TestRun_NoTreeSkipsManifestFetch(t *testing.T) {
	src := &fakeSource{}

	r, err := Run(context.Background(), src, Repo{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Equal(t, []string{ReadmePath}, src.requested)
	assert.Contains(t, r.Warnings, WarnTreeUnavailable)
}

func TestRun_SourceErrorAborts(t *testing.T) {
	src := &fakeSource{treeErr: errors.New("boom")}

	r, err := Run(context.Background(), src, Repo{Owner: "o", Name: "r"})
	assert.Nil(t, r)
	assert.ErrorContains(t, err, "boom")
}
