package localrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestTree_WalksAndSkipsGit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{}`)
	writeFile(t, root, "src/index.ts", "")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main")
	writeFile(t, root, "node_modules/left-pad/package.json", `{}`)

	src, err := New(root)
	require.NoError(t, err)

	tree, err := src.Tree(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, []analyzer.TreeEntry{
		{Path: "package.json", Type: analyzer.EntryFile},
		{Path: "src", Type: analyzer.EntryDirectory},
		{Path: "src/index.ts", Type: analyzer.EntryFile},
	}, tree)
}

func TestTree_EmptyDirectory(t *testing.T) {
	src, err := New(t.TempDir())
	require.NoError(t, err)

	tree, err := src.Tree(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# hello")
	writeFile(t, root, "apps/web/package.json", `{"name":"web"}`)

	src, err := New(root)
	require.NoError(t, err)
	ctx := context.Background()

	got, err := src.File(ctx, "", "", "README.md")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "# hello", *got)

	got, err = src.File(ctx, "", "", "apps/web/package.json")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"name":"web"}`, *got)

	for _, name := range []string{"missing.md", "apps", "../outside"} {
		got, err = src.File(ctx, "", "", name)
		require.NoError(t, err, name)
		assert.Nil(t, got, name)
	}
}

func TestNew_RejectsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")

	_, err := New(filepath.Join(root, "file.txt"))
	assert.Error(t, err)

	_, err = New(filepath.Join(root, "nope"))
	assert.Error(t, err)
}

func TestRepo(t *testing.T) {
	root := filepath.Join(t.TempDir(), "acme", "api")
	require.NoError(t, os.MkdirAll(root, 0o755))

	src, err := New(root)
	require.NoError(t, err)

	repo := src.Repo()
	assert.Equal(t, "acme", repo.Owner)
	assert.Equal(t, "api", repo.Name)
}

func TestRun_OverLocalCheckout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies":{"next":"14","react":"18"},"scripts":{"dev":"next dev"}}`)
	writeFile(t, root, "Dockerfile", "FROM node:20")
	writeFile(t, root, "__tests__/app.test.js", "")

	src, err := New(root)
	require.NoError(t, err)

	r, err := analyzer.Run(context.Background(), src, src.Repo())
	require.NoError(t, err)

	assert.Equal(t, "Next.js", r.Detected.Framework)
	assert.Equal(t, "package.json", r.Important.ManifestPath)
	assert.True(t, r.Important.HasDockerfile)
	assert.True(t, r.Important.HasTests)
	assert.False(t, r.Important.HasReadme)
	assert.Equal(t, []string{"npm install", "npm run dev"}, r.RunSteps)
}
