// Package localrepo implements the repository source over a local checkout,
// for offline analysis of a working tree.
package localrepo

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// maxFileBytes caps how much of a single file is read.
const maxFileBytes = 8 << 20

// Source reads a repository from disk. It satisfies analyzer.Source; the
// owner and repo arguments are ignored because the root is fixed.
type Source struct {
	root string
	fsys fs.FS
}

// New returns a Source rooted at dir. dir must be an existing directory.
func New(dir string) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &Source{root: abs, fsys: os.DirFS(abs)}, nil
}

// Root returns the absolute directory being read.
func (s *Source) Root() string {
	return s.root
}

// Repo describes the checkout: the base name is the repository and the
// parent directory name the owner.
func (s *Source) Repo() analyzer.Repo {
	return analyzer.Repo{
		Owner: filepath.Base(filepath.Dir(s.root)),
		Name:  filepath.Base(s.root),
		URL:   "file://" + filepath.ToSlash(s.root),
	}
}

// Tree walks the checkout in lexical order. Unreadable entries are skipped.
func (s *Source) Tree(ctx context.Context, _, _ string) ([]analyzer.TreeEntry, error) {
	var entries []analyzer.TreeEntry

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || p == "." {
			return nil
		}
		if d.IsDir() && skippedDirs[d.Name()] {
			return fs.SkipDir
		}

		t := analyzer.EntryOther
		switch {
		case d.IsDir():
			t = analyzer.EntryDirectory
		case d.Type().IsRegular():
			t = analyzer.EntryFile
		}
		entries = append(entries, analyzer.TreeEntry{Path: p, Type: t})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []analyzer.TreeEntry{}
	}
	return entries, nil
}

// File reads a path relative to the root, or returns nil when it is missing
// or not a regular file.
func (s *Source) File(ctx context.Context, _, _ string, name string) (*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(strings.TrimLeft(filepath.ToSlash(name), "/"))
	if !fs.ValidPath(name) {
		return nil, nil
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(f, maxFileBytes))
	if err != nil {
		return nil, nil
	}
	text := string(data)
	return &text, nil
}
