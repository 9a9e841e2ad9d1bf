package analyzer

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/repolens/internal/manifest"
)

// ReadmePath is the README location fetched for every repository.
const ReadmePath = "README.md"

// Input holds the raw data for one analysis. Nil pointers and a nil tree
// mean the data could not be retrieved.
type Input struct {
	Repo     Repo
	Manifest *string
	Tree     []TreeEntry
	Readme   *string
}

// Analyze runs the full pipeline over already-fetched inputs. It is
// synchronous, performs no I/O and returns identical output for identical
// input.
func Analyze(in Input) *Report {
	manifestPath := manifest.ResolvePath(TreePaths(in.Tree))
	m := manifest.ParseString(in.Manifest)

	sig := ExtractSignals(in.Tree, manifestPath, in.Readme)
	warnings := Warnings(sig, len(in.Tree) > 0, in.Readme)
	score := Score(sig, len(warnings))

	r := &Report{
		Repo:      in.Repo,
		Detected:  Classify(m),
		RunSteps:  InferRunSteps(m),
		Warnings:  warnings,
		Important: sig,
		Score:     score,
		Grade:     Grade(score),
	}
	r.Markdown = RenderMarkdown(r)
	return r
}

// Source retrieves repository data. Implementations return nil values
// (not errors) when data is unavailable; an error means an unexpected
// failure that aborts the analysis.
type Source interface {
	// Tree returns the recursive file listing, or nil when unavailable.
	Tree(ctx context.Context, owner, repo string) ([]TreeEntry, error)

	// File returns the decoded text of a file, or nil when unavailable.
	File(ctx context.Context, owner, repo, path string) (*string, error)
}

// Run fetches the tree, the manifest and the README from src, one after the
// other, then analyzes them.
func Run(ctx context.Context, src Source, repo Repo) (*Report, error) {
	tree, err := src.Tree(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("fetching tree for %s: %w", repo.FullName(), err)
	}

	var raw *string
	if p := manifest.ResolvePath(TreePaths(tree)); p != "" {
		raw, err = src.File(ctx, repo.Owner, repo.Name, p)
		if err != nil {
			return nil, fmt.Errorf("fetching %s for %s: %w", p, repo.FullName(), err)
		}
	}

	readme, err := src.File(ctx, repo.Owner, repo.Name, ReadmePath)
	if err != nil {
		return nil, fmt.Errorf("fetching %s for %s: %w", ReadmePath, repo.FullName(), err)
	}

	return Analyze(Input{
		Repo:     repo,
		Manifest: raw,
		Tree:     tree,
		Readme:   readme,
	}), nil
}
