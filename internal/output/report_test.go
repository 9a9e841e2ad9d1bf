package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  int
		width  int
		filled int
		label  string
	}{
		{100, 10, 10, "100/100"},
		{75, 20, 15, "75/100"},
		{0, 10, 0, "0/100"},
		{50, 0, 10, "50/100"}, // default width 20
	}

	for _, tc := range tests {
		got := ScoreBar(tc.score, tc.width)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Errorf("ScoreBar(%d, %d) filled = %d, want %d", tc.score, tc.width, n, tc.filled)
		}
		if !strings.HasSuffix(got, tc.label) {
			t.Errorf("ScoreBar(%d, %d) = %q, want suffix %q", tc.score, tc.width, got, tc.label)
		}
	}
}

func TestGradeBadge(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	for _, g := range []string{"Elite", "Good", "Risky", "Pain"} {
		if got := GradeBadge(g); got != "["+g+"]" {
			t.Errorf("GradeBadge(%q) = %q", g, got)
		}
	}
}

func TestRenderReport(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	r := analyzer.Analyze(analyzer.Input{
		Repo: analyzer.Repo{Owner: "acme", Name: "api"},
		Tree: []analyzer.TreeEntry{
			{Path: "package.json", Type: analyzer.EntryFile},
			{Path: "yarn.lock", Type: analyzer.EntryFile},
		},
		Manifest: ptr(`{"dependencies":{"express":"4"},"scripts":{"start":"node index.js"}}`),
	})

	out := RenderReport(r)

	for _, want := range []string{
		"RepoLens · acme/api",
		"Express",
		"Package manager",
		"yarn",
		"package.json",
		"✗ missing",
		"$ npm install",
		"$ npm start",
		"README is missing",
		"[" + r.Grade + "]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRenderReport_NoWarnings(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out := RenderReport(&analyzer.Report{
		Repo:     analyzer.Repo{Owner: "o", Name: "r"},
		Detected: analyzer.Classification{Framework: analyzer.UnknownFramework, Stack: []string{}},
		Score:    100,
		Grade:    "Elite",
	})
	if !strings.Contains(out, "No major issues detected") {
		t.Errorf("expected clean-report line\n%s", out)
	}
	if !strings.Contains(out, "none detected") {
		t.Errorf("expected empty stack marker\n%s", out)
	}
}

func ptr(s string) *string { return &s }

func TestSetWidth(t *testing.T) {
	defer SetWidth(80)

	tests := []struct{ cols, want int }{
		{80, 20},
		{8, 10},
		{400, 40},
	}
	for _, tt := range tests {
		SetWidth(tt.cols)
		if barWidth != tt.want {
			t.Errorf("SetWidth(%d): barWidth = %d, want %d", tt.cols, barWidth, tt.want)
		}
	}
}
