package github

import (
	"errors"
	"testing"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "plain", raw: "https://github.com/vercel/next.js", wantOwner: "vercel", wantRepo: "next.js"},
		{name: "trailing slash", raw: "https://github.com/acme/api/", wantOwner: "acme", wantRepo: "api"},
		{name: "extra segments", raw: "https://github.com/acme/api/tree/main/src", wantOwner: "acme", wantRepo: "api"},
		{name: "surrounding space", raw: "  https://github.com/acme/api  ", wantOwner: "acme", wantRepo: "api"},
		{name: "other host", raw: "https://example.com/owner/repo", wantOwner: "owner", wantRepo: "repo"},
		{name: "double slash", raw: "https://github.com//acme//api", wantOwner: "acme", wantRepo: "api"},
		{name: "owner only", raw: "https://example.com/owner", wantErr: true},
		{name: "no path", raw: "https://github.com", wantErr: true},
		{name: "relative", raw: "acme/api", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "::not a url::", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepoURL) {
					t.Fatalf("expected ErrInvalidRepoURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("got %s/%s, want %s/%s", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
