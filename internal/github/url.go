package github

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepoURL is returned when a repository URL does not name an
// owner and a repository.
var ErrInvalidRepoURL = errors.New("invalid repo URL")

// ParseRepoURL extracts owner and repository from a hosting URL such as
// https://github.com/owner/repo. The host is not checked; the path must
// hold at least two non-empty segments.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRepoURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidRepoURL, raw)
	}

	var parts []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) < 2 {
		return "", "", ErrInvalidRepoURL
	}
	return parts[0], parts[1], nil
}
