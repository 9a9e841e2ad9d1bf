// Package github implements the repository source over the GitHub REST API.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/store"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultBranches are tried in order when fetching the tree.
var DefaultBranches = []string{"main", "master"}

// maxBodyBytes caps the size of a single API response.
const maxBodyBytes = 32 << 20

// Cache stores upstream responses for conditional requests.
type Cache interface {
	GetResponse(ctx context.Context, url string) (*store.CachedResponse, error)
	PutResponse(ctx context.Context, r *store.CachedResponse) error
	Touch(ctx context.Context, url string, at time.Time) error
}

// Client fetches repository trees and files. It satisfies analyzer.Source.
// Tree and File report upstream failures as absent data, never as errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	branches   []string
	cache      Cache
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL sets a custom base URL for the GitHub API (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithToken sets the access token sent as a bearer credential. An empty
// token leaves requests unauthenticated.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithBranches overrides the ordered branch candidates for Tree.
func WithBranches(branches ...string) Option {
	return func(c *Client) {
		if len(branches) > 0 {
			c.branches = append([]string(nil), branches...)
		}
	}
}

// WithCache enables conditional requests backed by cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		branches:   append([]string(nil), DefaultBranches...),
		logger:     log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.token != "" {
		base := c.httpClient
		c.httpClient = &http.Client{
			Timeout:       base.Timeout,
			CheckRedirect: base.CheckRedirect,
			Jar:           base.Jar,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token}),
				Base:   base.Transport,
			},
		}
	}

	return c
}

// treeResponse is the body of GET /repos/{owner}/{repo}/git/trees/{sha}.
type treeResponse struct {
	SHA       string `json:"sha"`
	Truncated bool   `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
}

// contentResponse is the body of GET /repos/{owner}/{repo}/contents/{path}.
type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Tree returns the recursive tree of the first branch candidate that
// answers successfully, or nil when every candidate fails.
func (c *Client) Tree(ctx context.Context, owner, repo string) ([]analyzer.TreeEntry, error) {
	for _, branch := range c.branches {
		endpoint := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
			c.baseURL, url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(branch))

		body, ok, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.Printf("tree %s/%s@%s unavailable", owner, repo, branch)
			continue
		}

		var tr treeResponse
		if err := json.Unmarshal(body, &tr); err != nil {
			c.logger.Printf("tree %s/%s@%s: decoding: %v", owner, repo, branch, err)
			continue
		}
		if tr.Truncated {
			c.logger.Printf("tree %s/%s@%s truncated by the API", owner, repo, branch)
		}

		entries := make([]analyzer.TreeEntry, 0, len(tr.Tree))
		for _, e := range tr.Tree {
			entries = append(entries, analyzer.TreeEntry{Path: e.Path, Type: entryType(e.Type)})
		}
		return entries, nil
	}
	return nil, nil
}

// File returns the decoded text of path on the default branch, or nil when
// the file is missing, the response is unsuccessful or carries no content.
func (c *Client) File(ctx context.Context, owner, repo, path string) (*string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), escapePath(path))

	body, ok, err := c.get(ctx, endpoint)
	if err != nil || !ok {
		return nil, err
	}

	var cr contentResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		c.logger.Printf("file %s/%s/%s: decoding: %v", owner, repo, path, err)
		return nil, nil
	}
	if cr.Content == "" {
		return nil, nil
	}

	decoded, err := decodeContent(cr.Content)
	if err != nil {
		c.logger.Printf("file %s/%s/%s: %v", owner, repo, path, err)
		return nil, nil
	}
	text := string(decoded)
	return &text, nil
}

// RateLimit is the core request quota reported by the API.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// RateLimit queries /rate_limit. Unlike Tree and File it reports failures,
// so callers can diagnose connectivity and credentials.
func (c *Client) RateLimit(ctx context.Context) (*RateLimit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying rate limit: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying rate limit: status %d", resp.StatusCode)
	}

	var body struct {
		Resources struct {
			Core struct {
				Limit     int   `json:"limit"`
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding rate limit: %w", err)
	}
	core := body.Resources.Core
	return &RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     time.Unix(core.Reset, 0),
	}, nil
}

// get performs a GET request. ok is false for any non-2xx response or
// transport failure. err is only set when ctx itself is done.
func (c *Client) get(ctx context.Context, endpoint string) (body []byte, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Printf("GET %s: %v", endpoint, err)
		return nil, false, nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	cached := c.lookup(ctx, endpoint)
	if cached != nil {
		if cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}
		if cached.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.LastModified)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		c.logger.Printf("GET %s: %v", endpoint, err)
		return nil, false, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		c.logger.Printf("GET %s: not modified, served from cache", endpoint)
		if c.cache != nil {
			if err := c.cache.Touch(ctx, endpoint, time.Now()); err != nil {
				c.logger.Printf("cache touch %s: %v", endpoint, err)
			}
		}
		return cached.Body, true, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("GET %s: status %d", endpoint, resp.StatusCode)
		return nil, false, nil
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		c.logger.Printf("GET %s: reading body: %v", endpoint, err)
		return nil, false, nil
	}

	c.remember(ctx, endpoint, resp, body)
	return body, true, nil
}

func (c *Client) lookup(ctx context.Context, endpoint string) *store.CachedResponse {
	if c.cache == nil {
		return nil
	}
	cached, err := c.cache.GetResponse(ctx, endpoint)
	if err != nil {
		c.logger.Printf("cache lookup %s: %v", endpoint, err)
		return nil
	}
	return cached
}

func (c *Client) remember(ctx context.Context, endpoint string, resp *http.Response, body []byte) {
	if c.cache == nil {
		return
	}
	etag := resp.Header.Get("ETag")
	lastModified := resp.Header.Get("Last-Modified")
	if etag == "" && lastModified == "" {
		return
	}
	err := c.cache.PutResponse(ctx, &store.CachedResponse{
		URL:          endpoint,
		ETag:         etag,
		LastModified: lastModified,
		Status:       resp.StatusCode,
		Body:         body,
		FetchedAt:    time.Now(),
	})
	if err != nil {
		c.logger.Printf("cache store %s: %v", endpoint, err)
	}
}

// entryType maps git object types to tree entry types.
func entryType(t string) analyzer.EntryType {
	switch t {
	case "blob":
		return analyzer.EntryFile
	case "tree":
		return analyzer.EntryDirectory
	default:
		return analyzer.EntryOther
	}
}

// escapePath escapes each segment of a repository path.
func escapePath(p string) string {
	segs := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// decodeContent decodes the base64 payload of the contents API, which
// wraps lines with newlines.
func decodeContent(content string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ':
			return -1
		}
		return r
	}, content)
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 content: %w", err)
	}
	return decoded, nil
}
