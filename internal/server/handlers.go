package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/github"
)

const (
	msgBaseRoute      = "base route is working"
	msgMissingRepoURL = "repoUrl is required"
	msgInvalidRepoURL = "Invalid repo URL"
	msgInvalidBody    = "Invalid request body"
	msgAnalyzeFailed  = "Failed to analyze repo"
)

// maxRequestBytes caps the size of an /analyze request body.
const maxRequestBytes = 1 << 20

var errMissingRepoURL = errors.New(msgMissingRepoURL)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// api holds the handler dependencies.
type api struct {
	source  analyzer.Source
	reports *reportCache
	logger  *log.Logger
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.handleRoot)
	mux.HandleFunc("POST /analyze", a.handleAnalyze)
	return mux
}

func (a *api) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": msgBaseRoute})
}

func (a *api) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	repoURL, err := readRepoURL(w, r)
	switch {
	case errors.Is(err, errMissingRepoURL):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingRepoURL})
		return
	case errors.Is(err, github.ErrInvalidRepoURL):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidRepoURL})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody, Details: err.Error()})
		return
	}

	owner, name, err := github.ParseRepoURL(repoURL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidRepoURL})
		return
	}

	repo := analyzer.Repo{Owner: owner, Name: name, URL: repoURL}
	report, shared, err := a.reports.get(r.Context(), repo.FullName(), func(ctx context.Context) (*analyzer.Report, error) {
		return analyzer.Run(ctx, a.source, repo)
	})
	if err != nil {
		a.logger.Printf("analyze %s: %v", repo.FullName(), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgAnalyzeFailed, Details: err.Error()})
		return
	}

	// Reports are shared between callers; only the echoed URL differs.
	out := *report
	out.Repo.URL = repoURL

	a.logger.Printf("analyze %s score=%d shared=%t in %s", repo.FullName(), out.Score, shared, time.Since(start).Round(time.Millisecond))
	writeJSON(w, http.StatusOK, &out)
}

// readRepoURL extracts repoUrl from a JSON or form-encoded body. Empty,
// null, false and zero values count as missing; any other non-string value
// is an invalid URL.
func readRepoURL(w http.ResponseWriter, r *http.Request) (string, error) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = body
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		v := strings.TrimSpace(r.PostForm.Get("repoUrl"))
		if v == "" {
			return "", errMissingRepoURL
		}
		return v, nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", errMissingRepoURL
	}

	var req struct {
		RepoURL any `json:"repoUrl"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", err
	}

	switch v := req.RepoURL.(type) {
	case nil:
		return "", errMissingRepoURL
	case string:
		if strings.TrimSpace(v) == "" {
			return "", errMissingRepoURL
		}
		return strings.TrimSpace(v), nil
	case bool:
		if !v {
			return "", errMissingRepoURL
		}
	case float64:
		if v == 0 {
			return "", errMissingRepoURL
		}
	}
	return "", github.ErrInvalidRepoURL
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
