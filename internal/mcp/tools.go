package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/github"
)

// RulesResult lists the classification tables.
type RulesResult struct {
	Frameworks []analyzer.Rule `json:"frameworks"`
	Tools      []analyzer.Rule `json:"tools"`
}

// analyzeArgs is the input of the analyze_repo tool.
type analyzeArgs struct {
	URL string `json:"url"`
}

var (
	noArgsSchema   = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	analyzeSchema  = json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","description":"Repository URL, e.g. https://github.com/owner/repo"}},"required":["url"],"additionalProperties":false}`)
	errMissingURL  = errors.New("url is required")
	errNoSourceSet = errors.New("no repository source configured")
)

// addTools registers the MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "analyze_repo",
		Description: "Analyze a GitHub repository: detected stack, run steps, warnings, 0-100 health score and a Markdown report.",
		InputSchema: analyzeSchema,
		Handler:     s.handleAnalyzeRepo,
	})
	s.registerTool(toolDef{
		Name:        "list_rules",
		Description: "Framework and tool detection rules with the dependency names that trigger them.",
		InputSchema: noArgsSchema,
		Handler:     s.handleListRules,
	})
}

// handleAnalyzeRepo runs a full analysis of the repository named by args.url.
func (s *Server) handleAnalyzeRepo(ctx context.Context, args json.RawMessage) (any, error) {
	var a analyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	a.URL = strings.TrimSpace(a.URL)
	if a.URL == "" {
		return nil, errMissingURL
	}
	if s.source == nil {
		return nil, errNoSourceSet
	}

	owner, name, err := github.ParseRepoURL(a.URL)
	if err != nil {
		return nil, err
	}

	return analyzer.Run(ctx, s.source, analyzer.Repo{Owner: owner, Name: name, URL: a.URL})
}

// handleListRules returns copies of the rule tables.
func (s *Server) handleListRules(_ context.Context, _ json.RawMessage) (any, error) {
	return RulesResult{
		Frameworks: analyzer.FrameworkRules(),
		Tools:      analyzer.ToolRules(),
	}, nil
}
