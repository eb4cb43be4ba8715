package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oca-tools/addonscope/pkg/gitlib"
	"github.com/oca-tools/addonscope/pkg/histdiff"
	"github.com/oca-tools/addonscope/pkg/nativechange"
)

// Tool name constants.
const (
	ToolNameAnalyze = "addonscope_analyze"
	ToolNameHeatmap = "addonscope_heatmap"
)

const analyzeToolDescription = "Classify and aggregate the commits unique to an addon " +
	"between two branch refs of a modular monorepo. Returns per-category commit counts " +
	"and line-change totals."

const heatmapToolDescription = "Walk every major release between two versions and build " +
	"a heatmap matrix of one category's line changes per addon and version transition."

// Sentinel errors for tool input validation.
var (
	// ErrEmptyRepoPath indicates the repo_path parameter is empty.
	ErrEmptyRepoPath = errors.New("repo_path parameter is required and must not be empty")
	// ErrRepoPathNotAbsolute indicates the repo_path is not an absolute path.
	ErrRepoPathNotAbsolute = errors.New("repo_path must be an absolute path")
	// ErrRepoNotFound indicates the repository path does not exist.
	ErrRepoNotFound = errors.New("repository path does not exist")
	// ErrEmptyAddon indicates no addon was provided.
	ErrEmptyAddon = errors.New("at least one addon is required")
	// ErrEmptyRef indicates a source or target ref is missing.
	ErrEmptyRef = errors.New("source and target parameters are required")
)

// AnalyzeInput is the input schema for the addonscope_analyze tool.
type AnalyzeInput struct {
	RepoPath  string `json:"repo_path"            jsonschema:"absolute path to the monorepo checkout"`
	Addon     string `json:"addon"                jsonschema:"name of the addon to analyze"`
	Source    string `json:"source"               jsonschema:"source branch ref, e.g. origin/18.0"`
	Target    string `json:"target"               jsonschema:"target branch ref, e.g. origin/17.0"`
	MinLines  int    `json:"min_lines,omitempty"  jsonschema:"ignore commits changing fewer lines than this"`
	AddonsDir string `json:"addons_dir,omitempty" jsonschema:"tree path containing addons (default: addons)"`
}

// HeatmapInput is the input schema for the addonscope_heatmap tool.
type HeatmapInput struct {
	RepoPath  string   `json:"repo_path"            jsonschema:"absolute path to the monorepo checkout"`
	Addons    []string `json:"addons"               jsonschema:"addon names to include in the matrix"`
	Source    string   `json:"source"               jsonschema:"newest release label, e.g. 18.0"`
	Target    string   `json:"target"               jsonschema:"oldest release label, e.g. 15.0"`
	Category  string   `json:"category,omitempty"   jsonschema:"change category to extract (default: local change)"`
	MinLines  int      `json:"min_lines,omitempty"  jsonschema:"ignore commits changing fewer lines than this"`
	Remote    string   `json:"remote,omitempty"     jsonschema:"remote name prefixed to release labels (default: origin)"`
	AddonsDir string   `json:"addons_dir,omitempty" jsonschema:"tree path containing addons (default: addons)"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// heatmapPayload is the structured result of the heatmap tool: the matrix
// plus the failed cells, so data gaps stay visible to the caller.
type heatmapPayload struct {
	Matrix nativechange.HeatmapMatrix `json:"matrix"`
	Errors []string                   `json:"errors,omitempty"`
}

// handleAnalyze processes addonscope_analyze tool calls.
func handleAnalyze(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input AnalyzeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateRepoPath(input.RepoPath); err != nil {
		return errorResult(err)
	}

	if input.Addon == "" {
		return errorResult(ErrEmptyAddon)
	}

	if input.Source == "" || input.Target == "" {
		return errorResult(ErrEmptyRef)
	}

	repo, err := gitlib.OpenRepository(input.RepoPath)
	if err != nil {
		return errorResult(err)
	}
	defer repo.Free()

	analyzer := nativechange.NewAnalyzer(histdiff.NewProvider(repo, addonsDirOrDefault(input.AddonsDir)))

	result, err := analyzer.Analyze(ctx, input.Addon, input.Source, input.Target, input.MinLines)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(result)
}

// handleHeatmap processes addonscope_heatmap tool calls.
func handleHeatmap(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input HeatmapInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateRepoPath(input.RepoPath); err != nil {
		return errorResult(err)
	}

	if len(input.Addons) == 0 {
		return errorResult(ErrEmptyAddon)
	}

	chain, err := nativechange.ParseChain(input.Source, input.Target)
	if err != nil {
		return errorResult(err)
	}

	repo, err := gitlib.OpenRepository(input.RepoPath)
	if err != nil {
		return errorResult(err)
	}
	defer repo.Free()

	category := input.Category
	if category == "" {
		category = string(nativechange.CategoryLocalChange)
	}

	remote := input.Remote
	if remote == "" {
		remote = "origin"
	}

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(histdiff.NewProvider(repo, addonsDirOrDefault(input.AddonsDir))),
		MinLines: input.MinLines,
		Category: nativechange.Category(category),
		Remote:   remote,
	}

	walk, err := walker.BuildHeatmap(ctx, input.Addons, chain)
	if err != nil {
		return errorResult(err)
	}

	payload := heatmapPayload{Matrix: walk.Matrix}
	for _, cellErr := range walk.Errors {
		payload.Errors = append(payload.Errors, cellErr.Error())
	}

	return jsonResult(payload)
}

func addonsDirOrDefault(dir string) string {
	if dir == "" {
		return "addons"
	}

	return dir
}

func validateRepoPath(repoPath string) error {
	if repoPath == "" {
		return ErrEmptyRepoPath
	}

	if !filepath.IsAbs(repoPath) {
		return fmt.Errorf("%w: %s", ErrRepoPathNotAbsolute, repoPath)
	}

	if _, err := os.Stat(repoPath); err != nil {
		return fmt.Errorf("%w: %s", ErrRepoNotFound, repoPath)
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
