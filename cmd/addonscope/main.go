// Package main provides the entry point for the addonscope CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oca-tools/addonscope/cmd/addonscope/commands"
	"github.com/oca-tools/addonscope/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "addonscope",
		Short: "Addonscope - upstream change analysis for modular monorepos",
		Long: `Addonscope inspects the commit history between two release branches,
isolates the commits touching a given addon, classifies them by commit-message
heuristics and aggregates line-change volume per category.

Commands:
  analyze   Classify and aggregate commits for one branch transition
  heatmap   Build an addon x version-transition line-change matrix
  render    Render a heatmap matrix document as interactive HTML
  mcp       Start MCP server for AI agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewHeatmapCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "addonscope %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
