// Package commands implements CLI command handlers for addonscope.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oca-tools/addonscope/internal/config"
	"github.com/oca-tools/addonscope/pkg/gitlib"
	"github.com/oca-tools/addonscope/pkg/histdiff"
	"github.com/oca-tools/addonscope/pkg/nativechange"
	"github.com/oca-tools/addonscope/pkg/nativechange/report"
)

const analyzeArgCount = 4

// ErrNoAddons is returned when the addons argument parses to an empty list.
var ErrNoAddons = errors.New("no addons given; pass a comma-separated list, e.g. sale,stock")

// AnalyzeCommand holds configuration for the analyze command.
type AnalyzeCommand struct {
	configPath string
	minLines   int
	format     string
	noColor    bool
	addonsDir  string
}

// NewAnalyzeCommand creates the analyze subcommand.
func NewAnalyzeCommand() *cobra.Command {
	analyzeCmd := &AnalyzeCommand{minLines: -1}

	cmd := &cobra.Command{
		Use:   "analyze SOURCE TARGET REPO_PATH ADDONS",
		Short: "Classify and aggregate commits unique to addons for one branch transition",
		Long: `Analyze classifies every commit present on SOURCE but not on TARGET that
touches one of the given addons, and aggregates commit counts and line-change
volume per change category.

SOURCE and TARGET are branch refs, e.g. 'origin/18.0' and 'origin/17.0'.
ADDONS is a comma-separated list of addon names.

E.g. to see what is new in 18.0 when you are on 17.0:

  addonscope analyze origin/18.0 origin/17.0 ~/src/odoo delivery,stock`,
		Args: cobra.ExactArgs(analyzeArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeCmd.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&analyzeCmd.configPath, "config", "", "config file path")
	cmd.Flags().IntVar(&analyzeCmd.minLines, "min-lines", -1, "only count commits with a diff >= min-lines")
	cmd.Flags().StringVarP(&analyzeCmd.format, "format", "f", "", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&analyzeCmd.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&analyzeCmd.addonsDir, "addons-dir", "", "tree path containing addons")

	return cmd
}

func (c *AnalyzeCommand) run(cmd *cobra.Command, args []string) error {
	source, target, repoPath := args[0], args[1], args[2]

	addons := splitAddons(args[3])
	if len(addons) == 0 {
		return ErrNoAddons
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	c.applyConfig(cfg)

	switch c.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidFormat, c.format)
	}

	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	analyzer := nativechange.NewAnalyzer(histdiff.NewProvider(repo, c.addonsDir))

	results := map[string]*nativechange.Result{}

	for _, addon := range addons {
		result, analyzeErr := analyzer.Analyze(cmd.Context(), addon, source, target, c.minLines)
		if analyzeErr != nil {
			return analyzeErr
		}

		results[addon] = result

		if c.format == "text" {
			renderer := report.NewTextRenderer(report.Style{NoColor: c.noColor})
			renderer.Render(cmd.OutOrStdout(), addon, source, target, result)
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	return c.writeStructured(cmd.OutOrStdout(), results)
}

// applyConfig fills in everything the flags left unset.
func (c *AnalyzeCommand) applyConfig(cfg *config.Config) {
	if c.minLines < 0 {
		c.minLines = cfg.Analyze.MinLines
	}

	if c.minLines < 0 {
		c.minLines = 0
	}

	if c.format == "" {
		c.format = cfg.Analyze.Format
	}

	if !c.noColor {
		c.noColor = cfg.Analyze.NoColor
	}

	if c.addonsDir == "" {
		c.addonsDir = cfg.Repo.AddonsDir
	}
}

func (c *AnalyzeCommand) writeStructured(w io.Writer, results map[string]*nativechange.Result) error {
	doc := report.NewDocument(results)

	switch c.format {
	case "json":
		return doc.WriteJSON(w)
	case "yaml":
		return doc.WriteYAML(w)
	default:
		return nil
	}
}

func splitAddons(arg string) []string {
	var addons []string

	for _, part := range strings.Split(arg, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addons = append(addons, trimmed)
		}
	}

	return addons
}
