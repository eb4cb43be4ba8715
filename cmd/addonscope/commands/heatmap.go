package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oca-tools/addonscope/internal/config"
	"github.com/oca-tools/addonscope/pkg/gitlib"
	"github.com/oca-tools/addonscope/pkg/histdiff"
	"github.com/oca-tools/addonscope/pkg/nativechange"
)

const (
	heatmapArgCount = 4
	heatmapFilePerm = 0o644
	minChainForWalk = 2
)

// HeatmapCommand holds configuration for the heatmap command.
type HeatmapCommand struct {
	configPath string
	minLines   int
	category   string
	remote     string
	addonsDir  string
	output     string
}

// NewHeatmapCommand creates the heatmap subcommand.
func NewHeatmapCommand() *cobra.Command {
	heatmapCmd := &HeatmapCommand{minLines: -1}

	cmd := &cobra.Command{
		Use:   "heatmap SOURCE TARGET REPO_PATH ADDONS",
		Short: "Build an addon x version-transition line-change matrix",
		Long: `Heatmap walks every whole major release between SOURCE and TARGET and runs
one transition analysis per adjacent version pair and addon. The line-change
total of one category fills each matrix cell; the matrix is written as a
single JSON document for the visualization consumer.

SOURCE and TARGET are release labels like '18.0' and '15.0' (a remote prefix
such as 'origin/18.0' is accepted and stripped). Failed cells are logged and
skipped: a partial matrix is still written.`,
		Args: cobra.ExactArgs(heatmapArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return heatmapCmd.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&heatmapCmd.configPath, "config", "", "config file path")
	cmd.Flags().IntVar(&heatmapCmd.minLines, "min-lines", -1, "only count commits with a diff >= min-lines")
	cmd.Flags().StringVarP(&heatmapCmd.category, "category", "c", "", "change category to extract per cell")
	cmd.Flags().StringVar(&heatmapCmd.remote, "remote", "", "remote name prefixed to release labels")
	cmd.Flags().StringVar(&heatmapCmd.addonsDir, "addons-dir", "", "tree path containing addons")
	cmd.Flags().StringVarP(&heatmapCmd.output, "output", "o", "", "path of the matrix JSON document")

	return cmd
}

func (c *HeatmapCommand) run(cmd *cobra.Command, args []string) error {
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

	// Fail fast on a category typo instead of discovering it per cell.
	if !nativechange.ValidCategory(c.category) {
		return fmt.Errorf("%w: %q", nativechange.ErrUnknownCategory, c.category)
	}

	chain, err := nativechange.ParseChain(stripRemote(source), stripRemote(target))
	if err != nil {
		return err
	}

	// A chain with fewer than two versions has no adjacent pair to walk;
	// the result is a valid empty matrix, not an error.
	if len(chain) < minChainForWalk {
		slog.Default().Warn("version range yields no transition",
			"source", source, "target", target)
	}

	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	walker := &nativechange.Walker{
		Analyzer: nativechange.NewAnalyzer(histdiff.NewProvider(repo, c.addonsDir)),
		MinLines: c.minLines,
		Category: nativechange.Category(c.category),
		Remote:   c.remote,
		Log:      slog.Default(),
	}

	walk, err := walker.BuildHeatmap(cmd.Context(), addons, chain)
	if err != nil {
		return err
	}

	if writeErr := c.writeMatrix(walk.Matrix); writeErr != nil {
		return writeErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d addons, %d failed cells)\n",
		c.output, len(walk.Matrix), len(walk.Errors))

	return nil
}

func (c *HeatmapCommand) applyConfig(cfg *config.Config) {
	if c.minLines < 0 {
		c.minLines = cfg.Heatmap.MinLines
	}

	if c.minLines < 0 {
		c.minLines = 0
	}

	if c.category == "" {
		c.category = cfg.Heatmap.Category
	}

	if c.remote == "" {
		c.remote = cfg.Repo.Remote
	}

	if c.addonsDir == "" {
		c.addonsDir = cfg.Repo.AddonsDir
	}

	if c.output == "" {
		c.output = cfg.Heatmap.Output
	}
}

func (c *HeatmapCommand) writeMatrix(matrix nativechange.HeatmapMatrix) error {
	file, err := os.OpenFile(c.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, heatmapFilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.output, err)
	}
	defer file.Close()

	return matrix.WriteJSON(file)
}

// stripRemote reduces "origin/18.0" to "18.0"; bare labels pass through.
func stripRemote(label string) string {
	if idx := strings.LastIndexByte(label, '/'); idx >= 0 {
		return label[idx+1:]
	}

	return label
}
