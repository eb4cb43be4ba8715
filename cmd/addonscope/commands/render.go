package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oca-tools/addonscope/internal/config"
	"github.com/oca-tools/addonscope/pkg/nativechange"
)

const (
	renderArgCount = 1
	renderFilePerm = 0o644
)

// RenderCommand holds configuration for the render command.
type RenderCommand struct {
	configPath string
	category   string
	output     string
}

// NewRenderCommand creates the render subcommand.
func NewRenderCommand() *cobra.Command {
	renderCmd := &RenderCommand{}

	cmd := &cobra.Command{
		Use:   "render DATA_PATH",
		Short: "Render a heatmap matrix document as interactive HTML",
		Long: `Render reads a heatmap matrix JSON document (as written by the heatmap
command), validates it against the published contract and writes an
interactive HTML heatmap.`,
		Args: cobra.ExactArgs(renderArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderCmd.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&renderCmd.configPath, "config", "", "config file path")
	cmd.Flags().StringVarP(&renderCmd.category, "category", "c", "", "category label for the chart title")
	cmd.Flags().StringVarP(&renderCmd.output, "output", "o", "heatmap.html", "output HTML file")

	return cmd
}

func (c *RenderCommand) run(cmd *cobra.Command, dataPath string) error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	if c.category == "" {
		c.category = cfg.Heatmap.Category
	}

	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", dataPath, err)
	}

	// Reject malformed documents before handing them to the renderer.
	if err := nativechange.ValidateHeatmapDocument(data); err != nil {
		return err
	}

	matrix, err := nativechange.ReadHeatmap(bytes.NewReader(data))
	if err != nil {
		return err
	}

	file, err := os.OpenFile(c.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, renderFilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.output, err)
	}
	defer file.Close()

	if err := matrix.RenderHTML(file, c.category); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", c.output)

	return nil
}
