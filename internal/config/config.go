// Package config loads and validates addonscope configuration from file,
// environment and defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

// Config is the top-level configuration struct for addonscope.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Repo    RepoConfig    `mapstructure:"repo"`
	Analyze AnalyzeConfig `mapstructure:"analyze"`
	Heatmap HeatmapConfig `mapstructure:"heatmap"`
}

// RepoConfig describes how to reach the monorepo under analysis.
type RepoConfig struct {
	// Remote is the remote name prefixed to release labels to form branch
	// refs ("origin" turns "17.0" into "origin/17.0"). Empty disables the
	// prefix.
	Remote string `mapstructure:"remote"`
	// AddonsDir is the tree path containing addons. Empty means addons
	// live at the repository root.
	AddonsDir string `mapstructure:"addons_dir"`
}

// AnalyzeConfig holds single-transition analysis settings.
type AnalyzeConfig struct {
	// MinLines drops commits whose changed-line count is strictly below
	// this threshold. Zero admits everything.
	MinLines int `mapstructure:"min_lines"`
	// Format selects the output serialization: text, json or yaml.
	Format string `mapstructure:"format"`
	// NoColor disables ANSI colors in the text report.
	NoColor bool `mapstructure:"no_color"`
}

// HeatmapConfig holds cross-version walk settings.
type HeatmapConfig struct {
	MinLines int `mapstructure:"min_lines"`
	// Category is the change category whose line totals fill the matrix.
	Category string `mapstructure:"category"`
	// Output is the path the matrix JSON document is written to.
	Output string `mapstructure:"output"`
}

// Default configuration values.
const (
	DefaultRemote          = "origin"
	DefaultAddonsDir       = "addons"
	DefaultAnalyzeMinLines = 0
	DefaultAnalyzeFormat   = "text"
	DefaultHeatmapMinLines = 0
	DefaultHeatmapCategory = string(nativechange.CategoryLocalChange)
	DefaultHeatmapOutput   = "heatmap.json"
)

// Validation errors.
var (
	ErrInvalidMinLines = errors.New("min_lines must be >= 0")
	ErrInvalidFormat   = errors.New("format must be one of: text, json, yaml")
	ErrInvalidCategory = errors.New("category is not a known change category")
)

// Validate checks cross-field constraints. A zero Config is not valid on its
// own; defaults are applied by the loader before validation.
func (c *Config) Validate() error {
	if c.Analyze.MinLines < 0 || c.Heatmap.MinLines < 0 {
		return ErrInvalidMinLines
	}

	switch c.Analyze.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Analyze.Format)
	}

	if !nativechange.ValidCategory(c.Heatmap.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Heatmap.Category)
	}

	return nil
}
