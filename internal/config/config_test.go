package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oca-tools/addonscope/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRemote, cfg.Repo.Remote)
	assert.Equal(t, config.DefaultAddonsDir, cfg.Repo.AddonsDir)
	assert.Equal(t, config.DefaultAnalyzeMinLines, cfg.Analyze.MinLines)
	assert.Equal(t, config.DefaultAnalyzeFormat, cfg.Analyze.Format)
	assert.False(t, cfg.Analyze.NoColor)
	assert.Equal(t, config.DefaultHeatmapMinLines, cfg.Heatmap.MinLines)
	assert.Equal(t, config.DefaultHeatmapCategory, cfg.Heatmap.Category)
	assert.Equal(t, config.DefaultHeatmapOutput, cfg.Heatmap.Output)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	content := `
repo:
  remote: upstream
  addons_dir: odoo/addons
analyze:
  min_lines: 10
  format: json
heatmap:
  category: fix
  output: out.json
`

	path := filepath.Join(t.TempDir(), "addonscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Repo.Remote)
	assert.Equal(t, "odoo/addons", cfg.Repo.AddonsDir)
	assert.Equal(t, 10, cfg.Analyze.MinLines)
	assert.Equal(t, "json", cfg.Analyze.Format)
	assert.Equal(t, "fix", cfg.Heatmap.Category)
	assert.Equal(t, "out.json", cfg.Heatmap.Output)

	// Untouched keys keep their defaults.
	assert.Equal(t, config.DefaultHeatmapMinLines, cfg.Heatmap.MinLines)
	assert.False(t, cfg.Analyze.NoColor)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "negative min_lines",
			content: "analyze:\n  min_lines: -1\n",
			wantErr: config.ErrInvalidMinLines,
		},
		{
			name:    "unknown format",
			content: "analyze:\n  format: xml\n",
			wantErr: config.ErrInvalidFormat,
		},
		{
			name:    "unknown category",
			content: "heatmap:\n  category: fixes\n",
			wantErr: config.ErrInvalidCategory,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "addonscope.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := config.LoadConfig(path)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_ZeroConfigFails(t *testing.T) {
	t.Parallel()

	var cfg config.Config

	assert.Error(t, cfg.Validate())
}
