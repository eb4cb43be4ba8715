package nativechange_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

func TestHeatmapMatrix_RenderHTML(t *testing.T) {
	t.Parallel()

	matrix := nativechange.HeatmapMatrix{
		"sale":  {"17.0-16.0": 42, "16.0-15.0": 7},
		"stock": {"17.0-16.0": 3},
	}

	var buf bytes.Buffer
	require.NoError(t, matrix.RenderHTML(&buf, "fix"))

	html := buf.String()
	assert.Contains(t, html, "Line changes across versions (fix)")
	assert.Contains(t, html, "17.0-16.0")
	assert.Contains(t, html, "sale")
}

func TestHeatmapMatrix_RenderHTML_EmptyMatrix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, nativechange.HeatmapMatrix{}.RenderHTML(&buf, "fix"))

	assert.Contains(t, buf.String(), "No data")
}

func TestHeatmapMatrix_Chart_NotNil(t *testing.T) {
	t.Parallel()

	matrix := nativechange.HeatmapMatrix{"sale": {"16.0-15.0": 1}}

	assert.NotNil(t, matrix.Chart("local change"))
}
