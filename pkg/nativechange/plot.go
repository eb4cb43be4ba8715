package nativechange

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive HTML heatmap of the matrix: addons on the
// Y axis, version transitions on the X axis, one category's line changes per
// cell. This is the rendering path for the persisted heatmap artifact.
func (m HeatmapMatrix) RenderHTML(w io.Writer, category string) error {
	chart := m.Chart(category)

	if err := chart.Render(w); err != nil {
		return fmt.Errorf("render heatmap chart: %w", err)
	}

	return nil
}

// Chart builds the go-echarts heatmap for the matrix.
func (m HeatmapMatrix) Chart(category string) *charts.HeatMap {
	title := fmt.Sprintf("Line changes across versions (%s)", category)

	hm := charts.NewHeatMap()

	if len(m) == 0 {
		hm.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "No data"}))

		return hm
	}

	addons := m.addonNames()
	transitions := m.transitionLabels()

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Upstream commit volume per addon and version transition",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      transitions,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      addons,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        m.maxValue(),
			InRange:    &opts.VisualMapInRange{Color: []string{"#f6efa6", "#d88273", "#bf444c"}},
		}),
	)

	// HeatMapData value is [x, y, value]. Cells absent from the matrix are
	// data gaps and get no datapoint at all.
	data := make([]opts.HeatMapData, 0, len(addons)*len(transitions))

	for y, addon := range addons {
		for x, transition := range transitions {
			value, ok := m[addon][transition]
			if !ok {
				continue
			}

			data = append(data, opts.HeatMapData{Value: []any{x, y, value}})
		}
	}

	hm.AddSeries(category, data)

	return hm
}

func (m HeatmapMatrix) addonNames() []string {
	addons := make([]string, 0, len(m))
	for addon := range m {
		addons = append(addons, addon)
	}

	sort.Strings(addons)

	return addons
}

// transitionLabels returns every transition present in the matrix, ordered
// numerically by the encoded source version (newest first), matching the
// walk order.
func (m HeatmapMatrix) transitionLabels() []string {
	seen := map[string]bool{}

	var labels []string

	for _, row := range m {
		for label := range row {
			if !seen[label] {
				seen[label] = true

				labels = append(labels, label)
			}
		}
	}

	sort.Slice(labels, func(i, j int) bool {
		return transitionSortKey(labels[i]) > transitionSortKey(labels[j])
	})

	return labels
}

// transitionSortKey derives a numeric ordering key from a "<src>-<tgt>"
// label. Labels that fail to parse sort last; the schema validator rejects
// them before rendering anyway.
func transitionSortKey(label string) int {
	source, _, ok := strings.Cut(label, "-")
	if !ok {
		return -1
	}

	version, err := ParseVersion(source)
	if err != nil {
		return -1
	}

	return version.encode()
}

func (m HeatmapMatrix) maxValue() float32 {
	var maxVal int

	for _, row := range m {
		for _, value := range row {
			if value > maxVal {
				maxVal = value
			}
		}
	}

	return float32(maxVal)
}
