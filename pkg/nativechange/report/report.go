// Package report renders single-transition analysis results for humans and
// machines. Rendering is driven by a per-category policy table so that new
// categories never require touching the renderer itself.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

// Policy controls how one category is rendered in the text report.
type Policy struct {
	// Itemize lists every member commit (short hash plus summary line).
	// Categories with Itemize false are reported with counts only.
	Itemize bool
}

// DefaultPolicies returns the rendering policy for the built-in categories.
// Translations are bulk commits and are never worth itemizing.
func DefaultPolicies() map[nativechange.Category]Policy {
	policies := map[nativechange.Category]Policy{}
	for _, cat := range nativechange.Categories() {
		policies[cat] = Policy{Itemize: true}
	}

	policies[nativechange.CategoryTranslations] = Policy{Itemize: false}

	return policies
}

// Style is a stateless formatting capability handed to the renderer. A zero
// Style colorizes; NoColor turns every paint call into plain text.
type Style struct {
	NoColor bool
}

func (s Style) paint(c *color.Color, format string, args ...any) string {
	if s.NoColor {
		return fmt.Sprintf(format, args...)
	}

	return c.Sprintf(format, args...)
}

// Header paints a section header.
func (s Style) Header(text string) string {
	return s.paint(color.New(color.FgMagenta, color.Bold), "%s", text)
}

// Emph paints an emphasized value.
func (s Style) Emph(text string) string {
	return s.paint(color.New(color.Bold), "%s", text)
}

// Count paints a commit count.
func (s Style) Count(value int) string {
	return s.paint(color.New(color.FgBlue), "%s", humanize.Comma(int64(value)))
}

// Lines paints a line-change total.
func (s Style) Lines(value int) string {
	return s.paint(color.New(color.FgYellow), "%s", humanize.Comma(int64(value)))
}

// TextRenderer writes the human-readable analysis report.
type TextRenderer struct {
	Style    Style
	Policies map[nativechange.Category]Policy
}

// NewTextRenderer creates a renderer with the default policy table.
func NewTextRenderer(style Style) *TextRenderer {
	return &TextRenderer{Style: style, Policies: DefaultPolicies()}
}

// Render writes the full report for one (addon, source, target) analysis:
// a header, global totals, a per-category summary table and, for every
// category whose policy says so, the itemized member commits.
func (r *TextRenderer) Render(w io.Writer, addon, source, target string, result *nativechange.Result) {
	style := r.Style

	fmt.Fprintf(w, "Analyzing %s from %s to %s\n",
		style.Emph(addon), style.Emph(source), style.Emph(target))

	fmt.Fprintf(w, "\n%s\n", style.Header("--- Analysis Results ---"))
	fmt.Fprintf(w, "%s %s\n", style.Emph("Total commits:"), style.Count(result.TotalCommits))
	fmt.Fprintf(w, "%s %s\n", style.Emph("Total line changes:"), style.Lines(result.TotalLineChanges))

	if result.TotalCommits == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", style.Header("--- Commits and Line Changes per Category ---"))
	r.writeSummaryTable(w, result)

	for _, cat := range result.CategoryOrder() {
		policy := r.Policies[cat]
		if !policy.Itemize {
			continue
		}

		r.writeCommitList(w, cat, result.Categories[cat])
	}
}

func (r *TextRenderer) writeSummaryTable(w io.Writer, result *nativechange.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Category", "Commits", "Line changes"})

	for _, cat := range result.CategoryOrder() {
		stats := result.Categories[cat]
		tw.AppendRow(table.Row{
			string(cat),
			humanize.Comma(int64(stats.CommitCount)),
			humanize.Comma(int64(stats.LineChanges)),
		})
	}

	tw.AppendFooter(table.Row{
		"total",
		humanize.Comma(int64(result.TotalCommits)),
		humanize.Comma(int64(result.TotalLineChanges)),
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func (r *TextRenderer) writeCommitList(w io.Writer, cat nativechange.Category, stats *nativechange.CategoryStats) {
	fmt.Fprintf(w, "\n%s\n", r.Style.Header(fmt.Sprintf("Category: %s", cat)))

	for i, commit := range stats.Commits {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, r.Style.Emph(commit.ShortHash()), commit.Summary)
	}
}
