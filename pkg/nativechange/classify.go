package nativechange

import (
	"regexp"
	"strings"
)

// Category is a change-type label assigned to a commit by heuristic
// inspection of its summary line. The set is closed: every summary maps to
// exactly one of the labels below, with CategoryOther as the fallback.
type Category string

// The closed set of change categories.
const (
	CategoryFix          Category = "fix"
	CategoryLocalChange  Category = "local change"
	CategoryGlobalChange Category = "global change"
	CategoryTranslations Category = "translations"
	CategoryOther        Category = "other"
)

// Categories returns all known categories in rule-evaluation order.
func Categories() []Category {
	return []Category{
		CategoryFix,
		CategoryLocalChange,
		CategoryGlobalChange,
		CategoryTranslations,
		CategoryOther,
	}
}

// ValidCategory reports whether label names a known category. Callers that
// take a category from configuration should check it here before starting
// any work, rather than discovering a typo at the first matrix cell.
func ValidCategory(label string) bool {
	for _, cat := range Categories() {
		if string(cat) == label {
			return true
		}
	}

	return false
}

// classRule is a single classification rule: a pattern on the lower-cased
// summary plus an optional extra predicate. Rules are evaluated in order and
// the first match wins, so overlapping patterns resolve by position.
type classRule struct {
	pattern *regexp.Regexp
	extra   func(summary string) bool
	label   Category
}

// classRules is the ordered first-match-wins rule table. A bracketed tag
// followed by at least one non-whitespace token is a scoped change; a bare
// [IMP]/[REF] tag only counts as a global change when the summary also
// mentions "core" or "*".
var classRules = []classRule{
	{pattern: regexp.MustCompile(`\[fix\]\s*\S+`), label: CategoryFix},
	{pattern: regexp.MustCompile(`\[imp\]\s*\S+|\[ref\]\s*\S+`), label: CategoryLocalChange},
	{
		pattern: regexp.MustCompile(`\[imp\]|\[ref\]`),
		extra: func(summary string) bool {
			return strings.Contains(summary, "core") || strings.Contains(summary, "*")
		},
		label: CategoryGlobalChange,
	},
	{pattern: regexp.MustCompile(`\[i18n\]`), label: CategoryTranslations},
}

// Classify maps a commit summary line to its change category. The match is
// case-insensitive and considers only the summary, never the message body.
// An empty summary and any summary matched by no rule yield CategoryOther.
func Classify(summary string) Category {
	lowered := strings.ToLower(summary)

	for _, rule := range classRules {
		if !rule.pattern.MatchString(lowered) {
			continue
		}

		if rule.extra != nil && !rule.extra(lowered) {
			continue
		}

		return rule.label
	}

	return CategoryOther
}
