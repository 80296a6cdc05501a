// Package suggest turns findings into an ordered, conflict-free list of
// transformation suggestions: scoring and prioritization, conflict
// resolution, and phase scheduling.
package suggest

import (
	"sort"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/transform"
)

// DefaultMaxSuggestions caps the suggestion list after sorting
const DefaultMaxSuggestions = 50

// template maps one issue type to its suggested fix. kind overrides
// transformer for the few issues whose fix depends on the finding.
type template struct {
	action      string
	transformer transform.Kind
	kind        func(f domain.Finding) transform.Kind
	params      func(f domain.Finding) domain.Params
	impact      string
	rationale   string
}

func (t template) kindFor(f domain.Finding) transform.Kind {
	if t.kind != nil {
		return t.kind(f)
	}
	return t.transformer
}

// templates is the compile-time issue-to-fix table. A finding whose
// issue type has no entry produces no suggestion.
var templates = map[domain.IssueType]template{
	domain.IssueMissingValues: {
		action: "Handle missing values",
		// Mostly-null columns are dropped by row; fillable ones get the
		// median
		kind: func(f domain.Finding) transform.Kind {
			if f.Details != nil {
				if ratio, ok := f.Details["null_ratio"].(float64); ok && ratio > 0.5 {
					return transform.KindDropNullRows
				}
			}
			return transform.KindFillMissing
		},
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns, "strategy": "median"}
		},
		impact:    "Removes or fills null values to prevent errors",
		rationale: "Missing values cause errors in ML and analysis",
	},
	domain.IssueEmptyStrings: {
		action:      "Convert empty strings to null",
		transformer: transform.KindEmptyToNull,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "Standardizes missing value representation",
		rationale: "Empty strings are often unintentional missing values",
	},
	domain.IssueDuplicateRows: {
		action:      "Remove duplicate rows",
		transformer: transform.KindDropDuplicates,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"keep": "first"}
		},
		impact:    "Removes redundant data that skews analysis",
		rationale: "Exact duplicates inflate counts and bias statistics",
	},
	domain.IssueInconsistentCase: {
		action:      "Standardize text casing",
		transformer: transform.KindLowercase,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "Ensures consistent text representation",
		rationale: "Mixed casing causes mismatches in grouping and joins",
	},
	domain.IssueInconsistentDateFormat: {
		action:      "Standardize date format",
		transformer: transform.KindStandardizeDates,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns, "format": "2006-01-02"}
		},
		impact:    "Ensures consistent date parsing",
		rationale: "Mixed date formats cause parsing errors",
	},
	domain.IssueWhitespacePadding: {
		action:      "Strip whitespace from values",
		transformer: transform.KindStripWhitespace,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "Removes accidental padding that causes mismatches",
		rationale: "Leading/trailing whitespace causes silent matching failures",
	},
	domain.IssueOutliers: {
		action:      "Review and handle outliers",
		transformer: transform.KindClipOutliers,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{
				"columns":   f.Columns,
				"method":    f.Details["method"],
				"threshold": f.Details["threshold"],
			}
		},
		impact:    "Reduces influence of extreme values on analysis",
		rationale: "Outliers can heavily skew means and model training",
	},
	domain.IssueNumericAsString: {
		action:      "Convert to numeric type",
		transformer: transform.KindToNumeric,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "Enables numeric operations and reduces memory",
		rationale: "Numeric data stored as strings prevents mathematical operations",
	},
	domain.IssueBooleanAsString: {
		action:      "Convert to boolean type",
		transformer: transform.KindToBoolean,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "Correct type enables boolean operations",
		rationale: "Boolean data as strings wastes memory and prevents logic ops",
	},
	domain.IssueSimilarColumns: {
		action:      "Review potentially duplicate columns",
		transformer: transform.KindFlagReview,
		params: func(f domain.Finding) domain.Params {
			return domain.Params{"columns": f.Columns}
		},
		impact:    "May reduce redundant data",
		rationale: "Similar columns may be duplicated data or candidates for merging",
	},
}

// Engine generates suggestions from findings. It owns the id counter:
// ids are assigned in emission order before sorting and stay stable for
// one analysis session, so a suggestion can be addressed by id even
// after filtering or truncation. Engines are single-use; create one per
// session.
type Engine struct {
	useCase domain.UseCase
	max     int
	nextID  int
}

// NewEngine creates an engine for one analysis session. A max of zero
// or less falls back to DefaultMaxSuggestions.
func NewEngine(useCase domain.UseCase, max int) *Engine {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}
	return &Engine{useCase: useCase, max: max, nextID: 1}
}

// Generate maps findings to suggestions, sorts them by descending
// effective priority score, and truncates to the configured limit.
// Truncation happens only after sorting so the most important
// suggestions under the use case always survive.
func (e *Engine) Generate(findings []domain.Finding) []domain.Suggestion {
	boosts := useCaseBoosts[e.useCase]

	suggestions := make([]domain.Suggestion, 0, len(findings))
	for _, finding := range findings {
		tpl, ok := templates[finding.IssueType]
		if !ok {
			continue
		}
		boost := boosts[finding.IssueType]
		if boost == 0 {
			boost = 1.0
		}

		suggestions = append(suggestions, domain.Suggestion{
			ID:          e.nextID,
			Finding:     finding,
			Action:      tpl.action,
			Transformer: string(tpl.kindFor(finding)),
			Params:      tpl.params(finding),
			Priority:    boostPriority(finding.Severity, boost),
			Impact:      tpl.impact,
			Rationale:   tpl.rationale,
		})
		e.nextID++
	}

	score := func(s domain.Suggestion) float64 {
		boost := boosts[s.Finding.IssueType]
		if boost == 0 {
			boost = 1.0
		}
		return float64(s.Finding.Severity.Rank()) * boost
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		si, sj := score(suggestions[i]), score(suggestions[j])
		if si != sj {
			return si > sj
		}
		ci, cj := suggestions[i].Finding.Confidence, suggestions[j].Finding.Confidence
		if ci != cj {
			return ci > cj
		}
		return suggestions[i].ID < suggestions[j].ID
	})

	if len(suggestions) > e.max {
		suggestions = suggestions[:e.max]
	}
	return suggestions
}

// boostPriority bumps the displayed priority one level when the use
// case boosts the issue strongly
func boostPriority(severity domain.Severity, boost float64) domain.Severity {
	switch {
	case boost >= 1.4 && severity == domain.SeverityLow:
		return domain.SeverityMedium
	case boost >= 1.3 && severity == domain.SeverityMedium:
		return domain.SeverityHigh
	}
	return severity
}
