package analyzer

import (
	"fmt"
	"strings"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// minNumericRatio is the share of non-null values that must parse as
// numbers before a string column is flagged as numeric-as-string
const minNumericRatio = 0.8

// booleanTokens are the values accepted as boolean representations,
// compared case-insensitively
var booleanTokens = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"y": {}, "n": {},
	"1": {}, "0": {},
	"t": {}, "f": {},
	"on": {}, "off": {},
}

// TypeDetector reports string columns whose values are uniformly
// parseable as a narrower type (numeric or boolean) and are therefore
// stored wrong.
type TypeDetector struct{}

// NewTypeDetector creates a stored-type detector
func NewTypeDetector() *TypeDetector {
	return &TypeDetector{}
}

// Name returns the detector name
func (d *TypeDetector) Name() string {
	return "types"
}

// Description returns a human-readable description
func (d *TypeDetector) Description() string {
	return "Detects numeric and boolean data stored as strings"
}

// Detect reports at most one finding per column; a column that could
// pass both checks is reported as boolean, the narrower type. Columns
// the profiler typed boolean are still examined: the dataset stores
// every value as a string, so a boolean dtype is exactly the mismatch
// this detector reports.
func (d *TypeDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	var findings []domain.Finding
	for _, name := range sortedColumnNames(profile) {
		cp := profile.Columns[name]
		if cp.DType != "string" && cp.DType != "boolean" {
			continue
		}
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		values := col.NonNull()
		if len(values) == 0 {
			continue
		}

		if f, ok := d.booleanFinding(name, values); ok {
			findings = append(findings, f)
			continue
		}
		if cp.DType != "string" {
			continue
		}
		if f, ok := d.numericFinding(name, values); ok {
			findings = append(findings, f)
		}
	}
	return findings, nil, nil
}

// booleanFinding matches when every non-null value is a boolean token
// and at least two distinct tokens occur. Single-token columns are
// ambiguous: a column of all "1" is more likely a count.
func (d *TypeDetector) booleanFinding(name string, values []string) (domain.Finding, bool) {
	distinct := make(map[string]struct{}, 2)
	for _, v := range values {
		token := strings.ToLower(strings.TrimSpace(v))
		if _, ok := booleanTokens[token]; !ok {
			return domain.Finding{}, false
		}
		distinct[token] = struct{}{}
	}
	if len(distinct) < 2 {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueBooleanAsString,
		Severity:  domain.SeverityMedium,
		Columns:   []string{name},
		Details: map[string]any{
			"distinct_tokens": len(distinct),
		},
		Message:    fmt.Sprintf("Column '%s' contains boolean values stored as strings", name),
		Confidence: 0.95,
	}, true
}

func (d *TypeDetector) numericFinding(name string, values []string) (domain.Finding, bool) {
	parseable := 0
	for _, v := range values {
		if _, ok := dataset.ParseNumeric(v); ok {
			parseable++
		}
	}
	ratio := float64(parseable) / float64(len(values))
	if ratio <= minNumericRatio {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueNumericAsString,
		Severity:  domain.SeverityMedium,
		Columns:   []string{name},
		Details: map[string]any{
			"numeric_ratio": round3(ratio),
		},
		Message: fmt.Sprintf("Column '%s' contains numeric values stored as strings (%.1f%% parseable)",
			name, ratio*100),
		Confidence: ratio,
	}, true
}
