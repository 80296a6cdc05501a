package analyzer

import (
	"fmt"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// MissingDetector reports columns with null values and columns with
// empty-string values. Empty strings are tracked separately because
// they survive null normalization at load time and usually indicate an
// upstream export quirk rather than genuine missingness.
type MissingDetector struct{}

// NewMissingDetector creates a missing-value detector
func NewMissingDetector() *MissingDetector {
	return &MissingDetector{}
}

// Name returns the detector name
func (d *MissingDetector) Name() string {
	return "missing"
}

// Description returns a human-readable description
func (d *MissingDetector) Description() string {
	return "Detects columns with null values and columns with empty strings"
}

// Detect reports one finding per affected column
func (d *MissingDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	var findings []domain.Finding
	for _, name := range sortedColumnNames(profile) {
		cp := profile.Columns[name]
		if cp.NullCount > 0 {
			findings = append(findings, domain.Finding{
				Detector:  d.Name(),
				IssueType: domain.IssueMissingValues,
				Severity:  missingSeverity(cp.NullRatio),
				Columns:   []string{name},
				Details: map[string]any{
					"null_count": cp.NullCount,
					"null_ratio": round3(cp.NullRatio),
				},
				Message: fmt.Sprintf("Column '%s' has %d missing values (%.1f%%)",
					name, cp.NullCount, cp.NullRatio*100),
				Confidence: 1.0,
			})
		}

		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		empty := 0
		for i := 0; i < col.Len(); i++ {
			if !col.IsNull(i) && col.Value(i) == "" {
				empty++
			}
		}
		if empty > 0 {
			findings = append(findings, domain.Finding{
				Detector:  d.Name(),
				IssueType: domain.IssueEmptyStrings,
				Severity:  domain.SeverityMedium,
				Columns:   []string{name},
				Details: map[string]any{
					"empty_count": empty,
				},
				Message: fmt.Sprintf("Column '%s' has %d empty strings (not counted as null)",
					name, empty),
				Confidence: 0.9,
			})
		}
	}
	return findings, nil, nil
}

func missingSeverity(ratio float64) domain.Severity {
	switch {
	case ratio > 0.5:
		return domain.SeverityHigh
	case ratio > 0.1:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
