package analyzer

import (
	"fmt"
	"math"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// Outlier detection defaults
const (
	// DefaultOutlierMethod selects the detection method: iqr or zscore
	DefaultOutlierMethod = "iqr"

	// DefaultIQRMultiplier is the fence width for the iqr method
	DefaultIQRMultiplier = 1.5

	// DefaultZScoreCutoff is the cutoff for the zscore method
	DefaultZScoreCutoff = 3.0

	// minOutlierValues is the minimum numeric sample size; below it the
	// spread estimates are too noisy to call anything an outlier
	minOutlierValues = 10

	// maxOutlierRows bounds the row indices attached to a finding
	maxOutlierRows = 100
)

// OutlierDetector reports numeric columns containing values far outside
// the column's typical range, using either the IQR fence or a z-score
// cutoff.
type OutlierDetector struct {
	method    string
	threshold float64
}

// NewOutlierDetector creates an outlier detector. Empty method and
// non-positive threshold fall back to defaults.
func NewOutlierDetector(method string, threshold float64) *OutlierDetector {
	if method == "" {
		method = DefaultOutlierMethod
	}
	if threshold <= 0 {
		if method == "zscore" {
			threshold = DefaultZScoreCutoff
		} else {
			threshold = DefaultIQRMultiplier
		}
	}
	return &OutlierDetector{method: method, threshold: threshold}
}

// Name returns the detector name
func (d *OutlierDetector) Name() string {
	return "outliers"
}

// Description returns a human-readable description
func (d *OutlierDetector) Description() string {
	return "Detects numeric values far outside the column's typical range"
}

// Detect reports one finding per column with outliers. Columns that are
// not numeric enough to summarize are skipped silently; that is the
// normal case for string columns, not a warning.
func (d *OutlierDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	if d.method != "iqr" && d.method != "zscore" {
		return nil, nil, fmt.Errorf("unknown outlier method %q (want iqr or zscore)", d.method)
	}

	var findings []domain.Finding
	for _, name := range sortedColumnNames(profile) {
		// Every summary failure is a per-column error, by far most
		// often "not numeric"; skip the column
		summary, err := c.NumericSummary(name)
		if err != nil {
			continue
		}
		if summary.Count < minOutlierValues {
			continue
		}
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		values, rows, _ := col.Floats()

		var outlierRows []int
		count := 0
		lower, upper := d.bounds(summary)
		for i, v := range values {
			if d.isOutlier(v, summary, lower, upper) {
				count++
				if len(outlierRows) < maxOutlierRows {
					outlierRows = append(outlierRows, rows[i])
				}
			}
		}
		if count == 0 {
			continue
		}

		ratio := float64(count) / float64(len(values))
		findings = append(findings, domain.Finding{
			Detector:  d.Name(),
			IssueType: domain.IssueOutliers,
			Severity:  outlierSeverity(ratio),
			Columns:   []string{name},
			Rows:      outlierRows,
			Details: map[string]any{
				"outlier_count": count,
				"outlier_ratio": round3(ratio),
				"method":        d.method,
				"threshold":     d.threshold,
			},
			Message: fmt.Sprintf("Column '%s' has %d outlier values (%.1f%%, %s method)",
				name, count, ratio*100, d.method),
			Confidence: 0.85,
		})
	}
	return findings, nil, nil
}

// bounds returns the IQR fence; unused for the z-score method
func (d *OutlierDetector) bounds(s *domain.NumericSummary) (lower, upper float64) {
	iqr := s.Q3 - s.Q1
	return s.Q1 - d.threshold*iqr, s.Q3 + d.threshold*iqr
}

func (d *OutlierDetector) isOutlier(v float64, s *domain.NumericSummary, lower, upper float64) bool {
	if d.method == "zscore" {
		if s.Std == 0 {
			return false
		}
		return math.Abs(v-s.Mean)/s.Std > d.threshold
	}
	return v < lower || v > upper
}

func outlierSeverity(ratio float64) domain.Severity {
	switch {
	case ratio > 0.05:
		return domain.SeverityHigh
	case ratio > 0.01:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
