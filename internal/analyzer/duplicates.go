package analyzer

import (
	"fmt"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// maxDuplicateRows bounds the row indices attached to a duplicate-rows
// finding so huge datasets do not bloat the report
const maxDuplicateRows = 100

// DuplicateDetector reports fully duplicated rows. A row is a duplicate
// when an earlier row has identical values and an identical null mask
// across every column.
type DuplicateDetector struct{}

// NewDuplicateDetector creates a duplicate-row detector
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

// Name returns the detector name
func (d *DuplicateDetector) Name() string {
	return "duplicates"
}

// Description returns a human-readable description
func (d *DuplicateDetector) Description() string {
	return "Detects fully duplicated rows"
}

// Detect returns at most one finding covering all duplicate rows
func (d *DuplicateDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	rows := ds.RowCount()
	if rows < 2 {
		return nil, nil, nil
	}

	seen := make(map[string]struct{}, rows)
	var dupRows []int
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			if len(dupRows) < maxDuplicateRows {
				dupRows = append(dupRows, i)
			}
		} else {
			seen[key] = struct{}{}
		}
	}

	dupCount := rows - len(seen)
	if dupCount == 0 {
		return nil, nil, nil
	}

	ratio := float64(dupCount) / float64(rows)
	finding := domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueDuplicateRows,
		Severity:  duplicateSeverity(ratio),
		Rows:      dupRows,
		Details: map[string]any{
			"duplicate_count": dupCount,
			"duplicate_ratio": round3(ratio),
		},
		Message: fmt.Sprintf("%d duplicate rows found (%.1f%% of dataset)",
			dupCount, ratio*100),
		Confidence: 1.0,
	}
	return []domain.Finding{finding}, nil, nil
}

func duplicateSeverity(ratio float64) domain.Severity {
	switch {
	case ratio > 0.1:
		return domain.SeverityHigh
	case ratio > 0.01:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
