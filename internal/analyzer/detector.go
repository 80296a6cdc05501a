// Package analyzer contains the detection algorithms: the blocking and
// hashing machinery for column similarity plus the individual data
// quality detectors.
package analyzer

import (
	"sort"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// Detector finds one category of data quality issue. Implementations
// must be safe to run concurrently with other detectors: they read the
// dataset, profile, and cache, and write only to their own output.
//
// A detector returns its findings plus warnings for columns it had to
// skip. A non-nil error means the whole detector failed; the caller
// isolates it and the run continues with the remaining detectors.
type Detector interface {
	// Name returns the unique detector name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Detect runs detection and returns findings
	Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error)
}

// AllDetectors returns the full detector set with the given similarity
// and outlier settings. The set is fixed at compile time; enabling and
// disabling happens by name in configuration.
func AllDetectors(simCfg *SimilarityConfig, outlierMethod string, outlierThreshold float64) []Detector {
	return []Detector{
		NewMissingDetector(),
		NewDuplicateDetector(),
		NewTypeDetector(),
		NewFormatDetector(),
		NewOutlierDetector(outlierMethod, outlierThreshold),
		NewSimilarityDetector(simCfg),
	}
}

// sortedColumnNames returns profile column names in lexical order.
// Detectors iterate columns by name, never by dataset position, so the
// finding set is invariant to column reordering.
func sortedColumnNames(profile *domain.DatasetProfile) []string {
	names := make([]string, 0, len(profile.Columns))
	for name := range profile.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
