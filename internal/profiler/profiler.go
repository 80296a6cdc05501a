// Package profiler computes per-column and dataset-level statistics in
// one pass, producing the profile the detectors consume.
package profiler

import (
	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// maxSampleValues bounds the per-column value sample on the profile
const maxSampleValues = 5

// Profiler computes dataset profiles. A positive sampleSize caps the
// rows examined; datasets above it are profiled on a head sample and
// flagged as sampled.
type Profiler struct {
	sampleSize int
}

// New creates a profiler. sampleSize of zero or less disables sampling.
func New(sampleSize int) *Profiler {
	return &Profiler{sampleSize: sampleSize}
}

// Profile computes the dataset profile. Column statistics that cannot
// be computed (a numeric summary on a text column) are simply absent,
// never an error.
func (p *Profiler) Profile(ds *dataset.Dataset) *domain.DatasetProfile {
	sampled := false
	full := ds
	if p.sampleSize > 0 && ds.RowCount() > p.sampleSize {
		ds = ds.Head(p.sampleSize)
		sampled = true
	}

	c := cache.New(ds)
	profile := &domain.DatasetProfile{
		RowCount:    full.RowCount(),
		ColumnCount: full.ColumnCount(),
		MemoryBytes: full.MemoryEstimate(),
		Columns:     make(map[string]domain.ColumnProfile, ds.ColumnCount()),
		Sampled:     sampled,
	}
	if sampled {
		profile.SampleSize = p.sampleSize
	}

	for _, col := range ds.Columns() {
		profile.Columns[col.Name] = p.profileColumn(col, c)
	}
	profile.DuplicateRowCount = duplicateRows(ds)
	return profile
}

func (p *Profiler) profileColumn(col *dataset.Column, c *cache.Cache) domain.ColumnProfile {
	nonNull := col.NonNull()
	cp := domain.ColumnProfile{
		Name:      col.Name,
		NullCount: col.NullCount(),
	}
	if col.Len() > 0 {
		cp.NullRatio = float64(cp.NullCount) / float64(col.Len())
	}

	if distinct, err := c.DistinctCount(col.Name); err == nil {
		cp.DistinctCount = distinct
		if len(nonNull) > 0 {
			cp.DistinctRatio = float64(distinct) / float64(len(nonNull))
		}
	}

	cp.Patterns = patternRatios(nonNull)
	cp.DType = inferDType(cp.Patterns)
	cp.SampleValues = sampleValues(nonNull)

	if cp.DType == "numeric" {
		if summary, err := c.NumericSummary(col.Name); err == nil {
			cp.Numeric = summary
		}
	}
	return cp
}

// sampleValues returns up to maxSampleValues distinct values in first-
// occurrence order
func sampleValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, maxSampleValues)
	sample := make([]string, 0, maxSampleValues)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		sample = append(sample, v)
		if len(sample) == maxSampleValues {
			break
		}
	}
	return sample
}

func duplicateRows(ds *dataset.Dataset) int {
	rows := ds.RowCount()
	if rows < 2 {
		return 0
	}
	seen := make(map[string]struct{}, rows)
	for i := 0; i < rows; i++ {
		seen[ds.RowKey(i)] = struct{}{}
	}
	return rows - len(seen)
}
