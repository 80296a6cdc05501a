// Package cache memoizes per-column derived data so every detector
// reuses the same computation. Each (column, kind) key is computed at
// most once, even under concurrent first access.
package cache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/singleflight"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// Kind identifies a derived value computed per column
type Kind string

const (
	KindValueSet       Kind = "value_set"
	KindDistinctCount  Kind = "distinct_count"
	KindNumericSummary Kind = "numeric_summary"
	KindSignature      Kind = "signature"
)

// DefaultMaxValues caps the distinct-value set kept per column
const DefaultMaxValues = 10000

// ColumnError reports a failed derived-value computation for a single
// column. The column is excluded from the detector's output; the run
// continues.
type ColumnError struct {
	Column string
	Kind   Kind
	Err    error
}

// Error implements the error interface
func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: failed to compute %s: %v", e.Column, e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *ColumnError) Unwrap() error {
	return e.Err
}

type entry struct {
	value any
	err   error
}

// Cache is the shared computation cache for one dataset. Safe for
// concurrent use by multiple detectors.
type Cache struct {
	ds        *dataset.Dataset
	maxValues int

	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]entry
}

// New creates a cache over a dataset
func New(ds *dataset.Dataset) *Cache {
	return &Cache{
		ds:        ds,
		maxValues: DefaultMaxValues,
		results:   make(map[string]entry),
	}
}

// Do returns the memoized value for (column, kind), invoking compute at
// most once across all concurrent callers. Failed computations are
// cached too, so a broken column is not recomputed per detector.
func (c *Cache) Do(column string, kind Kind, compute func() (any, error)) (any, error) {
	key := column + "\x00" + string(kind)

	c.mu.RLock()
	e, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		return e.value, e.err
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := compute()
		if err != nil {
			err = &ColumnError{Column: column, Kind: kind, Err: err}
		}
		c.mu.Lock()
		c.results[key] = entry{value: value, err: err}
		c.mu.Unlock()
		return value, err
	})
	return v, err
}

// ValueSet returns the column's distinct non-null values, capped at
// DefaultMaxValues by first occurrence so the result is deterministic.
func (c *Cache) ValueSet(column string) (map[string]struct{}, error) {
	v, err := c.Do(column, KindValueSet, func() (any, error) {
		col, ok := c.ds.Column(column)
		if !ok {
			return nil, fmt.Errorf("no such column")
		}
		set := make(map[string]struct{})
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			if _, seen := set[col.Value(i)]; seen {
				continue
			}
			set[col.Value(i)] = struct{}{}
			if len(set) >= c.maxValues {
				break
			}
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]struct{}), nil
}

// ValueList returns the distinct values as a sorted slice
func (c *Cache) ValueList(column string) ([]string, error) {
	set, err := c.ValueSet(column)
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, len(set))
	for v := range set {
		list = append(list, v)
	}
	sort.Strings(list)
	return list, nil
}

// DistinctCount returns the column's exact distinct non-null value count
func (c *Cache) DistinctCount(column string) (int, error) {
	v, err := c.Do(column, KindDistinctCount, func() (any, error) {
		col, ok := c.ds.Column(column)
		if !ok {
			return nil, fmt.Errorf("no such column")
		}
		set := make(map[string]struct{})
		for i := 0; i < col.Len(); i++ {
			if !col.IsNull(i) {
				set[col.Value(i)] = struct{}{}
			}
		}
		return len(set), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// NumericSummary returns summary statistics for a numeric column, or an
// error if fewer than 80% of its non-null values parse as numbers.
func (c *Cache) NumericSummary(column string) (*domain.NumericSummary, error) {
	v, err := c.Do(column, KindNumericSummary, func() (any, error) {
		col, ok := c.ds.Column(column)
		if !ok {
			return nil, fmt.Errorf("no such column")
		}
		values, _, ratio := col.Floats()
		if len(values) == 0 || ratio < 0.8 {
			return nil, fmt.Errorf("not numeric (%.0f%% parseable)", ratio*100)
		}
		return summarize(values)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.NumericSummary), nil
}

func summarize(values []float64) (*domain.NumericSummary, error) {
	min, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil, err
	}
	std := 0.0
	if len(values) > 1 {
		std, err = stats.StandardDeviationSample(values)
		if err != nil {
			return nil, err
		}
	}
	q, err := stats.Quartile(values)
	if err != nil {
		return nil, err
	}
	return &domain.NumericSummary{
		Count:  len(values),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		Std:    std,
		Q1:     q.Q1,
		Q3:     q.Q3,
	}, nil
}
