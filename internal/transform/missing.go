package transform

import (
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// fillMissing replaces nulls in the target columns. The "strategy"
// parameter selects the fill value: median (numeric columns), mode
// (most frequent value), or value (the "value" parameter verbatim).
type fillMissing struct{}

func (fillMissing) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	strategy := params.String("strategy", "median")
	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		if col.NullCount() == 0 {
			continue
		}

		fill, err := fillValue(col, strategy, params)
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %w", name, err)
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				col.Set(i, fill)
				changed++
			}
		}
	}
	return out, result(KindFillMissing, params, changed, targets), nil
}

func fillValue(col *dataset.Column, strategy string, params domain.Params) (string, error) {
	switch strategy {
	case "median":
		values, _, _ := col.Floats()
		if len(values) == 0 {
			return "", fmt.Errorf("median fill needs numeric values")
		}
		median, err := stats.Median(values)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(median, 'f', -1, 64), nil
	case "mode":
		counts := make(map[string]int)
		for _, v := range col.NonNull() {
			counts[v]++
		}
		if len(counts) == 0 {
			return "", fmt.Errorf("mode fill needs at least one non-null value")
		}
		// Ties break toward the lexically smaller value so the fill is
		// deterministic
		best, bestCount := "", -1
		for v, n := range counts {
			if n > bestCount || (n == bestCount && v < best) {
				best, bestCount = v, n
			}
		}
		return best, nil
	case "value":
		if _, ok := params["value"]; !ok {
			return "", fmt.Errorf("value fill needs a value parameter")
		}
		return params.String("value", ""), nil
	default:
		return "", fmt.Errorf("unknown fill strategy %q (want median, mode, or value)", strategy)
	}
}
