package transform

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// clipOutliers clamps numeric values in the target columns to the
// range the "method" parameter defines: the IQR fence or a z-score
// band around the mean. Non-numeric and null values pass through.
type clipOutliers struct{}

func (clipOutliers) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	method := params.String("method", "iqr")
	threshold := params.Float("threshold", defaultClipThreshold(method))

	targets := targetColumns(ds, params)
	out := ds.Clone()
	changed := 0
	for _, name := range targets {
		col, ok := out.Column(name)
		if !ok {
			continue
		}
		values, rows, _ := col.Floats()
		if len(values) < 2 {
			continue
		}

		lower, upper, err := clipBounds(values, method, threshold)
		if err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			clamped := math.Min(math.Max(v, lower), upper)
			if clamped != v {
				col.Set(rows[i], strconv.FormatFloat(clamped, 'f', -1, 64))
				changed++
			}
		}
	}
	return out, result(KindClipOutliers, params, changed, targets), nil
}

func defaultClipThreshold(method string) float64 {
	if method == "zscore" {
		return 3.0
	}
	return 1.5
}

func clipBounds(values []float64, method string, threshold float64) (lower, upper float64, err error) {
	if method == "zscore" {
		mean, err := stats.Mean(values)
		if err != nil {
			return 0, 0, err
		}
		std, err := stats.StandardDeviationSample(values)
		if err != nil {
			return 0, 0, err
		}
		return mean - threshold*std, mean + threshold*std, nil
	}

	q, err := stats.Quartile(values)
	if err != nil {
		return 0, 0, err
	}
	iqr := q.Q3 - q.Q1
	return q.Q1 - threshold*iqr, q.Q3 + threshold*iqr, nil
}
