package transform

import (
	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// dropDuplicates removes rows whose full value-and-null pattern repeats
// an earlier row, keeping the first occurrence
type dropDuplicates struct{}

func (dropDuplicates) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	rows := ds.RowCount()
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	out := ds.SelectRows(keep)
	return out, result(KindDropDuplicates, params, rows-len(keep), nil), nil
}

// dropNullRows removes rows with a null in any of the target columns
type dropNullRows struct{}

func (dropNullRows) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	targets := targetColumns(ds, params)
	cols := make([]*dataset.Column, 0, len(targets))
	for _, name := range targets {
		if col, ok := ds.Column(name); ok {
			cols = append(cols, col)
		}
	}

	rows := ds.RowCount()
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		null := false
		for _, col := range cols {
			if col.IsNull(i) {
				null = true
				break
			}
		}
		if !null {
			keep = append(keep, i)
		}
	}
	out := ds.SelectRows(keep)
	return out, result(KindDropNullRows, params, rows-len(keep), targets), nil
}
