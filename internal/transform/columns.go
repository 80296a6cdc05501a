package transform

import (
	"fmt"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// dropColumns removes the named columns; unknown names are ignored
type dropColumns struct{}

func (dropColumns) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	names := params.StringSlice("columns")
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("drop_columns needs a columns parameter")
	}
	dropped := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := ds.Column(name); ok {
			dropped = append(dropped, name)
		}
	}
	out := ds.DropColumns(dropped...)
	return out, result(KindDropColumns, params, 0, dropped), nil
}

// renameColumns renames one column via the "from" and "to" parameters
type renameColumns struct{}

func (renameColumns) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	from := params.String("from", "")
	to := params.String("to", "")
	if from == "" || to == "" {
		return nil, nil, fmt.Errorf("rename_columns needs from and to parameters")
	}
	out := ds.Clone()
	if err := out.RenameColumn(from, to); err != nil {
		return nil, nil, err
	}
	return out, result(KindRenameColumns, params, 0, []string{from, to}), nil
}

// mergeColumns coalesces the second column into the first: nulls in the
// first column take the second column's value, then the second column
// is dropped
type mergeColumns struct{}

func (mergeColumns) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	names := params.StringSlice("columns")
	if len(names) != 2 {
		return nil, nil, fmt.Errorf("merge_columns needs exactly two columns, got %d", len(names))
	}
	out := ds.Clone()
	dst, ok := out.Column(names[0])
	if !ok {
		return nil, nil, fmt.Errorf("unknown column %q", names[0])
	}
	src, ok := out.Column(names[1])
	if !ok {
		return nil, nil, fmt.Errorf("unknown column %q", names[1])
	}

	filled := 0
	for i := 0; i < dst.Len(); i++ {
		if dst.IsNull(i) && !src.IsNull(i) {
			dst.Set(i, src.Value(i))
			filled++
		}
	}
	out = out.DropColumns(names[1])
	return out, result(KindMergeColumns, params, filled, names), nil
}

// flagReview marks columns for manual review without touching the data.
// Automated merging of similar columns is unsafe, so the suggestion
// surfaces in the audit trail and report instead.
type flagReview struct{}

func (flagReview) Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	return ds, result(KindFlagReview, params, 0, params.StringSlice("columns")), nil
}
