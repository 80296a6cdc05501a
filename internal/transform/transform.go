package transform

import (
	"fmt"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/dataset"
)

// Applier applies one transformer kind to a dataset. Implementations
// never mutate the input dataset; they return a new dataset plus a
// result describing what changed.
type Applier interface {
	Apply(ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error)
}

// appliers is the compile-time kind-to-implementation table. Every kind
// with a declared phase has an entry here; there is no runtime
// registration.
var appliers = map[Kind]Applier{
	KindDropDuplicates:   dropDuplicates{},
	KindDropNullRows:     dropNullRows{},
	KindStripWhitespace:  stripWhitespace{},
	KindLowercase:        caseChange{mode: "lower"},
	KindUppercase:        caseChange{mode: "upper"},
	KindTitlecase:        caseChange{mode: "title"},
	KindEmptyToNull:      emptyToNull{},
	KindStandardizeDates: standardizeDates{},
	KindFillMissing:      fillMissing{},
	KindToNumeric:        toNumeric{},
	KindToBoolean:        toBoolean{},
	KindToDatetime:       toDatetime{},
	KindClipOutliers:     clipOutliers{},
	KindDropColumns:      dropColumns{},
	KindRenameColumns:    renameColumns{},
	KindMergeColumns:     mergeColumns{},
	KindFlagReview:       flagReview{},
}

// Apply dispatches to the applier for the given kind
func Apply(kind Kind, ds *dataset.Dataset, params domain.Params) (*dataset.Dataset, *domain.TransformationResult, error) {
	applier, ok := appliers[kind]
	if !ok {
		return nil, nil, fmt.Errorf("unknown transformer kind %q", kind)
	}
	out, result, err := applier.Apply(ds, params)
	if err != nil {
		return nil, nil, fmt.Errorf("applying %s: %w", kind, err)
	}
	return out, result, nil
}

// result is a small constructor shared by the appliers
func result(kind Kind, params domain.Params, rows int, columns []string) *domain.TransformationResult {
	return &domain.TransformationResult{
		Transformer:     string(kind),
		Params:          params,
		RowsAffected:    rows,
		ColumnsAffected: columns,
	}
}

// targetColumns resolves the columns a transformer operates on: the
// "columns" parameter if present, every column otherwise
func targetColumns(ds *dataset.Dataset, params domain.Params) []string {
	if cols := params.StringSlice("columns"); len(cols) > 0 {
		return cols
	}
	return ds.ColumnNames()
}
