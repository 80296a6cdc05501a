// Package transform holds the transformer registry: a closed set of
// transformer kinds, each with a declared execution phase and an
// implementation that produces a new dataset without mutating its
// input.
package transform

import "fmt"

// Kind identifies one transformer in the registry
type Kind string

// The closed transformer set. Adding a kind requires a phase entry in
// the table below and an Applier implementation.
const (
	KindDropDuplicates   Kind = "drop_duplicates"
	KindDropNullRows     Kind = "drop_null_rows"
	KindStripWhitespace  Kind = "strip_whitespace"
	KindLowercase        Kind = "lowercase"
	KindUppercase        Kind = "uppercase"
	KindTitlecase        Kind = "titlecase"
	KindEmptyToNull      Kind = "empty_to_null"
	KindStandardizeDates Kind = "standardize_dates"
	KindFillMissing      Kind = "fill_missing"
	KindToNumeric        Kind = "to_numeric"
	KindToBoolean        Kind = "to_boolean"
	KindToDatetime       Kind = "to_datetime"
	KindClipOutliers     Kind = "clip_outliers"
	KindDropColumns      Kind = "drop_columns"
	KindRenameColumns    Kind = "rename_columns"
	KindMergeColumns     Kind = "merge_columns"
	KindFlagReview       Kind = "flag_review"
)

// Execution phases. Later phases assume earlier phases already ran:
// outlier clipping assumes type conversion happened, column merges
// assume values are normalized.
const (
	PhaseStructural    = 1
	PhaseNormalization = 2
	PhaseMissing       = 3
	PhaseTypes         = 4
	PhaseOutliers      = 5
	PhaseColumns       = 6
)

// phases is the compile-time kind-to-phase table
var phases = map[Kind]int{
	KindDropDuplicates:   PhaseStructural,
	KindDropNullRows:     PhaseStructural,
	KindStripWhitespace:  PhaseNormalization,
	KindLowercase:        PhaseNormalization,
	KindUppercase:        PhaseNormalization,
	KindTitlecase:        PhaseNormalization,
	KindEmptyToNull:      PhaseNormalization,
	KindStandardizeDates: PhaseNormalization,
	KindFillMissing:      PhaseMissing,
	KindToNumeric:        PhaseTypes,
	KindToBoolean:        PhaseTypes,
	KindToDatetime:       PhaseTypes,
	KindClipOutliers:     PhaseOutliers,
	KindDropColumns:      PhaseColumns,
	KindRenameColumns:    PhaseColumns,
	KindMergeColumns:     PhaseColumns,
	KindFlagReview:       PhaseColumns,
}

// Phase returns the kind's execution phase. A kind with no declared
// phase is a registry misconfiguration, a programmer error rather than
// a data problem, so this panics instead of returning an error.
func (k Kind) Phase() int {
	phase, ok := phases[k]
	if !ok {
		panic(fmt.Sprintf("transformer kind %q has no declared phase", k))
	}
	return phase
}

// Valid reports whether k belongs to the closed transformer set
func (k Kind) Valid() bool {
	_, ok := phases[k]
	return ok
}

// TypeDefining reports whether k converts a column's stored type.
// At most one type-defining transformation proceeds per column.
func (k Kind) TypeDefining() bool {
	switch k {
	case KindToNumeric, KindToBoolean, KindToDatetime:
		return true
	}
	return false
}

// CaseChange reports whether k only changes letter case. Case changes
// are meaningless after a type conversion on the same column.
func (k Kind) CaseChange() bool {
	switch k {
	case KindLowercase, KindUppercase, KindTitlecase:
		return true
	}
	return false
}
