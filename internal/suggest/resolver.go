package suggest

import (
	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/transform"
)

// Resolve drops suggestions that conflict with a higher-priority
// surviving suggestion on the same column. The input must already be in
// priority order; suggestions are kept first-wins, each keep commits
// its transformer kind to its columns, and a later suggestion whose
// kind is excluded by any committed kind on a shared column is dropped,
// never reordered.
//
// Resolve never invents suggestions and never mutates one; it is
// idempotent, so resolving an already-resolved list drops nothing.
func Resolve(suggestions []domain.Suggestion) []domain.Suggestion {
	committed := make(map[string]map[transform.Kind]struct{})

	kept := make([]domain.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		kind := transform.Kind(s.Transformer)
		columns := suggestionColumns(s)

		if conflicts(committed, columns, kind) {
			continue
		}
		kept = append(kept, s)
		for _, col := range columns {
			if committed[col] == nil {
				committed[col] = make(map[transform.Kind]struct{})
			}
			committed[col][kind] = struct{}{}
		}
	}
	return kept
}

// suggestionColumns returns the columns a suggestion operates on,
// preferring explicit params over the finding's columns
func suggestionColumns(s domain.Suggestion) []string {
	if cols := s.Params.StringSlice("columns"); len(cols) > 0 {
		return cols
	}
	return s.Finding.Columns
}

func conflicts(committed map[string]map[transform.Kind]struct{}, columns []string, kind transform.Kind) bool {
	for _, col := range columns {
		for prior := range committed[col] {
			if excludes(prior, kind) {
				return true
			}
		}
	}
	return false
}

// excludes reports whether a committed kind rules out a later kind on
// the same column. At most one type-defining conversion proceeds per
// column, and format normalizations that are meaningless after a type
// conversion (or date standardization) are dropped.
func excludes(committed, candidate transform.Kind) bool {
	if committed.TypeDefining() {
		return candidate.TypeDefining() || candidate.CaseChange()
	}
	if committed == transform.KindStandardizeDates {
		return candidate.CaseChange()
	}
	return false
}
