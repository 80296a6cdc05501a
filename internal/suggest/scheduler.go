package suggest

import (
	"sort"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/transform"
)

// Schedule orders a conflict-resolved suggestion list into execution
// phases: structural cleaning, value normalization, missing-value
// handling, type conversion, outlier handling, column operations.
// Later phases assume earlier phases already ran, so applying the
// output strictly in order never violates a suggestion's
// preconditions.
//
// The sort is stable: within a phase, the input's priority order is
// preserved. The result is a total, deterministic function of the
// input. A suggestion whose transformer has no declared phase panics;
// that is a registry misconfiguration, not a data problem.
func Schedule(suggestions []domain.Suggestion) []domain.Suggestion {
	// Resolve every phase up front so an undeclared kind panics even
	// when the list is too short for the sort comparator to visit it.
	type phased struct {
		suggestion domain.Suggestion
		phase      int
	}
	items := make([]phased, len(suggestions))
	for i, sg := range suggestions {
		items[i] = phased{sg, transform.Kind(sg.Transformer).Phase()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].phase < items[j].phase
	})
	out := make([]domain.Suggestion, len(items))
	for i, it := range items {
		out[i] = it.suggestion
	}
	return out
}
