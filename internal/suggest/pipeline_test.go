package suggest

import (
	"testing"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/transform"
)

// TestPipelineBooleanColumnDropsCaseSuggestion drives the full
// generate -> resolve -> schedule chain for a column flagged both as
// boolean-as-string and inconsistent-case. The boolean conversion has
// the higher confidence, so after conflict resolution no case-change
// suggestion survives for that column.
func TestPipelineBooleanColumnDropsCaseSuggestion(t *testing.T) {
	findings := []domain.Finding{
		{
			Detector:   "formats",
			IssueType:  domain.IssueInconsistentCase,
			Severity:   domain.SeverityLow,
			Columns:    []string{"subscribed"},
			Confidence: 0.8,
		},
		{
			Detector:   "types",
			IssueType:  domain.IssueBooleanAsString,
			Severity:   domain.SeverityMedium,
			Columns:    []string{"subscribed"},
			Confidence: 0.95,
		},
	}

	suggestions := NewEngine(domain.UseCaseGeneral, 50).Generate(findings)
	resolved := Resolve(suggestions)
	scheduled := Schedule(resolved)

	for _, s := range scheduled {
		kind := transform.Kind(s.Transformer)
		if kind.CaseChange() {
			t.Errorf("Case-change suggestion %s survived on a boolean column", s.Transformer)
		}
	}

	var found bool
	for _, s := range scheduled {
		if s.Transformer == string(transform.KindToBoolean) {
			found = true
		}
	}
	if !found {
		t.Error("Boolean conversion suggestion missing from schedule")
	}
}

// TestPipelineResolverNeverInventsSuggestions checks the resolver and
// scheduler only drop or reorder, never create or mutate.
func TestPipelineResolverNeverInventsSuggestions(t *testing.T) {
	findings := []domain.Finding{
		{IssueType: domain.IssueDuplicateRows, Severity: domain.SeverityHigh, Confidence: 1.0},
		{IssueType: domain.IssueWhitespacePadding, Severity: domain.SeverityLow, Columns: []string{"c"}, Confidence: 1.0},
	}

	suggestions := NewEngine(domain.UseCaseGeneral, 50).Generate(findings)
	ids := make(map[int]domain.Suggestion, len(suggestions))
	for _, s := range suggestions {
		ids[s.ID] = s
	}

	scheduled := Schedule(Resolve(suggestions))
	if len(scheduled) > len(suggestions) {
		t.Fatalf("Pipeline grew the suggestion list: %d -> %d", len(suggestions), len(scheduled))
	}
	for _, s := range scheduled {
		orig, ok := ids[s.ID]
		if !ok {
			t.Fatalf("Suggestion id %d not in the generated set", s.ID)
		}
		if s.Transformer != orig.Transformer || s.Action != orig.Action {
			t.Errorf("Suggestion id %d mutated in flight", s.ID)
		}
	}
}
