package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/datawash-io/datawash/domain"
)

func openTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryRecordAndList(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	analyze := &domain.AnalyzeResponse{
		RunID:        "run-a",
		Source:       "data.csv",
		QualityScore: 85,
		Findings:     []domain.Finding{{IssueType: domain.IssueDuplicateRows}},
		Suggestions:  []domain.Suggestion{{ID: 1}, {ID: 2}},
		GeneratedAt:  "2026-01-01T10:00:00Z",
	}
	if err := store.RecordAnalyze(ctx, analyze, domain.UseCaseML); err != nil {
		t.Fatalf("RecordAnalyze failed: %v", err)
	}

	clean := &domain.CleanResponse{
		RunID:       "run-b",
		Source:      "data.csv",
		GeneratedAt: "2026-01-01T11:00:00Z",
		Applied: []domain.TransformationResult{
			{Transformer: "drop_duplicates", RowsAffected: 2},
			{Transformer: "fill_missing", ColumnsAffected: []string{"age"}, RowsAffected: 1},
		},
	}
	if err := store.RecordClean(ctx, clean); err != nil {
		t.Fatalf("RecordClean failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].RunID != "run-b" || runs[0].Kind != "clean" {
		t.Errorf("unexpected first run: %+v", runs[0])
	}
	if runs[1].RunID != "run-a" || runs[1].Kind != "analyze" {
		t.Errorf("unexpected second run: %+v", runs[1])
	}
	if runs[1].QualityScore != 85 || runs[1].FindingCount != 1 || runs[1].SuggestionCount != 2 {
		t.Errorf("analyze run stats wrong: %+v", runs[1])
	}
	if runs[1].UseCase != "ml" {
		t.Errorf("expected ml use case, got %q", runs[1].UseCase)
	}
}

func TestHistoryAppliedTransforms(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	clean := &domain.CleanResponse{
		RunID:       "run-c",
		Source:      "data.csv",
		GeneratedAt: "2026-01-02T00:00:00Z",
		Applied: []domain.TransformationResult{
			{Transformer: "strip_whitespace", ColumnsAffected: []string{"name", "city"}, RowsAffected: 3},
			{Transformer: "to_numeric", ColumnsAffected: []string{"age"}, RowsAffected: 1},
		},
	}
	if err := store.RecordClean(ctx, clean); err != nil {
		t.Fatal(err)
	}

	applied, err := store.AppliedTransforms(ctx, "run-c")
	if err != nil {
		t.Fatalf("AppliedTransforms failed: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("expected 2 transforms, got %d", len(applied))
	}
	if applied[0].Transformer != "strip_whitespace" || applied[1].Transformer != "to_numeric" {
		t.Errorf("wrong order: %+v", applied)
	}
	if len(applied[0].ColumnsAffected) != 2 || applied[0].ColumnsAffected[1] != "city" {
		t.Errorf("columns not preserved: %+v", applied[0])
	}
}

func TestHistoryListLimit(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	for _, id := range []string{"r1", "r2", "r3"} {
		resp := &domain.AnalyzeResponse{RunID: id, Source: "x.csv", GeneratedAt: "2026-01-01T00:00:0" + id[1:] + "Z"}
		if err := store.RecordAnalyze(ctx, resp, domain.UseCaseGeneral); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestHistoryUnknownRunHasNoTransforms(t *testing.T) {
	store := openTestHistory(t)

	applied, err := store.AppliedTransforms(context.Background(), "nope")
	if err != nil {
		t.Fatalf("AppliedTransforms failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected no transforms, got %+v", applied)
	}
}
