package analyzer

import (
	"fmt"
	"testing"
)

func TestNewLSHIndex(t *testing.T) {
	// Default values
	idx := NewLSHIndex(0, 0)
	if idx.Bands() != 32 {
		t.Errorf("Expected default 32 bands, got %d", idx.Bands())
	}
	if idx.Rows() != 4 {
		t.Errorf("Expected default 4 rows, got %d", idx.Rows())
	}

	// Custom values
	idx = NewLSHIndex(16, 8)
	if idx.Bands() != 16 {
		t.Errorf("Expected 16 bands, got %d", idx.Bands())
	}
	if idx.Rows() != 8 {
		t.Errorf("Expected 8 rows, got %d", idx.Rows())
	}
}

func TestLSHIndexAdd(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	sig := mh.ComputeSignature([]string{"a", "b", "c"})
	if err := idx.Add("col1", sig); err != nil {
		t.Errorf("Add failed: %v", err)
	}
	if idx.Size() != 1 {
		t.Errorf("Expected size 1, got %d", idx.Size())
	}
}

func TestLSHIndexAddInvalid(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)
	sig := mh.ComputeSignature([]string{"a"})

	if err := idx.Add("", sig); err == nil {
		t.Error("Expected error for empty id")
	}
	if err := idx.Add("col1", nil); err == nil {
		t.Error("Expected error for nil signature")
	}
}

func TestLSHIndexAddDuplicate(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	sig := mh.ComputeSignature([]string{"a", "b"})
	if err := idx.Add("col1", sig); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// Re-adding the same id is a no-op, not an error
	if err := idx.Add("col1", sig); err != nil {
		t.Errorf("Duplicate Add should be a no-op, got %v", err)
	}
	if idx.Size() != 1 {
		t.Errorf("Expected size 1 after duplicate add, got %d", idx.Size())
	}
}

func TestGetSignature(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	sig := mh.ComputeSignature([]string{"a", "b", "c"})
	if err := idx.Add("col1", sig); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := idx.GetSignature("col1")
	if got == nil {
		t.Fatal("Expected signature, got nil")
	}
	if idx.GetSignature("missing") != nil {
		t.Error("Expected nil for unknown id")
	}
}

func TestFindCandidatesIdentical(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	features := []string{"a", "b", "c", "d", "e"}
	sig1 := mh.ComputeSignature(features)
	sig2 := mh.ComputeSignature(features)

	if err := idx.Add("col1", sig1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := idx.Add("col2", sig2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	candidates := idx.FindCandidates(sig1)
	found := map[string]bool{}
	for _, c := range candidates {
		found[c] = true
	}
	if !found["col1"] || !found["col2"] {
		t.Errorf("Identical signatures should be candidates of each other, got %v", candidates)
	}
}

func TestFindCandidatesDisjoint(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	var featA, featB []string
	for i := 0; i < 200; i++ {
		featA = append(featA, fmt.Sprintf("a%d", i))
		featB = append(featB, fmt.Sprintf("b%d", i))
	}
	sigA := mh.ComputeSignature(featA)
	sigB := mh.ComputeSignature(featB)

	if err := idx.Add("colA", sigA); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := idx.Add("colB", sigB); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for _, c := range idx.FindCandidates(sigA) {
		if c == "colB" {
			t.Error("Disjoint columns should not share an LSH band")
		}
	}
}

func TestFindCandidatesNil(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	if got := idx.FindCandidates(nil); got != nil {
		t.Errorf("Expected nil candidates for nil signature, got %v", got)
	}
}

func TestFindCandidatesSorted(t *testing.T) {
	idx := NewLSHIndex(32, 4)
	mh := NewMinHasher(128)

	features := []string{"x", "y", "z"}
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := idx.Add(id, mh.ComputeSignature(features)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	candidates := idx.FindCandidates(mh.ComputeSignature(features))
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1] >= candidates[i] {
			t.Fatalf("Candidates not sorted: %v", candidates)
		}
	}
}
