// Package testutil provides helper functions for testing datawash components
package testutil

import (
	"testing"

	"github.com/datawash-io/datawash/internal/dataset"
)

// CreateTestDataset builds a dataset from parallel column definitions.
// Values equal to the null marker "<null>" become nulls.
func CreateTestDataset(t *testing.T, names []string, columns [][]string) *dataset.Dataset {
	t.Helper()
	if len(names) != len(columns) {
		t.Fatalf("names and columns length mismatch: %d vs %d", len(names), len(columns))
	}
	built := make([]*dataset.Column, 0, len(names))
	for i, name := range names {
		values := make([]string, len(columns[i]))
		nulls := make([]bool, len(columns[i]))
		for j, v := range columns[i] {
			if v == "<null>" {
				nulls[j] = true
			} else {
				values[j] = v
			}
		}
		col, err := dataset.NewColumnWithNulls(name, values, nulls)
		if err != nil {
			t.Fatalf("Failed to build column %s: %v", name, err)
		}
		built = append(built, col)
	}
	ds, err := dataset.New(built...)
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}
	return ds
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}
