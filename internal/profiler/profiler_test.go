package profiler

import (
	"fmt"
	"testing"

	"github.com/datawash-io/datawash/internal/dataset"
)

func buildDataset(t *testing.T, names []string, cols [][]string, nullMarker string) *dataset.Dataset {
	t.Helper()
	built := make([]*dataset.Column, 0, len(names))
	for i, name := range names {
		values := cols[i]
		nulls := make([]bool, len(values))
		for j, v := range values {
			if v == nullMarker {
				nulls[j] = true
				values[j] = ""
			}
		}
		col, err := dataset.NewColumnWithNulls(name, values, nulls)
		if err != nil {
			t.Fatal(err)
		}
		built = append(built, col)
	}
	ds, err := dataset.New(built...)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestProfileBasics(t *testing.T) {
	ds := buildDataset(t,
		[]string{"age", "name"},
		[][]string{
			{"30", "25", "~", "40"},
			{"ann", "bob", "ann", "dee"},
		}, "~")

	profile := New(0).Profile(ds)
	if profile.RowCount != 4 || profile.ColumnCount != 2 {
		t.Fatalf("Wrong shape: %d rows, %d columns", profile.RowCount, profile.ColumnCount)
	}

	age := profile.Columns["age"]
	if age.DType != "numeric" {
		t.Errorf("Expected numeric dtype for age, got %s", age.DType)
	}
	if age.NullCount != 1 || age.NullRatio != 0.25 {
		t.Errorf("Wrong null stats: count %d ratio %f", age.NullCount, age.NullRatio)
	}
	if age.DistinctCount != 3 {
		t.Errorf("Expected 3 distinct ages, got %d", age.DistinctCount)
	}
	if age.Numeric == nil {
		t.Fatal("Expected numeric summary for age")
	}
	if age.Numeric.Min != 25 || age.Numeric.Max != 40 {
		t.Errorf("Wrong numeric range: %f..%f", age.Numeric.Min, age.Numeric.Max)
	}

	name := profile.Columns["name"]
	if name.DType != "string" {
		t.Errorf("Expected string dtype for name, got %s", name.DType)
	}
	if name.Numeric != nil {
		t.Error("String column should carry no numeric summary")
	}
	if name.DistinctCount != 3 {
		t.Errorf("Expected 3 distinct names, got %d", name.DistinctCount)
	}
}

func TestProfileDTypeInference(t *testing.T) {
	ds := buildDataset(t,
		[]string{"flag", "joined", "email"},
		[][]string{
			{"yes", "no", "yes"},
			{"2024-01-01", "2024-02-02", "2024-03-03"},
			{"a@x.com", "b@x.com", "c@x.com"},
		}, "~")

	profile := New(0).Profile(ds)
	if got := profile.Columns["flag"].DType; got != "boolean" {
		t.Errorf("Expected boolean dtype, got %s", got)
	}
	if got := profile.Columns["joined"].DType; got != "date" {
		t.Errorf("Expected date dtype, got %s", got)
	}
	email := profile.Columns["email"]
	if email.DType != "string" {
		t.Errorf("Expected string dtype for email, got %s", email.DType)
	}
	if email.Patterns[PatternEmail] != 1.0 {
		t.Errorf("Expected email pattern ratio 1.0, got %f", email.Patterns[PatternEmail])
	}
}

func TestProfileDuplicateRows(t *testing.T) {
	ds := buildDataset(t,
		[]string{"a"},
		[][]string{{"x", "y", "x", "x"}}, "~")

	profile := New(0).Profile(ds)
	if profile.DuplicateRowCount != 2 {
		t.Errorf("Expected 2 duplicate rows, got %d", profile.DuplicateRowCount)
	}
}

func TestProfileSampleValues(t *testing.T) {
	values := make([]string, 20)
	for i := range values {
		values[i] = fmt.Sprintf("name%d", i)
	}
	ds := buildDataset(t, []string{"v"}, [][]string{values}, "~")

	profile := New(0).Profile(ds)
	sample := profile.Columns["v"].SampleValues
	if len(sample) != 5 {
		t.Fatalf("Expected 5 sample values, got %d", len(sample))
	}
	// First-occurrence order
	if sample[0] != "name0" || sample[4] != "name4" {
		t.Errorf("Unexpected sample: %v", sample)
	}
}

func TestProfileSampling(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		values[i] = fmt.Sprintf("%d", i)
	}
	ds := buildDataset(t, []string{"n"}, [][]string{values}, "~")

	profile := New(10).Profile(ds)
	if !profile.Sampled {
		t.Error("Expected sampled flag")
	}
	if profile.SampleSize != 10 {
		t.Errorf("Expected sample size 10, got %d", profile.SampleSize)
	}
	// Row count reflects the full dataset, stats the sample
	if profile.RowCount != 100 {
		t.Errorf("Expected full row count 100, got %d", profile.RowCount)
	}
	if profile.Columns["n"].DistinctCount != 10 {
		t.Errorf("Expected 10 distinct in sample, got %d", profile.Columns["n"].DistinctCount)
	}
}

func TestProfileNoSamplingUnderLimit(t *testing.T) {
	ds := buildDataset(t, []string{"n"}, [][]string{{"1", "2"}}, "~")
	profile := New(100).Profile(ds)
	if profile.Sampled {
		t.Error("Small dataset should not be sampled")
	}
	if profile.SampleSize != 0 {
		t.Errorf("Expected zero sample size, got %d", profile.SampleSize)
	}
}

func TestInferDTypeBooleanBeatsNumeric(t *testing.T) {
	// "1"/"0" values are both numeric and boolean; boolean wins only at
	// full coverage
	ratios := map[string]float64{PatternBoolean: 1.0, PatternNumeric: 1.0}
	if got := inferDType(ratios); got != "boolean" {
		t.Errorf("Expected boolean, got %s", got)
	}
	ratios = map[string]float64{PatternBoolean: 0.9, PatternNumeric: 1.0}
	if got := inferDType(ratios); got != "numeric" {
		t.Errorf("Expected numeric, got %s", got)
	}
}
