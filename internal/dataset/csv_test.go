package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "name,age,city\nann,30,NYC\nbob,NA,LA\ncy,25,null\n"
	ds, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if ds.RowCount() != 3 || ds.ColumnCount() != 3 {
		t.Fatalf("Wrong shape: %d x %d", ds.RowCount(), ds.ColumnCount())
	}
	names := ds.ColumnNames()
	if names[0] != "name" || names[1] != "age" || names[2] != "city" {
		t.Errorf("Header order wrong: %v", names)
	}

	age, _ := ds.Column("age")
	if !age.IsNull(1) {
		t.Error("NA token should load as null")
	}
	city, _ := ds.Column("city")
	if !city.IsNull(2) {
		t.Error("null token should load as null")
	}
	if age.Value(0) != "30" {
		t.Errorf("Expected 30, got %q", age.Value(0))
	}
}

func TestReadCSVEmptyStringIsValue(t *testing.T) {
	input := "a,b\nx,\ny,z\n"
	ds, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ds.Column("b")
	if b.IsNull(0) {
		t.Error("Empty cell is a value, not a null")
	}
	if b.Value(0) != "" {
		t.Errorf("Expected empty string, got %q", b.Value(0))
	}
}

func TestReadCSVShortRecords(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5\n"
	ds, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	c, _ := ds.Column("c")
	if !c.IsNull(1) {
		t.Error("Missing trailing cell should load as null")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if ds.RowCount() != 0 || ds.ColumnCount() != 2 {
		t.Errorf("Wrong shape for header-only input: %d x %d", ds.RowCount(), ds.ColumnCount())
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("Expected error for input with no header")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	input := "name,age\nann,30\nbob,NA\n"
	ds, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := WriteCSV(ds, &sb); err != nil {
		t.Fatal(err)
	}
	// Nulls serialize as empty cells
	want := "name,age\nann,30\nbob,\n"
	if sb.String() != want {
		t.Errorf("Round trip mismatch:\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestLoadSaveCSVFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(in, []byte("v\n1\nNaN\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadCSV(in)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := ds.Column("v")
	if !col.IsNull(1) {
		t.Error("NaN token should load as null")
	}

	if err := SaveCSV(ds, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v\n1\n\n" {
		t.Errorf("Unexpected saved file: %q", string(data))
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "ghost.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
