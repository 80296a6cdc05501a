package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datawash-io/datawash/domain"
)

const testCSV = `city,age
NYC,25
LA,30
NYC,25
SF,NA
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveInputPathFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", testCSV)

	resolved, err := NewFileHelper().ResolveInputPath(path)
	if err != nil {
		t.Fatalf("ResolveInputPath failed: %v", err)
	}
	if resolved != path {
		t.Errorf("expected %s, got %s", path, resolved)
	}
}

func TestResolveInputPathRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.parquet", "not really")

	if _, err := NewFileHelper().ResolveInputPath(path); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestResolveInputPathDirectory(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "only.csv", testCSV)
	writeFile(t, dir, "notes.md", "readme")

	resolved, err := NewFileHelper().ResolveInputPath(dir)
	if err != nil {
		t.Fatalf("ResolveInputPath failed: %v", err)
	}
	if resolved != expected {
		t.Errorf("expected %s, got %s", expected, resolved)
	}
}

func TestResolveInputPathAmbiguousDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", testCSV)
	writeFile(t, dir, "b.csv", testCSV)

	if _, err := NewFileHelper().ResolveInputPath(dir); err == nil {
		t.Fatal("expected an error for an ambiguous directory")
	}
}

func TestAnalyzeUseCaseEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", testCSV)

	var sb strings.Builder
	uc := NewAnalyzeUseCase()
	uc.NoProgress = true
	err := uc.Execute(context.Background(), domain.AnalyzeRequest{
		Path:         path,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &sb,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var resp domain.AnalyzeResponse
	if err := json.Unmarshal([]byte(sb.String()), &resp); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if resp.Profile == nil || resp.Profile.RowCount != 4 {
		t.Errorf("unexpected profile: %+v", resp.Profile)
	}
	if len(resp.Findings) == 0 {
		t.Error("expected findings for a dirty dataset")
	}
}

func TestAnalyzeUseCaseUsesConfigDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", testCSV)
	writeFile(t, dir, "datawash.yaml", "detectors:\n  enabled: [missing]\n")

	var sb strings.Builder
	uc := NewAnalyzeUseCase()
	uc.NoProgress = true
	err := uc.Execute(context.Background(), domain.AnalyzeRequest{
		Path:         path,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &sb,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var resp domain.AnalyzeResponse
	if err := json.Unmarshal([]byte(sb.String()), &resp); err != nil {
		t.Fatal(err)
	}
	for _, f := range resp.Findings {
		if f.IssueType == domain.IssueDuplicateRows {
			t.Error("duplicates detector should be disabled by the discovered config")
		}
	}
}

func TestCleanUseCaseEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", testCSV)
	outputPath := filepath.Join(dir, "clean.csv")

	var sb strings.Builder
	uc := NewCleanUseCase()
	uc.ReportWriter = &sb
	uc.ReportFormat = domain.OutputFormatText
	err := uc.Execute(context.Background(), domain.CleanRequest{
		Path:       path,
		OutputPath: outputPath,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(sb.String(), "Cleaning Report") {
		t.Errorf("expected a cleaning report, got:\n%s", sb.String())
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("cleaned file missing: %v", err)
	}
	lines := strings.Count(strings.TrimSpace(string(data)), "\n") + 1
	// Header plus three deduplicated rows
	if lines != 4 {
		t.Errorf("expected 4 output lines, got %d:\n%s", lines, data)
	}
}

func TestAnalyzeUseCaseInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", testCSV)
	cfgPath := writeFile(t, dir, "bad.yaml", "suggestions:\n  use_case: nonsense\n")

	uc := NewAnalyzeUseCase()
	uc.NoProgress = true
	err := uc.Execute(context.Background(), domain.AnalyzeRequest{
		Path:       path,
		ConfigPath: cfgPath,
	})
	if err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	if !strings.Contains(err.Error(), "use_case") {
		t.Errorf("error should mention the invalid field: %v", err)
	}
}
