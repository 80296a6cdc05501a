package main

import (
	"testing"

	"github.com/datawash-io/datawash/domain"
)

func TestAnalyzeCmdFlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{"format", "json", "config", "use-case", "max-suggestions",
		"min-similarity", "sample", "details", "no-progress"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmdShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"f": "format",
		"c": "config",
		"u": "use-case",
		"d": "details",
	}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCleanCmdFlagsExist(t *testing.T) {
	cmd := cleanCmd()

	expectedFlags := []string{"output", "apply", "format", "json", "config", "use-case", "min-similarity"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmdRequiresPath(t *testing.T) {
	cmd := analyzeCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error without a path argument")
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		flag    string
		json    bool
		want    domain.OutputFormat
		wantErr bool
	}{
		{"", false, "", false},
		{"text", false, domain.OutputFormatText, false},
		{"json", false, domain.OutputFormatJSON, false},
		{"yaml", false, domain.OutputFormatYAML, false},
		{"", true, domain.OutputFormatJSON, false},
		{"text", true, domain.OutputFormatJSON, false},
		{"xml", false, "", true},
	}

	for _, tt := range tests {
		got, err := resolveFormat(tt.flag, tt.json)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveFormat(%q, %v): expected error", tt.flag, tt.json)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveFormat(%q, %v): %v", tt.flag, tt.json, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveFormat(%q, %v) = %q, want %q", tt.flag, tt.json, got, tt.want)
		}
	}
}

func TestHistoryCmdDisabledByDefault(t *testing.T) {
	cmd := historyCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error when history is disabled")
	}
}
