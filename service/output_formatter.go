package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/datawash-io/datawash/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl renders analyze and clean responses as text,
// JSON, or YAML
type OutputFormatterImpl struct {
	// ShowDetails controls whether findings print their details payload
	// in text output
	ShowDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(showDetails bool) *OutputFormatterImpl {
	return &OutputFormatterImpl{ShowDetails: showDetails}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data any) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// WriteAnalyze writes the analyze response in the specified format
func (f *OutputFormatterImpl) WriteAnalyze(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeAnalyzeText(response, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteClean writes the clean response in the specified format
func (f *OutputFormatterImpl) WriteClean(response *domain.CleanResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeCleanText(response, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeAnalyzeText(response *domain.AnalyzeResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Data Quality Analysis ===\n\n")
	fmt.Fprintf(writer, "Source: %s\n", response.Source)
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	if p := response.Profile; p != nil {
		fmt.Fprintf(writer, "Dataset:\n")
		fmt.Fprintf(writer, "  Rows: %d\n", p.RowCount)
		fmt.Fprintf(writer, "  Columns: %d\n", p.ColumnCount)
		fmt.Fprintf(writer, "  Duplicate rows: %d\n", p.DuplicateRowCount)
		if p.Sampled {
			fmt.Fprintf(writer, "  Profiled on a sample of %d rows\n", p.SampleSize)
		}
		fmt.Fprintf(writer, "\n")

		fmt.Fprintf(writer, "Columns:\n")
		names := make([]string, 0, len(p.Columns))
		for name := range p.Columns {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			col := p.Columns[name]
			fmt.Fprintf(writer, "  %-20s %-8s nulls=%d (%.1f%%) distinct=%d\n",
				col.Name, col.DType, col.NullCount, col.NullRatio*100, col.DistinctCount)
		}
		fmt.Fprintf(writer, "\n")
	}

	fmt.Fprintf(writer, "Quality Score: %d/100\n\n", response.QualityScore)

	fmt.Fprintf(writer, "Findings (%d):\n", len(response.Findings))
	for _, finding := range response.Findings {
		fmt.Fprintf(writer, "  [%s] %s: %s\n",
			strings.ToUpper(string(finding.Severity)), finding.IssueType, finding.Message)
		if f.ShowDetails && len(finding.Details) > 0 {
			keys := make([]string, 0, len(finding.Details))
			for k := range finding.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(writer, "      %s: %v\n", k, finding.Details[k])
			}
		}
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Suggestions (%d):\n", len(response.Suggestions))
	for _, sg := range response.Suggestions {
		fmt.Fprintf(writer, "  %3d. [%s] %s\n", sg.ID, strings.ToUpper(string(sg.Priority)), sg.Action)
		fmt.Fprintf(writer, "       Impact: %s\n", sg.Impact)
		if f.ShowDetails {
			fmt.Fprintf(writer, "       Why: %s\n", sg.Rationale)
		}
	}

	writeRunIssues(writer, response.Warnings, response.Errors)
	return nil
}

func (f *OutputFormatterImpl) writeCleanText(response *domain.CleanResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Cleaning Report ===\n\n")
	fmt.Fprintf(writer, "Source: %s\n", response.Source)
	fmt.Fprintf(writer, "Output: %s\n", response.OutputPath)
	fmt.Fprintf(writer, "Rows: %d -> %d\n\n", response.RowsBefore, response.RowsAfter)

	fmt.Fprintf(writer, "Applied (%d):\n", len(response.Applied))
	for i, result := range response.Applied {
		fmt.Fprintf(writer, "  %d. %s", i+1, result.Transformer)
		if len(result.ColumnsAffected) > 0 {
			fmt.Fprintf(writer, " on %s", strings.Join(result.ColumnsAffected, ", "))
		}
		fmt.Fprintf(writer, " (%d rows)\n", result.RowsAffected)
	}

	writeRunIssues(writer, response.Warnings, nil)
	return nil
}

func writeRunIssues(writer io.Writer, warnings, errs []string) {
	if len(warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}
	if len(errs) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range errs {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}
}
