package main

import (
	"fmt"

	"github.com/datawash-io/datawash/app"
	"github.com/datawash-io/datawash/domain"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat      string
	analyzeJSON        bool
	analyzeConfigPath  string
	analyzeUseCase     string
	analyzeMaxSuggest  int
	analyzeMinSim      float64
	analyzeSampleSize  int
	analyzeShowDetails bool
	analyzeNoProgress  bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a data file for quality issues",
		Long: `Analyze a tabular data file: profile every column, run the quality
detectors, and print prioritized cleaning suggestions.

Examples:
  datawash analyze data.csv
  datawash analyze --use-case ml data.csv
  datawash analyze --format json data.csv
  datawash analyze --min-similarity 0.9 --details data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&analyzeUseCase, "use-case", "u", "",
		"Downstream use case: general, ml, analytics, export")
	cmd.Flags().IntVar(&analyzeMaxSuggest, "max-suggestions", 0,
		"Maximum number of suggestions to show")
	cmd.Flags().Float64Var(&analyzeMinSim, "min-similarity", 0,
		"Similar-column reporting threshold (0-1)")
	cmd.Flags().IntVar(&analyzeSampleSize, "sample", 0,
		"Profile at most this many rows (0 = all)")
	cmd.Flags().BoolVarP(&analyzeShowDetails, "details", "d", false,
		"Show finding details and suggestion rationale")
	cmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false,
		"Disable progress bars")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(analyzeFormat, analyzeJSON)
	if err != nil {
		return err
	}

	var useCase domain.UseCase
	if analyzeUseCase != "" {
		useCase, err = domain.ParseUseCase(analyzeUseCase)
		if err != nil {
			return err
		}
	}

	uc := app.NewAnalyzeUseCase()
	uc.NoProgress = analyzeNoProgress
	return uc.Execute(cmd.Context(), domain.AnalyzeRequest{
		Path:           args[0],
		UseCase:        useCase,
		MaxSuggestions: analyzeMaxSuggest,
		MinSimilarity:  analyzeMinSim,
		SampleSize:     analyzeSampleSize,
		OutputFormat:   format,
		ShowDetails:    analyzeShowDetails,
		ConfigPath:     analyzeConfigPath,
	})
}

// resolveFormat turns the format flags into a domain.OutputFormat.
// An empty result defers to the configured default.
func resolveFormat(flag string, jsonShorthand bool) (domain.OutputFormat, error) {
	if jsonShorthand {
		return domain.OutputFormatJSON, nil
	}
	switch flag {
	case "":
		return "", nil
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q, must be text, json, or yaml", flag)
	}
}
