package main

import (
	"fmt"

	"github.com/datawash-io/datawash/app"
	"github.com/datawash-io/datawash/domain"
	"github.com/spf13/cobra"
)

var (
	cleanOutputPath string
	cleanApplyIDs   []int
	cleanFormat     string
	cleanJSON       bool
	cleanConfigPath string
	cleanUseCase    string
	cleanMinSim     float64
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Apply cleaning suggestions to a data file",
		Long: `Analyze a data file, resolve the suggested fixes into a conflict-free
plan, and apply them in dependency order.

By default every suggestion is applied. Use --apply with the suggestion
ids from a previous analyze run to pick specific fixes; ids are stable
between runs on the same file and configuration.

Examples:
  datawash clean data.csv -o cleaned.csv
  datawash clean --apply 1,3,5 data.csv -o cleaned.csv
  datawash clean --use-case export data.csv -o cleaned.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}

	cmd.Flags().StringVarP(&cleanOutputPath, "output", "o", "",
		"Output file path (default: overwrite the input)")
	cmd.Flags().IntSliceVar(&cleanApplyIDs, "apply", nil,
		"Suggestion ids to apply (comma-separated, default all)")
	cmd.Flags().StringVarP(&cleanFormat, "format", "f", "",
		"Report format: text, json, yaml")
	cmd.Flags().BoolVar(&cleanJSON, "json", false,
		"Output report as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&cleanConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&cleanUseCase, "use-case", "u", "",
		"Downstream use case: general, ml, analytics, export")
	cmd.Flags().Float64Var(&cleanMinSim, "min-similarity", 0,
		"Similar-column reporting threshold (0-1)")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cleanFormat, cleanJSON)
	if err != nil {
		return err
	}

	var useCase domain.UseCase
	if cleanUseCase != "" {
		useCase, err = domain.ParseUseCase(cleanUseCase)
		if err != nil {
			return err
		}
	}

	if cleanOutputPath == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No --output given, the input file will be overwritten")
	}

	uc := app.NewCleanUseCase()
	uc.ReportFormat = format
	return uc.Execute(cmd.Context(), domain.CleanRequest{
		Path:          args[0],
		OutputPath:    cleanOutputPath,
		SuggestionIDs: cleanApplyIDs,
		UseCase:       useCase,
		MinSimilarity: cleanMinSim,
		ConfigPath:    cleanConfigPath,
	})
}
