package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/service"
	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historyConfigPath string
	historyRunID      string
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded analysis and cleaning runs",
		Long: `Show past runs from the local history database. History is opt-in:
enable it with 'history: {enabled: true}' in datawash.yaml.

Examples:
  datawash history
  datawash history --limit 5
  datawash history --run <run-id>`,
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum number of runs to show")
	cmd.Flags().StringVarP(&historyConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&historyRunID, "run", "",
		"Show the applied transformations of one run")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(historyConfigPath)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled; enable it in datawash.yaml first")
	}

	store, err := service.OpenHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyRunID != "" {
		return printAppliedTransforms(cmd, store, historyRunID)
	}

	runs, err := store.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tKIND\tSOURCE\tSCORE\tFINDINGS\tSUGGESTIONS\tWHEN")
	for _, r := range runs {
		score := "-"
		if r.Kind == "analyze" {
			score = fmt.Sprintf("%d", r.QualityScore)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.RunID, r.Kind, r.Source, score, r.FindingCount, r.SuggestionCount, r.CreatedAt)
	}
	return w.Flush()
}

func printAppliedTransforms(cmd *cobra.Command, store *service.HistoryStore, runID string) error {
	applied, err := store.AppliedTransforms(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Printf("No applied transformations recorded for run %s.\n", runID)
		return nil
	}
	for i, result := range applied {
		fmt.Printf("%d. %s", i+1, result.Transformer)
		if len(result.ColumnsAffected) > 0 {
			fmt.Printf(" (%v)", result.ColumnsAffected)
		}
		fmt.Printf(" - %d rows\n", result.RowsAffected)
	}
	return nil
}
