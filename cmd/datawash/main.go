package main

import (
	"fmt"
	"os"

	"github.com/datawash-io/datawash/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datawash",
		Short: "datawash - data quality analyzer for tabular files",
		Long: `datawash profiles tabular data files, detects quality issues like
duplicates, missing values, and near-identical columns, and suggests
prioritized cleaning transformations.`,
		Version: Version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(cleanCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("datawash version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
