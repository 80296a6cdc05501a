package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/datawash-io/datawash/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a datawash configuration file",
		Long: `Generate a documented datawash configuration file with sensible
defaults for a chosen use case.

Examples:
  # Create datawash.yaml in the current directory
  datawash init

  # Start from the ML preset
  datawash init --use-case ml

  # Interactive setup wizard
  datawash init --interactive
  datawash init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "datawash.yaml",
		"Output path for the config file")
	cmd.Flags().StringP("use-case", "u", "general",
		"Preset to start from: general, ml, analytics, export")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	useCase, _ := cmd.Flags().GetString("use-case")
	force, _ := cmd.Flags().GetBool("force")
	interactive, _ := cmd.Flags().GetBool("interactive")

	presets := config.GetUseCasePresets()

	if interactive {
		var err error
		useCase, configPath, err = runInteractiveSetup(presets, configPath)
		if err != nil {
			return err
		}
	}

	preset, ok := presets[useCase]
	if !ok {
		return fmt.Errorf("unknown use case %q, must be one of: general, ml, analytics, export", useCase)
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	content := config.GenerateConfigYAML(preset)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'datawash analyze <file>' to analyze a dataset.")

	return nil
}

// useCaseDescriptions back the wizard's selection list
var useCaseDescriptions = map[string]string{
	"general":   "Balanced defaults for any dataset",
	"ml":        "Model training: duplicates and types weigh heaviest",
	"analytics": "Reporting: completeness and consistent dates first",
	"export":    "Data exchange: strict formats and clean text",
}

func runInteractiveSetup(presets map[string]config.UseCasePreset, defaultConfigPath string) (string, string, error) {
	fmt.Println()
	fmt.Println("datawash Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	type option struct {
		Label       string
		Description string
		Value       string
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	options := make([]option, 0, len(names))
	for _, name := range names {
		options = append(options, option{
			Label:       name,
			Description: useCaseDescriptions[name],
			Value:       name,
		})
	}

	useCaseTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	useCasePrompt := promptui.Select{
		Label:     "What will the cleaned data be used for?",
		Items:     options,
		Templates: useCaseTemplates,
	}

	idx, _, err := useCasePrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("use case selection cancelled: %w", err)
	}
	selected := options[idx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selected, outputPath, nil
}
