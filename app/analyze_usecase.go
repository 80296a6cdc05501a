package app

import (
	"context"
	"fmt"
	"os"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/service"
)

// AnalyzeUseCase orchestrates one analysis run: configuration loading,
// input resolution, the detection pipeline, history recording, and
// output formatting
type AnalyzeUseCase struct {
	fileHelper *FileHelper

	// NoProgress disables progress bars even on a terminal
	NoProgress bool
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase() *AnalyzeUseCase {
	return &AnalyzeUseCase{fileHelper: NewFileHelper()}
}

// Execute runs the analysis and writes the formatted report to the
// request's writer (stdout when unset)
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) error {
	cfg, err := config.LoadConfigWithTarget(req.ConfigPath, req.Path)
	if err != nil {
		return err
	}

	path, err := uc.fileHelper.ResolveInputPath(req.Path)
	if err != nil {
		return err
	}
	req.Path = path

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormat(cfg.Output.Format)
	}

	// Progress bars would interleave with a text report on the same
	// terminal, so only machine formats get them
	pm := service.NewProgressManager(!uc.NoProgress && format != domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewAnalyzeService(cfg, pm)
	resp, err := svc.Analyze(ctx, req)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordAnalyzeRun(ctx, cfg, resp); err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("history not recorded: %v", err))
		}
	}

	formatter := service.NewOutputFormatter(req.ShowDetails || cfg.Output.ShowDetails)
	return formatter.WriteAnalyze(resp, format, writer)
}

func recordAnalyzeRun(ctx context.Context, cfg *config.Config, resp *domain.AnalyzeResponse) error {
	store, err := service.OpenHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordAnalyze(ctx, resp, domain.UseCase(cfg.Suggestions.UseCase))
}
