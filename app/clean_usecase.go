package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/service"
)

// CleanUseCase orchestrates one cleaning run
type CleanUseCase struct {
	fileHelper *FileHelper

	// ReportWriter receives the cleaning report (stdout when nil)
	ReportWriter io.Writer

	// ReportFormat overrides the configured output format
	ReportFormat domain.OutputFormat
}

// NewCleanUseCase creates a new clean use case
func NewCleanUseCase() *CleanUseCase {
	return &CleanUseCase{fileHelper: NewFileHelper()}
}

// Execute applies the selected suggestions and writes the cleaning
// report
func (uc *CleanUseCase) Execute(ctx context.Context, req domain.CleanRequest) error {
	cfg, err := config.LoadConfigWithTarget(req.ConfigPath, req.Path)
	if err != nil {
		return err
	}

	path, err := uc.fileHelper.ResolveInputPath(req.Path)
	if err != nil {
		return err
	}
	req.Path = path

	analyzeSvc := service.NewAnalyzeService(cfg, &service.NoOpProgressManager{})
	svc := service.NewCleanService(cfg, analyzeSvc)
	resp, err := svc.Clean(ctx, req)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordCleanRun(ctx, cfg, resp); err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("history not recorded: %v", err))
		}
	}

	writer := uc.ReportWriter
	if writer == nil {
		writer = os.Stdout
	}
	format := uc.ReportFormat
	if format == "" {
		format = domain.OutputFormat(cfg.Output.Format)
	}

	formatter := service.NewOutputFormatter(cfg.Output.ShowDetails)
	return formatter.WriteClean(resp, format, writer)
}

func recordCleanRun(ctx context.Context, cfg *config.Config, resp *domain.CleanResponse) error {
	store, err := service.OpenHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordClean(ctx, resp)
}
