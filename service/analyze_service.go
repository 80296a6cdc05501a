package service

import (
	"context"
	"fmt"
	"time"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/internal/dataset"
	"github.com/datawash-io/datawash/internal/profiler"
	"github.com/datawash-io/datawash/internal/suggest"
	"github.com/datawash-io/datawash/internal/version"
	"github.com/google/uuid"
)

// AnalyzeServiceImpl implements domain.AnalyzeService
type AnalyzeServiceImpl struct {
	cfg      *config.Config
	progress domain.ProgressManager
}

// NewAnalyzeService creates a new analyze service
func NewAnalyzeService(cfg *config.Config, pm domain.ProgressManager) *AnalyzeServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &AnalyzeServiceImpl{cfg: cfg, progress: pm}
}

// Analyze loads the dataset, profiles it, runs all enabled detectors
// concurrently, and turns the findings into prioritized suggestions.
// Detector failures degrade to response errors; only unreadable input
// fails the call.
func (s *AnalyzeServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	start := time.Now()

	cfg := s.effectiveConfig(req)
	// Request overrides can carry bad values just like a config file;
	// reject them before any detector runs.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ds, err := dataset.LoadCSV(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.Path, err)
	}

	profile := profiler.New(cfg.Profile.SampleSize).Profile(ds)

	executor := NewParallelExecutorWithProgress(&cfg.Performance, s.progress)
	runner := NewDetectRunner(cfg, executor)
	findings, warnings, errs := runner.Run(ctx, ds, profile)

	useCase, err := domain.ParseUseCase(cfg.Suggestions.UseCase)
	if err != nil {
		return nil, err
	}
	engine := suggest.NewEngine(useCase, cfg.Suggestions.MaxSuggestions)
	suggestions := engine.Generate(findings)

	return &domain.AnalyzeResponse{
		RunID:        uuid.NewString(),
		Source:       req.Path,
		Profile:      profile,
		Findings:     findings,
		Suggestions:  suggestions,
		QualityScore: domain.QualityScore(profile, findings),
		Warnings:     warnings,
		Errors:       errs,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Version:      version.Version,
		DurationMs:   time.Since(start).Milliseconds(),
	}, nil
}

// effectiveConfig overlays request fields onto the loaded configuration.
// Zero request values keep the config value.
func (s *AnalyzeServiceImpl) effectiveConfig(req domain.AnalyzeRequest) *config.Config {
	cfg := *s.cfg
	if req.UseCase != "" {
		cfg.Suggestions.UseCase = string(req.UseCase)
	}
	if req.MaxSuggestions > 0 {
		cfg.Suggestions.MaxSuggestions = req.MaxSuggestions
	}
	if req.MinSimilarity > 0 {
		cfg.Similarity.MinSimilarity = req.MinSimilarity
	}
	if req.SampleSize > 0 {
		cfg.Profile.SampleSize = req.SampleSize
	}
	return &cfg
}
