package service

import (
	"context"
	"fmt"
	"time"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/internal/dataset"
	"github.com/datawash-io/datawash/internal/suggest"
	"github.com/datawash-io/datawash/internal/transform"
	"github.com/google/uuid"
)

// CleanServiceImpl implements domain.CleanService
type CleanServiceImpl struct {
	cfg      *config.Config
	analyzer domain.AnalyzeService
}

// NewCleanService creates a new clean service. The analyze service is
// reused to regenerate suggestions, so the IDs a user saw in analyze
// output select the same fixes here.
func NewCleanService(cfg *config.Config, analyzer domain.AnalyzeService) *CleanServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &CleanServiceImpl{cfg: cfg, analyzer: analyzer}
}

// Clean re-analyzes the dataset, selects the requested suggestions,
// resolves conflicts, schedules them by phase, and applies them in
// order. The audit trail lists every transformation actually executed.
func (s *CleanServiceImpl) Clean(ctx context.Context, req domain.CleanRequest) (*domain.CleanResponse, error) {
	start := time.Now()

	analysis, err := s.analyzer.Analyze(ctx, domain.AnalyzeRequest{
		Path:           req.Path,
		UseCase:        req.UseCase,
		MaxSuggestions: req.MaxSuggestions,
		MinSimilarity:  req.MinSimilarity,
		ConfigPath:     req.ConfigPath,
	})
	if err != nil {
		return nil, err
	}

	selected, err := selectSuggestions(analysis.Suggestions, req.SuggestionIDs)
	if err != nil {
		return nil, err
	}

	plan := suggest.Schedule(suggest.Resolve(selected))

	ds, err := dataset.LoadCSV(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.Path, err)
	}
	rowsBefore := ds.RowCount()

	var applied []domain.TransformationResult
	warnings := make([]string, 0, len(analysis.Errors))
	// Detector failures mean the plan may be missing fixes; surface
	// them on the clean run too.
	for _, e := range analysis.Errors {
		warnings = append(warnings, fmt.Sprintf("detector failed during analysis: %s", e))
	}
	for _, sg := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, result, err := transform.Apply(transform.Kind(sg.Transformer), ds, sg.Params)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("suggestion %d (%s) skipped: %v", sg.ID, sg.Transformer, err))
			continue
		}
		ds = next
		applied = append(applied, *result)
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = req.Path
	}
	if err := dataset.SaveCSV(ds, outputPath); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return &domain.CleanResponse{
		RunID:       uuid.NewString(),
		Source:      req.Path,
		OutputPath:  outputPath,
		Applied:     applied,
		RowsBefore:  rowsBefore,
		RowsAfter:   ds.RowCount(),
		Warnings:    append(analysis.Warnings, warnings...),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		DurationMs:  time.Since(start).Milliseconds(),
	}, nil
}

// selectSuggestions filters by the requested IDs. An empty ID list
// selects everything; an unknown ID is an error, not a silent no-op.
// The result keeps the analysis's priority order regardless of the
// order the IDs were given in, since conflict resolution depends on it.
func selectSuggestions(suggestions []domain.Suggestion, ids []int) ([]domain.Suggestion, error) {
	if len(ids) == 0 {
		return suggestions, nil
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]domain.Suggestion, 0, len(wanted))
	found := make(map[int]struct{}, len(wanted))
	for _, sg := range suggestions {
		if _, ok := wanted[sg.ID]; ok {
			selected = append(selected, sg)
			found[sg.ID] = struct{}{}
		}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("unknown suggestion id %d", id)
		}
	}
	return selected, nil
}
