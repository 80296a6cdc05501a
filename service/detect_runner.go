package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/analyzer"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/internal/dataset"
)

// detectorTask adapts one analyzer.Detector to domain.ExecutableTask.
// Each task writes into its own slot of the shared result table, so
// detectors never contend and the final ordering is the registry
// ordering regardless of completion order.
type detectorTask struct {
	detector analyzer.Detector
	enabled  bool

	ds      *dataset.Dataset
	profile *domain.DatasetProfile
	cache   *cache.Cache

	result *detectorResult
}

type detectorResult struct {
	mu       sync.Mutex
	findings []domain.Finding
	warnings []string
}

func (t *detectorTask) Name() string {
	return t.detector.Name()
}

func (t *detectorTask) IsEnabled() bool {
	return t.enabled
}

func (t *detectorTask) Execute(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	findings, warnings, err := t.detector.Detect(t.ds, t.profile, t.cache)
	if err != nil {
		return nil, err
	}

	t.result.mu.Lock()
	t.result.findings = findings
	for _, w := range warnings {
		t.result.warnings = append(t.result.warnings, fmt.Sprintf("%s: %s", t.detector.Name(), w))
	}
	t.result.mu.Unlock()
	return findings, nil
}

// DetectRunner runs the detector set over one dataset
type DetectRunner struct {
	cfg      *config.Config
	executor *ParallelExecutorImpl
}

// NewDetectRunner creates a runner for the given configuration
func NewDetectRunner(cfg *config.Config, executor *ParallelExecutorImpl) *DetectRunner {
	return &DetectRunner{cfg: cfg, executor: executor}
}

// Run executes all enabled detectors concurrently and returns their
// combined findings in registry order. A failed detector contributes
// an error string instead of aborting the run; per-column skips come
// back as warnings.
func (r *DetectRunner) Run(ctx context.Context, ds *dataset.Dataset, profile *domain.DatasetProfile) (findings []domain.Finding, warnings []string, errs []string) {
	c := cache.New(ds)
	detectors := analyzer.AllDetectors(
		r.cfg.SimilarityAnalyzerConfig(),
		r.cfg.Detectors.OutlierMethod,
		r.cfg.Detectors.OutlierThreshold,
	)

	results := make([]*detectorResult, len(detectors))
	tasks := make([]domain.ExecutableTask, len(detectors))
	for i, d := range detectors {
		results[i] = &detectorResult{}
		tasks[i] = &detectorTask{
			detector: d,
			enabled:  r.cfg.DetectorEnabled(d.Name()),
			ds:       ds,
			profile:  profile,
			cache:    c,
			result:   results[i],
		}
	}

	if err := r.executor.Execute(ctx, tasks); err != nil {
		if agg, ok := err.(*AggregatedError); ok {
			for _, te := range agg.Errors {
				errs = append(errs, te.Error())
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	for _, res := range results {
		findings = append(findings, res.findings...)
		warnings = append(warnings, res.warnings...)
	}
	return findings, warnings, errs
}
