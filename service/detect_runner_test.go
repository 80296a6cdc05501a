package service

import (
	"context"
	"strings"
	"testing"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
	"github.com/datawash-io/datawash/internal/dataset"
	"github.com/datawash-io/datawash/internal/profiler"
	"github.com/datawash-io/datawash/internal/testutil"
)

// dirtyCSV is the on-disk form of the dataset below, used by the
// analyze and clean service tests
const dirtyCSV = `city,age
NYC,25
LA,30
NYC,25
NYC,40
SF,NA
LA,30
`

func loadTestDataset(t *testing.T) (*dataset.Dataset, *domain.DatasetProfile) {
	t.Helper()
	ds := testutil.CreateTestDataset(t,
		[]string{"city", "age"},
		[][]string{
			{"NYC", "LA", "NYC", "NYC", "SF", "LA"},
			{"25", "30", "25", "40", "<null>", "30"},
		})
	return ds, profiler.New(0).Profile(ds)
}

func findingTypes(findings []domain.Finding) map[domain.IssueType]int {
	counts := make(map[domain.IssueType]int)
	for _, f := range findings {
		counts[f.IssueType]++
	}
	return counts
}

func TestDetectRunnerFindsIssues(t *testing.T) {
	ds, profile := loadTestDataset(t)
	runner := NewDetectRunner(config.DefaultConfig(), NewParallelExecutor())

	findings, _, errs := runner.Run(context.Background(), ds, profile)
	if len(errs) != 0 {
		t.Fatalf("unexpected detector errors: %v", errs)
	}

	counts := findingTypes(findings)
	if counts[domain.IssueDuplicateRows] != 1 {
		t.Errorf("expected one duplicate_rows finding, got %d", counts[domain.IssueDuplicateRows])
	}
	if counts[domain.IssueMissingValues] == 0 {
		t.Error("expected a missing_values finding for the null age")
	}
}

func TestDetectRunnerHonorsEnabledList(t *testing.T) {
	ds, profile := loadTestDataset(t)
	cfg := config.DefaultConfig()
	cfg.Detectors.Enabled = []string{"missing"}
	runner := NewDetectRunner(cfg, NewParallelExecutor())

	findings, _, errs := runner.Run(context.Background(), ds, profile)
	if len(errs) != 0 {
		t.Fatalf("unexpected detector errors: %v", errs)
	}

	counts := findingTypes(findings)
	if counts[domain.IssueDuplicateRows] != 0 {
		t.Error("duplicates detector should not have run")
	}
	if counts[domain.IssueMissingValues] == 0 {
		t.Error("missing detector should have run")
	}
}

func TestDetectRunnerIsolatesDetectorFailure(t *testing.T) {
	ds, profile := loadTestDataset(t)
	cfg := config.DefaultConfig()
	cfg.Detectors.OutlierMethod = "mystery"
	runner := NewDetectRunner(cfg, NewParallelExecutor())

	findings, _, errs := runner.Run(context.Background(), ds, profile)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one detector error, got %v", errs)
	}
	if !strings.Contains(errs[0], "outliers") {
		t.Errorf("error should name the failed detector: %q", errs[0])
	}

	counts := findingTypes(findings)
	if counts[domain.IssueDuplicateRows] != 1 {
		t.Error("other detectors should still contribute findings")
	}
}

func TestDetectRunnerDeterministicOrdering(t *testing.T) {
	ds, profile := loadTestDataset(t)
	runner := NewDetectRunner(config.DefaultConfig(), NewParallelExecutor())

	first, _, _ := runner.Run(context.Background(), ds, profile)
	for i := 0; i < 5; i++ {
		again, _, _ := runner.Run(context.Background(), ds, profile)
		if len(again) != len(first) {
			t.Fatalf("finding count varies between runs: %d vs %d", len(again), len(first))
		}
		for i := range first {
			if again[i].IssueType != first[i].IssueType || again[i].Message != first[i].Message {
				t.Fatalf("finding order varies at %d: %v vs %v", i, again[i], first[i])
			}
		}
	}
}
