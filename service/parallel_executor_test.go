package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/config"
)

// mockTask implements domain.ExecutableTask for testing
type mockTask struct {
	name     string
	enabled  bool
	execFunc func(ctx context.Context) (any, error)
}

func (t *mockTask) Name() string {
	return t.name
}

func (t *mockTask) Execute(ctx context.Context) (any, error) {
	if t.execFunc != nil {
		return t.execFunc(ctx)
	}
	return nil, nil
}

func (t *mockTask) IsEnabled() bool {
	return t.enabled
}

func newMockTask(name string, enabled bool) *mockTask {
	return &mockTask{name: name, enabled: enabled}
}

func newMockTaskWithExec(name string, enabled bool, execFunc func(ctx context.Context) (any, error)) *mockTask {
	return &mockTask{name: name, enabled: enabled, execFunc: execFunc}
}

func TestNewParallelExecutor(t *testing.T) {
	executor := NewParallelExecutor()

	if executor == nil {
		t.Fatal("NewParallelExecutor returned nil")
	}
	if executor.maxConcurrency <= 0 {
		t.Errorf("maxConcurrency should be > 0, got %d", executor.maxConcurrency)
	}
	if executor.timeout != DefaultTimeout {
		t.Errorf("timeout should be %v, got %v", DefaultTimeout, executor.timeout)
	}
}

func TestNewParallelExecutorFromConfig(t *testing.T) {
	cfg := &config.PerformanceConfig{
		MaxGoroutines:  8,
		TimeoutSeconds: 120,
	}

	executor := NewParallelExecutorFromConfig(cfg)

	if executor.maxConcurrency != 8 {
		t.Errorf("maxConcurrency should be 8, got %d", executor.maxConcurrency)
	}
	if executor.timeout != 120*time.Second {
		t.Errorf("timeout should be 120s, got %v", executor.timeout)
	}
}

func TestNewParallelExecutorFromConfigDefaults(t *testing.T) {
	cfg := &config.PerformanceConfig{}

	executor := NewParallelExecutorFromConfig(cfg)

	if executor.maxConcurrency != DefaultMaxConcurrency {
		t.Errorf("maxConcurrency should be %d, got %d", DefaultMaxConcurrency, executor.maxConcurrency)
	}
	if executor.timeout != DefaultTimeout {
		t.Errorf("timeout should be %v, got %v", DefaultTimeout, executor.timeout)
	}
}

func TestExecuteRunsAllEnabledTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var count atomic.Int32
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("a", true, func(ctx context.Context) (any, error) {
			count.Add(1)
			return nil, nil
		}),
		newMockTaskWithExec("b", true, func(ctx context.Context) (any, error) {
			count.Add(1)
			return nil, nil
		}),
		newMockTaskWithExec("c", false, func(ctx context.Context) (any, error) {
			count.Add(1)
			return nil, nil
		}),
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if count.Load() != 2 {
		t.Errorf("expected 2 tasks executed, got %d", count.Load())
	}
}

func TestExecuteEmptyTaskList(t *testing.T) {
	executor := NewParallelExecutor()

	if err := executor.Execute(context.Background(), nil); err != nil {
		t.Errorf("Execute with no tasks should succeed, got %v", err)
	}
	if err := executor.Execute(context.Background(), []domain.ExecutableTask{newMockTask("off", false)}); err != nil {
		t.Errorf("Execute with only disabled tasks should succeed, got %v", err)
	}
}

func TestExecuteAggregatesFailures(t *testing.T) {
	executor := NewParallelExecutor()

	boom := errors.New("boom")
	var survived atomic.Int32
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("failing", true, func(ctx context.Context) (any, error) {
			return nil, boom
		}),
		newMockTaskWithExec("surviving", true, func(ctx context.Context) (any, error) {
			survived.Add(1)
			return nil, nil
		}),
	}

	err := executor.Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected an error")
	}

	var agg *AggregatedError
	if !errors.As(err, &agg) {
		t.Fatalf("expected *AggregatedError, got %T", err)
	}
	if len(agg.Errors) != 1 {
		t.Fatalf("expected 1 task error, got %d", len(agg.Errors))
	}
	if agg.Errors[0].TaskName != "failing" {
		t.Errorf("wrong task name: %s", agg.Errors[0].TaskName)
	}
	if !errors.Is(err, boom) {
		t.Error("aggregated error should unwrap to the task error")
	}
	if survived.Load() != 1 {
		t.Error("a task failure must not prevent other tasks from running")
	}
}

func TestExecuteRespectsConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(2)

	var current, peak atomic.Int32
	task := func(ctx context.Context) (any, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return nil, nil
	}

	tasks := make([]domain.ExecutableTask, 6)
	for i := range tasks {
		tasks[i] = newMockTaskWithExec("task", true, task)
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("concurrency limit exceeded: peak %d", peak.Load())
	}
}

func TestSettersIgnoreInvalidValues(t *testing.T) {
	executor := NewParallelExecutor()

	executor.SetMaxConcurrency(0)
	if executor.maxConcurrency <= 0 {
		t.Error("SetMaxConcurrency(0) should be ignored")
	}

	executor.SetTimeout(-time.Second)
	if executor.timeout != DefaultTimeout {
		t.Error("negative timeout should be ignored")
	}

	executor.SetTimeout(time.Minute)
	if executor.timeout != time.Minute {
		t.Error("valid timeout should be applied")
	}
}

func TestAggregatedErrorMessages(t *testing.T) {
	single := &AggregatedError{Errors: []TaskError{
		{TaskName: "missing", Err: errors.New("bad column")},
	}}
	if got := single.Error(); got != "[missing] bad column" {
		t.Errorf("unexpected single-error message: %q", got)
	}

	multi := &AggregatedError{Errors: []TaskError{
		{TaskName: "missing", Err: errors.New("bad column")},
		{TaskName: "outliers", Err: errors.New("bad method")},
	}}
	msg := multi.Error()
	if !strings.Contains(msg, "2 tasks failed") {
		t.Errorf("expected failure count in %q", msg)
	}
	if !strings.Contains(msg, "[outliers] bad method") {
		t.Errorf("expected second task error in %q", msg)
	}
}
