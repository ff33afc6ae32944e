package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
)

// Ensure Aggregator implements the interface.
var _ driving.Aggregator = (*Aggregator)(nil)

// DefaultTaskTimeout bounds each adapter task when no timeout is
// configured.
const DefaultTaskTimeout = 10 * time.Second

// Aggregator fans out over source adapters, isolates per-task failures
// and merges the surviving results. It is the only highly concurrent
// part of the system: tasks run in parallel, each under its own
// timeout, and the run joins on all of them before merging.
type Aggregator struct {
	factory driven.AdapterFactory
	timeout time.Duration
}

// NewAggregator creates an aggregator. A zero timeout selects
// DefaultTaskTimeout.
func NewAggregator(factory driven.AdapterFactory, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}
	return &Aggregator{
		factory: factory,
		timeout: timeout,
	}
}

// taskResult carries one finished task back to the collector.
type taskResult struct {
	report domain.AdapterReport
	items  []domain.RawItem
}

// Run dispatches every task concurrently and blocks until all finish,
// time out, or the run context is cancelled. A failing task contributes
// zero items and never cancels or delays its siblings. When the run
// context is cancelled, in-flight tasks are abandoned (best effort) and
// contribute nothing.
func (a *Aggregator) Run(
	ctx context.Context, tasks []driving.AdapterTask,
) ([]domain.RawItem, domain.AggregationSummary) {
	summary := domain.AggregationSummary{RunID: uuid.NewString()}

	logger.Section("Aggregation Run")
	logger.Info("Run %s: dispatching %d tasks", summary.RunID, len(tasks))

	results := make(chan taskResult, len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task driving.AdapterTask) {
			defer wg.Done()
			results <- a.runTask(ctx, task)
		}(task)
	}

	// Close the channel once every task has reported, so the collector
	// below can distinguish "all done" from "still running" when the run
	// is cancelled mid-flight.
	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []domain.RawItem
	done := false
	for !done {
		select {
		case <-ctx.Done():
			logger.Warn("Run %s cancelled: abandoning in-flight tasks", summary.RunID)
			done = true
		case res, ok := <-results:
			if !ok {
				done = true
				break
			}
			summary.Reports = append(summary.Reports, res.report)
			merged = append(merged, res.items...)
		}
	}

	summary.Items = len(merged)
	logger.Info("Run %s complete: %d items, %d ok, %d failed",
		summary.RunID, summary.Items, summary.Succeeded(), summary.Failed())

	return merged, summary
}

// runTask executes one adapter task under its own timeout and converts
// any failure into a zero-item report.
func (a *Aggregator) runTask(ctx context.Context, task driving.AdapterTask) taskResult {
	start := time.Now()
	report := domain.AdapterReport{
		Source: task.Source,
		Query:  task.Params.Query,
	}

	adapter, err := a.factory.Create(task.Source)
	if err != nil {
		report.Err = err.Error()
		report.Elapsed = time.Since(start)
		logger.Warn("Task %s(%s): %v", task.Source, task.Params.Query, err)
		return taskResult{report: report}
	}
	defer adapter.Close()

	taskCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	items, err := adapter.Fetch(taskCtx, task.Params)
	report.Elapsed = time.Since(start)
	if err != nil {
		report.Err = err.Error()
		logger.Warn("Task %s(%s) failed after %s: %v",
			task.Source, task.Params.Query, report.Elapsed, err)
		return taskResult{report: report}
	}

	report.Items = len(items)
	logger.Debug("Task %s(%s): %d items in %s",
		task.Source, task.Params.Query, len(items), report.Elapsed)
	return taskResult{report: report, items: items}
}
