package worker

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchChecker checks many values in parallel against a single compiled
// checker, preserving input order in the results.
type BatchChecker struct {
	checker Checker
	workers int
	explain bool
}

// NewBatchChecker creates a new batch checker.
// If workers <= 0, it defaults to runtime.NumCPU().
func NewBatchChecker(checker Checker, workers int) *BatchChecker {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchChecker{
		checker: checker,
		workers: workers,
	}
}

// WithExplain requests an exhaustive violation report for every failing
// value in the batch.
func (bc *BatchChecker) WithExplain() *BatchChecker {
	bc.explain = true
	return bc
}

// CheckAll checks multiple values in parallel. Results[i] corresponds to
// values[i]. A canceled context stops scheduling new values; results for
// unprocessed values are nil.
func (bc *BatchChecker) CheckAll(ctx context.Context, values []any) (*BatchResult, error) {
	if len(values) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}, nil
	}
	if bc.checker == nil {
		return nil, ErrNoChecker
	}

	results := make([]*JobResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bc.workers)

	for i, value := range values {
		select {
		case <-ctx.Done():
			return bc.aggregate(results, len(values)), ctx.Err()
		default:
		}

		g.Go(func() error {
			start := time.Now()
			ok, err := bc.checker.Check(value)
			result := &JobResult{
				ID:       strconv.Itoa(i),
				OK:       ok,
				Err:      err,
				Duration: time.Since(start),
			}
			if err == nil && !ok && bc.explain {
				result.Report = bc.checker.Explain(value)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return bc.aggregate(results, len(values)), err
	}
	return bc.aggregate(results, len(values)), nil
}

func (bc *BatchChecker) aggregate(results []*JobResult, total int) *BatchResult {
	br := &BatchResult{
		Results:   results,
		TotalJobs: total,
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		br.CompletedJobs++
		if r.Err == nil && !r.OK {
			br.Violations++
		}
	}
	return br
}

// CheckAll is a convenience function for one-off batch checks.
func CheckAll(ctx context.Context, checker Checker, values []any) (*BatchResult, error) {
	return NewBatchChecker(checker, runtime.NumCPU()).CheckAll(ctx, values)
}
