package worker

import (
	"time"

	"github.com/hintguard/hintguard"
)

// Checker is the interface the pool uses to check values.
// *engine.CompiledChecker satisfies it; the indirection keeps this package
// free of a dependency on the compiler.
type Checker interface {
	Check(value any) (bool, error)
	Explain(value any) *hintguard.ViolationReport
}

// Job represents one value to be checked by a worker.
type Job struct {
	// ID is a unique identifier for this job. Submit assigns a UUID when
	// empty.
	ID string

	// Value is the value to check.
	Value any

	// Explain requests an exhaustive violation report for failing values.
	Explain bool
}

// JobResult represents the outcome of a checking job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// OK reports whether the value conformed.
	OK bool

	// Report is the violation report, populated only when the job requested
	// explanation and the value failed.
	Report *hintguard.ViolationReport

	// Err contains any configuration error surfaced during the check.
	Err error

	// Duration is the time taken to check the value.
	Duration time.Duration
}

// BatchResult aggregates results from multiple jobs.
type BatchResult struct {
	// Results contains all job results.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs completed (including errors).
	CompletedJobs int

	// Violations is the number of jobs whose value did not conform.
	Violations int
}

// HasErrors returns true if any job result carries a configuration error.
func (br *BatchResult) HasErrors() bool {
	for _, r := range br.Results {
		if r != nil && r.Err != nil {
			return true
		}
	}
	return false
}

// ViolationCount returns the number of non-conforming values across all
// results.
func (br *BatchResult) ViolationCount() int {
	count := 0
	for _, r := range br.Results {
		if r != nil && r.Err == nil && !r.OK {
			count++
		}
	}
	return count
}
