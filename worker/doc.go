// Package worker provides a worker pool for parallel batch checking.
//
// The worker pool enables efficient checking of many values against a
// single compiled checker, taking advantage of multi-core processors.
//
// Example usage:
//
//	// Create a worker pool with 4 workers
//	pool := worker.NewPool(checker, 4)
//	defer pool.Close()
//
//	// Submit jobs
//	for _, v := range values {
//	    pool.Submit(worker.Job{Value: v})
//	}
//
//	// Collect results
//	for result := range pool.Results() {
//	    if result.Err != nil {
//	        // Handle configuration error
//	    }
//	    // Inspect result.OK
//	}
//
// For one-shot batches with ordered results, use CheckAll or a
// BatchChecker instead of a long-lived pool.
package worker
