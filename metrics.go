package hintguard

import (
	"sync/atomic"
	"time"
)

// Metrics tracks checking performance using lock-free atomic operations.
// All methods are safe for concurrent use.
//
// The inspection counter counts shallow classifications of (sub-)values and
// is the instrumentation hook for verifying that ignorable hints perform
// zero value inspection.
type Metrics struct {
	// Check counts
	checksTotal  atomic.Uint64
	checksPassed atomic.Uint64

	// Check timing (stored as nanoseconds)
	checkTimeTotal atomic.Uint64
	checkTimeMin   atomic.Uint64
	checkTimeMax   atomic.Uint64

	// Compilation counts
	compilesTotal atomic.Uint64
	memoHits      atomic.Uint64
	memoMisses    atomic.Uint64

	// Value inspections performed by compiled checkers
	inspections atomic.Uint64

	// Slow-path diagnostics
	explainsTotal atomic.Uint64

	// Compile-time warnings emitted
	warningsTotal atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.checkTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordCheck records a completed check.
func (m *Metrics) RecordCheck(duration time.Duration, passed bool) {
	m.checksTotal.Add(1)
	if passed {
		m.checksPassed.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.checkTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.checkTimeMin.Load()
		if ns >= old {
			break
		}
		if m.checkTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.checkTimeMax.Load()
		if ns <= old {
			break
		}
		if m.checkTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCompile records a hint compilation (a memoization miss that built a
// new checker).
func (m *Metrics) RecordCompile() {
	m.compilesTotal.Add(1)
}

// RecordMemoHit records a memoization cache hit.
func (m *Metrics) RecordMemoHit() {
	m.memoHits.Add(1)
}

// RecordMemoMiss records a memoization cache miss.
func (m *Metrics) RecordMemoMiss() {
	m.memoMisses.Add(1)
}

// RecordInspection records one shallow classification of a value.
func (m *Metrics) RecordInspection() {
	m.inspections.Add(1)
}

// RecordExplain records one diagnostic walk.
func (m *Metrics) RecordExplain() {
	m.explainsTotal.Add(1)
}

// RecordWarnings records compile-time warnings.
func (m *Metrics) RecordWarnings(n int) {
	if n > 0 {
		m.warningsTotal.Add(uint64(n))
	}
}

// --- Query Methods ---

// ChecksTotal returns the total number of checks performed.
func (m *Metrics) ChecksTotal() uint64 {
	return m.checksTotal.Load()
}

// ChecksPassed returns the number of passing checks.
func (m *Metrics) ChecksPassed() uint64 {
	return m.checksPassed.Load()
}

// PassRate returns the fraction of passing checks (0.0 to 1.0).
func (m *Metrics) PassRate() float64 {
	total := m.checksTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.checksPassed.Load()) / float64(total)
}

// AverageCheckTime returns the average check duration.
func (m *Metrics) AverageCheckTime() time.Duration {
	total := m.checksTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.checkTimeTotal.Load() / total)
}

// MinCheckTime returns the minimum check duration.
func (m *Metrics) MinCheckTime() time.Duration {
	minVal := m.checkTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal)
}

// MaxCheckTime returns the maximum check duration.
func (m *Metrics) MaxCheckTime() time.Duration {
	return time.Duration(m.checkTimeMax.Load())
}

// CompilesTotal returns the number of checkers actually built.
func (m *Metrics) CompilesTotal() uint64 {
	return m.compilesTotal.Load()
}

// MemoHits returns the total memoization hits.
func (m *Metrics) MemoHits() uint64 {
	return m.memoHits.Load()
}

// MemoMisses returns the total memoization misses.
func (m *Metrics) MemoMisses() uint64 {
	return m.memoMisses.Load()
}

// MemoHitRate returns the memoization hit rate (0.0 to 1.0).
func (m *Metrics) MemoHitRate() float64 {
	hits := m.memoHits.Load()
	misses := m.memoMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Inspections returns the total number of shallow value classifications.
func (m *Metrics) Inspections() uint64 {
	return m.inspections.Load()
}

// ExplainsTotal returns the number of diagnostic walks performed.
func (m *Metrics) ExplainsTotal() uint64 {
	return m.explainsTotal.Load()
}

// WarningsTotal returns the number of compile-time warnings emitted.
func (m *Metrics) WarningsTotal() uint64 {
	return m.warningsTotal.Load()
}

// --- Export Methods ---

// Snapshot represents a point-in-time snapshot of all metrics.
type Snapshot struct {
	// Timestamp when the snapshot was taken
	Timestamp time.Time `json:"timestamp"`

	// Check metrics
	ChecksTotal  uint64  `json:"checks_total"`
	ChecksPassed uint64  `json:"checks_passed"`
	PassRate     float64 `json:"pass_rate"`

	// Timing metrics (in nanoseconds for precision)
	AvgCheckTimeNs uint64 `json:"avg_check_time_ns"`
	MinCheckTimeNs uint64 `json:"min_check_time_ns"`
	MaxCheckTimeNs uint64 `json:"max_check_time_ns"`

	// Compilation metrics
	CompilesTotal uint64  `json:"compiles_total"`
	MemoHits      uint64  `json:"memo_hits"`
	MemoMisses    uint64  `json:"memo_misses"`
	MemoHitRate   float64 `json:"memo_hit_rate"`

	// Inspection metrics
	Inspections uint64 `json:"inspections"`

	// Diagnostics
	ExplainsTotal uint64 `json:"explains_total"`
	WarningsTotal uint64 `json:"warnings_total"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.checksTotal.Load()
	hits := m.memoHits.Load()
	misses := m.memoMisses.Load()

	var avgTime, passRate, hitRate float64
	if total > 0 {
		avgTime = float64(m.checkTimeTotal.Load()) / float64(total)
		passRate = float64(m.checksPassed.Load()) / float64(total)
	}
	if memoTotal := hits + misses; memoTotal > 0 {
		hitRate = float64(hits) / float64(memoTotal)
	}

	minTime := m.checkTimeMin.Load()
	if minTime == ^uint64(0) {
		minTime = 0
	}

	return Snapshot{
		Timestamp:      time.Now(),
		ChecksTotal:    total,
		ChecksPassed:   m.checksPassed.Load(),
		PassRate:       passRate,
		AvgCheckTimeNs: uint64(avgTime),
		MinCheckTimeNs: minTime,
		MaxCheckTimeNs: m.checkTimeMax.Load(),
		CompilesTotal:  m.compilesTotal.Load(),
		MemoHits:       hits,
		MemoMisses:     misses,
		MemoHitRate:    hitRate,
		Inspections:    m.inspections.Load(),
		ExplainsTotal:  m.explainsTotal.Load(),
		WarningsTotal:  m.warningsTotal.Load(),
	}
}

// Export returns metrics as a map suitable for external systems.
func (m *Metrics) Export() map[string]interface{} {
	s := m.Snapshot()
	return map[string]interface{}{
		"checks_total":      s.ChecksTotal,
		"checks_passed":     s.ChecksPassed,
		"pass_rate":         s.PassRate,
		"avg_check_time_ns": s.AvgCheckTimeNs,
		"min_check_time_ns": s.MinCheckTimeNs,
		"max_check_time_ns": s.MaxCheckTimeNs,
		"compiles_total":    s.CompilesTotal,
		"memo_hits":         s.MemoHits,
		"memo_misses":       s.MemoMisses,
		"memo_hit_rate":     s.MemoHitRate,
		"inspections":       s.Inspections,
		"explains_total":    s.ExplainsTotal,
		"warnings_total":    s.WarningsTotal,
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.checksTotal.Store(0)
	m.checksPassed.Store(0)
	m.checkTimeTotal.Store(0)
	m.checkTimeMin.Store(^uint64(0))
	m.checkTimeMax.Store(0)
	m.compilesTotal.Store(0)
	m.memoHits.Store(0)
	m.memoMisses.Store(0)
	m.inspections.Store(0)
	m.explainsTotal.Store(0)
	m.warningsTotal.Store(0)
}
