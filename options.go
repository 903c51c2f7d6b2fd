package hintguard

import "runtime"

// Option configures the checking engine.
type Option func(*Options)

// Options holds all configuration for the checking engine.
type Options struct {
	// Strategy selects how much of a value each compiled check inspects.
	Strategy Strategy

	// WarningsAsErrors promotes compile-time warnings to ConfigurationErrors.
	WarningsAsErrors bool

	// MemoCacheSize bounds the number of memoized compiled checkers.
	MemoCacheSize int

	// WorkerCount is the number of workers used for batch checking.
	WorkerCount int

	// SampleSeed, when SeededSampling is set, makes the per-check random
	// draw deterministic. Used by tests; production engines share one
	// non-deterministic source.
	SampleSeed     uint64
	SeededSampling bool

	// Debug enables verbose compile-time logging.
	Debug bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Strategy:         StrategySampled,
		WarningsAsErrors: false,
		MemoCacheSize:    2048,
		WorkerCount:      runtime.NumCPU(),
		Debug:            false,
	}
}

// --- Checking Options ---

// WithStrategy selects the checking strategy.
// Unrecognized or reserved strategies fail at engine construction.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithWarningsAsErrors promotes compile-time warnings to errors.
func WithWarningsAsErrors(enable bool) Option {
	return func(o *Options) {
		o.WarningsAsErrors = enable
	}
}

// --- Performance Options ---

// WithMemoCacheSize bounds the compiled-checker memoization cache.
func WithMemoCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.MemoCacheSize = size
		}
	}
}

// WithWorkerCount sets the number of workers for batch checking.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// --- Debug Options ---

// WithDebug enables verbose compile-time logging.
func WithDebug(enable bool) Option {
	return func(o *Options) {
		o.Debug = enable
	}
}

// WithSampleSeed makes container sampling deterministic.
// Intended for tests that need reproducible draws.
func WithSampleSeed(seed uint64) Option {
	return func(o *Options) {
		o.SampleSeed = seed
		o.SeededSampling = true
	}
}

// --- Presets ---

// StrictOptions returns options for strict checking: warnings become errors.
func StrictOptions() []Option {
	return []Option{
		WithWarningsAsErrors(true),
	}
}

// DebugOptions returns options useful for debugging.
func DebugOptions() []Option {
	return []Option{
		WithDebug(true),
		WithWorkerCount(1),
	}
}

// SkipOptions returns options that disable all checking.
func SkipOptions() []Option {
	return []Option{
		WithStrategy(StrategySkip),
	}
}
