package engine

import (
	"sync"

	"github.com/hintguard/hintguard"
)

// defaultEngine backs the package-level one-shot helpers.
var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New()
	if err != nil {
		// Default options always construct a valid engine.
		panic(err)
	}
	return e
})

// Default returns the process-wide engine used by the package-level
// helpers. Hints checked through it share one memoization cache and one
// resolver.
func Default() *Engine {
	return defaultEngine()
}

// Conforms is the one-shot compile-and-check entry point: it compiles the
// raw hint (memoized) and checks the value against it.
func (e *Engine) Conforms(value, rawHint any) (bool, error) {
	checker, err := e.CompileHint(rawHint)
	if err != nil {
		return false, err
	}
	return checker.Check(value)
}

// Assert is the one-shot compile, check, and raise entry point. It returns
// nil if the value conforms, a *hintguard.ConfigurationError if the hint is
// unusable, and a *hintguard.ViolationError carrying the exhaustive report
// if the value does not conform.
func (e *Engine) Assert(value, rawHint any) error {
	checker, err := e.CompileHint(rawHint)
	if err != nil {
		return err
	}
	ok, err := checker.Check(value)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return &hintguard.ViolationError{Report: checker.Explain(value)}
}

// Conforms checks a value against a raw hint using the default engine.
func Conforms(value, rawHint any) (bool, error) {
	return Default().Conforms(value, rawHint)
}

// Assert checks a value against a raw hint using the default engine and
// returns an error describing any violation.
func Assert(value, rawHint any) error {
	return Default().Assert(value, rawHint)
}
