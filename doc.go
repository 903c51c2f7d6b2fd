// Package hintguard provides O(1) runtime conformance checking of Go values
// against declarative shape hints.
//
// A hint describes the expected shape of a value: a concrete type, a union,
// a container with an element hint, a literal set, or a base hint annotated
// with validator expressions. Hints are compiled once per distinct shape
// into checkers whose per-call cost is bounded by the hint's nesting depth,
// independent of input size: containers are probed via a single random
// sample rather than a full scan.
//
// # Quick Start
//
//	import (
//	    "github.com/hintguard/hintguard/engine"
//	    "github.com/hintguard/hintguard/hint"
//	)
//
//	eng, err := engine.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	checker, err := eng.CompileHint(hint.Seq(hint.Of[int]()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := checker.Check([]int{1, 2, 3})
//	if !ok {
//	    fmt.Println(checker.Explain([]int{1, 2, 3}).Render())
//	}
//
// # Performance Features
//
//   - Sampled deep checks: one random element per container level per call
//   - Memoization: each distinct hint shape compiles exactly once per process
//   - Lock-free populate: concurrent first compiles proceed independently
//   - Constant-pass short circuit: hints that match anything never inspect
//     the value at all
//   - Worker Pool: parallel batch checking using runtime.NumCPU() workers
//
// # Functional Options
//
//	eng, err := engine.New(
//	    hintguard.WithStrategy(hintguard.StrategySampled),
//	    hintguard.WithMemoCacheSize(4096),
//	    hintguard.WithDebug(true),
//	)
//
// # Detection is statistical
//
// For nested containers the sampled strategy trades exhaustive detection for
// O(1) cost: a single call detects a lone bad element of an n-element
// container with probability about 1/n, and the probability of having seen
// at least one failure approaches 1 over repeated calls. When a check does
// fail, Explain performs an exhaustive (unbounded-cost) walk and reports the
// exact violation.
package hintguard
