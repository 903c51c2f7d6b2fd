// Package engine compiles hints into O(1) conformance checkers.
//
// Compilation normalizes the raw hint, classifies trivially satisfiable
// hints into constant-pass checkers, and otherwise builds a closure tree
// performing shallow classification plus single-random-sample descent into
// containers. Each distinct hint shape is compiled once per process and
// memoized by structural signature.
package engine

import (
	"fmt"
	"os"
	"reflect"
	"sync/atomic"

	"github.com/hintguard/hintguard"
	"github.com/hintguard/hintguard/cache"
	"github.com/hintguard/hintguard/constraint"
	"github.com/hintguard/hintguard/hint"
	"github.com/hintguard/hintguard/logger"
	"github.com/hintguard/hintguard/resolve"
	"github.com/hintguard/hintguard/sample"
)

// Engine is the hint tree compiler. It owns the memoization cache, the
// forward-reference resolver, the sampling source, and the metrics sink, so
// concurrency behavior and testability stay explicit rather than ambient.
type Engine struct {
	options  *hintguard.Options
	metrics  *hintguard.Metrics
	memo     *cache.Cache[hint.Signature, *CompiledChecker]
	resolver *resolve.Resolver
	source   sample.Source
	log      *logger.Logger
}

// New creates an Engine with the given options. Reserved strategies
// (exhaustive, logarithmic) and unrecognized strategy names are rejected.
func New(opts ...hintguard.Option) (*Engine, error) {
	options := hintguard.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if !options.Strategy.IsValid() {
		return nil, hintguard.NewConfigurationError("", "unknown strategy %q", options.Strategy)
	}
	if !options.Strategy.Implemented() {
		return nil, hintguard.NewConfigurationError("", "strategy %q is reserved and not yet implemented", options.Strategy)
	}

	source := sample.Shared()
	if options.SeededSampling {
		source = sample.Seeded(options.SampleSeed)
	}

	log := logger.Default()
	if options.Debug {
		log = logger.New(os.Stderr, logger.LevelDebug)
	}

	return &Engine{
		options:  options,
		metrics:  hintguard.NewMetrics(),
		memo:     cache.New[hint.Signature, *CompiledChecker](options.MemoCacheSize),
		resolver: resolve.NewResolver(),
		source:   source,
		log:      log,
	}, nil
}

// Compile compiles every hint of a call signature. It fails with a
// *hintguard.ConfigurationError if any hint contains an unsupported
// construct; warnings from all hints are aggregated on the result.
func (e *Engine) Compile(sig CallSignature) (*CompiledSignature, error) {
	cs := &CompiledSignature{Params: make([]CompiledParam, 0, len(sig.Params))}

	for _, p := range sig.Params {
		checker, err := e.CompileHint(p.Hint)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		cs.Params = append(cs.Params, CompiledParam{Name: p.Name, Checker: checker})
		cs.Warnings = append(cs.Warnings, checker.Warnings()...)
	}

	returnHint := sig.Return
	if returnHint == nil {
		// An absent return hint is unconstrained.
		returnHint = hint.Any
	}
	checker, err := e.CompileHint(returnHint)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}
	cs.Return = checker
	cs.Warnings = append(cs.Warnings, checker.Warnings()...)

	return cs, nil
}

// CompileHint compiles one raw hint into a checker, memoized by the hint's
// structural signature. Concurrent first compiles of the same signature may
// build redundantly and the last write wins; all compilations of an equal
// signature are behaviorally interchangeable.
func (e *Engine) CompileHint(raw any) (*CompiledChecker, error) {
	node, warnings := hint.Normalize(raw)

	if u := node.FindUnsupported(); u != nil {
		return nil, hintguard.NewConfigurationError(node.String(), "%s", u.Reason)
	}
	if e.options.WarningsAsErrors && len(warnings) > 0 {
		return nil, hintguard.NewConfigurationError(node.String(), "%s", warnings[0].String())
	}
	e.metrics.RecordWarnings(len(warnings))
	if e.options.Debug {
		for _, w := range warnings {
			e.log.Warn("%s", w.String())
		}
	}

	// Trivially satisfiable hints short-circuit all checking: the checker
	// forwards unconditionally, inspecting nothing.
	if e.options.Strategy == hintguard.StrategySkip || node.Ignorable() {
		return &CompiledChecker{
			node:     node,
			sig:      node.Signature(),
			trivial:  true,
			source:   e.source,
			metrics:  e.metrics,
			resolver: e.resolver,
			warnings: warnings,
		}, nil
	}

	sig := node.Signature()
	if checker, ok := e.memo.Get(sig); ok {
		e.metrics.RecordMemoHit()
		return checker, nil
	}
	e.metrics.RecordMemoMiss()

	checker := &CompiledChecker{
		node:     node,
		sig:      sig,
		fn:       e.compileNode(node),
		source:   e.source,
		metrics:  e.metrics,
		resolver: e.resolver,
		warnings: warnings,
	}
	e.memo.Set(sig, checker)
	e.metrics.RecordCompile()
	e.log.Debug("compiled hint %s (signature %x, depth %d)", node.String(), sig.Hash(), node.MaxDepth())

	return checker, nil
}

// compileNode builds the checking step for a node. Steps receive values
// already unwrapped to their dynamic type and share the invocation's single
// random draw.
func (e *Engine) compileNode(n *hint.Node) checkFn {
	switch n.Kind {
	case hint.KindWildcard:
		return func(reflect.Value, uint64) (bool, error) {
			return true, nil
		}

	case hint.KindPrimitive:
		return e.compilePrimitive(n.Type)

	case hint.KindUnion:
		return e.compileUnion(n)

	case hint.KindSequence, hint.KindVariadicTuple:
		return e.compileSequence(n)

	case hint.KindFixedTuple:
		return e.compileTuple(n)

	case hint.KindMapping:
		return e.compileMapping(n)

	case hint.KindLiteral:
		return e.compileLiteral(n)

	case hint.KindAnnotated:
		return e.compileAnnotated(n)

	case hint.KindForwardRef:
		return e.compileForwardRef(n)

	default:
		err := hintguard.NewConfigurationError(n.String(), "hint is not checkable")
		return func(reflect.Value, uint64) (bool, error) {
			return false, err
		}
	}
}

func (e *Engine) compilePrimitive(t reflect.Type) checkFn {
	metrics := e.metrics
	return func(v reflect.Value, _ uint64) (bool, error) {
		metrics.RecordInspection()
		return hint.MatchesType(v, t), nil
	}
}

// compileUnion is a short-circuiting OR over the members in declared order;
// the first matching member wins. Validators attached to an annotated
// member run only after that member's shallow test passes, which the
// member's own compiled step already guarantees.
func (e *Engine) compileUnion(n *hint.Node) checkFn {
	members := make([]checkFn, len(n.Children))
	for i, c := range n.Children {
		members[i] = e.compileNode(c)
	}
	return func(v reflect.Value, draw uint64) (bool, error) {
		for _, member := range members {
			ok, err := member(v, draw)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// compileSequence tests the container kind and, for non-empty containers,
// exactly one element selected by the shared draw modulo the current
// length. Empty containers vacuously pass. The deep step is elided entirely
// when the element hint is ignorable.
func (e *Engine) compileSequence(n *hint.Node) checkFn {
	metrics := e.metrics
	var elemFn checkFn
	if !n.Elem.Ignorable() {
		elemFn = e.compileNode(n.Elem)
	}
	return func(v reflect.Value, draw uint64) (bool, error) {
		metrics.RecordInspection()
		if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
			return false, nil
		}
		if elemFn == nil {
			return true, nil
		}
		length := v.Len()
		if length == 0 {
			return true, nil
		}
		idx := int(draw % uint64(length))
		return elemFn(hint.Concrete(v.Index(idx)), draw)
	}
}

// compileTuple checks every position on every call: each position carries a
// distinct hint, so sampling does not apply, and an arity mismatch fails
// immediately.
func (e *Engine) compileTuple(n *hint.Node) checkFn {
	metrics := e.metrics
	positions := make([]checkFn, len(n.Children))
	for i, c := range n.Children {
		positions[i] = e.compileNode(c)
	}
	return func(v reflect.Value, draw uint64) (bool, error) {
		metrics.RecordInspection()
		if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
			return false, nil
		}
		if v.Len() != len(positions) {
			return false, nil
		}
		for i, position := range positions {
			ok, err := position(hint.Concrete(v.Index(i)), draw)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// compileMapping samples exactly one entry of a non-empty map. Go maps are
// not indexable by position, so the runtime's randomized iteration start
// supplies the uniform sample instead of the draw.
func (e *Engine) compileMapping(n *hint.Node) checkFn {
	metrics := e.metrics
	var keyFn, valFn checkFn
	if !n.Key.Ignorable() {
		keyFn = e.compileNode(n.Key)
	}
	if !n.Value.Ignorable() {
		valFn = e.compileNode(n.Value)
	}
	return func(v reflect.Value, draw uint64) (bool, error) {
		metrics.RecordInspection()
		if !v.IsValid() || v.Kind() != reflect.Map {
			return false, nil
		}
		if v.Len() == 0 || (keyFn == nil && valFn == nil) {
			return true, nil
		}
		it := v.MapRange()
		if !it.Next() {
			return true, nil
		}
		if keyFn != nil {
			ok, err := keyFn(hint.Concrete(it.Key()), draw)
			if err != nil || !ok {
				return false, err
			}
		}
		if valFn != nil {
			ok, err := valFn(hint.Concrete(it.Value()), draw)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func (e *Engine) compileLiteral(n *hint.Node) checkFn {
	metrics := e.metrics
	values := n.Literals
	return func(v reflect.Value, _ uint64) (bool, error) {
		metrics.RecordInspection()
		for _, want := range values {
			if hint.LiteralEqual(v, want) {
				return true, nil
			}
		}
		return false, nil
	}
}

// compileAnnotated runs the base check first and the validator expression
// only after it passes.
func (e *Engine) compileAnnotated(n *hint.Node) checkFn {
	var baseFn checkFn
	if !n.Base.Ignorable() {
		baseFn = e.compileNode(n.Base)
	}
	expr := constraint.AllOf(n.Validators...)
	return func(v reflect.Value, draw uint64) (bool, error) {
		if baseFn != nil {
			ok, err := baseFn(v, draw)
			if err != nil || !ok {
				return false, err
			}
		}
		return expr.Eval(hint.Interface(v)), nil
	}
}

// compileForwardRef resolves the symbol lazily on the first check that
// needs it, then behaves as a primitive. The resolved descriptor is cached
// both in the resolver and in a step-local cell, so later checks pay no
// lookup cost. A failed resolution is not cached: the symbol may be
// registered between checks.
func (e *Engine) compileForwardRef(n *hint.Node) checkFn {
	metrics := e.metrics
	resolver := e.resolver
	symbol, scope := n.Symbol, n.Scope
	hintStr := n.String()

	var cell atomic.Value // reflect.Type
	return func(v reflect.Value, _ uint64) (bool, error) {
		t, _ := cell.Load().(reflect.Type)
		if t == nil {
			var err error
			t, err = resolver.Resolve(symbol, scope)
			if err != nil {
				return false, &hintguard.ConfigurationError{
					Hint:   hintStr,
					Reason: "forward reference cannot be resolved",
					Err:    err,
				}
			}
			cell.Store(t)
		}
		metrics.RecordInspection()
		return hint.MatchesType(v, t), nil
	}
}

// Metrics returns the engine's metrics sink.
func (e *Engine) Metrics() *hintguard.Metrics {
	return e.metrics
}

// Resolver returns the engine's forward-reference resolver.
func (e *Engine) Resolver() *resolve.Resolver {
	return e.resolver
}

// CacheStats returns memoization cache statistics.
func (e *Engine) CacheStats() cache.Stats {
	return e.memo.Stats()
}

// Options returns the engine's configuration.
func (e *Engine) Options() *hintguard.Options {
	return e.options
}
