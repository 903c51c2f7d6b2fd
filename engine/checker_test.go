package engine

import (
	"errors"
	"testing"

	"github.com/hintguard/hintguard"
	"github.com/hintguard/hintguard/constraint"
	"github.com/hintguard/hintguard/hint"
	"github.com/hintguard/hintguard/resolve"
	"github.com/hintguard/hintguard/sample"
)

func mustCompile(t *testing.T, e *Engine, raw any) *CompiledChecker {
	t.Helper()
	checker, err := e.CompileHint(raw)
	if err != nil {
		t.Fatalf("CompileHint failed: %v", err)
	}
	return checker
}

func TestCheck_Primitive(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Of[int]())

	if ok, _ := checker.Check(42); !ok {
		t.Error("Check(42) = false; want true")
	}
	if ok, _ := checker.Check("x"); ok {
		t.Error("Check(\"x\") = true; want false")
	}
	if ok, _ := checker.Check(nil); ok {
		t.Error("Check(nil) = true; want false")
	}
}

func TestCheck_None(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.None)

	if ok, _ := checker.Check(nil); !ok {
		t.Error("Check(nil) = false; want true")
	}
	var p *int
	if ok, _ := checker.Check(p); !ok {
		t.Error("Check(nil pointer) = false; want true")
	}
	if ok, _ := checker.Check(0); ok {
		t.Error("Check(0) = true; want false")
	}
}

func TestCheck_InterfaceHint(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Of[error]())

	if ok, _ := checker.Check(errors.New("boom")); !ok {
		t.Error("Check(error value) = false; want true")
	}
	if ok, _ := checker.Check(42); ok {
		t.Error("Check(42) = true; want false")
	}
}

func TestCheck_UnionOrder(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Union(hint.Of[string](), hint.Of[int]()))

	if ok, _ := checker.Check("x"); !ok {
		t.Error("Check(\"x\") = false; want true")
	}
	if ok, _ := checker.Check(5); !ok {
		t.Error("Check(5) = false; want true")
	}
	if ok, _ := checker.Check(3.14); ok {
		t.Error("Check(3.14) = true; want false")
	}
}

func TestCheck_SequenceConforming(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Seq(hint.Of[int]()))

	// All-conforming containers pass on every call, whatever the draw.
	values := []any{1, 2, 3, 4, 5}
	for i := 0; i < 200; i++ {
		if ok, _ := checker.Check(values); !ok {
			t.Fatalf("Check = false on iteration %d for an all-conforming sequence", i)
		}
	}

	if ok, _ := checker.Check("not a sequence"); ok {
		t.Error("Check(string) = true; want false")
	}
	if ok, _ := checker.Check(nil); ok {
		t.Error("Check(nil) = true; want false")
	}
}

func TestCheck_EmptyContainersVacuouslyPass(t *testing.T) {
	e := newTestEngine(t)

	if ok, _ := mustCompile(t, e, hint.Seq(hint.Of[int]())).Check([]any{}); !ok {
		t.Error("Check(empty slice) = false; want true")
	}
	if ok, _ := mustCompile(t, e, hint.Map(hint.Of[string](), hint.Of[int]())).Check(map[string]any{}); !ok {
		t.Error("Check(empty map) = false; want true")
	}
	if ok, _ := mustCompile(t, e, hint.TupleOf(hint.Of[int]())).Check([]any{}); !ok {
		t.Error("Check(empty variadic tuple) = false; want true")
	}
}

func TestCheck_TypedSlice(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Seq(hint.Of[int]()))

	if ok, _ := checker.Check([]int{1, 2, 3}); !ok {
		t.Error("Check([]int) = false; want true")
	}
	if ok, _ := checker.Check([]string{"a"}); ok {
		t.Error("Check([]string) = true; want false")
	}
}

func TestCheck_SamplingDetectsStatistically(t *testing.T) {
	e := newTestEngine(t, hintguard.WithSampleSeed(1))
	checker := mustCompile(t, e, hint.Seq(hint.Of[int]()))

	// One bad element among n: each call samples one element, so a single
	// call detects with probability 1/n and repetition drives detection
	// toward certainty.
	const n, calls = 100, 1000
	values := make([]any, n)
	for i := range values {
		values[i] = i
	}
	values[37] = "bad"

	detections := 0
	for i := 0; i < calls; i++ {
		ok, err := checker.Check(values)
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if !ok {
			detections++
		}
	}

	// Expected detections = calls/n = 10; allow a generous band.
	if detections == 0 {
		t.Error("bad element never detected over 1000 sampled checks")
	}
	if detections > calls/2 {
		t.Errorf("detections = %d; want around %d", detections, calls/n)
	}
}

func TestCheck_FixedDrawSelectsIndex(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Seq(hint.Of[int]()))
	values := []any{0, "bad", 2}

	// Draw 1 selects index 1 % 3, draw 3 selects index 0.
	checker.source = sample.Fixed(1)
	if ok, _ := checker.Check(values); ok {
		t.Error("Check = true with the draw pinned on the bad element")
	}
	checker.source = sample.Fixed(3)
	if ok, _ := checker.Check(values); !ok {
		t.Error("Check = false with the draw pinned on a good element")
	}
}

func TestCheck_NestedSequenceReusesDraw(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Seq(hint.Seq(hint.Of[int]())))

	// Draw 1: outer index 1 % 2 = 1, inner index 1 % 3 = 1.
	values := []any{
		[]any{1, 2, 3},
		[]any{4, "bad", 6},
	}
	checker.source = sample.Fixed(1)
	if ok, _ := checker.Check(values); ok {
		t.Error("Check = true; want the reused draw to land on the bad element")
	}

	// Draw 2: outer index 0, inner index 2: both conform.
	checker.source = sample.Fixed(2)
	if ok, _ := checker.Check(values); !ok {
		t.Error("Check = false; want true for the sampled conforming path")
	}
}

func TestCheck_FixedTupleChecksEveryPosition(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Tuple(hint.Of[int](), hint.Of[string]()))

	if ok, _ := checker.Check([]any{1, "a"}); !ok {
		t.Error("Check((1, \"a\")) = false; want true")
	}

	// Tuples never sample: a bad position fails deterministically.
	for i := 0; i < 100; i++ {
		if ok, _ := checker.Check([]any{1, 2}); ok {
			t.Fatal("Check((1, 2)) = true; want deterministic failure")
		}
	}

	// Arity mismatch fails regardless of element conformance.
	if ok, _ := checker.Check([]any{1, "a", true}); ok {
		t.Error("Check with extra position = true; want false")
	}
	if ok, _ := checker.Check([]any{1}); ok {
		t.Error("Check with missing position = true; want false")
	}
}

func TestCheck_Mapping(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Map(hint.Of[string](), hint.Of[int]()))

	if ok, _ := checker.Check(map[string]any{"a": 1, "b": 2}); !ok {
		t.Error("Check(conforming map) = false; want true")
	}
	if ok, _ := checker.Check(map[string]int{"a": 1}); !ok {
		t.Error("Check(typed map) = false; want true")
	}
	if ok, _ := checker.Check(42); ok {
		t.Error("Check(42) = true; want false")
	}

	// A map whose every entry violates fails on any sampled entry.
	if ok, _ := checker.Check(map[string]any{"a": "x"}); ok {
		t.Error("Check(all-violating map) = true; want false")
	}
}

func TestCheck_Literal(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Lit("read", "write", 0))

	for _, v := range []any{"read", "write", 0} {
		if ok, _ := checker.Check(v); !ok {
			t.Errorf("Check(%#v) = false; want true", v)
		}
	}
	for _, v := range []any{"append", 1, nil} {
		if ok, _ := checker.Check(v); ok {
			t.Errorf("Check(%#v) = true; want false", v)
		}
	}
}

func TestCheck_Annotated(t *testing.T) {
	e := newTestEngine(t)
	positive := constraint.Predicate("positive", func(v any) bool {
		i, ok := v.(int)
		return ok && i > 0
	})
	checker := mustCompile(t, e, hint.Annotated(hint.Of[int](), positive))

	if ok, _ := checker.Check(5); !ok {
		t.Error("Check(5) = false; want true")
	}
	if ok, _ := checker.Check(-5); ok {
		t.Error("Check(-5) = true; want false")
	}
	// Base mismatch fails before the validator runs.
	if ok, _ := checker.Check("x"); ok {
		t.Error("Check(\"x\") = true; want false")
	}
}

func TestCheck_AnnotatedValidatorOnSampledElement(t *testing.T) {
	e := newTestEngine(t)
	positive := constraint.Predicate("positive", func(v any) bool {
		i, ok := v.(int)
		return ok && i > 0
	})
	checker := mustCompile(t, e, hint.Seq(hint.Annotated(hint.Of[int](), positive)))

	values := []any{1, 2, 3}
	for i := 0; i < 50; i++ {
		if ok, _ := checker.Check(values); !ok {
			t.Fatal("Check = false for an all-conforming annotated sequence")
		}
	}
}

func TestCheck_ForwardRefLazyResolution(t *testing.T) {
	type order struct{ N int }
	scope := resolve.NewScope("lazy-models")
	e := newTestEngine(t)

	// Compiling succeeds before the symbol is registered.
	checker := mustCompile(t, e, hint.Ref("Order", scope))

	// Checking before registration is a configuration error, not a
	// violation.
	_, err := checker.Check(order{N: 1})
	var ce *hintguard.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Check err = %v; want *ConfigurationError", err)
	}

	// Failed resolutions are not cached: registering repairs the checker.
	resolve.Register[order](scope, "Order")
	ok, err := checker.Check(order{N: 1})
	if err != nil {
		t.Fatalf("Check failed after registration: %v", err)
	}
	if !ok {
		t.Error("Check = false; want true")
	}
	if ok, _ := checker.Check(42); ok {
		t.Error("Check(42) = true; want false")
	}
}

func TestCheck_ForwardRefResolvesOnce(t *testing.T) {
	type ticket struct{ ID string }
	scope := resolve.NewScope("once-models")
	resolve.Register[ticket](scope, "Ticket")
	e := newTestEngine(t)

	checker := mustCompile(t, e, hint.Ref("Ticket", scope))
	for i := 0; i < 10; i++ {
		if ok, err := checker.Check(ticket{ID: "t"}); err != nil || !ok {
			t.Fatalf("Check = %v, %v; want true, nil", ok, err)
		}
	}

	if lookups := e.Resolver().Lookups(); lookups != 1 {
		t.Errorf("Lookups() = %d; want 1", lookups)
	}
}

func TestCheck_RecordsMetrics(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Of[int]())

	checker.Check(1)
	checker.Check("x")

	m := e.Metrics()
	if m.ChecksTotal() != 2 {
		t.Errorf("ChecksTotal() = %d; want 2", m.ChecksTotal())
	}
	if m.ChecksPassed() != 1 {
		t.Errorf("ChecksPassed() = %d; want 1", m.ChecksPassed())
	}
	if m.Inspections() == 0 {
		t.Error("Inspections() = 0; want > 0 for a non-trivial checker")
	}
}

func TestExplain_AfterFailedCheck(t *testing.T) {
	e := newTestEngine(t)
	checker := mustCompile(t, e, hint.Union(hint.Of[string](), hint.Of[int]()))

	rep := checker.Explain(3.14)
	if rep == nil {
		t.Fatal("Explain = nil; want a report")
	}
	if rep.Kind != hintguard.KindUnion {
		t.Errorf("Kind = %q; want union", rep.Kind)
	}
	if e.Metrics().ExplainsTotal() != 1 {
		t.Errorf("ExplainsTotal() = %d; want 1", e.Metrics().ExplainsTotal())
	}

	// A conforming value explains to nil.
	if rep := checker.Explain(5); rep != nil {
		t.Errorf("Explain(5) = %q; want nil", rep.Render())
	}
}
