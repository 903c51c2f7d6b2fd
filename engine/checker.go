package engine

import (
	"reflect"
	"time"

	"github.com/hintguard/hintguard"
	"github.com/hintguard/hintguard/diagnose"
	"github.com/hintguard/hintguard/hint"
	"github.com/hintguard/hintguard/resolve"
	"github.com/hintguard/hintguard/sample"
)

// checkFn is one compiled checking step. It receives the value (already
// unwrapped to its dynamic type) and the per-invocation random draw shared
// by every nesting level. The error return is non-nil only for lazily
// discovered configuration problems (forward references that cannot be
// resolved).
type checkFn func(v reflect.Value, draw uint64) (bool, error)

// CompiledChecker is the immutable O(1) artifact produced by compiling a
// hint. Its boolean behavior is a pure function of (hint tree, value) plus
// the current random draw; it never mutates the value or the caches it
// reads, and is safe for concurrent use.
type CompiledChecker struct {
	node     *hint.Node
	sig      hint.Signature
	fn       checkFn
	trivial  bool
	source   sample.Source
	metrics  *hintguard.Metrics
	resolver *resolve.Resolver
	warnings []hintguard.Warning
}

// Check reports whether the value conforms to the hint. Exactly one random
// draw is consumed per invocation, regardless of nesting depth; container
// levels reuse it modulo their own length. Containers are probed via a
// single sampled element, so a false result is definitive but a true result
// is statistical for nested containers.
//
// The error is non-nil only when the hint's forward reference cannot be
// resolved; it is a *hintguard.ConfigurationError and is never downgraded.
func (c *CompiledChecker) Check(value any) (bool, error) {
	start := time.Now()

	if c.trivial {
		c.metrics.RecordCheck(time.Since(start), true)
		return true, nil
	}

	draw := c.source.Draw()
	ok, err := c.fn(reflect.ValueOf(value), draw)
	c.metrics.RecordCheck(time.Since(start), ok)
	return ok, err
}

// Explain performs the exhaustive diagnostic walk and returns the violation
// report. Only meaningful after Check returned false; returns nil if the
// value conforms exhaustively. Explain has no performance budget and must
// not be called on the hot path.
func (c *CompiledChecker) Explain(value any) *hintguard.ViolationReport {
	c.metrics.RecordExplain()
	return diagnose.Explain(c.node, value, c.resolver)
}

// Trivial reports whether the checker passes unconditionally without
// inspecting the value (ignorable hint or skip strategy).
func (c *CompiledChecker) Trivial() bool {
	return c.trivial
}

// Hint returns the rendering of the compiled hint.
func (c *CompiledChecker) Hint() string {
	return c.node.String()
}

// Signature returns the structural signature the checker is memoized under.
func (c *CompiledChecker) Signature() hint.Signature {
	return c.sig
}

// Warnings returns the non-fatal caveats recorded while compiling the hint.
func (c *CompiledChecker) Warnings() []hintguard.Warning {
	return c.warnings
}
