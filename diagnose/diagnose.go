// Package diagnose builds exact violation explanations. It is the slow
// path: an exhaustive, unmemoized, depth-first walk of the hint tree against
// the failing value, visiting every container element rather than a sample.
// It runs at most once per failing check, immediately before the caller
// raises, so it carries no performance budget.
package diagnose

import (
	"fmt"
	"reflect"

	"github.com/hintguard/hintguard"
	"github.com/hintguard/hintguard/constraint"
	"github.com/hintguard/hintguard/hint"
	"github.com/hintguard/hintguard/pool"
	"github.com/hintguard/hintguard/resolve"
)

// Explain walks the hint tree against a value and returns the violation
// report, or nil if the value conforms exhaustively. The resolver supplies
// forward-reference resolutions; nil uses a throwaway resolver.
func Explain(node *hint.Node, value any, resolver *resolve.Resolver) *hintguard.ViolationReport {
	if resolver == nil {
		resolver = resolve.NewResolver()
	}
	pb := pool.AcquirePathBuilder("value")
	defer pb.Release()
	return walk(node, reflect.ValueOf(value), pb, resolver)
}

func walk(n *hint.Node, v reflect.Value, pb *pool.PathBuilder, r *resolve.Resolver) *hintguard.ViolationReport {
	switch n.Kind {
	case hint.KindWildcard:
		return nil

	case hint.KindPrimitive:
		if hint.MatchesType(v, n.Type) {
			return nil
		}
		return shallow(n, v, pb)

	case hint.KindUnion:
		return walkUnion(n, v, pb, r)

	case hint.KindSequence, hint.KindVariadicTuple:
		return walkSequence(n, v, pb, r)

	case hint.KindFixedTuple:
		return walkTuple(n, v, pb, r)

	case hint.KindMapping:
		return walkMapping(n, v, pb, r)

	case hint.KindLiteral:
		for _, want := range n.Literals {
			if hint.LiteralEqual(v, want) {
				return nil
			}
		}
		return hintguard.NewViolation(
			hintguard.KindLiteral, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
		).WithMessage("value %#v is not one of the permitted literals %s", hint.Interface(v), n.String())

	case hint.KindAnnotated:
		if rep := walk(n.Base, v, pb, r); rep != nil {
			return rep
		}
		expr := constraint.AllOf(n.Validators...)
		val := hint.Interface(v)
		if expr == nil || expr.Eval(val) {
			return nil
		}
		leaf := expr.FailingLeaf(val)
		return hintguard.NewViolation(
			hintguard.KindValidator, pb.String(), n.String(), hint.DescribeValue(v), val,
		).WithMessage("validator %s rejected value %#v", leaf.Describe(), val)

	case hint.KindForwardRef:
		t, err := r.Resolve(n.Symbol, n.Scope)
		if err != nil {
			return hintguard.NewViolation(
				hintguard.KindUnresolved, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
			).WithMessage("forward reference %s cannot be resolved: %v", n.String(), err)
		}
		if hint.MatchesType(v, t) {
			return nil
		}
		return shallow(n, v, pb)

	default:
		return hintguard.NewViolation(
			hintguard.KindShallow, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
		).WithMessage("hint %s is not checkable", n.String())
	}
}

func walkUnion(n *hint.Node, v reflect.Value, pb *pool.PathBuilder, r *resolve.Resolver) *hintguard.ViolationReport {
	rejections := make([]*hintguard.ViolationReport, 0, len(n.Children))
	for _, member := range n.Children {
		rep := walk(member, v, pb, r)
		if rep == nil {
			return nil
		}
		rejections = append(rejections, rep)
	}
	report := hintguard.NewViolation(
		hintguard.KindUnion, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
	).WithMessage("value matches no union member of %s", n.String())
	for _, rep := range rejections {
		report.AddChild(rep)
	}
	return report
}

func walkSequence(n *hint.Node, v reflect.Value, pb *pool.PathBuilder, r *resolve.Resolver) *hintguard.ViolationReport {
	v = hint.Concrete(v)
	if !isSequence(v) {
		return shallow(n, v, pb)
	}
	for i := 0; i < v.Len(); i++ {
		mark := pb.Len()
		pb.PushIndex(i)
		rep := walk(n.Elem, hint.Concrete(v.Index(i)), pb, r)
		pb.Truncate(mark)
		if rep != nil {
			return hintguard.NewViolation(
				hintguard.KindElement, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
			).WithMessage("element %d does not conform to %s", i, n.Elem.String()).AddChild(rep)
		}
	}
	return nil
}

func walkTuple(n *hint.Node, v reflect.Value, pb *pool.PathBuilder, r *resolve.Resolver) *hintguard.ViolationReport {
	v = hint.Concrete(v)
	if !isSequence(v) {
		return shallow(n, v, pb)
	}
	if v.Len() != len(n.Children) {
		return hintguard.NewViolation(
			hintguard.KindArity, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
		).WithMessage("expected %d positions, got %d", len(n.Children), v.Len())
	}
	for i, child := range n.Children {
		mark := pb.Len()
		pb.PushIndex(i)
		rep := walk(child, hint.Concrete(v.Index(i)), pb, r)
		pb.Truncate(mark)
		if rep != nil {
			return hintguard.NewViolation(
				hintguard.KindElement, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
			).WithMessage("position %d does not conform to %s", i, child.String()).AddChild(rep)
		}
	}
	return nil
}

func walkMapping(n *hint.Node, v reflect.Value, pb *pool.PathBuilder, r *resolve.Resolver) *hintguard.ViolationReport {
	v = hint.Concrete(v)
	if !v.IsValid() || v.Kind() != reflect.Map {
		return shallow(n, v, pb)
	}
	it := v.MapRange()
	for it.Next() {
		key, val := it.Key(), it.Value()
		keyLabel := fmt.Sprintf("%v", hint.Interface(hint.Concrete(key)))

		if rep := walk(n.Key, hint.Concrete(key), pb, r); rep != nil {
			return hintguard.NewViolation(
				hintguard.KindKey, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
			).WithMessage("key %s does not conform to %s", keyLabel, n.Key.String()).AddChild(rep)
		}

		mark := pb.Len()
		pb.PushKey(keyLabel)
		rep := walk(n.Value, hint.Concrete(val), pb, r)
		pb.Truncate(mark)
		if rep != nil {
			return hintguard.NewViolation(
				hintguard.KindValue, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
			).WithMessage("value at key %s does not conform to %s", keyLabel, n.Value.String()).AddChild(rep)
		}
	}
	return nil
}

// isSequence reports whether the value is checkable as a sequence or tuple.
func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// shallow builds the report for an immediate-kind mismatch.
func shallow(n *hint.Node, v reflect.Value, pb *pool.PathBuilder) *hintguard.ViolationReport {
	return hintguard.NewViolation(
		hintguard.KindShallow, pb.String(), n.String(), hint.DescribeValue(v), hint.Interface(v),
	).WithMessage("expected %s, got %s", n.String(), hint.DescribeValue(v))
}
