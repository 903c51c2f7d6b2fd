// Package constraint provides the composable boolean validator algebra that
// can be attached to hints. A validator is a pure expression tree built from
// opaque predicates, attribute comparisons, and And/Or/Not combinators.
package constraint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"
)

// Op identifies the operator of an expression node.
type Op uint8

// Expression operators.
const (
	// OpPredicate invokes an opaque one-argument boolean function.
	OpPredicate Op = iota
	// OpAttrEquals compares the value at an attribute path for equality.
	OpAttrEquals
	// OpAttrInstance tests the dynamic type of the value at an attribute path.
	OpAttrInstance
	// OpAttrSubclass tests a type descriptor found at an attribute path.
	OpAttrSubclass
	// OpAnd is short-circuiting conjunction.
	OpAnd
	// OpOr is short-circuiting disjunction.
	OpOr
	// OpNot inverts its child.
	OpNot
)

// Expr is an immutable validator expression node.
// Expressions carry no shared mutable state; evaluation is a pure function
// of (expression, value) provided predicates honor the purity contract.
type Expr struct {
	op    Op
	fn    func(any) bool
	label string
	path  string
	want  any
	types []reflect.Type
	left  *Expr
	right *Expr
}

// Predicate wraps an opaque one-argument boolean function.
// The label names the predicate in violation reports; purity of fn is the
// caller's contract, not enforced.
func Predicate(label string, fn func(any) bool) *Expr {
	return &Expr{op: OpPredicate, label: label, fn: fn}
}

// AttrEquals requires the value at path to equal want.
func AttrEquals(path string, want any) *Expr {
	return &Expr{op: OpAttrEquals, path: path, want: want}
}

// AttrInstance requires the dynamic type of the value at path to be one of
// types (or to implement one of them, for interface types).
func AttrInstance(path string, types ...reflect.Type) *Expr {
	return &Expr{op: OpAttrInstance, path: path, types: types}
}

// AttrSubclass requires the value at path to be a reflect.Type that is one
// of types, is assignable to one of them, or implements one of them.
func AttrSubclass(path string, types ...reflect.Type) *Expr {
	return &Expr{op: OpAttrSubclass, path: path, types: types}
}

// And is short-circuiting conjunction: right is not evaluated if left fails.
func And(left, right *Expr) *Expr {
	return &Expr{op: OpAnd, left: left, right: right}
}

// Or is short-circuiting disjunction: right is not evaluated if left passes.
func Or(left, right *Expr) *Expr {
	return &Expr{op: OpOr, left: left, right: right}
}

// Not inverts its child.
func Not(child *Expr) *Expr {
	return &Expr{op: OpNot, left: child}
}

// AllOf folds a validator list into an And chain. Listing validators side by
// side on an annotated hint is sugar for exactly this.
func AllOf(exprs ...*Expr) *Expr {
	if len(exprs) == 0 {
		return nil
	}
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = And(acc, e)
	}
	return acc
}

// Op returns the node's operator.
func (e *Expr) Op() Op {
	return e.op
}

// Describe renders the expression for violation reports.
func (e *Expr) Describe() string {
	switch e.op {
	case OpPredicate:
		if e.label != "" {
			return e.label
		}
		return "predicate"
	case OpAttrEquals:
		return fmt.Sprintf("%s == %v", e.path, e.want)
	case OpAttrInstance:
		return e.path + " is " + typeList(e.types)
	case OpAttrSubclass:
		return e.path + " extends " + typeList(e.types)
	case OpAnd:
		return "(" + e.left.Describe() + " && " + e.right.Describe() + ")"
	case OpOr:
		return "(" + e.left.Describe() + " || " + e.right.Describe() + ")"
	case OpNot:
		return "!(" + e.left.Describe() + ")"
	default:
		return "unknown"
	}
}

// ID returns a stable identity string used in structural hint signatures.
// Predicates are identified by function pointer: two annotated hints sharing
// the same predicate function memoize to the same checker, distinct
// functions never collide.
func (e *Expr) ID() string {
	switch e.op {
	case OpPredicate:
		return fmt.Sprintf("pred:%s@%x", e.label, reflect.ValueOf(e.fn).Pointer())
	case OpAttrEquals:
		return fmt.Sprintf("attreq:%s:%x", e.path, hashValue(e.want))
	case OpAttrInstance:
		return "attrinst:" + e.path + ":" + typeList(e.types)
	case OpAttrSubclass:
		return "attrsub:" + e.path + ":" + typeList(e.types)
	case OpAnd:
		return "and(" + e.left.ID() + "," + e.right.ID() + ")"
	case OpOr:
		return "or(" + e.left.ID() + "," + e.right.ID() + ")"
	case OpNot:
		return "not(" + e.left.ID() + ")"
	default:
		return "unknown"
	}
}

// Comparable reports whether every equality the expression performs is over
// comparable values. Non-comparable comparands force reflect.DeepEqual,
// which is not constant-time.
func (e *Expr) Comparable() bool {
	switch e.op {
	case OpAttrEquals:
		return e.want == nil || reflect.TypeOf(e.want).Comparable()
	case OpAnd, OpOr:
		return e.left.Comparable() && e.right.Comparable()
	case OpNot:
		return e.left.Comparable()
	default:
		return true
	}
}

func typeList(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}

// hashValue content-hashes an arbitrary comparand for identity purposes.
func hashValue(v any) uint64 {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// Unhashable values (channels, funcs) fall back to type identity.
		return xxhash.Sum64String(fmt.Sprintf("%T", v))
	}
	return h
}
