package constraint

import "reflect"

// Eval evaluates the expression against a value.
// And short-circuits on the first false, Or on the first true; predicates
// are invoked exactly once per evaluation they participate in.
func (e *Expr) Eval(value any) bool {
	switch e.op {
	case OpPredicate:
		return e.fn(value)
	case OpAttrEquals:
		attr, ok := Lookup(value, e.path)
		return ok && equal(attr, e.want)
	case OpAttrInstance:
		attr, ok := Lookup(value, e.path)
		if !ok || attr == nil {
			return false
		}
		return typeMatches(reflect.TypeOf(attr), e.types)
	case OpAttrSubclass:
		attr, ok := Lookup(value, e.path)
		if !ok {
			return false
		}
		t, ok := attr.(reflect.Type)
		return ok && typeMatches(t, e.types)
	case OpAnd:
		return e.left.Eval(value) && e.right.Eval(value)
	case OpOr:
		return e.left.Eval(value) || e.right.Eval(value)
	case OpNot:
		return !e.left.Eval(value)
	default:
		return false
	}
}

// FailingLeaf returns the innermost sub-expression responsible for a failed
// evaluation, or nil if the expression passes. For a failed Or or Not the
// node itself is the explanation; for And the failing side is descended.
func (e *Expr) FailingLeaf(value any) *Expr {
	if e.Eval(value) {
		return nil
	}
	switch e.op {
	case OpAnd:
		if leaf := e.left.FailingLeaf(value); leaf != nil {
			return leaf
		}
		return e.right.FailingLeaf(value)
	default:
		return e
	}
}

// typeMatches reports whether t is one of the wanted types, is assignable to
// one, or implements one (for interface entries).
func typeMatches(t reflect.Type, wanted []reflect.Type) bool {
	for _, w := range wanted {
		if t == w {
			return true
		}
		if w.Kind() == reflect.Interface && t.Implements(w) {
			return true
		}
		if t.AssignableTo(w) {
			return true
		}
	}
	return false
}

// equal compares two values, preferring constant-time interface equality and
// falling back to reflect.DeepEqual only for non-comparable operands.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
