package constraint

import (
	"reflect"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	pos := Predicate("positive", func(any) bool { return true })
	neg := Predicate("negative", func(any) bool { return false })

	tests := []struct {
		name string
		expr *Expr
		want string
	}{
		{"labeled predicate", pos, "positive"},
		{"unlabeled predicate", Predicate("", func(any) bool { return true }), "predicate"},
		{"attr equals", AttrEquals("Owner", "ada"), "Owner == ada"},
		{"attr instance", AttrInstance("Value", reflect.TypeFor[int]()), "Value is int"},
		{"and", And(pos, neg), "(positive && negative)"},
		{"or", Or(pos, neg), "(positive || negative)"},
		{"not", Not(pos), "!(positive)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Describe(); got != tt.want {
				t.Errorf("Describe() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestID_PredicateIdentity(t *testing.T) {
	fn := func(any) bool { return true }
	a := Predicate("p", fn)
	b := Predicate("p", fn)
	c := Predicate("p", func(any) bool { return true })

	if a.ID() != b.ID() {
		t.Errorf("same function produced distinct IDs: %q vs %q", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Errorf("distinct functions produced equal IDs: %q", a.ID())
	}
}

func TestID_AttrEquals(t *testing.T) {
	a := AttrEquals("Owner", "ada")
	b := AttrEquals("Owner", "ada")
	c := AttrEquals("Owner", "bob")

	if a.ID() != b.ID() {
		t.Errorf("equal comparands produced distinct IDs: %q vs %q", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Errorf("distinct comparands produced equal IDs: %q", a.ID())
	}
}

func TestID_Composite(t *testing.T) {
	p := Predicate("p", func(any) bool { return true })
	q := Predicate("q", func(any) bool { return true })

	and := And(p, q)
	or := Or(p, q)

	if and.ID() == or.ID() {
		t.Error("And and Or over the same children produced equal IDs")
	}
	if !strings.HasPrefix(and.ID(), "and(") {
		t.Errorf("ID() = %q; want and(...) form", and.ID())
	}
}

func TestAllOf(t *testing.T) {
	if AllOf() != nil {
		t.Error("AllOf() = non-nil; want nil")
	}

	p := Predicate("p", func(v any) bool { return v.(int) > 0 })
	if AllOf(p) != p {
		t.Error("AllOf(p) did not return p itself")
	}

	q := Predicate("q", func(v any) bool { return v.(int) < 10 })
	chain := AllOf(p, q)
	if chain.Op() != OpAnd {
		t.Fatalf("Op() = %v; want OpAnd", chain.Op())
	}
	if !chain.Eval(5) {
		t.Error("Eval(5) = false; want true")
	}
	if chain.Eval(15) {
		t.Error("Eval(15) = true; want false")
	}
}

func TestComparable(t *testing.T) {
	tests := []struct {
		name string
		expr *Expr
		want bool
	}{
		{"predicate", Predicate("p", func(any) bool { return true }), true},
		{"comparable comparand", AttrEquals("X", 1), true},
		{"nil comparand", AttrEquals("X", nil), true},
		{"non-comparable comparand", AttrEquals("X", []int{1}), false},
		{"and propagates", And(AttrEquals("X", 1), AttrEquals("Y", []int{1})), false},
		{"not propagates", Not(AttrEquals("X", []int{1})), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Comparable(); got != tt.want {
				t.Errorf("Comparable() = %v; want %v", got, tt.want)
			}
		})
	}
}
