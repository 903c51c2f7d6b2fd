package hint

import (
	"testing"

	"github.com/hintguard/hintguard/constraint"
	"github.com/hintguard/hintguard/resolve"
)

func TestSignature_EqualForEqualTrees(t *testing.T) {
	a := Seq(Union(Of[int](), Of[string]())).Signature()
	b := Seq(Union(Of[int](), Of[string]())).Signature()

	if a != b {
		t.Errorf("signatures differ for structurally equal trees:\n%q\n%q", a, b)
	}
}

func TestSignature_DistinguishesStructure(t *testing.T) {
	sigs := map[Signature]string{}
	nodes := []*Node{
		Of[int](),
		Of[string](),
		None,
		Any,
		Seq(Of[int]()),
		TupleOf(Of[int]()),
		Tuple(Of[int]()),
		Tuple(Of[int](), Of[int]()),
		Map(Of[string](), Of[int]()),
		Map(Of[int](), Of[string]()),
		Union(Of[int](), Of[string]()),
		Union(Of[string](), Of[int]()),
		Lit(1),
		Lit(2),
		Lit("1"),
		Ref("Account", nil),
		Ref("Invoice", nil),
	}

	for _, n := range nodes {
		sig := n.Signature()
		if prev, dup := sigs[sig]; dup {
			t.Errorf("signature collision: %q shared by %s and %s", sig, prev, n.String())
		}
		sigs[sig] = n.String()
	}
}

func TestSignature_SameNameDifferentScope(t *testing.T) {
	s1 := resolve.NewScope("models")
	s2 := resolve.NewScope("models")

	a := Ref("Account", s1).Signature()
	b := Ref("Account", s2).Signature()

	if a == b {
		t.Error("distinct scopes with equal names produced equal signatures")
	}
}

func TestSignature_SamePredicateSameSignature(t *testing.T) {
	pos := constraint.Predicate("positive", func(any) bool { return true })

	a := Annotated(Of[int](), pos).Signature()
	b := Annotated(Of[int](), pos).Signature()

	if a != b {
		t.Errorf("same validator produced different signatures:\n%q\n%q", a, b)
	}
}

func TestSignature_DistinctPredicatesDistinctSignatures(t *testing.T) {
	a := Annotated(Of[int](), constraint.Predicate("positive", func(any) bool { return true })).Signature()
	b := Annotated(Of[int](), constraint.Predicate("negative", func(any) bool { return false })).Signature()

	if a == b {
		t.Error("distinct validators produced equal signatures")
	}
}

func TestSignature_SameTypeNameDifferentPackage(t *testing.T) {
	// resolve.Scope and this package could both declare a type named Scope;
	// the signature must qualify named types with their package path.
	type Scope struct{ X int }

	a := Of[Scope]().Signature()
	b := Of[resolve.Scope]().Signature()

	if a == b {
		t.Error("same type name in different packages produced equal signatures")
	}
}

func TestSignature_Hash(t *testing.T) {
	sig := Seq(Of[int]()).Signature()

	if sig.Hash() == 0 {
		t.Error("Hash() = 0; want non-zero digest")
	}
	if sig.Hash() != sig.Hash() {
		t.Error("Hash() is not stable")
	}
}
