// Package hint defines the canonical hint tree describing expected value
// shapes, the normalizer that builds it from raw declarative hints, the
// structural signatures used for memoization, and the ignorability
// classifier.
package hint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hintguard/hintguard/constraint"
	"github.com/hintguard/hintguard/resolve"
)

// Kind identifies the shape a hint node describes.
type Kind uint8

// Hint node kinds.
const (
	// KindPrimitive matches values of one concrete type (nil Type = null).
	KindPrimitive Kind = iota
	// KindUnion matches values conforming to any member, in declared order.
	KindUnion
	// KindSequence matches slices and arrays with a single element hint.
	KindSequence
	// KindFixedTuple matches slices and arrays of fixed arity, one hint per
	// position.
	KindFixedTuple
	// KindVariadicTuple matches slices and arrays of any length against one
	// repeated element hint.
	KindVariadicTuple
	// KindMapping matches maps with a key hint and a value hint.
	KindMapping
	// KindLiteral matches values equal to one of a concrete value set.
	KindLiteral
	// KindAnnotated matches a base hint plus attached validator expressions.
	KindAnnotated
	// KindForwardRef is a symbolic type reference resolved lazily.
	KindForwardRef
	// KindWildcard matches anything.
	KindWildcard
	// KindUnsupported marks a raw hint the normalizer could not classify.
	// It is a fatal compile-time configuration error, never deferred to
	// check time.
	KindUnsupported
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindUnion:
		return "union"
	case KindSequence:
		return "sequence"
	case KindFixedTuple:
		return "tuple"
	case KindVariadicTuple:
		return "variadic-tuple"
	case KindMapping:
		return "mapping"
	case KindLiteral:
		return "literal"
	case KindAnnotated:
		return "annotated"
	case KindForwardRef:
		return "forward-ref"
	case KindWildcard:
		return "wildcard"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Node is one node of a canonical hint tree.
//
// Nodes are immutable after construction: the normalizer builds fresh trees
// and compiled checkers share them freely across goroutines. Only the fields
// relevant to Kind are set.
type Node struct {
	Kind Kind

	// Type is the concrete type for KindPrimitive; nil means null/None.
	Type reflect.Type

	// Children are the ordered members of KindUnion and KindFixedTuple.
	Children []*Node

	// Elem is the element hint of KindSequence and KindVariadicTuple.
	Elem *Node

	// Key and Value are the entry hints of KindMapping.
	Key   *Node
	Value *Node

	// Literals are the permitted values of KindLiteral.
	Literals []any

	// Base and Validators belong to KindAnnotated.
	Base       *Node
	Validators []*constraint.Expr

	// Symbol and Scope identify a KindForwardRef.
	Symbol string
	Scope  *resolve.Scope

	// Reason explains a KindUnsupported node.
	Reason string

	// deprecated carries a deprecated-spelling notice for the normalizer to
	// surface as a compile warning.
	deprecated string
}

// Any matches every value.
var Any = &Node{Kind: KindWildcard}

// None matches only nil values (untyped nil and nil pointers, maps, slices,
// channels, functions, and interfaces).
var None = &Node{Kind: KindPrimitive}

// Of builds a primitive hint for the type T.
func Of[T any]() *Node {
	return Type(reflect.TypeFor[T]())
}

// Type builds a primitive hint for a reflect type descriptor.
func Type(t reflect.Type) *Node {
	if t == nil {
		return None
	}
	return &Node{Kind: KindPrimitive, Type: t}
}

// Union builds a hint matching any of its members, checked in declared
// order. Members are raw hints (see Normalize for accepted forms).
func Union(members ...any) *Node {
	return &Node{Kind: KindUnion, Children: fromRawAll(members)}
}

// Optional builds Union(member, None): the value may also be nil.
func Optional(member any) *Node {
	return &Node{Kind: KindUnion, Children: []*Node{fromRaw(member), None}}
}

// Nullable builds Union(member, None).
//
// Deprecated: use Optional. Compiling a Nullable hint emits a
// deprecated-spelling warning.
func Nullable(member any) *Node {
	n := Optional(member)
	return &Node{
		Kind:       KindUnion,
		Children:   n.Children,
		deprecated: "hint.Nullable is deprecated; use hint.Optional",
	}
}

// Seq builds a sequence hint: a slice or array whose elements match elem.
func Seq(elem any) *Node {
	return &Node{Kind: KindSequence, Elem: fromRaw(elem)}
}

// Tuple builds a fixed-arity hint: a slice or array of exactly len(elems)
// positions, each matching its own hint. Every position is checked on every
// call; no sampling applies.
func Tuple(elems ...any) *Node {
	return &Node{Kind: KindFixedTuple, Children: fromRawAll(elems)}
}

// TupleOf builds a variadic tuple hint: any length, one repeated element
// hint.
func TupleOf(elem any) *Node {
	return &Node{Kind: KindVariadicTuple, Elem: fromRaw(elem)}
}

// Map builds a mapping hint with a key hint and a value hint.
func Map(key, value any) *Node {
	return &Node{Kind: KindMapping, Key: fromRaw(key), Value: fromRaw(value)}
}

// Lit builds a literal hint matching exactly the given values.
func Lit(values ...any) *Node {
	return &Node{Kind: KindLiteral, Literals: values}
}

// Annotated attaches validator expressions to a base hint. Listing several
// validators is sugar for an And chain evaluated after the base check.
func Annotated(base any, validators ...*constraint.Expr) *Node {
	return &Node{Kind: KindAnnotated, Base: fromRaw(base), Validators: validators}
}

// Ref builds a forward reference to a symbol in a scope (nil = default
// scope). The symbol only has to be registered before the first check.
func Ref(symbol string, scope *resolve.Scope) *Node {
	return &Node{Kind: KindForwardRef, Symbol: symbol, Scope: scope}
}

// Unsupported builds a node recording why a raw hint could not be
// classified.
func Unsupported(reason string) *Node {
	return &Node{Kind: KindUnsupported, Reason: reason}
}

// fromRaw shallowly converts a raw hint into a node. Full canonicalization
// happens in Normalize.
func fromRaw(raw any) *Node {
	switch h := raw.(type) {
	case *Node:
		return h
	case nil:
		return None
	case reflect.Type:
		return Type(h)
	case string:
		return Ref(h, nil)
	default:
		return Unsupported(fmt.Sprintf("%T is not a hint", raw))
	}
}

func fromRawAll(raws []any) []*Node {
	nodes := make([]*Node, len(raws))
	for i, r := range raws {
		nodes[i] = fromRaw(r)
	}
	return nodes
}

// String renders the hint for diagnostics and error messages.
func (n *Node) String() string {
	switch n.Kind {
	case KindPrimitive:
		if n.Type == nil {
			return "none"
		}
		return n.Type.String()
	case KindUnion:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return strings.Join(parts, " | ")
	case KindSequence:
		return "[]" + n.Elem.String()
	case KindFixedTuple:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindVariadicTuple:
		return "(..." + n.Elem.String() + ")"
	case KindMapping:
		return "map[" + n.Key.String() + "]" + n.Value.String()
	case KindLiteral:
		parts := make([]string, len(n.Literals))
		for i, v := range n.Literals {
			parts[i] = fmt.Sprintf("%#v", v)
		}
		return "literal[" + strings.Join(parts, ", ") + "]"
	case KindAnnotated:
		parts := make([]string, len(n.Validators))
		for i, e := range n.Validators {
			parts[i] = e.Describe()
		}
		return "annotated[" + n.Base.String() + "; " + strings.Join(parts, ", ") + "]"
	case KindForwardRef:
		scope := "default"
		if n.Scope != nil {
			scope = n.Scope.Name()
		}
		return "ref(" + n.Symbol + "@" + scope + ")"
	case KindWildcard:
		return "any"
	case KindUnsupported:
		return "unsupported(" + n.Reason + ")"
	default:
		return "unknown"
	}
}

// FindUnsupported returns the first unsupported node in the tree, if any.
func (n *Node) FindUnsupported() *Node {
	if n == nil {
		return nil
	}
	if n.Kind == KindUnsupported {
		return n
	}
	for _, c := range n.Children {
		if u := c.FindUnsupported(); u != nil {
			return u
		}
	}
	for _, c := range []*Node{n.Elem, n.Key, n.Value, n.Base} {
		if c != nil {
			if u := c.FindUnsupported(); u != nil {
				return u
			}
		}
	}
	return nil
}

// MaxDepth returns the hint tree's maximum nesting depth, the compile-time
// constant that bounds per-check cost.
func (n *Node) MaxDepth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	children := append([]*Node{n.Elem, n.Key, n.Value, n.Base}, n.Children...)
	for _, c := range children {
		if c == nil {
			continue
		}
		if d := c.MaxDepth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
