package hint

import (
	"fmt"
	"reflect"

	"github.com/hintguard/hintguard"
	"github.com/hintguard/hintguard/constraint"
)

// Normalize converts a raw declarative hint into a canonical Node tree.
//
// Accepted raw forms: *Node (constructor DSL), reflect.Type, nil (the null
// hint), and string (a forward reference in the default scope). Anything
// else yields an Unsupported node, which compilation rejects.
//
// Canonicalization rules: nested unions are flattened and deduplicated with
// a trailing null member; validator lists are hoisted out of nested
// annotated wrappers; zero-validator annotations collapse to their base;
// the empty interface type becomes Wildcard; unnamed slice, array, and map
// types expand structurally into Sequence and Mapping hints.
//
// Normalization is deterministic: structurally identical raw hints always
// produce structurally equal trees, which memoization correctness requires.
func Normalize(raw any) (*Node, []hintguard.Warning) {
	var warnings []hintguard.Warning
	n := canon(fromRaw(raw), &warnings)
	return n, warnings
}

func canon(n *Node, warnings *[]hintguard.Warning) *Node {
	switch n.Kind {
	case KindPrimitive:
		return canonType(n.Type, warnings)

	case KindUnion:
		return canonUnion(n, warnings)

	case KindSequence:
		return &Node{Kind: KindSequence, Elem: canon(n.Elem, warnings)}

	case KindVariadicTuple:
		return &Node{Kind: KindVariadicTuple, Elem: canon(n.Elem, warnings)}

	case KindFixedTuple:
		children := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = canon(c, warnings)
		}
		return &Node{Kind: KindFixedTuple, Children: children}

	case KindMapping:
		return &Node{
			Kind:  KindMapping,
			Key:   canon(n.Key, warnings),
			Value: canon(n.Value, warnings),
		}

	case KindLiteral:
		return canonLiteral(n, warnings)

	case KindAnnotated:
		return canonAnnotated(n, warnings)

	case KindForwardRef:
		if n.Symbol == "" {
			return Unsupported("forward reference requires a symbol")
		}
		return &Node{Kind: KindForwardRef, Symbol: n.Symbol, Scope: n.Scope}

	case KindWildcard, KindUnsupported:
		return n

	default:
		return Unsupported(fmt.Sprintf("unknown hint kind %d", n.Kind))
	}
}

// canonType classifies a type descriptor. The empty interface matches
// anything; unnamed composite types are container shorthands and expand
// structurally; everything else stays a nominal primitive.
func canonType(t reflect.Type, warnings *[]hintguard.Warning) *Node {
	if t == nil {
		return None
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return Any
	}
	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			return &Node{Kind: KindSequence, Elem: canonType(t.Elem(), warnings)}
		case reflect.Map:
			return &Node{
				Kind:  KindMapping,
				Key:   canonType(t.Key(), warnings),
				Value: canonType(t.Elem(), warnings),
			}
		}
	}
	return &Node{Kind: KindPrimitive, Type: t}
}

func canonUnion(n *Node, warnings *[]hintguard.Warning) *Node {
	if n.deprecated != "" {
		*warnings = append(*warnings, hintguard.Warning{
			Code:    hintguard.WarnDeprecatedSpelling,
			Message: n.deprecated,
			Hint:    n.String(),
		})
	}

	// Flatten nested unions.
	var members []*Node
	for _, c := range n.Children {
		cc := canon(c, warnings)
		if cc.Kind == KindUnion {
			members = append(members, cc.Children...)
		} else {
			members = append(members, cc)
		}
	}

	// Deduplicate by structural signature, preserving first-occurrence
	// order, with the null member always trailing.
	seen := make(map[Signature]struct{}, len(members))
	out := make([]*Node, 0, len(members))
	hasNone := false
	for _, m := range members {
		if m.Kind == KindPrimitive && m.Type == nil {
			hasNone = true
			continue
		}
		sig := m.Signature()
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, m)
	}
	if hasNone {
		out = append(out, None)
	}

	switch len(out) {
	case 0:
		return Unsupported("union requires at least one member")
	case 1:
		return out[0]
	default:
		return &Node{Kind: KindUnion, Children: out}
	}
}

func canonLiteral(n *Node, warnings *[]hintguard.Warning) *Node {
	if len(n.Literals) == 0 {
		return Unsupported("literal requires at least one value")
	}
	values := make([]any, len(n.Literals))
	copy(values, n.Literals)
	for _, v := range values {
		if v != nil && !reflect.TypeOf(v).Comparable() {
			*warnings = append(*warnings, hintguard.Warning{
				Code: hintguard.WarnNonConstantTime,
				Message: fmt.Sprintf(
					"literal value of type %T is not comparable; equality falls back to reflect.DeepEqual", v),
				Hint: n.String(),
			})
		}
	}
	return &Node{Kind: KindLiteral, Literals: values}
}

func canonAnnotated(n *Node, warnings *[]hintguard.Warning) *Node {
	base := canon(n.Base, warnings)

	validators := make([]*constraint.Expr, 0, len(n.Validators))
	for _, v := range n.Validators {
		if v != nil {
			validators = append(validators, v)
		}
	}

	// Hoist validators out of a nested annotated wrapper: the inner
	// wrapper's validators were attached closer to the base and run first.
	if base.Kind == KindAnnotated {
		validators = append(append([]*constraint.Expr{}, base.Validators...), validators...)
		base = base.Base
	}

	if len(validators) == 0 {
		return base
	}

	for _, v := range validators {
		if !v.Comparable() {
			*warnings = append(*warnings, hintguard.Warning{
				Code: hintguard.WarnNonConstantTime,
				Message: fmt.Sprintf(
					"validator %s compares non-comparable values; equality falls back to reflect.DeepEqual",
					v.Describe()),
				Hint: n.String(),
			})
		}
	}

	return &Node{Kind: KindAnnotated, Base: base, Validators: validators}
}
