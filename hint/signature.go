package hint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"
)

// Signature is the content-based structural identity of a hint tree: two
// trees have equal signatures exactly when they are structurally equal. It
// is the memoization key for compiled checkers.
type Signature string

// Hash returns a 64-bit digest of the signature, used for logging and
// metrics labels.
func (s Signature) Hash() uint64 {
	return xxhash.Sum64String(string(s))
}

// Signature computes the node tree's structural signature.
func (n *Node) Signature() Signature {
	var sb strings.Builder
	n.writeSignature(&sb)
	return Signature(sb.String())
}

func (n *Node) writeSignature(sb *strings.Builder) {
	switch n.Kind {
	case KindPrimitive:
		sb.WriteString("P<")
		if n.Type != nil {
			sb.WriteString(typeKey(n.Type))
		} else {
			sb.WriteString("none")
		}
		sb.WriteString(">")
	case KindUnion:
		sb.WriteString("U(")
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(';')
			}
			c.writeSignature(sb)
		}
		sb.WriteString(")")
	case KindSequence:
		sb.WriteString("S(")
		n.Elem.writeSignature(sb)
		sb.WriteString(")")
	case KindFixedTuple:
		sb.WriteString("T(")
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(';')
			}
			c.writeSignature(sb)
		}
		sb.WriteString(")")
	case KindVariadicTuple:
		sb.WriteString("V(")
		n.Elem.writeSignature(sb)
		sb.WriteString(")")
	case KindMapping:
		sb.WriteString("M(")
		n.Key.writeSignature(sb)
		sb.WriteByte(';')
		n.Value.writeSignature(sb)
		sb.WriteString(")")
	case KindLiteral:
		sb.WriteString("L(")
		for i, v := range n.Literals {
			if i > 0 {
				sb.WriteByte(';')
			}
			fmt.Fprintf(sb, "%T:%x", v, literalHash(v))
		}
		sb.WriteString(")")
	case KindAnnotated:
		sb.WriteString("A(")
		n.Base.writeSignature(sb)
		for _, v := range n.Validators {
			sb.WriteByte(';')
			sb.WriteString(v.ID())
		}
		sb.WriteString(")")
	case KindForwardRef:
		// Scope identity is semantic identity: equal symbols in distinct
		// scopes are distinct hints, even if the scopes share a name.
		fmt.Fprintf(sb, "F(%s@%s#%p)", n.Symbol, scopeName(n), n.Scope)
	case KindWildcard:
		sb.WriteString("W")
	case KindUnsupported:
		sb.WriteString("X(")
		sb.WriteString(n.Reason)
		sb.WriteString(")")
	}
}

func scopeName(n *Node) string {
	if n.Scope == nil {
		return "default"
	}
	return n.Scope.Name()
}

// typeKey renders a type descriptor unambiguously: named types include
// their full package path, unnamed types their structural spelling.
func typeKey(t reflect.Type) string {
	if pp := t.PkgPath(); pp != "" {
		return pp + "." + t.Name()
	}
	return t.String()
}

// literalHash content-hashes a literal value into the signature.
func literalHash(v any) uint64 {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// Unhashable values fall back to their type spelling.
		return xxhash.Sum64String(fmt.Sprintf("%T", v))
	}
	return h
}
