package hint

import "reflect"

// ShallowIgnorable is a constant-time membership test against the node
// shapes known to match everything without recursion: Wildcard, the empty
// interface primitive, and unions whose members are all shallow-ignorable.
func (n *Node) ShallowIgnorable() bool {
	switch n.Kind {
	case KindWildcard:
		return true
	case KindPrimitive:
		return n.Type != nil && n.Type.Kind() == reflect.Interface && n.Type.NumMethod() == 0
	case KindUnion:
		for _, c := range n.Children {
			if !c.ShallowIgnorable() {
				return false
			}
		}
		return len(n.Children) > 0
	default:
		return false
	}
}

// Ignorable is the deep classification: it additionally admits annotated
// wrappers around an ignorable base that carry no validators, and unions of
// ignorable members. An ignorable hint is structurally guaranteed to match
// every value, so the compiler must short-circuit it to a constant-pass
// checker that performs zero value inspection.
func (n *Node) Ignorable() bool {
	if n.ShallowIgnorable() {
		return true
	}
	switch n.Kind {
	case KindAnnotated:
		return len(n.Validators) == 0 && n.Base.Ignorable()
	case KindUnion:
		for _, c := range n.Children {
			if !c.Ignorable() {
				return false
			}
		}
		return len(n.Children) > 0
	default:
		return false
	}
}
