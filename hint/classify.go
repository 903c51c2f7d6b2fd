package hint

import (
	"fmt"
	"reflect"
)

// Concrete unwraps interface values so classification sees the dynamic
// type. Container element access through reflect yields values of the
// container's static element type; a []any element arrives as an interface.
func Concrete(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// MatchesType is the shallow classification test: does the value's dynamic
// type satisfy the descriptor? A nil descriptor is the null hint and matches
// only nil values. Interface descriptors match implementing types.
func MatchesType(v reflect.Value, t reflect.Type) bool {
	if t == nil {
		return IsNilValue(v)
	}
	if !v.IsValid() {
		return false
	}
	return v.Type().AssignableTo(t)
}

// IsNilValue reports whether the value is untyped nil or a nil instance of
// a nilable kind.
func IsNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// LiteralEqual reports whether the value equals the literal. Comparable
// operands use constant-time interface equality; non-comparable literals
// fall back to reflect.DeepEqual.
func LiteralEqual(v reflect.Value, want any) bool {
	if want == nil {
		return IsNilValue(v)
	}
	if !v.IsValid() || !v.CanInterface() {
		return false
	}
	got := v.Interface()
	if reflect.TypeOf(got).Comparable() && reflect.TypeOf(want).Comparable() {
		return got == want
	}
	return reflect.DeepEqual(got, want)
}

// DescribeValue renders a value's shallow classification for violation
// reports: its dynamic type, with the length for containers.
func DescribeValue(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%s (len %d)", v.Type(), v.Len())
	default:
		return v.Type().String()
	}
}

// Interface returns the value as any, or nil when it cannot be extracted.
func Interface(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
