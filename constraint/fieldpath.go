package constraint

import (
	"reflect"
	"strings"
)

// Lookup traverses a dot-separated attribute path through a value: exported
// struct fields by name and string-keyed map entries, dereferencing pointers
// and interfaces along the way. An empty path yields the value itself.
// The second return is false if any segment is missing.
func Lookup(value any, path string) (any, bool) {
	if path == "" {
		return value, true
	}

	v := reflect.ValueOf(value)
	for _, seg := range strings.Split(path, ".") {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}

		switch v.Kind() {
		case reflect.Struct:
			f := v.FieldByName(seg)
			if !f.IsValid() || !f.CanInterface() {
				return nil, false
			}
			v = f
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			e := v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
			if !e.IsValid() {
				return nil, false
			}
			v = e
		default:
			return nil, false
		}
	}

	v = indirect(v)
	if !v.IsValid() {
		return nil, true
	}
	return v.Interface(), true
}

// indirect unwraps pointers and interfaces until a concrete value remains.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
