package dtokit

import "reflect"

// unsetMarker is the type of Unset. It is unexported so that Unset stays the
// only value of its kind.
type unsetMarker struct{}

func (unsetMarker) String() string { return "<unset>" }

// MarshalJSON encodes Unset as null when a field holding it is emitted.
func (unsetMarker) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Unset marks a field that was never provided. It is distinct from nil, which
// marks a field explicitly provided as null.
var Unset any = unsetMarker{}

// IsUnset reports whether v is the Unset sentinel.
func IsUnset(v any) bool {
	_, ok := v.(unsetMarker)
	return ok
}

// State is the presence state of a field value.
type State uint8

const (
	StateUnset State = iota // Field was never provided.
	StateNull               // Field was provided as null.
	StateSet                // Field carries a value.
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StateSet:
		return "set"
	default:
		return "unset"
	}
}

// StateOf classifies a field value into its presence state.
func StateOf(v any) State {
	switch {
	case IsUnset(v):
		return StateUnset
	case IsNull(v):
		return StateNull
	default:
		return StateSet
	}
}

// IsNull reports whether v is an explicit null: nil itself, or a nil pointer,
// map or slice stored in an interface, such as a (*Object)(nil) relation.
// A nil Fields is null as well.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
