package dtokit

import "sort"

// Field is one named value of a Record together with its metadata tags.
type Field struct {
	Name  string
	Value any // nil for null, Unset for never provided, or a nested Record.
	Tags  Tag
}

// Record is anything that can describe its fields in declaration order.
// Implementations must return a fresh slice or one the caller may not mutate;
// SelectFields never writes to it.
type Record interface {
	Fields() []Field
}

// Fields is an ordered field sequence. It is itself a Record, which makes the
// output of SelectFields usable as input to another pass.
type Fields []Field

// Fields implements Record.
func (fs Fields) Fields() []Field { return fs }

// Names returns field names in order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// Get returns the value of the named field.
func (fs Fields) Get(name string) (any, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Item is a (name, value) pair.
type Item struct {
	Name  string
	Value any
}

// MapOpt tunes ToMap.
type MapOpt struct {
	ExcludeNone  bool // Drop null values.
	ExcludeEmpty bool // Drop Unset values.
	Shallow      bool // Keep nested Records as they are instead of converting them.
}

// ToMap converts fields into a plain map. Nested Records, also inside []any,
// become maps unless Shallow is set; the toggles apply at every level. No
// direction filtering happens here.
func ToMap(r Record, opts ...MapOpt) map[string]any {
	var o MapOpt
	for _, op := range opts {
		o.ExcludeNone = o.ExcludeNone || op.ExcludeNone
		o.ExcludeEmpty = o.ExcludeEmpty || op.ExcludeEmpty
		o.Shallow = o.Shallow || op.Shallow
	}
	return toMap(r, o)
}

func toMap(r Record, o MapOpt) map[string]any {
	if IsNull(r) {
		return nil
	}
	fs := r.Fields()
	out := make(map[string]any, len(fs))
	for _, f := range fs {
		switch {
		case IsNull(f.Value):
			if !o.ExcludeNone {
				out[f.Name] = nil
			}
		case IsUnset(f.Value):
			if !o.ExcludeEmpty {
				out[f.Name] = f.Value
			}
		default:
			out[f.Name] = mapValue(f.Value, o)
		}
	}
	return out
}

func mapValue(v any, o MapOpt) any {
	if o.Shallow {
		return v
	}
	switch t := v.(type) {
	case Record:
		return toMap(t, o)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			if IsNull(e) {
				continue
			}
			out[i] = mapValue(e, o)
		}
		return out
	}
	return v
}

// FromMap builds an untagged record from a decoded map. Keys are sorted
// because map order carries no meaning; nested maps become nested Fields.
func FromMap(m map[string]any) Fields {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Fields, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if nm, ok := v.(map[string]any); ok {
			v = FromMap(nm)
		}
		out = append(out, Field{Name: k, Value: v})
	}
	return out
}
