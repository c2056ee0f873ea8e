package dtokit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/dtokit/i18n"
)

// FieldSpec declares one field of a Schema.
type FieldSpec struct {
	Name string
	Tags Tag
	// Schema optionally declares the shape of a nested record held by the
	// field. It is used when tagging decoded data.
	Schema *Schema
}

// Schema is the ahead-of-time field declaration of one record type. It is
// immutable after construction.
type Schema struct {
	name  string
	specs []FieldSpec
	index map[string]int
}

// NewSchema validates specs and builds a Schema. Field names must be
// non-empty, free of PathSep and unique.
func NewSchema(name string, specs ...FieldSpec) (*Schema, error) {
	s := &Schema{name: name, specs: make([]FieldSpec, 0, len(specs)), index: make(map[string]int, len(specs))}
	var iss Issues
	base := Root().Field(name)
	for i, sp := range specs {
		if sp.Name == "" || strings.Contains(sp.Name, PathSep) {
			iss = AppendIssues(iss, base.Index(i).Issue(CodeInvalidPath, i18n.T(CodeInvalidPath, nil), "name", sp.Name))
			continue
		}
		if _, dup := s.index[sp.Name]; dup {
			iss = AppendIssues(iss, base.Field(sp.Name).Issue(CodeDuplicateKey, i18n.T(CodeDuplicateKey, nil)))
			continue
		}
		s.index[sp.Name] = len(s.specs)
		s.specs = append(s.specs, sp)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// Name returns the record type name.
func (s *Schema) Name() string { return s.name }

// Specs returns a copy of the field declarations in order.
func (s *Schema) Specs() []FieldSpec { return append([]FieldSpec(nil), s.specs...) }

// Spec looks up a field declaration by name.
func (s *Schema) Spec(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.specs[i], true
}

// New builds an Object from values. Declared fields absent from values are
// Unset; keys that are not declared are rejected.
func (s *Schema) New(values map[string]any) (*Object, error) {
	o := &Object{schema: s, values: make([]any, len(s.specs))}
	for i := range o.values {
		o.values[i] = Unset
	}
	var iss Issues
	for k, v := range values {
		i, ok := s.index[k]
		if !ok {
			iss = AppendIssues(iss, Root().Field(s.name).Field(k).Issue(CodeUnknownKey, i18n.T(CodeUnknownKey, nil)))
			continue
		}
		o.values[i] = v
	}
	if len(iss) > 0 {
		sortIssues(iss)
		return nil, iss
	}
	return o, nil
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(values map[string]any) *Object {
	o, err := s.New(values)
	if err != nil {
		panic(err)
	}
	return o
}

// Tag applies the schema's tags to a decoded record, recursing into nested
// records declared with a Schema. Fields the schema does not declare keep
// their tags.
func (s *Schema) Tag(r Record) Fields {
	if IsNull(r) {
		return nil
	}
	in := r.Fields()
	out := make(Fields, len(in))
	for i, f := range in {
		if sp, ok := s.Spec(f.Name); ok {
			f.Tags |= sp.Tags
			if sp.Schema != nil && !IsNull(f.Value) {
				f.Value = sp.Schema.tagValue(f.Value)
			}
		}
		out[i] = f
	}
	return out
}

// tagValue tags a nested record, or every record inside a list of them.
func (s *Schema) tagValue(v any) any {
	switch t := v.(type) {
	case Record:
		return s.Tag(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			if rec, ok := e.(Record); ok && !IsNull(e) {
				out[i] = s.Tag(rec)
				continue
			}
			out[i] = e
		}
		return out
	}
	return v
}

// Object is a Record whose shape is given by a Schema.
type Object struct {
	schema *Schema
	values []any
}

// Schema returns the object's schema.
func (o *Object) Schema() *Schema { return o.schema }

// Fields implements Record in declaration order.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}
	out := make([]Field, len(o.schema.specs))
	for i, sp := range o.schema.specs {
		out[i] = Field{Name: sp.Name, Value: o.values[i], Tags: sp.Tags}
	}
	return out
}

// Get returns the value of a declared field.
func (o *Object) Get(name string) (any, bool) {
	i, ok := o.schema.index[name]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// State returns the presence state of a declared field. Undeclared names
// report StateUnset.
func (o *Object) State(name string) State {
	v, ok := o.Get(name)
	if !ok {
		return StateUnset
	}
	return StateOf(v)
}

// Set assigns a declared field. Passing Unset clears it.
func (o *Object) Set(name string, v any) error {
	i, ok := o.schema.index[name]
	if !ok {
		return Issues{Root().Field(o.schema.name).Field(name).Issue(CodeUnknownKey, i18n.T(CodeUnknownKey, nil))}
	}
	o.values[i] = v
	return nil
}

func (o *Object) String() string { return fmt.Sprintf("%s%v", o.schema.name, ToMap(o)) }

func sortIssues(iss Issues) {
	sort.SliceStable(iss, func(i, j int) bool { return iss[i].Path < iss[j].Path })
}
