package dtokit

// SchemaBuilder declares a Schema field by field.
type SchemaBuilder struct {
	name  string
	specs []FieldSpec
}

// FieldStep configures the field most recently added to a SchemaBuilder.
type FieldStep struct {
	b *SchemaBuilder
	i int
}

// Describe starts a Schema declaration for the named record type.
func Describe(name string) *SchemaBuilder {
	return &SchemaBuilder{name: name}
}

// Field appends an untagged field.
func (b *SchemaBuilder) Field(name string) *FieldStep {
	b.specs = append(b.specs, FieldSpec{Name: name})
	return &FieldStep{b: b, i: len(b.specs) - 1}
}

// Private tags the field private.
func (f *FieldStep) Private() *FieldStep {
	f.b.specs[f.i].Tags |= TagPrivate
	return f
}

// ReadOnly tags the field read-only.
func (f *FieldStep) ReadOnly() *FieldStep {
	f.b.specs[f.i].Tags |= TagReadOnly
	return f
}

// Nested declares the schema of the record held by the field.
func (f *FieldStep) Nested(s *Schema) *FieldStep {
	f.b.specs[f.i].Schema = s
	return f
}

func (f *FieldStep) Field(name string) *FieldStep { return f.b.Field(name) }
func (f *FieldStep) Build() (*Schema, error)     { return f.b.Build() }
func (f *FieldStep) MustBuild() *Schema          { return f.b.MustBuild() }

// Build validates the declaration.
func (b *SchemaBuilder) Build() (*Schema, error) {
	return NewSchema(b.name, b.specs...)
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
