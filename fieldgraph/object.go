// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fieldgraph

// Object is an in-memory Schema. Fields may be appended after construction,
// which is how self-referencing and mutually recursive schemas are built.
type Object struct {
	name   string
	fields []Field
	meta   map[string]any
}

// NewObject creates a schema with the given fields in declaration order.
func NewObject(name string, fields ...Field) *Object {
	return &Object{name: name, fields: fields}
}

// Add appends fields and returns the object for chaining.
func (o *Object) Add(fields ...Field) *Object {
	o.fields = append(o.fields, fields...)
	return o
}

// SetMeta sets a schema-level metadata entry.
func (o *Object) SetMeta(key string, value any) *Object {
	if o.meta == nil {
		o.meta = make(map[string]any)
	}
	o.meta[key] = value
	return o
}

func (o *Object) Name() string             { return o.name }
func (o *Object) Fields() []Field          { return o.fields }
func (o *Object) Metadata() map[string]any { return o.meta }

// Descriptor is an in-memory Field. It implements every capability interface;
// capabilities that were not configured report zero values.
type Descriptor struct {
	name        string
	kind        Kind
	required    bool
	nullable    bool
	dumpOnly    bool
	dataKey     string
	def         any
	hasDefault  bool
	defaultFunc func() any
	meta        map[string]any
	validators  []Validator

	inner      Field
	values     Field
	elements   []Field
	nested     Schema
	many       bool
	only       []string
	exclude    []string
	choices    []any
	candidates []Field
	mapping    map[string]any
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// NewField creates a field descriptor.
func NewField(name string, kind Kind, opts ...Option) *Descriptor {
	d := &Descriptor{name: name, kind: kind}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func Required() Option  { return func(d *Descriptor) { d.required = true } }
func AllowNone() Option { return func(d *Descriptor) { d.nullable = true } }
func DumpOnly() Option  { return func(d *Descriptor) { d.dumpOnly = true } }
func Many() Option      { return func(d *Descriptor) { d.many = true } }

func DataKey(key string) Option { return func(d *Descriptor) { d.dataKey = key } }

// Default sets a static default value.
func Default(v any) Option {
	return func(d *Descriptor) {
		d.def = v
		d.hasDefault = true
	}
}

// DefaultFunc sets a default computed at load time. Computed defaults are
// not part of the schema.
func DefaultFunc(fn func() any) Option {
	return func(d *Descriptor) {
		d.defaultFunc = fn
		d.hasDefault = false
	}
}

// Meta sets a single metadata entry.
func Meta(key string, value any) Option {
	return func(d *Descriptor) {
		if d.meta == nil {
			d.meta = make(map[string]any)
		}
		d.meta[key] = value
	}
}

// Metadata merges a metadata map into the descriptor.
func Metadata(m map[string]any) Option {
	return func(d *Descriptor) {
		for k, v := range m {
			Meta(k, v)(d)
		}
	}
}

func Inner(f Field) Option           { return func(d *Descriptor) { d.inner = f } }
func Values(f Field) Option          { return func(d *Descriptor) { d.values = f } }
func Elements(fs ...Field) Option    { return func(d *Descriptor) { d.elements = fs } }
func Nest(s Schema) Option           { return func(d *Descriptor) { d.nested = s } }
func Only(names ...string) Option    { return func(d *Descriptor) { d.only = names } }
func Exclude(names ...string) Option { return func(d *Descriptor) { d.exclude = names } }
func Choices(vs ...any) Option       { return func(d *Descriptor) { d.choices = vs } }
func Candidates(fs ...Field) Option  { return func(d *Descriptor) { d.candidates = fs } }

func Validate(vs ...Validator) Option {
	return func(d *Descriptor) { d.validators = append(d.validators, vs...) }
}

// CustomMapping sets a verbatim JSON Schema fragment for the field.
//
// Deprecated: prefer a registered kind or TypeAliasKey.
func CustomMapping(m map[string]any) Option { return func(d *Descriptor) { d.mapping = m } }

func (d *Descriptor) Name() string             { return d.name }
func (d *Descriptor) Kind() Kind               { return d.kind }
func (d *Descriptor) Required() bool           { return d.required }
func (d *Descriptor) Nullable() bool           { return d.nullable }
func (d *Descriptor) DumpOnly() bool           { return d.dumpOnly }
func (d *Descriptor) DataKey() string          { return d.dataKey }
func (d *Descriptor) Metadata() map[string]any { return d.meta }
func (d *Descriptor) Validators() []Validator  { return d.validators }

func (d *Descriptor) Default() (any, bool) {
	if d.defaultFunc != nil {
		return nil, false
	}
	return d.def, d.hasDefault
}

func (d *Descriptor) Inner() Field        { return d.inner }
func (d *Descriptor) Values() Field       { return d.values }
func (d *Descriptor) Elements() []Field   { return d.elements }
func (d *Descriptor) Nested() Schema      { return d.nested }
func (d *Descriptor) Many() bool          { return d.many }
func (d *Descriptor) Only() []string      { return d.only }
func (d *Descriptor) Exclude() []string   { return d.exclude }
func (d *Descriptor) Choices() []any      { return d.choices }
func (d *Descriptor) Candidates() []Field { return d.candidates }

// JSONSchemaMapping returns the verbatim fragment set with CustomMapping, or nil.
//
// Deprecated: see CustomMapper.
func (d *Descriptor) JSONSchemaMapping() map[string]any { return d.mapping }

var (
	_ Schema       = (*Object)(nil)
	_ Field        = (*Descriptor)(nil)
	_ Container    = (*Descriptor)(nil)
	_ Tuple        = (*Descriptor)(nil)
	_ Mapping      = (*Descriptor)(nil)
	_ Nesting      = (*Descriptor)(nil)
	_ Enumeration  = (*Descriptor)(nil)
	_ Union        = (*Descriptor)(nil)
	_ CustomMapper = (*Descriptor)(nil)
)
