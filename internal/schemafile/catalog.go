// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schemafile

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"unicode"

	"github.com/dacolabs/formschema/fieldgraph"
)

var (
	// ErrDuplicateSchema indicates two descriptions declare the same schema name.
	ErrDuplicateSchema = errors.New("duplicate schema")

	// ErrUnknownSchema indicates a nested field names a schema that is not declared.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrInvalidField indicates a field description that cannot be built.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidName indicates a schema name that is not an identifier.
	ErrInvalidName = errors.New("invalid schema name")
)

// ValidateName checks that name is an identifier: a letter or underscore
// followed by letters, digits and underscores. Schema names become
// definition names and output file names, so nothing else is accepted.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	for i, r := range name {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return fmt.Errorf("%w %q: must start with letter or underscore", ErrInvalidName, name)
		}
		if i > 0 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("%w %q: must contain only letters, numbers, underscores", ErrInvalidName, name)
		}
	}
	return nil
}

// Catalog holds the object schemas built from a set of description documents.
// Nested fields reference schemas of the same catalog, so cycles are allowed.
type Catalog struct {
	objects map[string]*fieldgraph.Object
	sources map[string]string
}

// Names returns the schema names in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.objects))
	for name := range c.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the schema with the given name.
func (c *Catalog) Get(name string) (*fieldgraph.Object, bool) {
	obj, ok := c.objects[name]
	return obj, ok
}

// Source returns the file a schema was declared in.
func (c *Catalog) Source(name string) string {
	return c.sources[name]
}

// Len returns the number of schemas.
func (c *Catalog) Len() int {
	return len(c.objects)
}

// LoadFS reads every .yaml, .yml and .json file below the root of fsys and
// builds a catalog from them. Files without a schemas section are skipped.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	b := newBuilder()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		parser, ok := ParserFor(p)
		if !ok {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		doc, err := parser.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return b.add(p, doc)
	})
	if err != nil {
		return nil, err
	}
	return b.build()
}

// Build creates a catalog from documents already in memory. Sources are
// reported as "doc<N>" by position.
func Build(docs ...*Document) (*Catalog, error) {
	b := newBuilder()
	for i, doc := range docs {
		if err := b.add(fmt.Sprintf("doc%d", i), doc); err != nil {
			return nil, err
		}
	}
	return b.build()
}

type builder struct {
	specs   map[string]SchemaSpec
	objects map[string]*fieldgraph.Object
	sources map[string]string
}

func newBuilder() *builder {
	return &builder{
		specs:   make(map[string]SchemaSpec),
		objects: make(map[string]*fieldgraph.Object),
		sources: make(map[string]string),
	}
}

func (b *builder) add(source string, doc *Document) error {
	if doc == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Schemas))
	for name := range doc.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		if prev, exists := b.sources[name]; exists {
			return fmt.Errorf("%w %q: declared in %s and %s", ErrDuplicateSchema, name, prev, source)
		}
		spec := doc.Schemas[name]
		obj := fieldgraph.NewObject(name)
		for k, v := range spec.Meta {
			obj.SetMeta(k, v)
		}
		b.specs[name] = spec
		b.objects[name] = obj
		b.sources[name] = source
	}
	return nil
}

// build fills the fields once every object exists, so references resolve
// regardless of declaration order.
func (b *builder) build() (*Catalog, error) {
	names := make([]string, 0, len(b.specs))
	for name := range b.specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		obj := b.objects[name]
		for i := range b.specs[name].Fields {
			spec := &b.specs[name].Fields[i]
			f, err := b.field(spec)
			if err != nil {
				return nil, fmt.Errorf("%s: schema %q field %q: %w", b.sources[name], name, spec.Name, err)
			}
			obj.Add(f)
		}
	}
	return &Catalog{objects: b.objects, sources: b.sources}, nil
}

func (b *builder) field(spec *FieldSpec) (fieldgraph.Field, error) {
	if spec.Type == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidField)
	}
	kind := fieldgraph.Kind(spec.Type)

	var opts []fieldgraph.Option
	if spec.Required {
		opts = append(opts, fieldgraph.Required())
	}
	if spec.AllowNone {
		opts = append(opts, fieldgraph.AllowNone())
	}
	if spec.DumpOnly {
		opts = append(opts, fieldgraph.DumpOnly())
	}
	if spec.Many {
		opts = append(opts, fieldgraph.Many())
	}
	if spec.DataKey != "" {
		opts = append(opts, fieldgraph.DataKey(spec.DataKey))
	}
	if spec.HasDefault() {
		opts = append(opts, fieldgraph.Default(spec.Default))
	}
	if len(spec.Metadata) > 0 {
		opts = append(opts, fieldgraph.Metadata(spec.Metadata))
	}
	if len(spec.Choices) > 0 {
		opts = append(opts, fieldgraph.Choices(spec.Choices...))
	}
	if len(spec.Only) > 0 {
		opts = append(opts, fieldgraph.Only(spec.Only...))
	}
	if len(spec.Exclude) > 0 {
		opts = append(opts, fieldgraph.Exclude(spec.Exclude...))
	}
	if spec.Mapping != nil {
		opts = append(opts, fieldgraph.CustomMapping(spec.Mapping)) //nolint:staticcheck
	}

	if spec.Inner != nil {
		inner, err := b.field(spec.Inner)
		if err != nil {
			return nil, fmt.Errorf("inner: %w", err)
		}
		opts = append(opts, fieldgraph.Inner(inner))
	}
	if spec.Values != nil {
		values, err := b.field(spec.Values)
		if err != nil {
			return nil, fmt.Errorf("values: %w", err)
		}
		opts = append(opts, fieldgraph.Values(values))
	}
	if len(spec.Elements) > 0 {
		elems, err := b.fields(spec.Elements)
		if err != nil {
			return nil, fmt.Errorf("elements: %w", err)
		}
		opts = append(opts, fieldgraph.Elements(elems...))
	}
	if len(spec.Candidates) > 0 {
		cands, err := b.fields(spec.Candidates)
		if err != nil {
			return nil, fmt.Errorf("candidates: %w", err)
		}
		opts = append(opts, fieldgraph.Candidates(cands...))
	}

	switch {
	case spec.Schema != "":
		obj, ok := b.objects[spec.Schema]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownSchema, spec.Schema)
		}
		opts = append(opts, fieldgraph.Nest(obj))
	case kind == fieldgraph.KindNested:
		return nil, fmt.Errorf("%w: nested field requires schema", ErrInvalidField)
	}

	for i, vs := range spec.Validate {
		v, err := validator(vs)
		if err != nil {
			return nil, fmt.Errorf("validate[%d]: %w", i, err)
		}
		opts = append(opts, fieldgraph.Validate(v))
	}

	return fieldgraph.NewField(spec.Name, kind, opts...), nil
}

func (b *builder) fields(specs []FieldSpec) ([]fieldgraph.Field, error) {
	out := make([]fieldgraph.Field, 0, len(specs))
	for i := range specs {
		f, err := b.field(&specs[i])
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func validator(vs ValidatorSpec) (fieldgraph.Validator, error) {
	var found []fieldgraph.Validator
	if vs.Length != nil {
		found = append(found, fieldgraph.Length{Min: vs.Length.Min, Max: vs.Length.Max, Equal: vs.Length.Equal})
	}
	if vs.Range != nil {
		found = append(found, fieldgraph.Range{
			Min:          vs.Range.Min,
			Max:          vs.Range.Max,
			MinInclusive: vs.Range.MinInclusive == nil || *vs.Range.MinInclusive,
			MaxInclusive: vs.Range.MaxInclusive == nil || *vs.Range.MaxInclusive,
		})
	}
	if vs.OneOf != nil {
		if len(vs.OneOf.Labels) > 0 && len(vs.OneOf.Labels) != len(vs.OneOf.Choices) {
			return nil, fmt.Errorf("%w: one_of has %d labels for %d choices",
				ErrInvalidField, len(vs.OneOf.Labels), len(vs.OneOf.Choices))
		}
		found = append(found, fieldgraph.OneOf{Choices: vs.OneOf.Choices, Labels: slices.Clone(vs.OneOf.Labels)})
	}
	if vs.Equal != nil {
		found = append(found, fieldgraph.Equal{Value: vs.Equal})
	}
	if vs.Regexp != "" {
		found = append(found, fieldgraph.Regexp{Pattern: vs.Regexp})
	}
	if vs.ContainsOnly != nil {
		found = append(found, fieldgraph.ContainsOnly{Choices: vs.ContainsOnly})
	}

	if len(found) != 1 {
		return nil, fmt.Errorf("%w: validator entry must name exactly one rule, got %d", ErrInvalidField, len(found))
	}
	return found[0], nil
}
