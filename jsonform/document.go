// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonform converts object-schema field graphs into JSON Schema
// Draft-07 documents and react-jsonschema-form UI schemas.
//
// A conversion walks a fieldgraph.Schema, maps every field to a fragment and
// collects nested schemas into a "definitions" section referenced with $ref.
// Each call is self-contained: a Converter carries configuration only and may
// be shared between goroutines.
package jsonform

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// Converter converts schemas. The zero value is ready to use.
type Converter struct {
	kinds          KindRegister
	sortProperties bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithKind registers a mapper for a custom field kind.
func WithKind(kind fieldgraph.Kind, m KindMapper) Option {
	return func(c *Converter) {
		if c.kinds == nil {
			c.kinds = make(KindRegister)
		}
		c.kinds.Register(kind, m)
	}
}

// WithKinds registers every mapper of r.
func WithKinds(r KindRegister) Option {
	return func(c *Converter) {
		for kind, m := range r {
			WithKind(kind, m)(c)
		}
	}
}

// WithSortedProperties renders properties and required names alphabetically
// instead of in declaration order.
func WithSortedProperties() Option {
	return func(c *Converter) { c.sortProperties = true }
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{kinds: make(KindRegister)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kinds returns the registered custom kinds.
func (c *Converter) Kinds() KindRegister {
	return maps.Clone(c.kinds)
}

// Document is a converted JSON Schema document.
type Document struct {
	// Schema is the root of the document. Callers must not share its nodes
	// with other documents.
	Schema *jschema.Schema
}

// Convert converts root with a default Converter.
func Convert(root fieldgraph.Schema) (*Document, error) {
	return New().Convert(root)
}

// Convert converts root into a Draft-07 document. Nested schemas become
// entries of "definitions"; the root itself is added there only when some
// field refers back to it. No partial document is returned on error.
func (c *Converter) Convert(root fieldgraph.Schema) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrIncomparableSchema)
	}

	cv := &conversion{conv: c}
	cv.reg = newRegistry(cv)

	rootDef, _, err := cv.reg.reserve(root, projection{})
	if err != nil {
		return nil, err
	}
	frag, err := cv.object(root, projection{})
	if err != nil {
		return nil, err
	}
	rootDef.fragment = frag

	defs := cv.reg.definitions(rootDef, frag)
	frag.Schema = jschema.Draft07
	if len(defs) > 0 {
		frag.Definitions = defs
	}
	return &Document{Schema: frag}, nil
}

// MarshalJSON renders the document. Object schemas always carry "required".
func (d *Document) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Schema)
	if err != nil {
		return nil, err
	}
	return jschema.EnsureRequired(raw)
}

// Encode renders the document in the given format.
func (d *Document) Encode(format jschema.Format) ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jschema.Encode(raw, format)
}

// Definition returns the named definition, or nil.
func (d *Document) Definition(name string) *jschema.Schema {
	return d.Schema.Definitions[name]
}

// Resolve prepares the document for validation, checking its structure and
// that every reference points at a definition.
func (d *Document) Resolve() (*jsonschema.Resolved, error) {
	return d.Schema.Resolve(nil)
}

// Check reports references that do not resolve inside the document and
// definitions that nothing refers to.
func (d *Document) Check() error {
	resolve := jschema.DefinitionResolver(d.Schema)
	for s := range jschema.Traverse(d.Schema, nil) {
		switch {
		case s.Ref == "" || s.Ref == "#":
		case !jschema.IsInternalRef(s.Ref):
			return fmt.Errorf("%w: external reference %q", ErrUnresolvedReference, s.Ref)
		case strings.HasPrefix(s.Ref, jschema.DefinitionsPrefix) && resolve(s.Ref) == nil:
			return fmt.Errorf("%w: %q", ErrUnresolvedReference, s.Ref)
		}
	}

	refs := jschema.References(d.Schema)
	for _, name := range slices.Sorted(maps.Keys(d.Schema.Definitions)) {
		if !slices.Contains(refs, name) {
			return fmt.Errorf("%w: %s", ErrUnusedDefinition, name)
		}
	}
	return nil
}

// Validate checks instance, a value decoded from JSON, against the document.
func (d *Document) Validate(instance any) error {
	resolved, err := d.Resolve()
	if err != nil {
		return err
	}
	return resolved.Validate(instance)
}
