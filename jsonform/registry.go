// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// maxNameSuffix bounds the numeric suffixes tried when disambiguating names.
const maxNameSuffix = 1000

// projection restricts the fields of a schema at a nesting site.
type projection struct {
	only    []string
	exclude []string
}

// signature is a canonical form of p; equal projections have equal signatures.
func (p projection) signature() string {
	if len(p.only) == 0 && len(p.exclude) == 0 {
		return ""
	}
	only := slices.Sorted(slices.Values(p.only))
	exclude := slices.Sorted(slices.Values(p.exclude))
	return "only=" + strings.Join(only, ",") + ";exclude=" + strings.Join(exclude, ",")
}

// apply filters fields, keeping declaration order.
func (p projection) apply(fields []fieldgraph.Field) ([]fieldgraph.Field, error) {
	if len(p.only) == 0 && len(p.exclude) == 0 {
		return fields, nil
	}
	names := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		names[f.Name()] = struct{}{}
	}
	for _, n := range slices.Concat(p.only, p.exclude) {
		if _, ok := names[n]; !ok {
			return nil, fmt.Errorf("%w: projection names unknown field %q", ErrMalformedMetadata, n)
		}
	}

	out := make([]fieldgraph.Field, 0, len(fields))
	for _, f := range fields {
		if len(p.only) > 0 && !slices.Contains(p.only, f.Name()) {
			continue
		}
		if slices.Contains(p.exclude, f.Name()) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// identity keys a definition: the schema reference plus the projection applied to it.
type identity struct {
	schema    fieldgraph.Schema
	signature string
}

type definition struct {
	name       string
	fragment   *jschema.Schema
	referenced bool
}

// registry assigns definition names to schema identities for one conversion.
// Each identity gets an integer token, its index in defs, on first visit.
type registry struct {
	conv   *conversion
	tokens map[identity]int
	names  map[string]int
	defs   []*definition
}

func newRegistry(cv *conversion) *registry {
	return &registry{
		conv:   cv,
		tokens: make(map[identity]int),
		names:  make(map[string]int),
	}
}

func identityOf(schema fieldgraph.Schema, p projection) (identity, error) {
	if t := reflect.TypeOf(schema); t == nil || !t.Comparable() {
		return identity{}, fmt.Errorf("%w: %T", ErrIncomparableSchema, schema)
	}
	return identity{schema: schema, signature: p.signature()}, nil
}

// reserve registers schema under a fresh name without walking it.
// The boolean reports whether the identity was already known.
func (r *registry) reserve(schema fieldgraph.Schema, p projection) (*definition, bool, error) {
	id, err := identityOf(schema, p)
	if err != nil {
		return nil, false, err
	}
	if token, ok := r.tokens[id]; ok {
		return r.defs[token], true, nil
	}

	name, err := r.uniqueName(schema.Name())
	if err != nil {
		return nil, false, err
	}
	token := len(r.defs)
	r.tokens[id] = token
	r.names[name] = token
	r.defs = append(r.defs, &definition{name: name})
	return r.defs[token], false, nil
}

func (r *registry) uniqueName(base string) (string, error) {
	if base == "" {
		base = "Schema"
	}
	if _, taken := r.names[base]; !taken {
		return base, nil
	}
	for i := 2; i <= maxNameSuffix; i++ {
		candidate := base + strconv.Itoa(i)
		if _, taken := r.names[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrAmbiguousDefinitionName, base)
}

// resolve returns the definition name of schema under p, walking the schema
// on first encounter. Repeated and cyclic encounters return immediately.
func (r *registry) resolve(schema fieldgraph.Schema, p projection) (string, error) {
	d, known, err := r.reserve(schema, p)
	if err != nil {
		return "", err
	}
	d.referenced = true
	if known {
		return d.name, nil
	}

	frag, err := r.conv.object(schema, p)
	if err != nil {
		return "", err
	}
	d.fragment = frag
	return d.name, nil
}

// definitions returns the referenced definitions keyed by name. The root
// definition, when referenced, is a copy of the root fragment.
func (r *registry) definitions(root *definition, rootFragment *jschema.Schema) map[string]*jschema.Schema {
	defs := make(map[string]*jschema.Schema)
	for _, d := range r.defs {
		if !d.referenced {
			continue
		}
		if d == root {
			defs[d.name] = rootFragment.CloneSchemas()
			continue
		}
		defs[d.name] = d.fragment
	}
	return defs
}
