// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// field resolves a single field to a fragment.
func (cv *conversion) field(f fieldgraph.Field) (*jschema.Schema, error) {
	var (
		s   *jschema.Schema
		err error
	)
	switch {
	case overridden(f):
		s, err = cv.typedField(f)
	case f.Kind() == fieldgraph.KindNested:
		s, err = cv.nestedField(f)
	case f.Kind() == fieldgraph.KindUnion:
		s, err = cv.unionField(f)
	default:
		s, err = cv.typedField(f)
	}
	if err != nil {
		return nil, err
	}
	if err := applyValidators(s, f.Validators()); err != nil {
		return nil, err
	}
	return s, nil
}

// typedField resolves fields that go through the type mapper.
func (cv *conversion) typedField(f fieldgraph.Field) (*jschema.Schema, error) {
	s, err := cv.conv.mapType(f)
	if err != nil {
		return nil, err
	}

	s.Title = f.Name()
	if f.DumpOnly() {
		s.ReadOnly = true
	}
	if err := setDefault(s, f); err != nil {
		return nil, err
	}
	if e, ok := f.(fieldgraph.Enumeration); ok && f.Kind() == fieldgraph.KindEnum {
		if choices := e.Choices(); len(choices) > 0 {
			s.Enum = slices.Clone(choices)
		}
	}
	if f.Nullable() {
		makeNullable(s)
	}

	s, err = overlay(s, passthrough(f.Metadata(), fieldgraph.TypeAliasKey))
	if err != nil {
		return nil, err
	}

	switch {
	case hasType(s, "array") && s.Items == nil && s.ItemsArray == nil:
		if err := cv.attachItems(s, f); err != nil {
			return nil, err
		}
	case hasType(s, "object") && s.Properties == nil && s.AdditionalProperties == nil:
		if err := cv.attachValues(s, f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (cv *conversion) attachItems(s *jschema.Schema, f fieldgraph.Field) error {
	if t, ok := f.(fieldgraph.Tuple); ok {
		if elems := t.Elements(); len(elems) > 0 {
			s.ItemsArray = make([]*jschema.Schema, 0, len(elems))
			for _, el := range elems {
				item, err := cv.field(el)
				if err != nil {
					return err
				}
				s.ItemsArray = append(s.ItemsArray, item)
			}
			return nil
		}
	}
	if c, ok := f.(fieldgraph.Container); ok {
		if inner := c.Inner(); inner != nil {
			item, err := cv.field(inner)
			if err != nil {
				return err
			}
			s.Items = item
			return nil
		}
	}
	s.Items = &jschema.Schema{}
	return nil
}

func (cv *conversion) attachValues(s *jschema.Schema, f fieldgraph.Field) error {
	if m, ok := f.(fieldgraph.Mapping); ok {
		if values := m.Values(); values != nil {
			v, err := cv.field(values)
			if err != nil {
				return err
			}
			s.AdditionalProperties = v
			return nil
		}
	}
	s.AdditionalProperties = &jschema.Schema{}
	return nil
}

// nestedField resolves a reference to another schema's definition.
func (cv *conversion) nestedField(f fieldgraph.Field) (*jschema.Schema, error) {
	n, ok := f.(fieldgraph.Nesting)
	if !ok || n.Nested() == nil {
		return nil, fmt.Errorf("%w: nested field without a schema", ErrUnsupportedFieldKind)
	}

	proj := projection{only: n.Only(), exclude: n.Exclude()}
	name, err := cv.reg.resolve(n.Nested(), proj)
	if err != nil {
		return nil, err
	}

	s := &jschema.Schema{Ref: jschema.DefinitionRef(name)}
	if v, ok := f.Default(); ok {
		dumped, err := nestedDefault(n.Nested(), proj, v)
		if err != nil {
			return nil, err
		}
		if s.Default, err = json.Marshal(dumped); err != nil {
			return nil, fmt.Errorf("%w: default: %v", ErrMalformedMetadata, err)
		}
	}
	s, err = overlay(s, passthrough(f.Metadata()))
	if err != nil {
		return nil, err
	}

	if n.Many() {
		arr := &jschema.Schema{Type: "array", Items: s}
		if f.Nullable() {
			makeNullable(arr)
		}
		return arr, nil
	}
	if f.Nullable() {
		return &jschema.Schema{AnyOf: []*jschema.Schema{s, {Type: "null"}}}, nil
	}
	return s, nil
}

func (cv *conversion) unionField(f fieldgraph.Field) (*jschema.Schema, error) {
	u, ok := f.(fieldgraph.Union)
	if !ok || len(u.Candidates()) == 0 {
		return nil, fmt.Errorf("%w: union field without candidates", ErrUnsupportedFieldKind)
	}
	s := &jschema.Schema{}
	for _, c := range u.Candidates() {
		frag, err := cv.field(c)
		if err != nil {
			return nil, err
		}
		s.AnyOf = append(s.AnyOf, frag)
	}
	return s, nil
}

func setDefault(s *jschema.Schema, f fieldgraph.Field) error {
	v, ok := f.Default()
	if !ok {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: default: %v", ErrMalformedMetadata, err)
	}
	s.Default = raw
	return nil
}

// nestedDefault serializes the default of a nested field the way the nested
// schema would: only the fields of the projection are kept, keyed by their
// property keys. Values that are not decoded objects or lists are kept as is.
func nestedDefault(schema fieldgraph.Schema, p projection, v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		fields, err := p.apply(schema.Fields())
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			val, ok := t[f.Name()]
			if !ok {
				continue
			}
			if n, nests := f.(fieldgraph.Nesting); nests && f.Kind() == fieldgraph.KindNested && n.Nested() != nil {
				val, err = nestedDefault(n.Nested(), projection{only: n.Only(), exclude: n.Exclude()}, val)
				if err != nil {
					return nil, err
				}
			}
			out[PropertyKey(f)] = val
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			dumped, err := nestedDefault(schema, p, e)
			if err != nil {
				return nil, err
			}
			out[i] = dumped
		}
		return out, nil
	}
	return v, nil
}

func makeNullable(s *jschema.Schema) {
	switch {
	case s.Type != "":
		s.Types = []string{s.Type, "null"}
		s.Type = ""
	case len(s.Types) > 0 && !slices.Contains(s.Types, "null"):
		s.Types = append(s.Types, "null")
	}
}

// passthrough collects the metadata entries copied into a field fragment.
// Entries of the legacy nested bag come first and are shadowed by top-level ones.
func passthrough(meta map[string]any, skip ...string) map[string]any {
	out := make(map[string]any, len(meta))
	if legacy, ok := meta[fieldgraph.LegacyMetadataKey].(map[string]any); ok {
		for k, v := range legacy {
			out[k] = v
		}
	}
	for k, v := range meta {
		out[k] = v
	}
	delete(out, fieldgraph.LegacyMetadataKey)
	delete(out, fieldgraph.NameKey)
	for _, k := range skip {
		delete(out, k)
	}
	return out
}

// overlay returns a new fragment holding s with entries merged on top.
// Known JSON Schema keywords land in their typed fields, anything else in Extra.
func overlay(s *jschema.Schema, entries map[string]any) (*jschema.Schema, error) {
	if len(entries) == 0 {
		return s, nil
	}

	base, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage)
	if strings.TrimSpace(string(base)) != "true" {
		if err := json.Unmarshal(base, &merged); err != nil {
			return nil, err
		}
	}
	for k, v := range entries {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, k, err)
		}
		merged[k] = raw
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	out := &jschema.Schema{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	out.PropertyOrder = s.PropertyOrder
	return out, nil
}
