// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"fmt"
	"sort"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// conversion holds the state of a single Convert call.
type conversion struct {
	conv *Converter
	reg  *registry
}

// PropertyKey returns the key under which f appears in its parent's
// properties: the metadata name override, then the data key, then the name.
func PropertyKey(f fieldgraph.Field) string {
	if name, ok := f.Metadata()[fieldgraph.NameKey].(string); ok && name != "" {
		return name
	}
	if k := f.DataKey(); k != "" {
		return k
	}
	return f.Name()
}

// object walks a schema into an object fragment.
func (cv *conversion) object(s fieldgraph.Schema, p projection) (*jschema.Schema, error) {
	fields, err := p.apply(s.Fields())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	out := &jschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jschema.Schema, len(fields)),
		Required:   []string{},
	}
	for _, f := range fields {
		key := PropertyKey(f)
		if _, dup := out.Properties[key]; dup {
			return nil, fieldError(s.Name(), f.Name(), fmt.Errorf("%w: duplicate property %q", ErrMalformedMetadata, key))
		}

		frag, err := cv.field(f)
		if err != nil {
			return nil, fieldError(s.Name(), f.Name(), err)
		}
		out.Properties[key] = frag
		out.PropertyOrder = append(out.PropertyOrder, key)
		if f.Required() {
			out.Required = append(out.Required, key)
		}
	}

	if cv.conv.sortProperties {
		out.PropertyOrder = nil
		sort.Strings(out.Required)
	}

	additional, err := additionalProperties(s.Metadata())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	out.AdditionalProperties = additional
	return out, nil
}

// additionalProperties reads the schema-level policy. Nil means unset.
func additionalProperties(meta map[string]any) (*jschema.Schema, error) {
	if v, ok := meta[fieldgraph.AdditionalPropertiesKey]; ok {
		allowed, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: %s must be a boolean, got %T", ErrMalformedMetadata, fieldgraph.AdditionalPropertiesKey, v)
		}
		return boolSchema(allowed), nil
	}

	v, ok := meta[fieldgraph.UnknownKey]
	if !ok {
		return nil, nil
	}
	switch v {
	case fieldgraph.UnknownRaise, fieldgraph.UnknownExclude:
		return boolSchema(false), nil
	case fieldgraph.UnknownInclude:
		return boolSchema(true), nil
	default:
		return nil, fmt.Errorf("%w: unknown value %v for %s", ErrMalformedMetadata, v, fieldgraph.UnknownKey)
	}
}

// boolSchema returns the schema that accepts everything (true) or nothing (false).
func boolSchema(accept bool) *jschema.Schema {
	if accept {
		return &jschema.Schema{}
	}
	return &jschema.Schema{Not: &jschema.Schema{}}
}
