// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// KindMapper builds the base fragment for a field of a registered kind.
// It must return a new fragment on every call.
type KindMapper func(f fieldgraph.Field) (*jschema.Schema, error)

// KindRegister maps custom field kinds to their mappers.
type KindRegister map[fieldgraph.Kind]KindMapper

// Register adds a mapper for kind, replacing any previous one.
func (r KindRegister) Register(kind fieldgraph.Kind, m KindMapper) {
	r[kind] = m
}

// Fragment returns a KindMapper producing a copy of the given fragment.
func Fragment(m map[string]any) KindMapper {
	return func(fieldgraph.Field) (*jschema.Schema, error) {
		return decodeFragment(m)
	}
}

func typed(typ, format string) func() *jschema.Schema {
	return func() *jschema.Schema {
		return &jschema.Schema{Type: typ, Format: format}
	}
}

var builtinKinds = map[fieldgraph.Kind]func() *jschema.Schema{
	fieldgraph.KindString:    typed("string", ""),
	fieldgraph.KindEmail:     typed("string", ""),
	fieldgraph.KindURL:       typed("string", ""),
	fieldgraph.KindIP:        typed("string", ""),
	fieldgraph.KindRaw:       typed("string", ""),
	fieldgraph.KindTimeDelta: typed("string", ""),
	fieldgraph.KindInteger:   typed("number", "integer"),
	fieldgraph.KindNumber:    typed("number", "number"),
	fieldgraph.KindFloat:     typed("number", "float"),
	fieldgraph.KindDecimal:   typed("number", "decimal"),
	fieldgraph.KindBoolean:   typed("boolean", ""),
	fieldgraph.KindDate:      typed("string", "date"),
	fieldgraph.KindDateTime:  typed("string", "date-time"),
	fieldgraph.KindTime:      typed("string", "time"),
	fieldgraph.KindUUID:      typed("string", "uuid"),
	fieldgraph.KindEnum:      typed("string", ""),
	fieldgraph.KindList:      typed("array", ""),
	fieldgraph.KindSet:       typed("array", ""),
	fieldgraph.KindTuple:     typed("array", ""),
	fieldgraph.KindDict:      typed("object", ""),
}

// aliasKinds maps the values accepted under fieldgraph.TypeAliasKey to the
// kind whose built-in fragment they stand for.
var aliasKinds = map[string]fieldgraph.Kind{
	"str":       fieldgraph.KindString,
	"bytes":     fieldgraph.KindString,
	"int":       fieldgraph.KindInteger,
	"float":     fieldgraph.KindFloat,
	"decimal":   fieldgraph.KindDecimal,
	"bool":      fieldgraph.KindBoolean,
	"list":      fieldgraph.KindList,
	"set":       fieldgraph.KindSet,
	"tuple":     fieldgraph.KindTuple,
	"dict":      fieldgraph.KindDict,
	"date":      fieldgraph.KindDate,
	"datetime":  fieldgraph.KindDateTime,
	"time":      fieldgraph.KindTime,
	"timedelta": fieldgraph.KindTimeDelta,
	"uuid":      fieldgraph.KindUUID,
}

// IsBuiltinKind reports whether kind has a built-in mapping.
func IsBuiltinKind(kind fieldgraph.Kind) bool {
	_, ok := builtinKinds[kind]
	return ok || kind == fieldgraph.KindNested || kind == fieldgraph.KindUnion
}

// customMapping returns the deprecated self-describing mapping of f, if any.
func customMapping(f fieldgraph.Field) map[string]any {
	if cm, ok := f.(fieldgraph.CustomMapper); ok {
		return cm.JSONSchemaMapping()
	}
	return nil
}

func typeAlias(f fieldgraph.Field) (any, bool) {
	v, ok := f.Metadata()[fieldgraph.TypeAliasKey]
	return v, ok
}

// overridden reports whether f bypasses kind dispatch.
func overridden(f fieldgraph.Field) bool {
	if customMapping(f) != nil {
		return true
	}
	_, ok := typeAlias(f)
	return ok
}

// mapType returns the base fragment of f. Precedence: the deprecated
// self-describing mapping, the type alias, registered kinds, built-in kinds.
func (c *Converter) mapType(f fieldgraph.Field) (*jschema.Schema, error) {
	if m := customMapping(f); m != nil {
		return decodeFragment(m)
	}

	if alias, ok := typeAlias(f); ok {
		name, isString := alias.(string)
		if !isString {
			return nil, fmt.Errorf("%w: %s must name a type, got %T", ErrMalformedMetadata, fieldgraph.TypeAliasKey, alias)
		}
		kind, known := aliasKinds[name]
		if !known {
			return nil, fmt.Errorf("%w: %s %q is not a supported type", ErrMalformedMetadata, fieldgraph.TypeAliasKey, name)
		}
		return builtinKinds[kind](), nil
	}

	if m, ok := c.kinds[f.Kind()]; ok {
		s, err := m(f)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: mapper for kind %q returned no fragment", ErrUnsupportedFieldKind, f.Kind())
		}
		return s.CloneSchemas(), nil
	}

	if build, ok := builtinKinds[f.Kind()]; ok {
		return build(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFieldKind, f.Kind())
}

// decodeFragment turns a generic JSON Schema mapping into a new fragment.
func decodeFragment(m map[string]any) (*jschema.Schema, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	s := &jschema.Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return s, nil
}

func hasType(s *jschema.Schema, typ string) bool {
	return s.Type == typ || slices.Contains(s.Types, typ)
}
