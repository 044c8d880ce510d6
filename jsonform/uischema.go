// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// UISchema is a react-jsonschema-form UI schema: property keys map to hint
// objects, and "ui:"-prefixed keys hold hints for the enclosing level.
type UISchema map[string]any

// Encode renders the UI schema in the given format.
func (u UISchema) Encode(format jschema.Format) ([]byte, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	return jschema.Encode(raw, format)
}

// ConvertUI builds the UI schema of root with a default Converter.
func ConvertUI(root fieldgraph.Schema) (UISchema, error) {
	return New().ConvertUI(root)
}

// ConvertUI builds the UI schema of root. Nested schemas are inlined at each
// nesting site; a schema nested inside itself yields an empty fragment at
// the point of recursion.
func (c *Converter) ConvertUI(root fieldgraph.Schema) (UISchema, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrIncomparableSchema)
	}
	w := &uiWalker{active: make(map[fieldgraph.Schema]bool)}
	out, err := w.object(root, projection{})
	if err != nil {
		return nil, err
	}
	return UISchema(out), nil
}

type uiWalker struct {
	// active holds the schemas on the current nesting path.
	active map[fieldgraph.Schema]bool
}

func (w *uiWalker) object(s fieldgraph.Schema, p projection) (map[string]any, error) {
	if _, err := identityOf(s, p); err != nil {
		return nil, err
	}
	fields, err := p.apply(s.Fields())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	w.active[s] = true
	defer delete(w.active, s)

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		hints, err := w.field(f)
		if err != nil {
			return nil, fieldError(s.Name(), f.Name(), err)
		}
		out[PropertyKey(f)] = hints
	}

	for k, v := range s.Metadata() {
		if !strings.HasPrefix(k, fieldgraph.UIPrefix) {
			continue
		}
		if k == fieldgraph.UIOrderKey {
			order, err := uiOrder(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Name(), err)
			}
			out[k] = order
			continue
		}
		hint, err := cloneHint(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %s: %v", s.Name(), ErrMalformedMetadata, k, err)
		}
		out[k] = hint
	}
	return out, nil
}

func (w *uiWalker) field(f fieldgraph.Field) (map[string]any, error) {
	hints, err := uiHints(f.Metadata())
	if err != nil {
		return nil, err
	}

	if overridden(f) {
		return hints, nil
	}

	switch f.Kind() {
	case fieldgraph.KindNested:
		n, ok := f.(fieldgraph.Nesting)
		if !ok || n.Nested() == nil {
			return nil, fmt.Errorf("%w: nested field without a schema", ErrUnsupportedFieldKind)
		}
		inner, err := w.nested(n.Nested(), projection{only: n.Only(), exclude: n.Exclude()})
		if err != nil {
			return nil, err
		}
		if n.Many() {
			hints["items"] = inner
			return hints, nil
		}
		for k, v := range inner {
			if _, set := hints[k]; !set {
				hints[k] = v
			}
		}
	case fieldgraph.KindList, fieldgraph.KindSet:
		c, ok := f.(fieldgraph.Container)
		if !ok || c.Inner() == nil || c.Inner().Kind() != fieldgraph.KindNested {
			break
		}
		items, err := w.field(c.Inner())
		if err != nil {
			return nil, err
		}
		hints["items"] = items
	}
	return hints, nil
}

func (w *uiWalker) nested(s fieldgraph.Schema, p projection) (map[string]any, error) {
	if _, err := identityOf(s, p); err != nil {
		return nil, err
	}
	if w.active[s] {
		return map[string]any{}, nil
	}
	return w.object(s, p)
}

// uiHints returns copies of the "ui:"-prefixed entries of meta, including
// those of the legacy nested bag.
func uiHints(meta map[string]any) (map[string]any, error) {
	out := make(map[string]any)
	for k, v := range passthrough(meta) {
		if !strings.HasPrefix(k, fieldgraph.UIPrefix) {
			continue
		}
		hint, err := cloneHint(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, k, err)
		}
		out[k] = hint
	}
	return out, nil
}

// cloneHint copies v so that the result shares no maps or slices with the
// host metadata. Values other than decoded JSON go through a JSON round trip.
func cloneHint(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			c, err := cloneHint(e)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := cloneHint(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case []string:
		return slices.Clone(t), nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer, reflect.Struct:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	default:
		return v, nil
	}
}

func uiOrder(v any) ([]string, error) {
	switch order := v.(type) {
	case []string:
		return append([]string(nil), order...), nil
	case []any:
		out := make([]string, 0, len(order))
		for _, item := range order {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s entries must be strings, got %T", ErrMalformedMetadata, fieldgraph.UIOrderKey, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrMalformedMetadata, fieldgraph.UIOrderKey, v)
	}
}
