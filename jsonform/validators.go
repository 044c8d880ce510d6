// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"fmt"
	"slices"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

// enumNamesKey carries the display labels of a OneOf validator.
const enumNamesKey = "enumNames"

// applyValidators refines s with the keywords implied by vs, in order.
// Validators of unknown types are skipped.
func applyValidators(s *jschema.Schema, vs []fieldgraph.Validator) error {
	for _, v := range vs {
		var err error
		switch v := v.(type) {
		case fieldgraph.Length:
			err = applyLength(s, v)
		case *fieldgraph.Length:
			err = applyLength(s, *v)
		case fieldgraph.Range:
			applyRange(s, v)
		case *fieldgraph.Range:
			applyRange(s, *v)
		case fieldgraph.OneOf:
			applyOneOf(s, v)
		case *fieldgraph.OneOf:
			applyOneOf(s, *v)
		case fieldgraph.Equal:
			s.Enum = []any{v.Value}
		case *fieldgraph.Equal:
			s.Enum = []any{v.Value}
		case fieldgraph.Regexp:
			s.Pattern = v.Pattern
		case *fieldgraph.Regexp:
			s.Pattern = v.Pattern
		case fieldgraph.ContainsOnly:
			err = applyContainsOnly(s, v)
		case *fieldgraph.ContainsOnly:
			err = applyContainsOnly(s, *v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyLength(s *jschema.Schema, v fieldgraph.Length) error {
	lo, hi := v.Min, v.Max
	if v.Equal != nil {
		lo, hi = v.Equal, v.Equal
	}

	switch {
	case hasType(s, "string"):
		if lo != nil {
			s.MinLength = jschema.Ptr(*lo)
		}
		if hi != nil {
			s.MaxLength = jschema.Ptr(*hi)
		}
	case hasType(s, "array"):
		if lo != nil {
			s.MinItems = jschema.Ptr(*lo)
		}
		if hi != nil {
			s.MaxItems = jschema.Ptr(*hi)
		}
	default:
		return fmt.Errorf("%w: length applies to strings and arrays only", ErrInvalidValidator)
	}
	return nil
}

func applyRange(s *jschema.Schema, v fieldgraph.Range) {
	if !hasType(s, "number") && !hasType(s, "integer") {
		return
	}
	if v.Min != nil {
		if v.MinInclusive {
			s.Minimum = jschema.Ptr(*v.Min)
		} else {
			s.ExclusiveMinimum = jschema.Ptr(*v.Min)
		}
	}
	if v.Max != nil {
		if v.MaxInclusive {
			s.Maximum = jschema.Ptr(*v.Max)
		} else {
			s.ExclusiveMaximum = jschema.Ptr(*v.Max)
		}
	}
}

func applyOneOf(s *jschema.Schema, v fieldgraph.OneOf) {
	s.Enum = slices.Clone(v.Choices)
	if len(v.Labels) == 0 {
		return
	}
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}
	s.Extra[enumNamesKey] = slices.Clone(v.Labels)
}

func applyContainsOnly(s *jschema.Schema, v fieldgraph.ContainsOnly) error {
	if !hasType(s, "array") || s.ItemsArray != nil {
		return fmt.Errorf("%w: contains-only applies to homogeneous arrays only", ErrInvalidValidator)
	}
	if s.Items == nil {
		s.Items = &jschema.Schema{}
	}
	s.Items.Enum = slices.Clone(v.Choices)
	return nil
}
