// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fieldgraph

// Validator is a validation rule attached to a field. The engine translates the
// rule types declared in this package and ignores any other implementation.
type Validator interface {
	ValidatorName() string
}

// Length bounds the length of a string or the size of a collection.
// Equal, when set, overrides Min and Max.
type Length struct {
	Min   *int
	Max   *int
	Equal *int
}

// Range bounds a numeric value.
type Range struct {
	Min          *float64
	Max          *float64
	MinInclusive bool
	MaxInclusive bool
}

// OneOf restricts a value to a fixed set. Labels, when present, are the
// human-readable names of Choices, position for position.
type OneOf struct {
	Choices []any
	Labels  []string
}

// Equal restricts a value to a single constant.
type Equal struct {
	Value any
}

// Regexp requires a string to match Pattern.
type Regexp struct {
	Pattern string
}

// ContainsOnly restricts the elements of a collection to Choices.
type ContainsOnly struct {
	Choices []any
}

func (Length) ValidatorName() string       { return "length" }
func (Range) ValidatorName() string        { return "range" }
func (OneOf) ValidatorName() string        { return "one_of" }
func (Equal) ValidatorName() string        { return "equal" }
func (Regexp) ValidatorName() string       { return "regexp" }
func (ContainsOnly) ValidatorName() string { return "contains_only" }

// Inclusive returns a Range with both bounds inclusive.
func Inclusive(lo, hi *float64) Range {
	return Range{Min: lo, Max: hi, MinInclusive: true, MaxInclusive: true}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
