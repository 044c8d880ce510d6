// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFieldKind is returned when no mapping applies to a field.
	ErrUnsupportedFieldKind = errors.New("unsupported field kind")

	// ErrAmbiguousDefinitionName is returned when distinct schemas cannot be given distinct definition names.
	ErrAmbiguousDefinitionName = errors.New("ambiguous definition name")

	// ErrMalformedMetadata is returned for metadata values the converter cannot interpret.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrInvalidValidator is returned when a validator does not apply to the field's type.
	ErrInvalidValidator = errors.New("invalid validator")

	// ErrIncomparableSchema is returned when a schema value cannot serve as an identity key.
	ErrIncomparableSchema = errors.New("schema is not comparable")

	// ErrUnresolvedReference is returned by Check for a $ref without a target in the document.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrUnusedDefinition is returned by Check for a definition no $ref points at.
	ErrUnusedDefinition = errors.New("unused definition")
)

// FieldError reports the schema and field at which a conversion failed.
type FieldError struct {
	Schema string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Schema, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// fieldError attaches schema and field context to err unless a deeper field
// already did.
func fieldError(schema, field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Schema: schema, Field: field, Err: err}
}
