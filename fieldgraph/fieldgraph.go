// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package fieldgraph defines the read-only view of an object-schema description
// that the jsonform engine consumes, plus an in-memory implementation of it.
//
// A host framework exposes its schemas through the Schema and Field interfaces.
// Kind-specific detail (element descriptors, nested schemas, enum choices) is
// published through small capability interfaces that the engine discovers by
// type assertion, so hosts only implement what their fields actually carry.
package fieldgraph

// Kind is the declared kind of a field. Values outside the predefined set are
// custom kinds and need a registered mapping or a type alias to be converted.
type Kind string

// Predefined field kinds.
const (
	KindString    Kind = "string"
	KindInteger   Kind = "integer"
	KindNumber    Kind = "number"
	KindFloat     Kind = "float"
	KindDecimal   Kind = "decimal"
	KindBoolean   Kind = "boolean"
	KindDate      Kind = "date"
	KindDateTime  Kind = "datetime"
	KindTime      Kind = "time"
	KindTimeDelta Kind = "timedelta"
	KindUUID      Kind = "uuid"
	KindEmail     Kind = "email"
	KindURL       Kind = "url"
	KindIP        Kind = "ip"
	KindRaw       Kind = "raw"
	KindEnum      Kind = "enum"
	KindList      Kind = "list"
	KindSet       Kind = "set"
	KindTuple     Kind = "tuple"
	KindDict      Kind = "dict"
	KindNested    Kind = "nested"
	KindUnion     Kind = "union"
	KindCustom    Kind = "custom"
)

// Reserved metadata keys.
const (
	// TypeAliasKey names a primitive target type that replaces kind dispatch.
	TypeAliasKey = "jsonschema_python_type"
	// NameKey overrides the property key of a field.
	NameKey = "name"
	// LegacyMetadataKey holds a nested metadata bag merged into the top level.
	LegacyMetadataKey = "metadata"
	// UIPrefix is the namespace of form-rendering hints.
	UIPrefix = "ui:"
	// UIOrderKey is the schema-level property ordering directive.
	UIOrderKey = "ui:order"
	// AdditionalPropertiesKey is the schema-level additionalProperties switch.
	AdditionalPropertiesKey = "additional_properties"
	// UnknownKey is the schema-level unknown-field policy.
	UnknownKey = "unknown"
)

// Unknown-field policies accepted under UnknownKey.
const (
	UnknownRaise   = "raise"
	UnknownExclude = "exclude"
	UnknownInclude = "include"
)

// Schema is a named collection of fields.
//
// Implementations must be comparable (typically pointers): the engine uses the
// Schema value itself as its identity when deduplicating definitions.
type Schema interface {
	Name() string
	Fields() []Field
	Metadata() map[string]any
}

// Field is a single field of a Schema.
type Field interface {
	Name() string
	Kind() Kind
	// Required reports whether the field must be present on load.
	Required() bool
	Nullable() bool
	DumpOnly() bool
	// DataKey is the external key of the field; empty means Name.
	DataKey() string
	// Default returns the static default value. Computed defaults report false.
	Default() (any, bool)
	Metadata() map[string]any
	Validators() []Validator
}

// Container is implemented by list and set fields that describe their elements.
type Container interface {
	Inner() Field
}

// Tuple is implemented by tuple fields with positional element descriptors.
type Tuple interface {
	Elements() []Field
}

// Mapping is implemented by dict fields that describe their values.
type Mapping interface {
	Values() Field
}

// Nesting is implemented by fields that embed another schema.
type Nesting interface {
	Nested() Schema
	Many() bool
	Only() []string
	Exclude() []string
}

// Enumeration is implemented by enum fields.
type Enumeration interface {
	Choices() []any
}

// Union is implemented by fields accepting one of several alternatives.
type Union interface {
	Candidates() []Field
}

// CustomMapper lets a field supply its own JSON Schema fragment.
//
// Deprecated: register the field kind on the converter or set TypeAliasKey in
// the field metadata instead.
type CustomMapper interface {
	JSONSchemaMapping() map[string]any
}
