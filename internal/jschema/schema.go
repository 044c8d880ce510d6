// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides JSON Schema encoding and traversal utilities.
package jschema

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is the fragment model shared by every package of the module.
type Schema = jsonschema.Schema

// Draft07 is the meta-schema URI of generated documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// DefinitionsPrefix is the pointer prefix of references into the definitions map.
const DefinitionsPrefix = "#/definitions/"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return jsonschema.Ptr(v)
}

// Format is a serialization format for schema documents.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Extension returns the file extension of the format, including the dot.
func (f Format) Extension() string {
	if f == YAML {
		return ".yaml"
	}
	return ".json"
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, YAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
	}
}

// IsInternalRef returns true if ref points inside the current document.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// DefinitionRef returns the reference pointing at a named definition.
// The name is escaped as a JSON Pointer token (RFC 6901).
func DefinitionRef(name string) string {
	return DefinitionsPrefix + pointerEscaper.Replace(name)
}

// RefName extracts the definition name from a "#/definitions/<name>" reference.
// References that point below a definition are not names.
func RefName(ref string) (string, bool) {
	token, ok := strings.CutPrefix(ref, DefinitionsPrefix)
	if !ok || token == "" || strings.Contains(token, "/") {
		return "", false
	}
	return pointerUnescaper.Replace(token), true
}
