// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// role is the position of a JSON value inside a schema document.
type role int

const (
	roleValue      role = iota // keyword payload, copied verbatim
	roleSchema                 // a schema object (or boolean schema)
	roleSchemaMap              // name -> schema
	roleSchemaList             // list of schemas
)

func keywordRole(key string) role {
	switch key {
	case "properties", "patternProperties", "definitions", "$defs", "dependentSchemas":
		return roleSchemaMap
	case "allOf", "anyOf", "oneOf", "prefixItems":
		return roleSchemaList
	case "items", "additionalItems", "additionalProperties", "not", "contains",
		"propertyNames", "if", "then", "else":
		return roleSchema
	default:
		return roleValue
	}
}

// EnsureRequired rewrites a marshaled schema document so that every object
// schema that declares "properties" also declares "required", using an empty
// list when it has none. Key order and every other value are preserved.
func EnsureRequired(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := rewrite(dec, &buf, roleSchema); err != nil {
		return nil, fmt.Errorf("failed to rewrite schema: %w", err)
	}
	return buf.Bytes(), nil
}

func rewrite(dec *json.Decoder, buf *bytes.Buffer, r role) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := token.(type) {
	case json.Delim:
		if t == '[' {
			return rewriteArray(dec, buf, r)
		}
		return rewriteObject(dec, buf, r)
	case string:
		return writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	}
	return nil
}

func rewriteArray(dec *json.Decoder, buf *bytes.Buffer, r role) error {
	elem := roleValue
	// "items" may hold a positional list of schemas.
	if r == roleSchemaList || r == roleSchema {
		elem = roleSchema
	}

	buf.WriteByte('[')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := rewrite(dec, buf, elem); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

func rewriteObject(dec *json.Decoder, buf *bytes.Buffer, r role) error {
	var hasProperties, hasRequired bool

	buf.WriteByte('{')
	n := 0
	for ; dec.More(); n++ {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyToken.(string)
		if n > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')

		child := roleValue
		switch r {
		case roleSchema:
			child = keywordRole(key)
			hasProperties = hasProperties || key == "properties"
			hasRequired = hasRequired || key == "required"
		case roleSchemaMap:
			child = roleSchema
		}
		if err := rewrite(dec, buf, child); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	if r == roleSchema && hasProperties && !hasRequired {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"required":[]`)
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
