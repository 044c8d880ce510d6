// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"sort"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *Schema

// DefinitionResolver resolves "#/definitions/<name>" references against the
// definitions of root.
func DefinitionResolver(root *Schema) RefResolver {
	return func(ref string) *Schema {
		name, ok := RefName(ref)
		if !ok {
			return nil
		}
		return root.Definitions[name]
	}
}

// Traverse returns an iterator over all schemas in the tree, parents first.
// Each schema is yielded once. If resolver is provided, $ref links are
// followed to their targets.
func Traverse(schema *Schema, resolver RefResolver) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		walk(schema, resolver, yield, visited)
	}
}

func walk(schema *Schema, resolver RefResolver, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	if schema.Ref != "" && resolver != nil {
		if !walk(resolver(schema.Ref), resolver, yield, visited) {
			return false
		}
	}

	for _, child := range children(schema) {
		if !walk(child, resolver, yield, visited) {
			return false
		}
	}
	return true
}

// children lists the direct subschemas of s in a stable order. Map-valued
// keywords contribute their entries sorted by key.
func children(s *Schema) []*Schema {
	var out []*Schema
	out = appendSorted(out, s.Properties)
	out = appendSorted(out, s.PatternProperties)
	out = append(out, s.AdditionalProperties, s.PropertyNames)
	out = append(out, s.Items)
	out = append(out, s.ItemsArray...)
	out = append(out, s.PrefixItems...)
	out = append(out, s.AdditionalItems, s.Contains)
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.Not, s.If, s.Then, s.Else)
	out = appendSorted(out, s.DependencySchemas)
	out = appendSorted(out, s.Definitions)
	out = appendSorted(out, s.Defs)
	return out
}

func appendSorted(out []*Schema, m map[string]*Schema) []*Schema {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// References returns the definition names referenced anywhere under root,
// sorted and without duplicates.
func References(root *Schema) []string {
	seen := make(map[string]struct{})
	for s := range Traverse(root, nil) {
		if name, ok := RefName(s.Ref); ok {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
