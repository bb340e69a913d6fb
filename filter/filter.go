// Package filter prunes the schemas of an OpenAPI document to a selected
// subset and keeps the SObjectType discriminator enum consistent with what
// survives.
package filter

import (
	"encoding/json"
	"strings"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/oas-filter/spec"
)

const (
	// TypeSchemaName is the schema whose enum lists one value per SObject
	// schema name.
	TypeSchemaName = "SObjectType"

	sObjectMarker = "SObject"
)

// Result describes what Apply did to a document.
type Result struct {
	// Retained and Removed partition the original schema names. Retained is
	// in output order, Removed in original document order.
	Retained []string
	Removed  []string

	// Unknown lists keep-list names that are not schemas of the document.
	Unknown []string
	// UnmatchedEnum lists string values of the SObjectType enum that name no
	// schema of the original document.
	UnmatchedEnum []string
}

// Apply replaces the document's components.schemas with the schemas named in
// keep plus every schema that is not SObject-derived, then drops the removed
// names from the SObjectType enum. Documents without components.schemas are
// left untouched. Apply never fails: malformed definitions are simply not
// SObject-derived.
func Apply(doc *spec.Document, keep []string) *Result {
	res := &Result{}

	original := doc.Schemas()
	if original == nil {
		return res
	}

	retained := spec.NewSchemas()
	unknown := set.NewSet[string](0)
	for _, name := range keep {
		if _, ok := retained.Get(name); ok {
			continue
		}
		schema, ok := original.Get(name)
		if !ok {
			if !unknown.Contains(name) {
				unknown.Add(name)
				res.Unknown = append(res.Unknown, name)
			}
			continue
		}
		retained.Set(name, schema)
	}

	for pair := original.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := retained.Get(pair.Key); ok {
			continue
		}
		if IsSObjectDerived(pair.Value) {
			continue
		}
		retained.Set(pair.Key, pair.Value)
	}

	removed := set.NewSet[string](original.Len() - retained.Len())
	for pair := original.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := retained.Get(pair.Key); !ok {
			removed.Add(pair.Key)
			res.Removed = append(res.Removed, pair.Key)
		}
	}
	for pair := retained.Oldest(); pair != nil; pair = pair.Next() {
		res.Retained = append(res.Retained, pair.Key)
	}

	doc.SetSchemas(retained)

	typeSchema, ok := retained.Get(TypeSchemaName)
	if !ok {
		return res
	}
	values, ok := typeSchema.Enum()
	if !ok {
		return res
	}

	kept := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		name, isName := enumName(value)
		if isName {
			if removed.Contains(name) {
				continue
			}
			if _, ok := original.Get(name); !ok {
				res.UnmatchedEnum = append(res.UnmatchedEnum, name)
			}
		}
		kept = append(kept, value)
	}
	typeSchema.SetEnum(kept)
	return res
}

// IsSObjectDerived reports whether any allOf member of the schema references
// a path containing "SObject". Only direct members are inspected.
func IsSObjectDerived(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	for _, member := range schema.AllOf {
		if member.HasRef && strings.Contains(member.Ref, sObjectMarker) {
			return true
		}
	}
	return false
}

func enumName(value json.RawMessage) (string, bool) {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
