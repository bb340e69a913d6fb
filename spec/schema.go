package spec

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	allOfKey = "allOf"
	refKey   = "$ref"
	enumKey  = "enum"
)

// Member is one item of a schema's allOf composition. HasRef is false when the
// item is not an object or carries no string $ref.
type Member struct {
	Ref    string
	HasRef bool
}

// Schema is a named definition under components.schemas. Apart from allOf and
// enum the definition is kept as raw JSON and re-emitted untouched.
type Schema struct {
	// AllOf holds the members of the allOf composition, if the definition has
	// one that is an array.
	AllOf []Member

	raw    json.RawMessage
	fields *orderedmap.OrderedMap[string, json.RawMessage]

	enum      []json.RawMessage
	hasEnum   bool
	enumDirty bool
}

// NewSchema decodes a single schema definition.
func NewSchema(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	s.raw = append(json.RawMessage(nil), data...)
	s.fields = nil
	s.AllOf = nil
	s.enum = nil
	s.hasEnum = false
	s.enumDirty = false

	fields, ok, err := decodeObject(data)
	if err != nil || !ok {
		return err
	}
	s.fields = fields

	if raw, ok := fields.Get(allOfKey); ok {
		s.AllOf = decodeMembers(raw)
	}
	if raw, ok := fields.Get(enumKey); ok {
		var values []json.RawMessage
		if json.Unmarshal(raw, &values) == nil && values != nil {
			s.enum = values
			s.hasEnum = true
		}
	}
	return nil
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("{}"), nil
	}
	if s.fields == nil || !s.enumDirty {
		return s.raw, nil
	}

	enum, err := json.Marshal(s.enum)
	if err != nil {
		return nil, err
	}
	s.fields.Set(enumKey, enum)
	return s.fields.MarshalJSON()
}

// Enum returns the values of the definition's enum array. The second return
// value is false when there is no enum, or it is not an array.
func (s *Schema) Enum() ([]json.RawMessage, bool) {
	if s == nil || !s.hasEnum {
		return nil, false
	}
	return s.enum, true
}

// SetEnum replaces the enum values. It is a no-op on definitions without an
// enum array.
func (s *Schema) SetEnum(values []json.RawMessage) {
	if s == nil || !s.hasEnum {
		return
	}
	if values == nil {
		values = []json.RawMessage{}
	}
	s.enum = values
	s.enumDirty = true
}

func decodeMembers(raw json.RawMessage) []Member {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	members := make([]Member, 0, len(items))
	for _, item := range items {
		var m Member
		var obj map[string]json.RawMessage
		if json.Unmarshal(item, &obj) == nil {
			var ref any
			if json.Unmarshal(obj[refKey], &ref) == nil {
				m.Ref, m.HasRef = ref.(string)
			}
		}
		members = append(members, m)
	}
	return members
}
