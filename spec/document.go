package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	componentsKey = "components"
	schemasKey    = "schemas"

	indent = "  "
)

var ErrInvalidJSON = errors.New("invalid JSON")

// Schemas is the components.schemas mapping in document order.
type Schemas = orderedmap.OrderedMap[string, *Schema]

// NewSchemas returns an empty schema mapping.
func NewSchemas() *Schemas {
	return orderedmap.New[string, *Schema]()
}

// Document is an OpenAPI specification decoded just deep enough to reach
// components.schemas. Every other value is kept as raw JSON, and object keys
// keep their original order when the document is encoded again.
type Document struct {
	raw        json.RawMessage
	root       *orderedmap.OrderedMap[string, json.RawMessage]
	components *orderedmap.OrderedMap[string, json.RawMessage]
	schemas    *Schemas
}

// Parse decodes a specification document. Only malformed JSON is an error: a
// document whose root is not an object, or that has no components.schemas
// object, parses into a Document without schemas.
func Parse(data []byte) (*Document, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	doc := &Document{raw: raw}

	root, ok, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return doc, nil
	}
	doc.root = root

	componentsRaw, ok := root.Get(componentsKey)
	if !ok {
		return doc, nil
	}
	components, ok, err := decodeObject(componentsRaw)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode %s: %w", componentsKey, err)
	}
	if !ok {
		return doc, nil
	}
	doc.components = components

	schemasRaw, ok := components.Get(schemasKey)
	if !ok || !isObject(schemasRaw) {
		return doc, nil
	}
	schemas := NewSchemas()
	if err := schemas.UnmarshalJSON(schemasRaw); err != nil {
		return nil, fmt.Errorf("couldn't decode %s.%s: %w", componentsKey, schemasKey, err)
	}
	doc.schemas = schemas
	return doc, nil
}

// Schemas returns the components.schemas mapping, or nil when the document
// has none.
func (d *Document) Schemas() *Schemas {
	return d.schemas
}

// SetSchemas replaces the components.schemas mapping. It is a no-op on
// documents that had no mapping to begin with.
func (d *Document) SetSchemas(schemas *Schemas) {
	if d.schemas == nil || schemas == nil {
		return
	}
	d.schemas = schemas
}

func (d *Document) MarshalJSON() ([]byte, error) {
	if d.schemas == nil {
		return d.raw, nil
	}

	schemas, err := d.schemas.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("couldn't encode %s.%s: %w", componentsKey, schemasKey, err)
	}
	d.components.Set(schemasKey, schemas)

	components, err := d.components.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("couldn't encode %s: %w", componentsKey, err)
	}
	d.root.Set(componentsKey, components)

	return d.root.MarshalJSON()
}

// MarshalIndent encodes the document indented by two spaces, with a trailing
// newline.
func (d *Document) MarshalIndent() ([]byte, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// decodeObject decodes data into an ordered map when it is a JSON object. The
// second return value is false for any other kind of value.
func decodeObject(data []byte) (*orderedmap.OrderedMap[string, json.RawMessage], bool, error) {
	if !isObject(data) {
		return nil, false, nil
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := obj.UnmarshalJSON(data); err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
