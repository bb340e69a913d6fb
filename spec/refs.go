package spec

import (
	"encoding/json"
	"strings"
)

const componentRefPrefix = "#/components/"

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// Refs returns every $ref value found anywhere in the document, including
// paths and responses.
func (d *Document) Refs() ([]string, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var api any
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, err
	}

	var refs []string
	getRefs(api, &refs)
	return refs, nil
}

// ComponentKey splits a local component reference such as
// "#/components/schemas/Account" into its component type and name, decoding
// JSON pointer escapes ("~1" for "/", "~0" for "~").
func ComponentKey(ref string) (string, string, bool) {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		return "", "", false
	}
	path := strings.Split(ref, "/")
	if len(path) != 4 {
		return "", "", false
	}
	return pointerUnescaper.Replace(path[2]), pointerUnescaper.Replace(path[3]), true
}

func getRefs(obj any, refs *[]string) {
	switch v := obj.(type) {
	case map[string]any:
		if ref, ok := v[refKey].(string); ok {
			*refs = append(*refs, ref)
		}
		for _, item := range v {
			getRefs(item, refs)
		}
	case []any:
		for _, item := range v {
			getRefs(item, refs)
		}
	}
}
