package filter

import (
	"slices"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/oas-filter/spec"
)

const schemasComponent = "schemas"

// DanglingRefs returns the sorted, distinct schema references anywhere in the
// document whose target is not in components.schemas. References to other
// component types and external references are ignored.
func DanglingRefs(doc *spec.Document) ([]string, error) {
	schemas := doc.Schemas()
	if schemas == nil {
		return nil, nil
	}

	refs, err := doc.Refs()
	if err != nil {
		return nil, err
	}

	dangling := set.NewSet[string](0)
	for _, ref := range refs {
		componentType, name, ok := spec.ComponentKey(ref)
		if !ok || componentType != schemasComponent {
			continue
		}
		if _, exists := schemas.Get(name); !exists {
			dangling.Add(ref)
		}
	}

	list := dangling.List()
	slices.Sort(list)
	return list, nil
}
