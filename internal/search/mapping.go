package search

// Mapping is the decoded body of a get-mapping call, keyed by index name.
type Mapping map[string]any

// Properties returns the top-level field properties of index. Both typed
// (mappings.<docType>.properties) and typeless (mappings.properties) layouts are read.
// A nil result means the index is not part of the mapping.
func (m Mapping) Properties(index, docType string) map[string]any {
	idx, ok := m[index].(map[string]any)
	if !ok {
		return nil
	}
	mappings, ok := idx["mappings"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if props, ok := mappings["properties"].(map[string]any); ok {
		return props
	}
	if typed, ok := mappings[docType].(map[string]any); ok {
		if props, ok := typed["properties"].(map[string]any); ok {
			return props
		}
	}
	return map[string]any{}
}

// ObjectFields returns the sub-field names of an object field, minus the excluded names.
func ObjectFields(props map[string]any, field string, exclude ...string) []string {
	obj, ok := props[field].(map[string]any)
	if !ok {
		return nil
	}
	sub, ok := obj["properties"].(map[string]any)
	if !ok {
		return nil
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	names := make([]string, 0, len(sub))
	for name := range sub {
		if !skip[name] {
			names = append(names, name)
		}
	}
	return names
}
