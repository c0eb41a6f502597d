package flatmap

import "strings"

// Unflatten rebuilds a nested document from a flat map.
// A key that is a strict prefix of another key loses its value to the object
// holding the longer key.
func Unflatten(flat FlatMap) map[string]any {
	root := make(map[string]any)

	for _, key := range flat.Keys() {
		parts := strings.Split(key, ".")
		cur := root
		for _, seg := range parts[:len(parts)-1] {
			next, ok := cur[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[seg] = next
			}
			cur = next
		}

		last := parts[len(parts)-1]
		if _, isObj := cur[last].(map[string]any); isObj {
			continue
		}
		cur[last] = flat[key]
	}

	return root
}
