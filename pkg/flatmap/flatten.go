package flatmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// FlatMap maps dot-separated keys to translated strings for one locale and namespace.
type FlatMap map[string]string

// Keys returns the keys in ascending byte order.
func (m FlatMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NonString describes a leaf that is not a string.
// Key is empty when the document root itself is not an object.
type NonString struct {
	Value     any    `json:"-"`
	Key       string `json:"key"`
	ValueType string `json:"valueType"`
}

// Result is the outcome of flattening one document.
type Result struct {
	Flat      FlatMap
	NonString []NonString
}

type frame struct {
	node map[string]any
	path string
}

// Flatten walks root and collects string leaves under their dotted path.
// NonString entries are sorted by key.
//
// Keys are visited in a fixed order, so when a literal dotted key and a nested
// path produce the same dotted key the winner is the same on every run:
// {"a":{"b.c":"x"},"a.b":{"c":"y"}} always yields "a.b.c" = "y".
func Flatten(root any) Result {
	res := Result{Flat: make(FlatMap)}

	obj, ok := root.(map[string]any)
	if !ok {
		if root != nil {
			res.NonString = append(res.NonString, NonString{Key: "", ValueType: valueType(root), Value: root})
		}
		return res
	}

	stack := []frame{{node: obj}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		keys := slices.Sorted(maps.Keys(top.node))
		// Children are pushed in reverse so they pop in key order.
		for _, key := range slices.Backward(keys) {
			value := top.node[key]
			path := key
			if top.path != "" {
				path = top.path + "." + key
			}

			switch v := value.(type) {
			case nil:
			case string:
				res.Flat[path] = v
			case map[string]any:
				if len(v) > 0 {
					stack = append(stack, frame{node: v, path: path})
				}
			default:
				res.NonString = append(res.NonString, NonString{Key: path, ValueType: valueType(v), Value: v})
			}
		}
	}

	slices.SortFunc(res.NonString, func(a, b NonString) int {
		return strings.Compare(a.Key, b.Key)
	})
	return res
}

// Parse decodes a JSON document and flattens it.
// Numbers keep their literal text. A root that is not an object is an error.
func Parse(data []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return Result{}, fmt.Errorf("%w: malformed json: %s", ErrInvalidInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("%w: unexpected data after json document", ErrInvalidInput)
	}
	if _, ok := root.(map[string]any); !ok {
		return Result{}, fmt.Errorf("%w: root must be an object, got %s", ErrInvalidInput, valueType(root))
	}

	return Flatten(root), nil
}

// Decode parses data and applies the policy to non-string leaves.
func Decode(data []byte, p Policy) (FlatMap, error) {
	res, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return p.Apply(res)
}

func valueType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
