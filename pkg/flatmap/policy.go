package flatmap

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Policy decides what happens to non-string leaves.
type Policy int

const (
	// Strict rejects a document containing any non-string leaf.
	Strict Policy = iota
	// Stringify converts non-string leaves to their textual form.
	Stringify
)

// ParsePolicy maps "strict" and "stringify" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "stringify":
		return Stringify, nil
	default:
		return Strict, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p Policy) String() string {
	if p == Stringify {
		return "stringify"
	}
	return "strict"
}

// Apply returns the flat map the policy accepts for res.
// Under Strict any non-string leaf yields ErrInvalidInput naming the first key.
// The returned map is a copy; res is not modified.
func (p Policy) Apply(res Result) (FlatMap, error) {
	if len(res.NonString) == 0 {
		return maps.Clone(res.Flat), nil
	}

	if p == Strict {
		first := res.NonString[0]
		return nil, fmt.Errorf("%w: %d non-string value(s), first at %q (%s)",
			ErrInvalidInput, len(res.NonString), first.Key, first.ValueType)
	}

	out := make(FlatMap, len(res.Flat)+len(res.NonString))
	maps.Copy(out, res.Flat)
	for _, ns := range res.NonString {
		if ns.Key == "" {
			return nil, fmt.Errorf("%w: root must be an object, got %s", ErrInvalidInput, ns.ValueType)
		}
		s, err := stringify(ns.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %s", ErrInvalidInput, ns.Key, err)
		}
		out[ns.Key] = s
	}
	return out, nil
}

func stringify(v any) (string, error) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return x, nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
