package stablejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultIndent is the indent width used by translation files.
const DefaultIndent = 2

// Marshal renders v with sorted keys, indent spaces per level and a single
// trailing newline. An indent of zero produces compact output.
func Marshal(v any, indent int) ([]byte, error) {
	if indent < 0 {
		return nil, ErrNegativeIndent
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	// encoding/json writes map keys in sorted byte order.
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("stablejson: encode: %w", err)
	}

	return buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any, indent int) (string, error) {
	b, err := Marshal(v, indent)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
