package placeholder

import (
	"regexp"
	"strings"
)

const positional = "%s"

var (
	doubleBrace = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)
	singleBrace = regexp.MustCompile(`\{([\w.-]+)\}`)
)

// Extract returns the set of placeholders used in text.
// An empty string yields an empty set.
func Extract(text string) Set {
	set := make(Set)
	if text == "" {
		return set
	}

	for _, m := range doubleBrace.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}
	for _, m := range singleBrace.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}

	if n := strings.Count(text, positional); n > 0 {
		set[strings.Repeat(positional, n)] = struct{}{}
	}

	return set
}
