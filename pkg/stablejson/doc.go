// Package stablejson renders JSON documents in a deterministic, byte-stable form.
//
// Object keys are sorted by byte order at every level, nesting is indented
// with the requested number of spaces, and the output ends with exactly one
// newline. HTML characters are not escaped, so translations containing
// "<b>" or "&" are written as-is. Arrays keep their element order.
//
// Two characters are always written as escapes: U+2028 and U+2029 become
// \u2028 and \u2029. Invalid UTF-8 is replaced by \ufffd. Parsing the output
// yields the same strings for valid input, but the file bytes may differ from
// a hand-written source that carried those characters raw.
//
// Rendering the same document twice, or the same content built with a
// different insertion order, yields identical bytes.
package stablejson
