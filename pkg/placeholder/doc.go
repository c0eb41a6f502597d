// Package placeholder extracts interpolation placeholders from translation strings.
//
// Three syntaxes are recognized:
//
//	{{ name }}  double-brace interpolation, surrounding spaces are trimmed
//	{name}      single-brace interpolation
//	%s          positional printf-style substitution
//
// Names are made of word characters, dots and dashes. All %s occurrences in a
// string collapse into a single token made of "%s" repeated once per
// occurrence, so "%s and %s" yields {"%s%s"}. Two strings agree on their
// placeholders when their sets are equal; order and repetition of named
// placeholders do not matter.
//
//	set := placeholder.Extract("Hi {{name}}, {{name}}!")
//	set.Equal(placeholder.New("name")) // true
//
// Extraction never fails and has no state, so it is safe for concurrent use.
package placeholder
