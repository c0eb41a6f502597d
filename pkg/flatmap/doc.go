// Package flatmap converts nested JSON translation documents to dot-keyed flat
// maps and back.
//
// A translation file is a JSON object whose string leaves are translations:
//
//	{"auth": {"login": {"title": "Sign in"}}}
//
// Flattening joins the object path with dots, producing {"auth.login.title": "Sign in"}.
// Numbers, booleans and arrays are not translations; Flatten reports them in
// Result.NonString instead of dropping them, and a Policy decides whether such
// leaves reject the document (Strict) or are converted to strings (Stringify).
// Null values and empty objects contribute nothing.
//
// Unflatten rebuilds the nested document. Keys are processed in sorted order,
// so when one key is a strict prefix of another ("a" and "a.b") the shorter
// key's leaf is replaced by an object and its value is lost. Apart from that
// case, Flatten(Unflatten(m)) returns m.
//
// The walk uses an explicit stack, so deeply nested documents cannot exhaust
// the goroutine stack.
package flatmap
