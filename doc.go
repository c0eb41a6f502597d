// Package localekit reads, reconciles and writes i18next-style translation
// bundles.
//
// A bundle is a set of nested JSON documents laid out as
// locales/<locale>/<namespace>.json, usually shipped as a zip archive. The
// root package offers the stateless round trip; the HTTP service in
// cmd/localekit adds persistence, editing and repository sync on top of the
// same packages.
//
// # Quick Start
//
//	bundle, err := localekit.Decode(zipData)
//	if err != nil {
//	    return err
//	}
//
//	m := localekit.Reconcile(bundle)
//	rows, total := m.Filter(matrix.Filter{Issues: matrix.IssueMissing})
//
//	out, err := localekit.Encode(bundle)
//
// Encode is byte-stable: the same bundle always yields the same archive,
// whatever order its files were read in.
//
// # Packages
//
//   - placeholder: {{var}} and printf placeholder extraction
//   - flatmap: nested JSON to dot-keyed maps and back
//   - stablejson: deterministic JSON encoding of flat maps
//   - entry: entry model, grammar rules and bundles
//   - archive: zip import, lenient preview and export
//   - matrix: cross-locale reconciliation, statistics and filtering
//
// # Import Policy
//
// Translation values must be strings. With [flatmap.Strict] (the default)
// any other leaf fails the import and names the offending key. With
// [flatmap.Stringify] numbers, booleans and arrays are converted to text:
//
//	bundle, err := localekit.Decode(data, archive.WithPolicy(flatmap.Stringify))
//
// # Errors
//
// Archive failures wrap [archive.ErrInvalidArchive], [archive.ErrInvalidInput]
// or [archive.ErrNoTranslations]. Errors about one member are an
// [*archive.FileError] carrying its path:
//
//	var fe *archive.FileError
//	if errors.As(err, &fe) {
//	    log.Printf("bad file %s", fe.Path)
//	}
package localekit
