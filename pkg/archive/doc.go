// Package archive reads and writes translation archives.
//
// An archive holds one JSON file per locale and namespace, laid out as
//
//	locales/{locale}/{namespace}.json
//
// The "locales" directory may sit anywhere inside the archive; the last
// "locales" segment of a path anchors it and exactly two segments must follow.
// Paths that do not fit the layout, have an invalid locale, or are not .json
// files are skipped silently. See Resolve.
//
// # Importing
//
// Import is fail-closed: the first unreadable or unparsable file aborts the
// whole import and no files are returned. An archive with no accepted files
// returns ErrNoTranslations.
//
//	files, err := archive.Import(data, archive.WithPolicy(flatmap.Stringify))
//	switch {
//	case errors.Is(err, archive.ErrNoTranslations):
//	case errors.Is(err, archive.ErrInvalidInput):
//	case errors.Is(err, archive.ErrInvalidArchive):
//	}
//
// Preview is the lenient counterpart: it parses everything it can and reports
// skipped paths and broken files next to the parsed ones. ImportFS applies the
// Import rules to a directory tree.
//
// # Exporting
//
// Export writes every locale and namespace of a bundle, including namespaces a
// locale has no keys for, so that every locale directory holds the same file
// set. Files are written in path order with a fixed modification time and the
// JSON is rendered by stablejson, so exporting the same bundle twice produces
// identical bytes. Files returns the same content as a path to content map for
// pushing to version control.
package archive
