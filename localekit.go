package localekit

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/matrix"
)

// Decode parses a translation archive into a bundle. Files that map to the
// same locale and namespace are merged, later members winning.
func Decode(data []byte, opts ...archive.Option) (entry.Bundle, error) {
	files, err := archive.Import(data, opts...)
	if err != nil {
		return nil, err
	}
	return archive.Bundle(files), nil
}

// Encode writes a bundle as a zip archive.
func Encode(b entry.Bundle, opts ...archive.Option) ([]byte, error) {
	return archive.Export(b, opts...)
}

// Reconcile builds the cross-locale matrix of a bundle.
func Reconcile(b entry.Bundle) *matrix.Matrix {
	return matrix.Build(b.Entries(uuid.Nil, time.Time{}))
}
