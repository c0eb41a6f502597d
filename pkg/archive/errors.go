package archive

import (
	"errors"

	"github.com/dmitrymomot/localekit/pkg/flatmap"
)

var (
	ErrInvalidArchive = errors.New("archive: invalid archive")
	ErrNoTranslations = errors.New("archive: no translations found")
	ErrFileTooLarge   = errors.New("archive: file exceeds size limit")
	ErrTooManyFiles   = errors.New("archive: too many files")
	ErrInvalidRoot    = errors.New("archive: invalid locales root")

	// ErrInvalidInput marks a file whose content is not an acceptable translation document.
	ErrInvalidInput = flatmap.ErrInvalidInput
)

// FileError reports which archive member failed.
type FileError struct {
	Err  error
	Path string
}

func (e *FileError) Error() string {
	return "archive: " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
