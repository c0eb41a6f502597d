package httpapi

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/matrix"
)

// HTTPError is an error with everything needed to render a response.
type HTTPError struct {
	// Err is the underlying error, logged but never rendered.
	Err error

	// Details holds per-field validation messages.
	Details map[string]string

	Message   string
	Detail    string
	ErrorCode string
	Code      int
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) { e.Detail = detail }
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) { e.ErrorCode = code }
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// badInput lists errors caused by unparsable or disallowed request content.
var badInput = []struct {
	err  error
	code string
}{
	{flatmap.ErrInvalidInput, "invalid_input"},
	{archive.ErrInvalidArchive, "invalid_archive"},
	{archive.ErrNoTranslations, "no_translations"},
	{archive.ErrFileTooLarge, "file_too_large"},
	{archive.ErrTooManyFiles, "too_many_files"},
	{translations.ErrUnknownMode, "unknown_mode"},
	{matrix.ErrUnknownIssue, "unknown_issue"},
	{entry.ErrInvalidLocale, "invalid_locale"},
	{entry.ErrInvalidNamespace, "invalid_namespace"},
	{entry.ErrInvalidKey, "invalid_key"},
}

// toHTTPError maps service errors to responses. Unknown errors become 500s
// with a generic message.
func toHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for field, ferr := range verrs {
			details[field] = ferr.Error()
		}
		return NewHTTPError(http.StatusUnprocessableEntity, "validation failed",
			WithError(err), WithErrorCode("validation_failed"),
			func(e *HTTPError) { e.Details = details })
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return NewHTTPError(http.StatusRequestEntityTooLarge, "upload is too large",
			WithError(mbe), WithErrorCode("upload_too_large"))
	}

	for _, bi := range badInput {
		if !errors.Is(err, bi.err) {
			continue
		}
		opts := []HTTPErrorOption{WithError(err), WithErrorCode(bi.code)}
		var fe *archive.FileError
		if errors.As(err, &fe) {
			opts = append(opts, WithDetail(fe.Path))
		}
		return ErrBadRequest(err.Error(), opts...)
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound("not found", WithError(err), WithErrorCode("not_found"))
	case errors.Is(err, store.ErrConflict):
		return NewHTTPError(http.StatusConflict, "already exists", WithError(err), WithErrorCode("conflict"))
	case errors.Is(err, translations.ErrNoLocales):
		return NewHTTPError(http.StatusConflict, "project has no locales", WithError(err), WithErrorCode("no_locales"))
	case errors.Is(err, translations.ErrLocked):
		return NewHTTPError(http.StatusLocked, "project is being modified, retry later", WithError(err), WithErrorCode("locked"))
	case errors.Is(err, translations.ErrSyncNotConfigured):
		return NewHTTPError(http.StatusConflict, "sync target is not configured", WithError(err), WithErrorCode("sync_not_configured"))
	case errors.Is(err, translations.ErrSyncUnavailable), errors.Is(err, translations.ErrStorageNotConfigured):
		return NewHTTPError(http.StatusServiceUnavailable, "feature is not enabled", WithError(err), WithErrorCode("unavailable"))
	}

	return ErrInternal("internal error", WithError(err))
}
