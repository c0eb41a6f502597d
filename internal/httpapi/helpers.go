package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type envelope struct {
	Data any  `json:"data,omitempty"`
	OK   bool `json:"ok"`
}

type errorEnvelope struct {
	Details   map[string]string `json:"details,omitempty"`
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Detail    string            `json:"detail,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	OK        bool              `json:"ok"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, data any) error {
	writeJSON(w, status, envelope{OK: true, Data: data})
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, he *HTTPError) {
	writeJSON(w, he.Code, errorEnvelope{
		Error:     he.Message,
		Code:      he.ErrorCode,
		Detail:    he.Detail,
		Details:   he.Details,
		RequestID: GetRequestID(r.Context()),
	})
}

// query reads a typed query parameter. Empty or unparsable values yield def.
func query[T ~string | ~int | ~bool](r *http.Request, name string, def T) T {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return def
	}
	return v
}

func convertParam[T ~string | ~int | ~bool](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}

func projectID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, ErrNotFound("project not found", WithError(err), WithErrorCode("invalid_project_id"))
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return ErrBadRequest("malformed JSON body", WithError(err), WithErrorCode("malformed_body"))
	}
	return nil
}

// upload reads the multipart file field "file" fully into memory.
func upload(r *http.Request, maxMemory int64) ([]byte, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		return nil, ErrBadRequest("expected a multipart form", WithError(err), WithErrorCode("malformed_body"))
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, ErrBadRequest("missing file field", WithError(err), WithErrorCode("missing_file"))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
