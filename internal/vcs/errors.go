package vcs

import "errors"

var (
	ErrMissingToken   = errors.New("vcs: missing access token")
	ErrInvalidRequest = errors.New("vcs: invalid push request")
	ErrUnauthorized   = errors.New("vcs: access denied by repository host")
	ErrNotFound       = errors.New("vcs: repository or branch not found")
	ErrConflict       = errors.New("vcs: branch moved during push")
	ErrRequestFailed  = errors.New("vcs: request failed")
	ErrDecodeFailed   = errors.New("vcs: failed to decode response")
)
