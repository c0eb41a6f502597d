package flatmap

import "errors"

var (
	ErrInvalidInput  = errors.New("flatmap: invalid input")
	ErrUnknownPolicy = errors.New("flatmap: unknown policy")
)
