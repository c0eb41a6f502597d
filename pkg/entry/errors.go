package entry

import "errors"

var (
	ErrInvalidLocale    = errors.New("entry: invalid locale")
	ErrInvalidNamespace = errors.New("entry: invalid namespace")
	ErrInvalidKey       = errors.New("entry: invalid key")
)
