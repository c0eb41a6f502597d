package archive

import (
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/stablejson"
)

const (
	DefaultMaxFileSize int64 = 10 << 20
	DefaultMaxFiles          = 10_000
)

// Option configures import and export.
type Option func(*options)

type options struct {
	maxFileSize int64
	maxFiles    int
	indent      int
	policy      flatmap.Policy
}

func newOptions(opts []Option) *options {
	o := &options{
		maxFileSize: DefaultMaxFileSize,
		maxFiles:    DefaultMaxFiles,
		indent:      stablejson.DefaultIndent,
		policy:      flatmap.Strict,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPolicy sets how non-string leaves are handled on import. Default: Strict.
func WithPolicy(p flatmap.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithIndent sets the JSON indent width on export. Default: 2.
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = n
	}
}

// WithMaxFileSize caps the uncompressed size of a single translation file.
// Non-positive values keep the default.
func WithMaxFileSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxFileSize = n
		}
	}
}

// WithMaxFiles caps the number of members an archive may contain.
// Non-positive values keep the default.
func WithMaxFiles(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxFiles = n
		}
	}
}
