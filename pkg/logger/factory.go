package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures the base handler built by New and NewWithSentry.
type Option func(*options)

type options struct {
	output     io.Writer
	extractors []ContextExtractor
	level      slog.Level
	text       bool
}

func newOptions(opts []Option) *options {
	o := &options{output: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLevel sets the minimum level. Default: Info.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithOutput redirects output. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithTextFormat switches from JSON to logfmt-style text output.
func WithTextFormat() Option {
	return func(o *options) { o.text = true }
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.text {
		return slog.NewTextHandler(o.output, ho)
	}
	return slog.NewJSONHandler(o.output, ho)
}

// New creates a logger. Output is JSON on stdout at Info level unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts)
	return slog.New(NewLogHandlerDecorator(o.handler(), o.extractors...))
}
