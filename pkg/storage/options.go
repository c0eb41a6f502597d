package storage

import "time"

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	downloadName string
	expiry       time.Duration
}

// DefaultURLExpiry is the default lifetime of a signed URL.
const DefaultURLExpiry = 15 * time.Minute

// WithExpiry sets the signed URL lifetime. Non-positive values keep the default.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithDownload makes browsers save the object under filename.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) {
		o.downloadName = filename
	}
}
