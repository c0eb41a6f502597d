package storage

import (
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"
)

// Storage is the object store used for published exports.
type Storage interface {
	// Put stores data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	// Get opens an object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns a pre-signed download URL.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3 connection settings.
type Config struct {
	Bucket    string `env:"STORAGE_BUCKET"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	// Custom endpoint for S3-compatible services such as MinIO.
	Endpoint string `env:"STORAGE_ENDPOINT"`
	Region   string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	// Required by MinIO.
	PathStyle bool `env:"STORAGE_PATH_STYLE" envDefault:"false"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }

// Object describes a stored object.
type Object struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

const (
	DefaultRegion  = "us-east-1"
	ContentTypeZip = "application/zip"
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

var unsafeSegment = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// Key joins sanitized path segments into an object key. Unsafe characters
// become underscores and traversal sequences are removed; empty segments are
// dropped.
func Key(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.ReplaceAll(s, "..", "")
		s = strings.Trim(s, " /\\")
		s = unsafeSegment.ReplaceAllString(s, "_")
		if s == "" {
			continue
		}
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}
