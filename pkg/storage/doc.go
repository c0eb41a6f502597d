// Package storage keeps exported translation archives in S3-compatible object
// storage and hands out time-limited download links for them.
//
// It wraps [github.com/aws/aws-sdk-go-v2/service/s3]. Any S3-compatible
// service works; set Endpoint and PathStyle for MinIO and similar.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "localekit-exports",
//		AccessKey: "...",
//		SecretKey: "...",
//	})
//
//	key := storage.Key("exports", projectID.String(), "acme-locales.zip")
//	obj, err := store.Put(ctx, key, data, storage.ContentTypeZip)
//	link, err := store.URL(ctx, obj.Key,
//		storage.WithExpiry(time.Hour),
//		storage.WithDownload("acme-locales.zip"),
//	)
//
// Errors from S3 are normalized to the sentinels in this package, so callers
// check them with errors.Is instead of inspecting AWS error types.
package storage
