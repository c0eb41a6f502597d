// Package logger builds the slog loggers used across localekit.
//
// Loggers write JSON to stdout by default and enrich every record with
// attributes pulled from the context, such as the project being worked on or
// the HTTP request ID:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(
//			logger.ProjectID,
//			logger.StringExtractor("request_id", middleware.GetReqID),
//		),
//	)
//
//	ctx = logger.WithProjectID(ctx, projectID.String())
//	log.InfoContext(ctx, "archive imported", slog.Int("entries", n))
//	// {"level":"INFO","msg":"archive imported","entries":42,"project_id":"..."}
//
// NewWithSentry additionally forwards warnings and errors to Sentry and falls
// back to plain output when no DSN is configured. NewNope discards everything
// and is the default for constructors that accept an optional logger.
package logger
