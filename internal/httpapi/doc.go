// Package httpapi exposes the translation service over HTTP.
//
// All project routes live under /projects/{projectID}. Handlers return
// errors instead of writing failures themselves; the router maps them to an
// HTTPError and renders a JSON envelope:
//
//	{"ok": true, "data": ...}
//	{"ok": false, "error": "...", "code": "...", "requestId": "..."}
//
// Validation failures carry per-field messages in "details". Rejected
// archives name the failing member in "detail".
//
// Liveness and readiness probes are served at /health/live and /health/ready.
// Run starts a server with graceful shutdown on SIGINT and SIGTERM.
package httpapi
