// Package translations implements the project-scoped operations of localekit
// on top of the codec engine and the entry store: importing archives and JSON
// files, exporting, the reconciliation matrix, editing keys and locales, and
// configuring version-control sync.
//
// Every write is parsed and validated completely before the store is touched,
// and the store applies it in a single transaction, so a rejected import
// leaves the project unchanged. When a Locker is configured, writes to the
// same project are serialized and a concurrent writer gets ErrLocked.
package translations
