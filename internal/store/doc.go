// Package store persists translation entries and version-control sync targets.
//
// Postgres is the production implementation, backed by pgx and the goose
// migrations embedded in Migrations. Memory implements the same interfaces for
// tests and local experiments.
//
// Writes that touch several entries run in one transaction: either every
// entry is written or none is.
package store
