package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/placeholder"
)

// Entry is a single translated string.
type Entry struct {
	UpdatedAt    time.Time       `json:"updatedAt"`
	Placeholders placeholder.Set `json:"placeholders"`
	Locale       string          `json:"locale"`
	Namespace    string          `json:"namespace"`
	DotKey       string          `json:"dotKey"`
	Value        string          `json:"value"`
	ID           uuid.UUID       `json:"id"`
	ProjectID    uuid.UUID       `json:"projectId"`
}

// Key identifies an entry inside a project.
type Key struct {
	Locale    string `json:"locale"`
	Namespace string `json:"namespace"`
	DotKey    string `json:"dotKey"`
}

// New creates an entry with a fresh time-ordered ID and extracted placeholders.
func New(projectID uuid.UUID, key Key, value string, now time.Time) Entry {
	return Entry{
		ID:           uuid.Must(uuid.NewV7()),
		ProjectID:    projectID,
		Locale:       key.Locale,
		Namespace:    key.Namespace,
		DotKey:       key.DotKey,
		Value:        value,
		Placeholders: placeholder.Extract(value),
		UpdatedAt:    now,
	}
}

// SetValue replaces the value, recomputes placeholders and bumps UpdatedAt.
func (e *Entry) SetValue(value string, now time.Time) {
	e.Value = value
	e.Placeholders = placeholder.Extract(value)
	e.UpdatedAt = now
}

// Key returns the entry address within its project.
func (e Entry) Key() Key {
	return Key{Locale: e.Locale, Namespace: e.Namespace, DotKey: e.DotKey}
}

// FullKey joins namespace and dot key.
func (e Entry) FullKey() string {
	return FullKey(e.Namespace, e.DotKey)
}

// FullKey joins namespace and dot key with a dot.
func FullKey(namespace, dotKey string) string {
	return namespace + "." + dotKey
}
