package matrix

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/placeholder"
)

// Cell is one locale's translation of a key.
type Cell struct {
	UpdatedAt    time.Time       `json:"updatedAt"`
	Placeholders placeholder.Set `json:"placeholders"`
	Value        string          `json:"value"`
	ID           uuid.UUID       `json:"id"`
}

// PlaceholderIssue records a locale whose placeholders differ from the baseline.
type PlaceholderIssue struct {
	Locale   string          `json:"locale"`
	Expected placeholder.Set `json:"expected"`
	Got      placeholder.Set `json:"got"`
}

// Row is one (namespace, key) across all locales.
type Row struct {
	Cells             map[string]*Cell   `json:"cells"`
	Namespace         string             `json:"namespace"`
	DotKey            string             `json:"dotKey"`
	FullKey           string             `json:"fullKey"`
	MissingLocales    []string           `json:"missingLocales"`
	EmptyLocales      []string           `json:"emptyLocales"`
	PlaceholderIssues []PlaceholderIssue `json:"placeholderIssues"`
}

// Missing reports whether any locale lacks the key.
func (r Row) Missing() bool { return len(r.MissingLocales) > 0 }

// HasPlaceholderIssues reports whether any locale disagrees with the baseline.
func (r Row) HasPlaceholderIssues() bool { return len(r.PlaceholderIssues) > 0 }

// HasEmpty reports whether any present locale has an empty value.
func (r Row) HasEmpty() bool { return len(r.EmptyLocales) > 0 }

// Matrix is the reconciled view of a project.
type Matrix struct {
	Locales    []string `json:"locales"`
	Namespaces []string `json:"namespaces"`
	Rows       []Row    `json:"rows"`
	entries    int
}

type rowKey struct {
	namespace string
	dotKey    string
}

// Build reconciles entries. When several entries share a locale, namespace
// and key, the last one wins.
func Build(entries []entry.Entry) *Matrix {
	localeSet := make(map[string]struct{})
	nsSet := make(map[string]struct{})
	grouped := make(map[rowKey]map[string]*Cell)

	for _, e := range entries {
		localeSet[e.Locale] = struct{}{}
		nsSet[e.Namespace] = struct{}{}

		k := rowKey{namespace: e.Namespace, dotKey: e.DotKey}
		cells, ok := grouped[k]
		if !ok {
			cells = make(map[string]*Cell)
			grouped[k] = cells
		}
		ph := e.Placeholders
		if ph == nil {
			ph = placeholder.Extract(e.Value)
		}
		cells[e.Locale] = &Cell{ID: e.ID, Value: e.Value, Placeholders: ph, UpdatedAt: e.UpdatedAt}
	}

	m := &Matrix{
		Locales:    slices.Sorted(maps.Keys(localeSet)),
		Namespaces: slices.Sorted(maps.Keys(nsSet)),
		Rows:       make([]Row, 0, len(grouped)),
		entries:    len(entries),
	}

	keys := slices.SortedFunc(maps.Keys(grouped), func(a, b rowKey) int {
		return cmp.Or(cmp.Compare(a.namespace, b.namespace), cmp.Compare(a.dotKey, b.dotKey))
	})
	for _, k := range keys {
		m.Rows = append(m.Rows, buildRow(k, grouped[k], m.Locales))
	}

	return m
}

func buildRow(k rowKey, present map[string]*Cell, locales []string) Row {
	row := Row{
		Namespace:         k.namespace,
		DotKey:            k.dotKey,
		FullKey:           entry.FullKey(k.namespace, k.dotKey),
		Cells:             make(map[string]*Cell, len(locales)),
		MissingLocales:    []string{},
		EmptyLocales:      []string{},
		PlaceholderIssues: []PlaceholderIssue{},
	}

	var baseline *Cell
	for _, locale := range locales {
		cell := present[locale]
		row.Cells[locale] = cell
		switch {
		case cell == nil:
			row.MissingLocales = append(row.MissingLocales, locale)
		case baseline == nil:
			baseline = cell
		case !cell.Placeholders.Equal(baseline.Placeholders):
			row.PlaceholderIssues = append(row.PlaceholderIssues, PlaceholderIssue{
				Locale:   locale,
				Expected: baseline.Placeholders,
				Got:      cell.Placeholders,
			})
		}
		if cell != nil && cell.Value == "" {
			row.EmptyLocales = append(row.EmptyLocales, locale)
		}
	}

	return row
}
