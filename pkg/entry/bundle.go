package entry

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/flatmap"
)

// Bundle groups flat maps by locale, then namespace.
type Bundle map[string]map[string]flatmap.FlatMap

// Set stores one value, creating intermediate maps as needed.
func (b Bundle) Set(locale, namespace, dotKey, value string) {
	b.flat(locale, namespace)[dotKey] = value
}

// Merge copies flat into the (locale, namespace) slot. Existing keys are overwritten.
func (b Bundle) Merge(locale, namespace string, flat flatmap.FlatMap) {
	maps.Copy(b.flat(locale, namespace), flat)
}

// Flat returns the flat map stored for (locale, namespace), or nil.
func (b Bundle) Flat(locale, namespace string) flatmap.FlatMap {
	return b[locale][namespace]
}

// Locales returns the locales in sorted order.
func (b Bundle) Locales() []string {
	return slices.Sorted(maps.Keys(b))
}

// Namespaces returns the distinct namespaces across all locales in sorted order.
func (b Bundle) Namespaces() []string {
	seen := make(map[string]struct{})
	for _, byNS := range b {
		for ns := range byNS {
			seen[ns] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of stored values.
func (b Bundle) Len() int {
	n := 0
	for _, byNS := range b {
		for _, flat := range byNS {
			n += len(flat)
		}
	}
	return n
}

// Entries converts the bundle to entries ordered by locale, namespace and key.
func (b Bundle) Entries(projectID uuid.UUID, now time.Time) []Entry {
	out := make([]Entry, 0, b.Len())
	for _, locale := range b.Locales() {
		byNS := b[locale]
		for _, ns := range slices.Sorted(maps.Keys(byNS)) {
			flat := byNS[ns]
			for _, key := range flat.Keys() {
				out = append(out, New(projectID, Key{Locale: locale, Namespace: ns, DotKey: key}, flat[key], now))
			}
		}
	}
	return out
}

func (b Bundle) flat(locale, namespace string) flatmap.FlatMap {
	byNS, ok := b[locale]
	if !ok {
		byNS = make(map[string]flatmap.FlatMap)
		b[locale] = byNS
	}
	flat, ok := byNS[namespace]
	if !ok {
		flat = make(flatmap.FlatMap)
		byNS[namespace] = flat
	}
	return flat
}

// Group builds a bundle from entries. Later entries win on duplicate keys.
func Group(entries []Entry) Bundle {
	b := make(Bundle)
	for _, e := range entries {
		b.Set(e.Locale, e.Namespace, e.DotKey, e.Value)
	}
	return b
}

// Sort orders entries by namespace, key, then locale.
func Sort(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Namespace, b.Namespace),
			cmp.Compare(a.DotKey, b.DotKey),
			cmp.Compare(a.Locale, b.Locale),
		)
	})
}
