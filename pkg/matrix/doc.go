// Package matrix reconciles translation entries across locales.
//
// Build groups a project's entries into one Row per (namespace, key). Each row
// carries a cell for every project locale (nil when the locale has no entry),
// the locales missing the key, and placeholder issues. The first locale in
// sorted order that has the key is the baseline; any other locale whose
// placeholder set differs from the baseline's is reported with both sets.
//
//	m := matrix.Build(entries)
//	for _, row := range m.Filter(matrix.Filter{Issues: matrix.IssueAny}) {
//		fmt.Println(row.FullKey, row.MissingLocales)
//	}
//	stats := m.Stats()
//
// A Matrix is derived data: it is rebuilt from entries on every request and
// never stored.
package matrix
