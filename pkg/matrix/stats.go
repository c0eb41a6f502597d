package matrix

// Stats aggregates a matrix.
type Stats struct {
	Entries              int `json:"entries"`
	Locales              int `json:"locales"`
	Namespaces           int `json:"namespaces"`
	TotalKeys            int `json:"totalKeys"`
	CompleteKeys         int `json:"completeKeys"`
	KeysWithMissing      int `json:"keysWithMissing"`
	KeysWithPlaceholders int `json:"keysWithPlaceholderIssues"`
	MissingTranslations  int `json:"totalMissingTranslations"`
	EmptyTranslations    int `json:"totalEmptyTranslations"`
	PossibleTranslations int `json:"totalPossibleTranslations"`
}

// Stats reduces the rows to counters.
func (m *Matrix) Stats() Stats {
	s := Stats{
		Entries:              m.entries,
		Locales:              len(m.Locales),
		Namespaces:           len(m.Namespaces),
		TotalKeys:            len(m.Rows),
		PossibleTranslations: len(m.Rows) * len(m.Locales),
	}
	for _, r := range m.Rows {
		if r.Missing() {
			s.KeysWithMissing++
		}
		if r.HasPlaceholderIssues() {
			s.KeysWithPlaceholders++
		}
		s.MissingTranslations += len(r.MissingLocales)
		s.EmptyTranslations += len(r.EmptyLocales)
	}
	s.CompleteKeys = s.TotalKeys - s.KeysWithMissing
	return s
}
