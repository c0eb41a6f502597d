package archive

import (
	"strings"

	"github.com/dmitrymomot/localekit/pkg/entry"
)

const (
	localesDir = "locales"
	jsonExt    = ".json"
)

// Location is the locale and namespace a file path maps to.
type Location struct {
	Locale    string `json:"locale"`
	Namespace string `json:"namespace"`
}

// Resolve maps an archive path to its location.
// Backslashes are treated as separators and leading slashes are ignored.
// Hidden files (names starting with a dot) are rejected.
func Resolve(name string) (Location, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	if strings.HasSuffix(name, "/") {
		return Location{}, false
	}

	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '/' })

	anchor := -1
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == localesDir {
			anchor = i
			break
		}
	}
	if anchor < 0 || len(parts) != anchor+3 {
		return Location{}, false
	}

	locale, file := parts[anchor+1], parts[anchor+2]
	if !entry.IsLocale(locale) {
		return Location{}, false
	}
	if len(file) <= len(jsonExt) || !strings.EqualFold(file[len(file)-len(jsonExt):], jsonExt) {
		return Location{}, false
	}
	if strings.HasPrefix(file, ".") {
		return Location{}, false
	}

	return Location{Locale: locale, Namespace: file[:len(file)-len(jsonExt)]}, true
}

// Path returns the canonical archive path for a location.
func (l Location) Path() string {
	return localesDir + "/" + l.Locale + "/" + l.Namespace + jsonExt
}
