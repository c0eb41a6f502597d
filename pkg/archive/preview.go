package archive

import (
	"slices"

	"github.com/dmitrymomot/localekit/pkg/flatmap"
)

// PreviewFile is a parsed file together with the leaves the import policy
// would reject or convert.
type PreviewFile struct {
	Data      flatmap.FlatMap     `json:"data"`
	Locale    string              `json:"locale"`
	Namespace string              `json:"namespace"`
	Path      string              `json:"path"`
	NonString []flatmap.NonString `json:"nonString,omitempty"`
	Keys      int                 `json:"keys"`
}

// Problem is a file Import would fail on.
type Problem struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// PreviewResult summarizes what an import of the same archive would do.
type PreviewResult struct {
	Files      []PreviewFile `json:"files"`
	Skipped    []string      `json:"skipped"`
	Failed     []Problem     `json:"failed"`
	Locales    []string      `json:"locales"`
	Namespaces []string      `json:"namespaces"`
	Keys       int           `json:"keys"`
}

// Importable reports whether Import with the same options would succeed.
func (p *PreviewResult) Importable() bool {
	return len(p.Failed) == 0 && len(p.Files) > 0
}

// Preview parses as much of the archive as possible. Only a corrupt or
// oversized container is an error; per-file problems are reported in the result.
func Preview(data []byte, opts ...Option) (*PreviewResult, error) {
	o := newOptions(opts)

	zr, err := openZip(data, o)
	if err != nil {
		return nil, err
	}

	res := &PreviewResult{
		Files:   []PreviewFile{},
		Skipped: []string{},
		Failed:  []Problem{},
	}
	locales := map[string]struct{}{}
	namespaces := map[string]struct{}{}

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		loc, ok := Resolve(zf.Name)
		if !ok {
			res.Skipped = append(res.Skipped, zf.Name)
			continue
		}

		raw, err := readMember(zf, o.maxFileSize)
		if err != nil {
			res.Failed = append(res.Failed, Problem{Path: zf.Name, Error: err.Error()})
			continue
		}

		parsed, err := flatmap.Parse(raw)
		if err != nil {
			res.Failed = append(res.Failed, Problem{Path: zf.Name, Error: err.Error()})
			continue
		}

		flat, err := o.policy.Apply(parsed)
		if err != nil {
			res.Failed = append(res.Failed, Problem{Path: zf.Name, Error: err.Error()})
			flat = parsed.Flat
		}

		res.Files = append(res.Files, PreviewFile{
			Path:      zf.Name,
			Locale:    loc.Locale,
			Namespace: loc.Namespace,
			Data:      flat,
			NonString: parsed.NonString,
			Keys:      len(flat),
		})
		res.Keys += len(flat)
		locales[loc.Locale] = struct{}{}
		namespaces[loc.Namespace] = struct{}{}
	}

	res.Locales = sortedSet(locales)
	res.Namespaces = sortedSet(namespaces)
	return res, nil
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
