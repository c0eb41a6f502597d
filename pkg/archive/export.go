package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/stablejson"
)

// modTime is stamped on every exported member so archives are byte-stable.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

type document struct {
	path    string
	content []byte
}

// Export renders the bundle as a zip archive.
func Export(b entry.Bundle, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	docs, err := render(b, localesDir, o.indent)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range docs {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     d.path,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return nil, fmt.Errorf("archive: create %q: %w", d.path, err)
		}
		if _, err := w.Write(d.content); err != nil {
			return nil, fmt.Errorf("archive: write %q: %w", d.path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: finalize: %w", err)
	}

	return buf.Bytes(), nil
}

// Files renders the bundle as a map of repository path to file content under
// root, e.g. "locales/en/common.json". An empty root means "locales".
func Files(b entry.Bundle, root string, indent int) (map[string]string, error) {
	root, err := cleanRoot(root)
	if err != nil {
		return nil, err
	}

	docs, err := render(b, root, indent)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(docs))
	for _, d := range docs {
		out[d.path] = string(d.content)
	}
	return out, nil
}

func render(b entry.Bundle, root string, indent int) ([]document, error) {
	locales := b.Locales()
	namespaces := b.Namespaces()

	docs := make([]document, 0, len(locales)*len(namespaces))
	for _, locale := range locales {
		for _, ns := range namespaces {
			flat := b.Flat(locale, ns)
			if flat == nil {
				flat = flatmap.FlatMap{}
			}
			content, err := stablejson.Marshal(flatmap.Unflatten(flat), indent)
			if err != nil {
				return nil, fmt.Errorf("archive: render %s/%s: %w", locale, ns, err)
			}
			docs = append(docs, document{
				path:    path.Join(root, locale, ns+jsonExt),
				content: content,
			})
		}
	}

	slices.SortFunc(docs, func(a, b document) int {
		return strings.Compare(a.path, b.path)
	})
	return docs, nil
}

func cleanRoot(root string) (string, error) {
	root = strings.Trim(strings.ReplaceAll(root, `\`, "/"), "/")
	if root == "" {
		return localesDir, nil
	}
	for _, seg := range strings.Split(root, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidRoot, root)
		}
	}
	return root, nil
}
