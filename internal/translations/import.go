package translations

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

// Mode selects how imported entries are written.
type Mode string

const (
	// Merge upserts imported entries and keeps everything else.
	Merge Mode = "merge"
	// Replace deletes the imported scope first.
	Replace Mode = "replace"
)

// ParseMode parses a mode name. Empty means Merge.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Merge:
		return Merge, nil
	case Replace:
		return Replace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ImportResult describes a committed import.
type ImportResult struct {
	Mode       Mode     `json:"mode"`
	Locales    []string `json:"locales"`
	Namespaces []string `json:"namespaces"`
	Files      int      `json:"files"`
	Entries    int      `json:"entries"`
}

// ImportArchive imports a zip archive. In Replace mode the whole project is
// replaced. Nothing is written unless every translation file in the archive
// is valid.
func (s *Service) ImportArchive(ctx context.Context, projectID uuid.UUID, data []byte, mode Mode) (*ImportResult, error) {
	ctx = projectContext(ctx, projectID)

	files, err := archive.Import(data, s.archiveOptions()...)
	if err != nil {
		s.log.WarnContext(ctx, "archive import rejected", logger.Error(err))
		return nil, err
	}

	b := archive.Bundle(files)
	res, err := s.commit(ctx, projectID, b, store.Scope{}, mode)
	if err != nil {
		return nil, err
	}
	res.Files = len(files)

	s.log.InfoContext(ctx, "archive imported",
		slog.String("mode", string(mode)),
		slog.Int("files", res.Files),
		slog.Int("entries", res.Entries),
	)
	return res, nil
}

// JSONImport addresses a single nested JSON document.
type JSONImport struct {
	Locale    string `json:"locale"`
	Namespace string `json:"namespace"`
	Mode      Mode   `json:"mode"`
}

// Validate checks locale and namespace grammars.
func (in JSONImport) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Locale, validation.Required, entry.LocaleRule),
		validation.Field(&in.Namespace, validation.Required, entry.NamespaceRule),
		validation.Field(&in.Mode, validation.In(Merge, Replace)),
	)
}

// ImportJSON imports one nested JSON document into a locale and namespace.
// In Replace mode only that locale and namespace are replaced.
func (s *Service) ImportJSON(ctx context.Context, projectID uuid.UUID, in JSONImport, data []byte) (*ImportResult, error) {
	ctx = projectContext(ctx, projectID)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	flat, err := flatmap.Decode(data, s.policy)
	if err != nil {
		s.log.WarnContext(ctx, "json import rejected", logger.Error(err))
		return nil, err
	}

	b := make(entry.Bundle)
	b.Merge(in.Locale, in.Namespace, flat)

	scope := store.Scope{Locale: in.Locale, Namespace: in.Namespace}
	res, err := s.commit(ctx, projectID, b, scope, in.Mode)
	if err != nil {
		return nil, err
	}
	res.Files = 1

	s.log.InfoContext(ctx, "json imported",
		slog.String("locale", in.Locale),
		slog.String("namespace", in.Namespace),
		slog.String("mode", string(res.Mode)),
		slog.Int("entries", res.Entries),
	)
	return res, nil
}

func (s *Service) commit(ctx context.Context, projectID uuid.UUID, b entry.Bundle, scope store.Scope, mode Mode) (*ImportResult, error) {
	if mode == "" {
		mode = Merge
	}
	entries := b.Entries(projectID, s.now())

	var written int
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		var err error
		switch mode {
		case Merge:
			written, err = s.entries.Upsert(ctx, entries)
		case Replace:
			written, err = s.entries.Replace(ctx, projectID, scope, entries)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Mode:       mode,
		Locales:    b.Locales(),
		Namespaces: b.Namespaces(),
		Entries:    written,
	}, nil
}

// PreviewArchive parses an archive without writing anything.
func (s *Service) PreviewArchive(data []byte) (*archive.PreviewResult, error) {
	return archive.Preview(data, s.archiveOptions()...)
}

// JSONPreview is the parsed form of a single JSON document.
type JSONPreview struct {
	Data      flatmap.FlatMap     `json:"data"`
	NonString []flatmap.NonString `json:"nonString,omitempty"`
	Keys      int                 `json:"keys"`
}

// PreviewJSON flattens a JSON document without writing anything. Non-string
// leaves are reported and, with the Stringify policy, included in Data.
func (s *Service) PreviewJSON(data []byte) (*JSONPreview, error) {
	res, err := flatmap.Parse(data)
	if err != nil {
		return nil, err
	}

	flat := res.Flat
	if s.policy == flatmap.Stringify {
		if flat, err = s.policy.Apply(res); err != nil {
			return nil, err
		}
	}

	return &JSONPreview{Data: flat, NonString: res.NonString, Keys: len(flat)}, nil
}
