package translations

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/pkg/entry"
)

// Namespace and key used to seed a locale added to an empty project.
const (
	seedNamespace = "common"
	seedKey       = "welcome"
)

// UpdateEntry sets the value of an existing entry.
type UpdateEntry struct {
	Locale    string `json:"locale"`
	Namespace string `json:"namespace"`
	DotKey    string `json:"dotKey"`
	Value     string `json:"value"`
}

// Validate checks the entry address. Existing keys need not follow the
// key grammar.
func (in UpdateEntry) Validate() error {
	return entry.Key{Locale: in.Locale, Namespace: in.Namespace, DotKey: in.DotKey}.ValidateAddress()
}

// UpdateEntry changes a value, recomputing its placeholders.
func (s *Service) UpdateEntry(ctx context.Context, projectID uuid.UUID, in UpdateEntry) (*entry.Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	e := entry.New(projectID, entry.Key{Locale: in.Locale, Namespace: in.Namespace, DotKey: in.DotKey}, in.Value, s.now())
	if err := s.entries.Update(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// AddKey creates an empty key in a namespace.
type AddKey struct {
	Namespace string   `json:"namespace"`
	DotKey    string   `json:"dotKey"`
	Locales   []string `json:"locales"`
}

// Validate checks grammars. Locales may be empty.
func (in AddKey) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Namespace, validation.Required, entry.NamespaceRule),
		validation.Field(&in.DotKey, validation.Required, entry.KeyRule),
		validation.Field(&in.Locales, validation.Each(validation.Required, entry.LocaleRule)),
	)
}

// AddKey inserts an empty value for each requested locale, or for every
// locale of the project when none are given. It fails with store.ErrConflict
// if the key already exists in any locale.
func (s *Service) AddKey(ctx context.Context, projectID uuid.UUID, in AddKey) ([]entry.Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx = projectContext(ctx, projectID)

	var created []entry.Entry
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		existing, err := s.entries.List(ctx, projectID)
		if err != nil {
			return err
		}

		locales := in.Locales
		if len(locales) == 0 {
			locales = entry.Group(existing).Locales()
		}
		if len(locales) == 0 {
			return ErrNoLocales
		}

		for _, e := range existing {
			if e.Namespace == in.Namespace && e.DotKey == in.DotKey {
				return fmt.Errorf("%w: key %q", store.ErrConflict, entry.FullKey(in.Namespace, in.DotKey))
			}
		}

		now := s.now()
		seen := make(map[string]struct{}, len(locales))
		for _, locale := range locales {
			if _, dup := seen[locale]; dup {
				continue
			}
			seen[locale] = struct{}{}
			created = append(created, entry.New(projectID, entry.Key{Locale: locale, Namespace: in.Namespace, DotKey: in.DotKey}, "", now))
		}
		return s.entries.Insert(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "key added",
		slog.String("key", entry.FullKey(in.Namespace, in.DotKey)),
		slog.Int("locales", len(created)),
	)
	return created, nil
}

// AddLocale inserts an empty value for every key of the project in a new
// locale. An empty project is seeded with common.welcome. It fails with
// store.ErrConflict if the locale already has entries.
func (s *Service) AddLocale(ctx context.Context, projectID uuid.UUID, locale string) ([]entry.Entry, error) {
	if err := entry.ValidateLocale(locale); err != nil {
		return nil, err
	}
	ctx = projectContext(ctx, projectID)

	var created []entry.Entry
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		existing, err := s.entries.List(ctx, projectID)
		if err != nil {
			return err
		}

		type nsKey struct{ namespace, dotKey string }
		seen := make(map[nsKey]struct{})
		now := s.now()
		for _, e := range existing {
			if e.Locale == locale {
				return fmt.Errorf("%w: locale %q", store.ErrConflict, locale)
			}
			k := nsKey{e.Namespace, e.DotKey}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			created = append(created, entry.New(projectID, entry.Key{Locale: locale, Namespace: e.Namespace, DotKey: e.DotKey}, "", now))
		}
		if len(created) == 0 {
			created = append(created, entry.New(projectID, entry.Key{Locale: locale, Namespace: seedNamespace, DotKey: seedKey}, "", now))
		}
		return s.entries.Insert(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	entry.Sort(created)
	s.log.InfoContext(ctx, "locale added", slog.String("locale", locale), slog.Int("entries", len(created)))
	return created, nil
}

// RenameKey moves a key to a new name in one namespace.
type RenameKey struct {
	Namespace string `json:"namespace"`
	OldKey    string `json:"oldKey"`
	NewKey    string `json:"newKey"`
}

// Validate checks the new key's grammar and that the names differ. The old
// key addresses an existing entry and only has to be present.
func (in RenameKey) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Namespace, validation.Required),
		validation.Field(&in.OldKey, validation.Required),
		validation.Field(&in.NewKey, validation.Required, entry.KeyRule,
			validation.NotIn(in.OldKey).Error("must differ from the old key")),
	)
}

// RenameKey renames a key in every locale and returns the number of entries moved.
func (s *Service) RenameKey(ctx context.Context, projectID uuid.UUID, in RenameKey) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	ctx = projectContext(ctx, projectID)

	var n int64
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		var err error
		n, err = s.entries.RenameKey(ctx, projectID, in.Namespace, in.OldKey, in.NewKey, s.now())
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "key renamed",
		slog.String("from", entry.FullKey(in.Namespace, in.OldKey)),
		slog.String("to", entry.FullKey(in.Namespace, in.NewKey)),
		slog.Int64("entries", n),
	)
	return n, nil
}

// DeleteKey removes a key from every locale. store.ErrNotFound if nothing matched.
func (s *Service) DeleteKey(ctx context.Context, projectID uuid.UUID, namespace, dotKey string) (int64, error) {
	if err := (validation.Errors{
		"namespace": validation.Validate(namespace, validation.Required),
		"dotKey":    validation.Validate(dotKey, validation.Required),
	}).Filter(); err != nil {
		return 0, err
	}
	ctx = projectContext(ctx, projectID)

	var n int64
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		var err error
		n, err = s.entries.DeleteKey(ctx, projectID, namespace, dotKey)
		if err == nil && n == 0 {
			err = store.ErrNotFound
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "key deleted", slog.String("key", entry.FullKey(namespace, dotKey)), slog.Int64("entries", n))
	return n, nil
}

// DeleteLocale removes every entry of a locale. store.ErrNotFound if the
// locale has no entries.
func (s *Service) DeleteLocale(ctx context.Context, projectID uuid.UUID, locale string) (int64, error) {
	if err := entry.ValidateLocale(locale); err != nil {
		return 0, err
	}
	ctx = projectContext(ctx, projectID)

	var n int64
	err := s.withLock(ctx, projectID, func(ctx context.Context) error {
		var err error
		n, err = s.entries.DeleteLocale(ctx, projectID, locale)
		if err == nil && n == 0 {
			err = store.ErrNotFound
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "locale deleted", slog.String("locale", locale), slog.Int64("entries", n))
	return n, nil
}
