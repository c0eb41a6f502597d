package entry_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/placeholder"
)

func TestNewAndSetValue(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e := entry.New(projectID, entry.Key{Locale: "en", Namespace: "common", DotKey: "greeting"}, "Hi {{name}}", created)
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, projectID, e.ProjectID)
	assert.Equal(t, "common.greeting", e.FullKey())
	assert.True(t, e.Placeholders.Equal(placeholder.New("name")))
	assert.Equal(t, created, e.UpdatedAt)

	later := created.Add(time.Hour)
	e.SetValue("Hello %s", later)
	assert.Equal(t, "Hello %s", e.Value)
	assert.True(t, e.Placeholders.Equal(placeholder.New("%s")))
	assert.Equal(t, later, e.UpdatedAt)
	assert.Equal(t, entry.Key{Locale: "en", Namespace: "common", DotKey: "greeting"}, e.Key())
}

func TestBundle(t *testing.T) {
	t.Parallel()

	b := make(entry.Bundle)
	b.Merge("fr", "common", flatmap.FlatMap{"a": "A", "b": "B"})
	b.Set("en", "auth", "login", "Login")
	b.Set("en", "common", "a", "a")
	b.Merge("fr", "common", flatmap.FlatMap{"b": "B2"})

	assert.Equal(t, []string{"en", "fr"}, b.Locales())
	assert.Equal(t, []string{"auth", "common"}, b.Namespaces())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, flatmap.FlatMap{"a": "A", "b": "B2"}, b.Flat("fr", "common"))
	assert.Nil(t, b.Flat("de", "common"))

	projectID := uuid.New()
	now := time.Now()
	entries := b.Entries(projectID, now)
	require.Len(t, entries, 4)
	assert.Equal(t, "en", entries[0].Locale)
	assert.Equal(t, "auth", entries[0].Namespace)
	assert.Equal(t, "fr", entries[3].Locale)
	assert.Equal(t, "b", entries[3].DotKey)
	assert.Equal(t, "B2", entries[3].Value)

	assert.Equal(t, b, entry.Group(entries))
}

func TestSort(t *testing.T) {
	t.Parallel()

	entries := []entry.Entry{
		{Namespace: "b", DotKey: "x", Locale: "en"},
		{Namespace: "a", DotKey: "y", Locale: "fr"},
		{Namespace: "a", DotKey: "y", Locale: "de"},
		{Namespace: "a", DotKey: "x", Locale: "en"},
	}
	entry.Sort(entries)

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Namespace+"/"+e.DotKey+"/"+e.Locale)
	}
	assert.Equal(t, []string{"a/x/en", "a/y/de", "a/y/fr", "b/x/en"}, got)
}

func TestValidateLocale(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"en", "pt-BR", "zh-CN"} {
		assert.NoError(t, entry.ValidateLocale(ok), ok)
		assert.True(t, entry.IsLocale(ok))
	}
	for _, bad := range []string{"", "english", "EN", "en-us", "en_US", "en-USA", "e"} {
		assert.ErrorIs(t, entry.ValidateLocale(bad), entry.ErrInvalidLocale, bad)
	}
}

func TestValidateNamespaceAndKey(t *testing.T) {
	t.Parallel()

	require.NoError(t, entry.ValidateNamespace("common_2-x"))
	require.ErrorIs(t, entry.ValidateNamespace("com.mon"), entry.ErrInvalidNamespace)
	require.ErrorIs(t, entry.ValidateNamespace(""), entry.ErrInvalidNamespace)

	require.NoError(t, entry.ValidateKey("auth.login-form.title_1"))
	require.ErrorIs(t, entry.ValidateKey("has space"), entry.ErrInvalidKey)
	require.ErrorIs(t, entry.ValidateKey(""), entry.ErrInvalidKey)
}

func TestKeyValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, entry.Key{Locale: "en", Namespace: "common", DotKey: "a.b"}.Validate())

	err := entry.Key{Locale: "eng", Namespace: "a/b", DotKey: "ok"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locale")
	assert.Contains(t, err.Error(), "namespace")
	assert.NotContains(t, err.Error(), "dotKey")
}

func TestKeyValidateAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     entry.Key
		wantErr string
	}{
		{name: "grammar key", key: entry.Key{Locale: "en", Namespace: "common", DotKey: "a.b"}},
		{name: "natural language key", key: entry.Key{Locale: "en", Namespace: "common", DotKey: "Hello world"}},
		{name: "spaced namespace", key: entry.Key{Locale: "en-US", Namespace: "my pages", DotKey: "a.b c"}},
		{name: "bad locale", key: entry.Key{Locale: "english", Namespace: "common", DotKey: "a"}, wantErr: "locale"},
		{name: "empty key", key: entry.Key{Locale: "en", Namespace: "common"}, wantErr: "dotKey"},
		{name: "empty namespace", key: entry.Key{Locale: "en", DotKey: "a"}, wantErr: "namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.key.ValidateAddress()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
