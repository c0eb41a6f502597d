package flatmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/flatmap"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("nested strings", func(t *testing.T) {
		t.Parallel()

		res := flatmap.Flatten(map[string]any{
			"title": "Hello",
			"auth": map[string]any{
				"login": map[string]any{"button": "Sign in", "hint": ""},
			},
		})

		assert.Equal(t, flatmap.FlatMap{
			"title":             "Hello",
			"auth.login.button": "Sign in",
			"auth.login.hint":   "",
		}, res.Flat)
		assert.Empty(t, res.NonString)
	})

	t.Run("non-string leaves are reported", func(t *testing.T) {
		t.Parallel()

		res := flatmap.Flatten(map[string]any{
			"count":   float64(3),
			"enabled": true,
			"list":    []any{"a", "b"},
			"nested":  map[string]any{"n": float64(1)},
			"ok":      "yes",
		})

		assert.Equal(t, flatmap.FlatMap{"ok": "yes"}, res.Flat)
		require.Len(t, res.NonString, 4)
		assert.Equal(t, "count", res.NonString[0].Key)
		assert.Equal(t, "number", res.NonString[0].ValueType)
		assert.Equal(t, "enabled", res.NonString[1].Key)
		assert.Equal(t, "boolean", res.NonString[1].ValueType)
		assert.Equal(t, "list", res.NonString[2].Key)
		assert.Equal(t, "array", res.NonString[2].ValueType)
		assert.Equal(t, "nested.n", res.NonString[3].Key)
	})

	t.Run("null and empty objects are skipped", func(t *testing.T) {
		t.Parallel()

		res := flatmap.Flatten(map[string]any{"a": nil, "b": map[string]any{}, "c": "x"})
		assert.Equal(t, flatmap.FlatMap{"c": "x"}, res.Flat)
		assert.Empty(t, res.NonString)
	})

	t.Run("non-object root", func(t *testing.T) {
		t.Parallel()

		res := flatmap.Flatten([]any{"a"})
		assert.Empty(t, res.Flat)
		require.Len(t, res.NonString, 1)
		assert.Equal(t, "", res.NonString[0].Key)
		assert.Equal(t, "array", res.NonString[0].ValueType)
	})

	t.Run("deep nesting", func(t *testing.T) {
		t.Parallel()

		root := map[string]any{}
		cur := root
		for range 5000 {
			next := map[string]any{}
			cur["k"] = next
			cur = next
		}
		cur["leaf"] = "v"

		res := flatmap.Flatten(root)
		require.Len(t, res.Flat, 1)
	})
}

func TestFlattenCollisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "dotted key inside object vs nested path", doc: `{"a":{"b.c":"from-a"},"a.b":{"c":"from-ab"}}`, want: "from-ab"},
		{name: "nested path vs dotted key inside object", doc: `{"a.b":{"c":"from-ab"},"a":{"b.c":"from-a"}}`, want: "from-ab"},
		{name: "leaf vs nested path", doc: `{"a.b.c":"literal","a":{"b":{"c":"nested"}}}`, want: "nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Map iteration order varies between runs; the result must not.
			for range 200 {
				flat, err := flatmap.Decode([]byte(tt.doc), flatmap.Strict)
				require.NoError(t, err)
				require.Len(t, flat, 1)
				require.Equal(t, tt.want, flat["a.b.c"])
			}
		})
	}
}

func TestUnflatten(t *testing.T) {
	t.Parallel()

	t.Run("builds nested objects", func(t *testing.T) {
		t.Parallel()

		got := flatmap.Unflatten(flatmap.FlatMap{
			"a.b.c": "1",
			"a.d":   "2",
			"e":     "3",
		})
		assert.Equal(t, map[string]any{
			"a": map[string]any{
				"b": map[string]any{"c": "1"},
				"d": "2",
			},
			"e": "3",
		}, got)
	})

	t.Run("prefix key loses its leaf", func(t *testing.T) {
		t.Parallel()

		got := flatmap.Unflatten(flatmap.FlatMap{"a": "leaf", "a.b": "child"})
		assert.Equal(t, map[string]any{"a": map[string]any{"b": "child"}}, got)
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, map[string]any{}, flatmap.Unflatten(nil))
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		flat flatmap.FlatMap
	}{
		{name: "single key", flat: flatmap.FlatMap{"hello": "world"}},
		{name: "siblings", flat: flatmap.FlatMap{"a.x": "1", "a.y": "2", "b": "3"}},
		{name: "empty values", flat: flatmap.FlatMap{"a.b": "", "c": ""}},
		{name: "dashes and underscores", flat: flatmap.FlatMap{"nav-bar.item_1": "Home", "nav-bar.item_2": "About"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.flat, flatmap.Flatten(flatmap.Unflatten(tt.flat)).Flat)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		flat    flatmap.FlatMap
	}{
		{name: "valid object", input: `{"a":{"b":"c"}}`, flat: flatmap.FlatMap{"a.b": "c"}},
		{name: "empty object", input: `{}`, flat: flatmap.FlatMap{}},
		{name: "array root", input: `["a"]`, wantErr: true},
		{name: "string root", input: `"a"`, wantErr: true},
		{name: "null root", input: `null`, wantErr: true},
		{name: "malformed", input: `{"a":`, wantErr: true},
		{name: "empty input", input: ``, wantErr: true},
		{name: "trailing data", input: `{"a":"b"} {}`, wantErr: true},
		{name: "trailing whitespace", input: "{\"a\":\"b\"}\n\n", flat: flatmap.FlatMap{"a": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := flatmap.Parse([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, flatmap.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.flat, res.Flat)
		})
	}
}

func TestDecodePolicy(t *testing.T) {
	t.Parallel()

	input := []byte(`{"title":"Hi","count":10,"ratio":1.50,"on":false,"tags":["a",1],"skip":null}`)

	t.Run("strict rejects", func(t *testing.T) {
		t.Parallel()

		_, err := flatmap.Decode(input, flatmap.Strict)
		require.ErrorIs(t, err, flatmap.ErrInvalidInput)
		assert.Contains(t, err.Error(), `"count"`)
	})

	t.Run("stringify converts", func(t *testing.T) {
		t.Parallel()

		flat, err := flatmap.Decode(input, flatmap.Stringify)
		require.NoError(t, err)
		assert.Equal(t, flatmap.FlatMap{
			"title": "Hi",
			"count": "10",
			"ratio": "1.50",
			"on":    "false",
			"tags":  `["a",1]`,
		}, flat)
	})

	t.Run("strict accepts string-only documents", func(t *testing.T) {
		t.Parallel()

		flat, err := flatmap.Decode([]byte(`{"a":{"b":"c"}}`), flatmap.Strict)
		require.NoError(t, err)
		assert.Equal(t, flatmap.FlatMap{"a.b": "c"}, flat)
	})
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := flatmap.ParsePolicy("stringify")
	require.NoError(t, err)
	assert.Equal(t, flatmap.Stringify, p)
	assert.Equal(t, "stringify", p.String())

	p, err = flatmap.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, flatmap.Strict, p)

	_, err = flatmap.ParsePolicy("lenient")
	require.ErrorIs(t, err, flatmap.ErrUnknownPolicy)
}

func TestFlatMapKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "a.b", "b"}, flatmap.FlatMap{"b": "", "a.b": "", "a": ""}.Keys())
}
