package stablejson_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/stablejson"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("sorts keys at every level", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{
			"zeta":  "z",
			"alpha": map[string]any{"b": "2", "a": "1"},
		}, 2)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"alpha\": {\n    \"a\": \"1\",\n    \"b\": \"2\"\n  },\n  \"zeta\": \"z\"\n}\n", got)
	})

	t.Run("byte order not locale order", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{"b": "", "B": "", "a": "", "_": ""}, 0)
		require.NoError(t, err)
		assert.Equal(t, "{\"B\":\"\",\"_\":\"\",\"a\":\"\",\"b\":\"\"}\n", got)
	})

	t.Run("independent of insertion order", func(t *testing.T) {
		t.Parallel()

		keys := []string{"k1", "k9", "k3", "k7", "k5", "k2"}
		first := map[string]any{}
		second := map[string]any{}
		for i := range keys {
			first[keys[i]] = map[string]any{"v": keys[i]}
			second[keys[len(keys)-1-i]] = map[string]any{"v": keys[len(keys)-1-i]}
		}

		a, err := stablejson.Marshal(first, 2)
		require.NoError(t, err)
		b, err := stablejson.Marshal(second, 2)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("exactly one trailing newline", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{"a": "x"}, 4)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(got, "}\n"))
		assert.False(t, strings.HasSuffix(got, "\n\n"))
		assert.Contains(t, got, "\n    \"a\"")
	})

	t.Run("does not escape html", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{"a": "<b>Tom & Jerry</b>"}, 0)
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":\"<b>Tom & Jerry</b>\"}\n", got)
	})

	t.Run("arrays keep order", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{"a": []any{"z", "a"}}, 0)
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":[\"z\",\"a\"]}\n", got)
	})

	t.Run("empty object", func(t *testing.T) {
		t.Parallel()

		got, err := stablejson.MarshalString(map[string]any{}, 2)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", got)
	})

	t.Run("negative indent", func(t *testing.T) {
		t.Parallel()

		_, err := stablejson.Marshal(map[string]any{}, -1)
		require.ErrorIs(t, err, stablejson.ErrNegativeIndent)
	})
}

func TestMarshalEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
		same  bool
	}{
		{name: "line separator", value: "a\u2028b", want: `{"v":"a\u2028b"}` + "\n", same: true},
		{name: "paragraph separator", value: "a\u2029b", want: `{"v":"a\u2029b"}` + "\n", same: true},
		{name: "html stays raw", value: "<b>&</b>", want: `{"v":"<b>&</b>"}` + "\n", same: true},
		{name: "invalid utf-8", value: "a\xffb", want: `{"v":"a\ufffdb"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := stablejson.Marshal(map[string]string{"v": tt.value}, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			var back map[string]string
			require.NoError(t, json.Unmarshal(got, &back))
			if tt.same {
				assert.Equal(t, tt.value, back["v"])
			} else {
				assert.Equal(t, "a\uFFFDb", back["v"])
			}
		})
	}
}
