package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ValidJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
	}{
		{"object", `{"technical_skills": ["Go", "Python"]}`, KindObject},
		{"empty object", `{}`, KindObject},
		{"array", `[{"title": "Staff Engineer"}]`, KindList},
		{"empty array", `[]`, KindList},
		{"surrounding whitespace", "\n  {\"paths\": []}\n", KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.wantKind, got.Kind())

			var want any
			require.NoError(t, json.Unmarshal([]byte(tt.input), &want))
			assert.Equal(t, want, got.Document())
		})
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	inputs := []string{
		"",
		"not json at all",
		"```json\n{\"a\": 1}\n```",
		`{"unterminated": `,
		"Here are your skills: Go, Kubernetes",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Normalize(input)
			assert.Equal(t, KindRaw, got.Kind())
			assert.Equal(t, input, got.Text())
			assert.Equal(t, map[string]any{RawResponseKey: input}, got.Document())
		})
	}
}

func TestNormalize_ScalarsDegradeToRaw(t *testing.T) {
	for _, input := range []string{`42`, `"just a string"`, `true`, `null`} {
		got := Normalize(input)
		assert.Equal(t, KindRaw, got.Kind(), input)
		assert.Equal(t, input, got.Text())
	}
}

func TestNormalize_FallbackIsIdempotent(t *testing.T) {
	first := Normalize("the model rambled instead of returning JSON")

	restringified := first.String()
	second := Normalize(restringified)

	assert.Equal(t, KindRaw, second.Kind())
	assert.Equal(t, first.Text(), second.Text())
	assert.Equal(t, first.Document(), second.Document())

	third := Normalize(second.String())
	assert.Equal(t, second, third)
}

func TestFromAny(t *testing.T) {
	t.Run("nil is none", func(t *testing.T) {
		assert.True(t, FromAny(nil).IsZero())
	})

	t.Run("string is normalized", func(t *testing.T) {
		got := FromAny(`[1, 2]`)
		assert.Equal(t, KindList, got.Kind())
	})

	t.Run("value passes through", func(t *testing.T) {
		v := Raw("x")
		assert.Equal(t, v, FromAny(v))
		assert.Equal(t, v, FromAny(&v))
	})

	t.Run("map recognises stored fallback", func(t *testing.T) {
		got := FromAny(map[string]any{RawResponseKey: "oops"})
		assert.True(t, got.IsRaw())
		assert.Equal(t, "oops", got.Text())
	})

	t.Run("map with extra keys stays an object", func(t *testing.T) {
		got := FromAny(map[string]any{RawResponseKey: "oops", "paths": []any{}})
		assert.Equal(t, KindObject, got.Kind())
	})

	t.Run("typed go values round trip through JSON", func(t *testing.T) {
		got := FromAny(map[string][]string{"technical_skills": {"Go"}})
		require.Equal(t, KindObject, got.Kind())
		assert.Equal(t, []any{"Go"}, got.Object()["technical_skills"])
	})
}

func TestValue_Field(t *testing.T) {
	v := Normalize(`{"paths": [{"title": "X"}], "note": "not json"}`)

	paths, ok := v.Field("paths")
	require.True(t, ok)
	assert.Equal(t, KindList, paths.Kind())
	assert.Len(t, paths.List(), 1)

	note, ok := v.Field("note")
	require.True(t, ok)
	assert.True(t, note.IsRaw())

	_, ok = v.Field("missing")
	assert.False(t, ok)

	_, ok = List(nil).Field("paths")
	assert.False(t, ok)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	type doc struct {
		Paths Value `json:"paths"`
	}

	tests := []struct {
		name string
		in   Value
	}{
		{"object", Object(map[string]any{"paths": []any{"a"}})},
		{"list", List([]any{"a", "b"})},
		{"raw", Raw("plain text")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(doc{Paths: tt.in})
			require.NoError(t, err)

			var out doc
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tt.in.Kind(), out.Paths.Kind())
			assert.Equal(t, tt.in.Document(), out.Paths.Document())
		})
	}
}

func TestValue_UnmarshalJSONString(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"{\"paths\": []}"`), &v))
	assert.Equal(t, KindObject, v.Kind())

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsZero())
}

func TestMatch(t *testing.T) {
	describe := func(v Value) string {
		return Match(v,
			func(m map[string]any) string { return "object" },
			func(l []any) string { return "list" },
			func(text string) string { return "raw:" + text },
		)
	}

	assert.Equal(t, "object", describe(Normalize(`{"a":1}`)))
	assert.Equal(t, "list", describe(Normalize(`[1]`)))
	assert.Equal(t, "raw:oops", describe(Normalize("oops")))
	assert.Equal(t, "raw:", describe(Value{}))
}
