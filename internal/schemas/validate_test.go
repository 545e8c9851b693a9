package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/shape"
)

func TestAllSchemaFiles_Compile(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{CareerPaths, LearningPlan, Skills}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := defs.ReadFile("defs/" + name + ".schema.json")
			require.NoError(t, err)
			var v any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")

			_, err = Load(name)
			assert.NoError(t, err)
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("nope")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope", loadErr.Name)
	assert.Contains(t, err.Error(), "not found")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		input     string
		wantField string
	}{
		{"valid skills", Skills, `{"technical_skills": ["Python", {"name": "Go", "proficiency": 4}]}`, ""},
		{"skills missing categories", Skills, `{"hobbies": []}`, "(root)"},
		{"proficiency out of range", Skills, `{"technical_skills": [{"name": "Go", "proficiency": 7}]}`, "technical_skills.0"},
		{"valid wrapped paths", CareerPaths, `{"paths": [{"title": "X", "progression": [{"role": "Jr", "start_year": 2020, "end_year": 2022}]}]}`, ""},
		{"valid bare paths", CareerPaths, `[{"title": "X"}]`, ""},
		{"path without title", CareerPaths, `[{"required_skills": ["Go"]}]`, "0"},
		{"year as text", CareerPaths, `[{"title": "X", "progression": [{"role": "Jr", "start_year": "soon", "end_year": 2022}]}]`, "0.progression.0.start_year"},
		{"valid plan", LearningPlan, `{"recommendations": [{"title": "CKA", "impact_score": 8}]}`, ""},
		{"impact too high", LearningPlan, `[{"title": "CKA", "impact_score": 11}]`, "0.impact_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Check(tt.schema, shape.Normalize(tt.input))
			if tt.wantField == "" {
				assert.Empty(t, findings)
				return
			}
			require.NotEmpty(t, findings)
			var fields []string
			for _, f := range findings {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestCheck_RawAndZero(t *testing.T) {
	assert.Nil(t, Check(Skills, shape.Raw("not json")))
	assert.Nil(t, Check(CareerPaths, shape.Value{}))
}

func TestCheck_UnknownSchema(t *testing.T) {
	findings := Check("nope", shape.Normalize(`{}`))
	require.Len(t, findings, 1)
	assert.Equal(t, "(schema)", findings[0].Field)
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(LearningPlan, []any{map[string]any{"impact_score": 3.0}})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "title")
}
