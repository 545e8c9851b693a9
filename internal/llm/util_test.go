package llm

import (
	"testing"

	"github.com/jonathan/career-navigator/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the JSON:\n{\"company\": \"Acme\"}",
			expected: `{"company": "Acme"}`,
		},
		{
			name:     "conversational preamble",
			input:    "Based on the company information provided, I've analyzed the brand voice. Here's the structured output:\n\n{\"company\": \"Test\", \"tone\": \"professional\"}",
			expected: `{"company": "Test", "tone": "professional"}`,
		},
		{
			name:     "preamble with multiple sentences",
			input:    "I analyzed the text. The company values innovation. Here is the result: {\"values\": [\"innovation\"]}",
			expected: `{"values": ["innovation"]}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the items:\n[\"item1\", \"item2\"]",
			expected: `["item1", "item2"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"outer\": {\"inner\": \"value\"}}",
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"message\": \"He said \\\"hello\\\"\"}",
			expected: `{"message": "He said \"hello\""}`,
		},
		{
			name:     "deeply nested",
			input:    "Here: {\"a\": {\"b\": {\"c\": {\"d\": \"deep\"}}}}",
			expected: `{"a": {"b": {"c": {"d": "deep"}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_NoJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"prose", "  I could not produce a plan.  "},
		{"empty", ""},
		{"unbalanced payload", `{"paths": [`},
		{"bracketed aside in prose", "I could not find enough detail [for example, dates] in this profile to list skills."},
		{"brace aside in prose", "Use the {name} placeholder when you write the summary."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_SkipsAsidesBeforePayload(t *testing.T) {
	input := "Sure! Skills listed in [brackets] below:\n{\"technical_skills\": [\"Go\"]}"
	assert.Equal(t, `{"technical_skills": ["Go"]}`, CleanJSONBlock(input))
}

// Cleaned model output feeds the normalizer, so prose must survive as the raw
// fallback and a payload after an aside must still parse.
func TestCleanJSONBlock_ThenNormalize(t *testing.T) {
	prose := "I could not find enough detail [for example, dates] in this profile to list skills."
	v := shape.Normalize(CleanJSONBlock(prose))
	require.Equal(t, shape.KindRaw, v.Kind())
	assert.Equal(t, prose, v.Text())

	v = shape.Normalize(CleanJSONBlock("Sure! Skills listed in [brackets] below:\n{\"technical_skills\":[\"Go\"]}"))
	require.Equal(t, shape.KindObject, v.Kind())
	assert.Equal(t, []any{"Go"}, v.Object()["technical_skills"])

	v = shape.Normalize(CleanJSONBlock("```json\n[{\"title\": \"Staff Engineer\"}]\n```"))
	assert.Equal(t, shape.KindList, v.Kind())
}
