package render

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTextTarget_SkillsRadar(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	SkillsRadar(p, `{"technical_skills": ["Python", {"name": "Go", "proficiency": 4}]}`)
	p.Flush()
	output := buf.String()

	assert.Contains(t, output, "SKILLS")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "3/5")
	assert.Contains(t, output, "4/5")
}

func TestTextTarget_Timeline(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	CareerPathTimeline(p, `[{"title": "X", "progression": [{"role": "Jr", "start_year": 2020, "end_year": 2022, "salary_range": "A"}],
		"salary_progression": {"2021": 95000}}]`)
	p.Flush()
	output := buf.String()

	assert.Contains(t, output, "CAREER PATHS")
	assert.Contains(t, output, "2020─2022  Jr [A]")
	assert.Contains(t, output, "$95,000")
}

func TestTextTarget_LearningSteps(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	LearningPath(p, `[{"title": "CKA", "description": "Certification", "time_commitment": "3 months", "impact_score": 8, "project": "Homelab"},
		{"title": "Writing", "description": "Design docs"}]`)
	p.Flush()
	output := buf.String()

	assert.Contains(t, output, "1. CKA")
	assert.Contains(t, output, "Impact: 8/10")
	assert.Contains(t, output, "Project: Homelab")
	assert.Contains(t, output, "2. Writing")
	assert.Equal(t, 1, strings.Count(output, "Impact:"), "second step has no impact score")
}

func TestTextTarget_RawFallback(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	LearningPath(p, "I'm sorry, I can't do that.")
	p.Flush()
	output := buf.String()

	assert.Contains(t, output, "[!]")
	assert.Contains(t, output, "I'm sorry, I can't do that.")
}

func TestTextTarget_Flush_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	p.Flush()

	assert.Empty(t, buf.String())
}

func TestPrintBox_LineWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextTarget(&buf)

	p.Section("Long")
	p.Bullets("Items", []string{strings.Repeat("word ", 40)})
	p.Raw("Blob", strings.Repeat("x", 200))
	p.Flush()

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:        "$0",
		950:      "$950",
		95000:    "$95,000",
		1250000:  "$1,250,000",
		-4200:    "-$4,200",
		99999.6:  "$100,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatAmount(in))
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("  alpha beta gamma delta", 12)
	assert.Equal(t, []string{"  alpha beta", "    gamma", "    delta"}, lines)
	assert.Equal(t, []string{"short"}, wrap("short", 12))
}
