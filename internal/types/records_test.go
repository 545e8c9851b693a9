package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/shape"
)

func TestDecodeSkills_MixedEntries(t *testing.T) {
	v := shape.Normalize(`{"technical_skills": ["Python", {"name": "Go", "proficiency": 4}]}`)

	skills := DecodeSkills(v, CategoryTechnical)
	require.Len(t, skills, 2)

	assert.Equal(t, "Python", skills[0].Name)
	assert.Nil(t, skills[0].Proficiency, "bare names carry no stored proficiency")
	assert.Equal(t, 3.0, skills[0].ProficiencyOrDefault())

	assert.Equal(t, "Go", skills[1].Name)
	assert.Equal(t, 4.0, skills[1].ProficiencyOrDefault())
}

func TestDecodeSkills_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []SkillEntry
	}{
		{"missing category", `{"soft_skills": ["Mentoring"]}`, nil},
		{"raw fallback", `not json`, nil},
		{"bare list", `["Go"]`, nil},
		{"empty category", `{"technical_skills": []}`, []SkillEntry{}},
		{"unnamed record", `{"technical_skills": [{"proficiency": 2}]}`, []SkillEntry{{Name: "Unknown", Proficiency: ptr(2.0)}}},
		{"string proficiency and years", `{"technical_skills": [{"name": "SQL", "proficiency": "5", "years": 3}]}`,
			[]SkillEntry{{Name: "SQL", Proficiency: ptr(5.0), Years: ptr(3.0)}}},
		{"object category", `{"technical_skills": {"Rust": 2, "Go": {"proficiency": 5}}}`,
			[]SkillEntry{{Name: "Go", Proficiency: ptr(5.0)}, {Name: "Rust", Proficiency: ptr(2.0)}}},
		{"empty names skipped", `{"technical_skills": ["", null, "Go"]}`, []SkillEntry{{Name: "Go"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeSkills(shape.Normalize(tt.input), CategoryTechnical))
		})
	}
}

func TestProficiencyOrDefault_Clamps(t *testing.T) {
	assert.Equal(t, 5.0, SkillEntry{Proficiency: ptr(9.0)}.ProficiencyOrDefault())
	assert.Equal(t, 1.0, SkillEntry{Proficiency: ptr(0.0)}.ProficiencyOrDefault())
	assert.Equal(t, 2.5, SkillEntry{Proficiency: ptr(2.5)}.ProficiencyOrDefault())
}

func TestSkillCategories(t *testing.T) {
	v := shape.Normalize(`{"technical_skills": [], "industry_knowledge": [], "soft_skills": []}`)
	assert.Equal(t, []string{CategoryIndustry, CategorySoft, CategoryTechnical}, SkillCategories(v))
	assert.Nil(t, SkillCategories(shape.Raw("x")))
}

func TestResolveCareerPaths_Shapes(t *testing.T) {
	const path = `{"title": "X", "progression": [{"role": "Jr", "start_year": 2020, "end_year": 2022, "salary_range": "A"}]}`

	tests := []struct {
		name   string
		input  string
		wantOK bool
		count  int
	}{
		{"bare list", `[` + path + `]`, true, 1},
		{"wrapped", `{"paths": [` + path + `, {"title": "Y"}]}`, true, 2},
		{"wrong key", `{"careers": []}`, false, 0},
		{"paths not a list", `{"paths": "none"}`, false, 0},
		{"raw", `I cannot help with that`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, ok := ResolveCareerPaths(shape.Normalize(tt.input))
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, paths, tt.count)
		})
	}
}

func TestResolveCareerPaths_Fields(t *testing.T) {
	v := shape.Normalize(`[{
		"title": "Platform Lead",
		"progression": [
			{"role": "Senior", "start_year": "2024", "end_year": 2026, "salary_range": "$150k-$180k", "key_skills": ["Go"]},
			{"role": "Lead", "start_year": 2029, "end_year": 2027}
		],
		"required_skills": ["Kubernetes", "Mentoring"],
		"salary_progression": {"2030": "$210,000", "2026": 160000, "2028": "190k"}
	}]`)

	paths, ok := ResolveCareerPaths(v)
	require.True(t, ok)
	require.Len(t, paths, 1)
	p := paths[0]

	assert.Equal(t, "Platform Lead", p.Title)
	require.True(t, p.HasProgression)
	require.Len(t, p.Progression, 2)
	assert.True(t, p.Progression[0].Valid())
	assert.Equal(t, 2024, *p.Progression[0].StartYear)
	assert.Equal(t, []string{"Go"}, p.Progression[0].KeySkills)
	assert.True(t, p.Progression[1].HasSpan())
	assert.False(t, p.Progression[1].Valid(), "start after end is flagged")

	assert.True(t, p.HasRequiredSkills)
	assert.Equal(t, []string{"Kubernetes", "Mentoring"}, p.RequiredSkills)

	require.True(t, p.HasSalaryProgression)
	var years []string
	var amounts []float64
	for _, pt := range p.SalaryProgression {
		years = append(years, pt.Year)
		require.NotNil(t, pt.Amount)
		amounts = append(amounts, *pt.Amount)
	}
	assert.Equal(t, []string{"2026", "2028", "2030"}, years)
	assert.Equal(t, []float64{160000, 190000, 210000}, amounts)
}

func TestResolveCareerPaths_AbsentSections(t *testing.T) {
	paths, ok := ResolveCareerPaths(shape.Normalize(`[{"title": "Solo"}]`))
	require.True(t, ok)
	assert.False(t, paths[0].HasProgression)
	assert.False(t, paths[0].HasRequiredSkills)
	assert.False(t, paths[0].HasSalaryProgression)
}

func TestSalaryProgression_ListForm(t *testing.T) {
	paths, ok := ResolveCareerPaths(shape.Normalize(`[{"salary_progression": [
		{"year": "Year 5", "salary": "competitive"},
		{"year": "Year 1", "salary": 100000}
	]}]`))
	require.True(t, ok)
	points := paths[0].SalaryProgression
	require.Len(t, points, 2)
	assert.Equal(t, "Year 1", points[0].Year)
	assert.Nil(t, points[1].Amount)
	assert.Equal(t, "competitive", points[1].Label)
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{120000.0, 120000, true},
		{"120000", 120000, true},
		{"$120,000", 120000, true},
		{"95k", 95000, true},
		{"USD 80,000", 80000, true},
		{"a lot", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSalary(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestResolveLearningItems(t *testing.T) {
	v := shape.Normalize(`{"recommendations": [
		{"title": "Distributed Systems", "description": "Consensus and replication", "time_commitment": "6 weeks"},
		{"title": "CKA", "description": "Certification", "time_commitment": "3 months", "impact_score": 12,
		 "skills_developed": ["Kubernetes"], "project": {"title": "Homelab", "description": "Run a cluster"}}
	]}`)

	items, ok := ResolveLearningItems(v)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Distributed Systems", first.Title)
	assert.Equal(t, "6 weeks", *first.TimeCommitment)
	assert.Nil(t, first.ImpactScore)
	assert.Nil(t, first.Project)
	assert.False(t, first.HasSkillsDeveloped)

	second := items[1]
	assert.Equal(t, 10.0, second.ClampedImpact())
	assert.Equal(t, []string{"Kubernetes"}, second.SkillsDeveloped)
	require.NotNil(t, second.Project)
	assert.Equal(t, "Homelab: Run a cluster", *second.Project)
}

func TestResolveLearningItems_Shapes(t *testing.T) {
	_, ok := ResolveLearningItems(shape.Normalize(`[{"title": "A"}]`))
	assert.True(t, ok)

	_, ok = ResolveLearningItems(shape.Normalize(`{"paths": []}`))
	assert.False(t, ok)

	_, ok = ResolveLearningItems(shape.Raw("plain text"))
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
