package types

import (
	"fmt"
	"sort"

	"github.com/jonathan/career-navigator/internal/shape"
)

// Skill categories requested from the extraction prompt.
const (
	CategoryTechnical = "technical_skills"
	CategorySoft      = "soft_skills"
	CategoryIndustry  = "industry_knowledge"
)

// Proficiency scale. The default applies only when rendering.
const (
	MinProficiency     = 1.0
	MaxProficiency     = 5.0
	DefaultProficiency = 3.0
)

// SkillEntry is one skill in a category. Bare names have no proficiency or years.
type SkillEntry struct {
	Name        string
	Proficiency *float64
	Years       *float64
}

// ProficiencyOrDefault returns the proficiency clamped to [1,5], or 3 when absent.
func (s SkillEntry) ProficiencyOrDefault() float64 {
	if s.Proficiency == nil {
		return DefaultProficiency
	}
	return ClampProficiency(*s.Proficiency)
}

// ClampProficiency forces p into [1,5].
func ClampProficiency(p float64) float64 {
	switch {
	case p < MinProficiency:
		return MinProficiency
	case p > MaxProficiency:
		return MaxProficiency
	default:
		return p
	}
}

// DecodeSkills reads one category from extracted skills. It returns nil when v
// is not an object or the category is missing. Entries may be names, skill
// records, or (for a category given as an object) name-to-proficiency pairs.
func DecodeSkills(v shape.Value, category string) []SkillEntry {
	if v.Kind() != shape.KindObject {
		return nil
	}
	raw, ok := v.Object()[category]
	if !ok {
		return nil
	}

	switch entries := raw.(type) {
	case []any:
		out := make([]SkillEntry, 0, len(entries))
		for _, entry := range entries {
			if skill, ok := decodeSkillEntry(entry); ok {
				out = append(out, skill)
			}
		}
		return out
	case map[string]any:
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]SkillEntry, 0, len(names))
		for _, name := range names {
			skill := SkillEntry{Name: name}
			switch detail := entries[name].(type) {
			case map[string]any:
				skill.Proficiency = numberPtr(detail["proficiency"])
				skill.Years = numberPtr(firstPresent(detail, "years", "years_experience"))
			default:
				skill.Proficiency = numberPtr(detail)
			}
			out = append(out, skill)
		}
		return out
	case string:
		if entries == "" {
			return nil
		}
		return []SkillEntry{{Name: entries}}
	default:
		return nil
	}
}

func decodeSkillEntry(entry any) (SkillEntry, bool) {
	switch t := entry.(type) {
	case string:
		if t == "" {
			return SkillEntry{}, false
		}
		return SkillEntry{Name: t}, true
	case map[string]any:
		name, _ := asString(firstPresent(t, "name", "skill"))
		if name == "" {
			name = "Unknown"
		}
		return SkillEntry{
			Name:        name,
			Proficiency: numberPtr(firstPresent(t, "proficiency", "level")),
			Years:       numberPtr(firstPresent(t, "years", "years_experience")),
		}, true
	case nil:
		return SkillEntry{}, false
	default:
		return SkillEntry{Name: fmt.Sprint(t)}, true
	}
}

// SkillCategories returns the category keys present in v, sorted.
func SkillCategories(v shape.Value) []string {
	if v.Kind() != shape.KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.Object()))
	for key := range v.Object() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
