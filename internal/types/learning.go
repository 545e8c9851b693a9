package types

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/shape"
)

// RecommendationsKey wraps the learning items in an object response.
const RecommendationsKey = "recommendations"

// Impact score scale.
const (
	MinImpactScore = 0.0
	MaxImpactScore = 10.0
)

// LearningItem is one step of a learning plan. Pointer fields are optional.
type LearningItem struct {
	Title              string
	Description        string
	TimeCommitment     *string
	ImpactScore        *float64
	SkillsDeveloped    []string
	HasSkillsDeveloped bool
	Project            *string
}

// ClampedImpact returns the impact score forced into [0,10]. Only meaningful
// when ImpactScore is set.
func (l LearningItem) ClampedImpact() float64 {
	if l.ImpactScore == nil {
		return MinImpactScore
	}
	switch s := *l.ImpactScore; {
	case s < MinImpactScore:
		return MinImpactScore
	case s > MaxImpactScore:
		return MaxImpactScore
	default:
		return s
	}
}

// ResolveLearningItems unwraps {"recommendations": [...]} or accepts a bare
// list. The bool is false when v matches neither shape.
func ResolveLearningItems(v shape.Value) ([]LearningItem, bool) {
	items, ok := resolveList(v, RecommendationsKey)
	if !ok {
		return nil, false
	}

	out := make([]LearningItem, 0, len(items))
	for _, item := range items {
		out = append(out, decodeLearningItem(item))
	}
	return out, true
}

func decodeLearningItem(item any) LearningItem {
	m, ok := item.(map[string]any)
	if !ok {
		title, _ := asString(item)
		return LearningItem{Title: title}
	}

	out := LearningItem{
		TimeCommitment: stringPtr(m["time_commitment"]),
		ImpactScore:    numberPtr(m["impact_score"]),
		Project:        projectText(m["project"]),
	}
	out.Title, _ = asString(firstPresent(m, "title", "course"))
	out.Description, _ = asString(m["description"])
	if skills, ok := m["skills_developed"].([]any); ok {
		out.SkillsDeveloped, out.HasSkillsDeveloped = asStrings(skills)
	}
	return out
}

// projectText flattens a project given as text or as {title, description}.
func projectText(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		var parts []string
		if title, ok := asString(firstPresent(t, "title", "name")); ok && title != "" {
			parts = append(parts, title)
		}
		if desc, ok := asString(t["description"]); ok && desc != "" {
			parts = append(parts, desc)
		}
		if len(parts) == 0 {
			return nil
		}
		text := strings.Join(parts, ": ")
		return &text
	default:
		return stringPtr(v)
	}
}
