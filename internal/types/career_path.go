package types

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/career-navigator/internal/shape"
)

// PathsKey wraps the career path list in an object response.
const PathsKey = "paths"

// ProgressionStep is one role on a career path.
type ProgressionStep struct {
	Role        string
	StartYear   *int
	EndYear     *int
	SalaryRange string
	KeySkills   []string
}

// HasSpan reports whether both years are present.
func (p ProgressionStep) HasSpan() bool {
	return p.StartYear != nil && p.EndYear != nil
}

// Valid reports whether the step has a span with start_year <= end_year.
func (p ProgressionStep) Valid() bool {
	return p.HasSpan() && *p.StartYear <= *p.EndYear
}

// SalaryPoint is one entry of a salary progression. Amount is nil when the
// label could not be read as a number.
type SalaryPoint struct {
	Year   string
	Amount *float64
	Label  string
}

// CareerPath is one candidate path. The Has* flags distinguish a missing
// section from an empty one.
type CareerPath struct {
	Title             string
	Progression       []ProgressionStep
	RequiredSkills    []string
	SalaryProgression []SalaryPoint

	HasProgression       bool
	HasRequiredSkills    bool
	HasSalaryProgression bool
}

// ResolveCareerPaths unwraps {"paths": [...]} or accepts a bare list. The bool
// is false when v matches neither shape.
func ResolveCareerPaths(v shape.Value) ([]CareerPath, bool) {
	items, ok := resolveList(v, PathsKey)
	if !ok {
		return nil, false
	}

	paths := make([]CareerPath, 0, len(items))
	for _, item := range items {
		paths = append(paths, decodeCareerPath(item))
	}
	return paths, true
}

// resolveList implements the shared unwrap rule for keyed-object-or-bare-list responses.
func resolveList(v shape.Value, key string) ([]any, bool) {
	switch v.Kind() {
	case shape.KindList:
		return v.List(), true
	case shape.KindObject:
		inner, ok := v.Field(key)
		if !ok || inner.Kind() != shape.KindList {
			return nil, false
		}
		return inner.List(), true
	default:
		return nil, false
	}
}

func decodeCareerPath(item any) CareerPath {
	m, ok := item.(map[string]any)
	if !ok {
		title, _ := asString(item)
		return CareerPath{Title: title}
	}

	var path CareerPath
	path.Title, _ = asString(m["title"])

	if raw, ok := m["progression"]; ok && raw != nil {
		if steps, ok := raw.([]any); ok {
			path.HasProgression = true
			for _, step := range steps {
				path.Progression = append(path.Progression, decodeStep(step))
			}
		}
	}

	if raw, ok := m["required_skills"]; ok && raw != nil {
		path.RequiredSkills, path.HasRequiredSkills = asStrings(raw)
	}

	if raw, ok := m["salary_progression"]; ok && raw != nil {
		path.SalaryProgression, path.HasSalaryProgression = decodeSalaryProgression(raw)
	}

	return path
}

func decodeStep(step any) ProgressionStep {
	m, ok := step.(map[string]any)
	if !ok {
		role, _ := asString(step)
		return ProgressionStep{Role: role}
	}

	out := ProgressionStep{
		StartYear: intPtr(m["start_year"]),
		EndYear:   intPtr(m["end_year"]),
	}
	out.Role, _ = asString(firstPresent(m, "role", "title"))
	out.SalaryRange, _ = asString(m["salary_range"])
	out.KeySkills, _ = asStrings(m["key_skills"])
	return out
}

// decodeSalaryProgression accepts a year-to-salary mapping or a list of
// {year, salary} records, and returns the points ordered by year.
func decodeSalaryProgression(raw any) ([]SalaryPoint, bool) {
	var points []SalaryPoint
	switch t := raw.(type) {
	case map[string]any:
		for year, salary := range t {
			points = append(points, salaryPoint(year, salary))
		}
	case []any:
		for _, entry := range t {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			year, _ := asString(m["year"])
			points = append(points, salaryPoint(year, firstPresent(m, "salary", "amount")))
		}
	default:
		return nil, false
	}

	sort.SliceStable(points, func(i, j int) bool {
		return yearLess(points[i].Year, points[j].Year)
	})
	return points, true
}

func salaryPoint(year string, salary any) SalaryPoint {
	label, _ := asString(salary)
	point := SalaryPoint{Year: year, Label: label}
	if amount, ok := ParseSalary(salary); ok {
		point.Amount = &amount
	}
	return point
}

// ParseSalary reads amounts such as 120000, "120000", "$120,000" or "120k".
func ParseSalary(v any) (float64, bool) {
	if f, ok := asNumber(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("$", "", ",", "", " ", "", "usd", "").Replace(s)
	multiplier := 1.0
	if strings.HasSuffix(s, "k") {
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * multiplier, true
}

// yearLess orders by the first integer in each key ("2025", "Year 3"), then lexically.
func yearLess(a, b string) bool {
	na, okA := leadingNumber(a)
	nb, okB := leadingNumber(b)
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

func leadingNumber(s string) (int, bool) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
