package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/schemas"
	"github.com/jonathan/career-navigator/internal/shape"
	"github.com/jonathan/career-navigator/internal/types"
)

// maxFindings caps data-quality notices per render.
const maxFindings = 3

// SkillsRadar draws technical skills on a [0,5] radar. Soft skills and
// industry knowledge follow as bullet lists when present.
func SkillsRadar(t Target, input any) {
	v := shape.FromAny(input)
	t.Section("Skills")
	if !renderable(t, v, "skills") {
		return
	}
	if v.Kind() != shape.KindObject {
		showAsIs(t, "Extracted skills", v, "Unexpected skills format")
		return
	}

	skills := types.DecodeSkills(v, types.CategoryTechnical)
	if len(skills) == 0 {
		t.Notice(LevelInfo, "No technical skills data to chart.")
	} else {
		chart := RadarChart{Title: "Technical skills", Min: RadarMin, Max: RadarMax}
		for _, s := range skills {
			chart.Points = append(chart.Points, RadarPoint{Label: s.Name, Value: s.ProficiencyOrDefault()})
		}
		t.Radar(chart)
	}

	for _, category := range []string{types.CategorySoft, types.CategoryIndustry} {
		entries := types.DecodeSkills(v, category)
		if len(entries) == 0 {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		t.Bullets(categoryTitle(category), names)
	}

	reportFindings(t, schemas.Skills, v)
}

// CareerPathTimeline draws each path's progression as year-span bars, with
// required skills and salary progression shown only when present.
func CareerPathTimeline(t Target, input any) {
	v := shape.FromAny(input)
	t.Section("Career paths")
	if !renderable(t, v, "career paths") {
		return
	}

	paths, ok := types.ResolveCareerPaths(v)
	if !ok {
		showAsIs(t, "Career paths", v, "Unexpected career path format")
		return
	}
	if len(paths) == 0 {
		t.Notice(LevelInfo, "No career paths were generated.")
		return
	}

	for i, p := range paths {
		title := p.Title
		if title == "" {
			title = fmt.Sprintf("Career Path %d", i+1)
		}
		t.Section(title)

		if p.HasProgression {
			renderProgression(t, title, p.Progression)
		}
		if p.HasRequiredSkills && len(p.RequiredSkills) > 0 {
			t.Bullets("Required skills", p.RequiredSkills)
		}
		if p.HasSalaryProgression && len(p.SalaryProgression) > 0 {
			renderSalary(t, p.SalaryProgression)
		}
	}

	reportFindings(t, schemas.CareerPaths, v)
}

func renderProgression(t Target, title string, steps []types.ProgressionStep) {
	chart := TimelineChart{Title: title}
	for _, step := range steps {
		role := step.Role
		if role == "" {
			role = "Unnamed role"
		}
		if !step.HasSpan() {
			t.Notice(LevelWarning, fmt.Sprintf("%s: %q has no start or end year and is not on the timeline.", title, role))
			continue
		}
		bar := TimelineBar{
			Path:      title,
			Role:      role,
			Start:     *step.StartYear,
			End:       *step.EndYear,
			Color:     step.SalaryRange,
			Valid:     step.Valid(),
			KeySkills: step.KeySkills,
		}
		if !bar.Valid {
			t.Notice(LevelWarning, fmt.Sprintf("%s: %q ends (%d) before it starts (%d).", title, role, bar.End, bar.Start))
		}
		chart.Bars = append(chart.Bars, bar)
	}
	if len(chart.Bars) > 0 {
		t.Timeline(chart)
	}
}

func renderSalary(t Target, points []types.SalaryPoint) {
	chart := LineChart{Title: "Salary progression"}
	var unparsed []string
	for _, pt := range points {
		if pt.Amount == nil {
			unparsed = append(unparsed, fmt.Sprintf("%s: %s", pt.Year, pt.Label))
			continue
		}
		chart.Points = append(chart.Points, LinePoint{X: pt.Year, Y: *pt.Amount, Label: pt.Label})
	}
	if len(chart.Points) > 0 {
		t.LineSeries(chart)
	}
	if len(unparsed) > 0 {
		t.Bullets("Salary notes", unparsed)
	}
}

// LearningPath draws the recommendations as ordered steps.
func LearningPath(t Target, input any) {
	v := shape.FromAny(input)
	t.Section("Learning path")
	if !renderable(t, v, "learning plan") {
		return
	}

	items, ok := types.ResolveLearningItems(v)
	if !ok {
		showAsIs(t, "Learning plan", v, "Unexpected learning plan format")
		return
	}
	if len(items) == 0 {
		t.Notice(LevelInfo, "No learning recommendations were generated.")
		return
	}

	steps := make([]Step, 0, len(items))
	for i, item := range items {
		step := Step{
			Number:         i + 1,
			Title:          item.Title,
			Description:    item.Description,
			TimeCommitment: item.TimeCommitment,
			Project:        item.Project,
		}
		if step.Title == "" {
			step.Title = fmt.Sprintf("Step %d", i+1)
		}
		if item.ImpactScore != nil {
			score := item.ClampedImpact()
			step.ImpactScore = &score
		}
		if item.HasSkillsDeveloped && len(item.SkillsDeveloped) > 0 {
			step.SkillsDeveloped = item.SkillsDeveloped
		}
		steps = append(steps, step)
	}
	t.Steps(steps)

	reportFindings(t, schemas.LearningPlan, v)
}

// renderable handles the empty and raw-fallback cases. It returns false when
// nothing more should be drawn.
func renderable(t Target, v shape.Value, what string) bool {
	switch {
	case v.IsZero():
		t.Notice(LevelInfo, fmt.Sprintf("No %s data yet.", what))
		return false
	case v.IsRaw():
		t.Notice(LevelWarning, fmt.Sprintf("The %s response was not valid JSON. Showing it as text.", what))
		t.Raw(strings.ToUpper(what[:1])+what[1:], v.Text())
		return false
	default:
		return true
	}
}

func showAsIs(t Target, title string, v shape.Value, msg string) {
	t.Notice(LevelWarning, msg+". Showing the data as received.")
	t.Raw(title, v.Document())
}

func reportFindings(t Target, schema string, v shape.Value) {
	findings := schemas.Check(schema, v)
	for i, f := range findings {
		if i == maxFindings {
			t.Notice(LevelInfo, fmt.Sprintf("%d more data-quality issues not shown.", len(findings)-maxFindings))
			break
		}
		t.Notice(LevelWarning, "Data quality: "+f.String())
	}
}

func categoryTitle(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
