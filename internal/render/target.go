// Package render turns normalized LLM output into three layouts: a skills
// radar, a career path timeline and a stepped learning path. Renderers accept
// raw text or decoded data and degrade to a raw display instead of failing.
package render

// Level is the severity of a notice.
type Level string

// Notice levels.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Radar scale bounds.
const (
	RadarMin = 0.0
	RadarMax = 5.0
)

// RadarPoint is one spoke of a radar chart.
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RadarChart is a single radial series over a fixed scale.
type RadarChart struct {
	Title  string       `json:"title"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Points []RadarPoint `json:"points"`
}

// TimelineBar spans one role between two years. Valid is false when the role
// ends before it starts; the bar is still drawn.
type TimelineBar struct {
	Path      string   `json:"path"`
	Role      string   `json:"role"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Color     string   `json:"color"`
	Valid     bool     `json:"valid"`
	KeySkills []string `json:"key_skills,omitempty"`
}

// TimelineChart groups the bars of one career path.
type TimelineChart struct {
	Title string        `json:"title"`
	Bars  []TimelineBar `json:"bars"`
}

// LinePoint is one sample of a line series.
type LinePoint struct {
	X     string  `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// LineChart is an ordered series of points.
type LineChart struct {
	Title  string      `json:"title"`
	Points []LinePoint `json:"points"`
}

// Step is one learning item. Nil and empty fields are not shown.
type Step struct {
	Number          int      `json:"number"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	TimeCommitment  *string  `json:"time_commitment,omitempty"`
	ImpactScore     *float64 `json:"impact_score,omitempty"`
	SkillsDeveloped []string `json:"skills_developed,omitempty"`
	Project         *string  `json:"project,omitempty"`
}

// Target receives rendering primitives. Implementations decide presentation.
type Target interface {
	Section(title string)
	Notice(level Level, msg string)
	Raw(title string, value any)
	Radar(chart RadarChart)
	Timeline(chart TimelineChart)
	Bullets(title string, items []string)
	LineSeries(chart LineChart)
	Steps(steps []Step)
}
