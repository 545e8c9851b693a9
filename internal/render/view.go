package render

// Block types in a View.
const (
	BlockSection  = "section"
	BlockNotice   = "notice"
	BlockRaw      = "raw"
	BlockRadar    = "radar"
	BlockTimeline = "timeline"
	BlockBullets  = "bullets"
	BlockLine     = "line"
	BlockSteps    = "steps"
)

// Block is one rendered element. Only the fields for its Type are set.
type Block struct {
	Type     string         `json:"type"`
	Title    string         `json:"title,omitempty"`
	Level    Level          `json:"level,omitempty"`
	Message  string         `json:"message,omitempty"`
	Value    any            `json:"value,omitempty"`
	Radar    *RadarChart    `json:"radar,omitempty"`
	Timeline *TimelineChart `json:"timeline,omitempty"`
	Items    []string       `json:"items,omitempty"`
	Line     *LineChart     `json:"line,omitempty"`
	Steps    []Step         `json:"steps,omitempty"`
}

// View collects blocks for API clients to draw.
type View struct {
	Blocks []Block `json:"blocks"`
}

// NewView returns an empty view.
func NewView() *View {
	return &View{Blocks: []Block{}}
}

func (v *View) add(b Block) { v.Blocks = append(v.Blocks, b) }

// Section starts a titled group of blocks.
func (v *View) Section(title string) { v.add(Block{Type: BlockSection, Title: title}) }

// Notice adds a message at level.
func (v *View) Notice(level Level, msg string) {
	v.add(Block{Type: BlockNotice, Level: level, Message: msg})
}

// Raw adds a value shown as received.
func (v *View) Raw(title string, value any) { v.add(Block{Type: BlockRaw, Title: title, Value: value}) }

// Radar adds a radar chart.
func (v *View) Radar(chart RadarChart) { v.add(Block{Type: BlockRadar, Title: chart.Title, Radar: &chart}) }

// Timeline adds a time-span chart.
func (v *View) Timeline(chart TimelineChart) {
	v.add(Block{Type: BlockTimeline, Title: chart.Title, Timeline: &chart})
}

// Bullets adds a titled list.
func (v *View) Bullets(title string, items []string) {
	v.add(Block{Type: BlockBullets, Title: title, Items: items})
}

// LineSeries adds a line chart.
func (v *View) LineSeries(chart LineChart) { v.add(Block{Type: BlockLine, Title: chart.Title, Line: &chart}) }

// Steps adds an ordered list of steps.
func (v *View) Steps(steps []Step) { v.add(Block{Type: BlockSteps, Steps: steps}) }

// Find returns the blocks of the given type.
func (v *View) Find(blockType string) []Block {
	var out []Block
	for _, b := range v.Blocks {
		if b.Type == blockType {
			out = append(out, b)
		}
	}
	return out
}

// Notices returns the notice messages at level.
func (v *View) Notices(level Level) []string {
	var out []string
	for _, b := range v.Find(BlockNotice) {
		if b.Level == level {
			out = append(out, b.Message)
		}
	}
	return out
}
