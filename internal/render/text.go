package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a full-scale radar bar
	barWidth = 20
)

// TextTarget writes boxed terminal output. Content is buffered per section
// and written when the next section starts or on Flush.
type TextTarget struct {
	out   io.Writer
	title string
	lines []string
}

// NewTextTarget creates a TextTarget that writes to the given writer
func NewTextTarget(out io.Writer) *TextTarget {
	return &TextTarget{out: out}
}

// Flush writes the buffered section, if any.
func (p *TextTarget) Flush() {
	if p.title == "" && len(p.lines) == 0 {
		return
	}
	title := p.title
	if title == "" {
		title = "OUTPUT"
	}
	p.printBox(strings.ToUpper(title), p.lines)
	p.title, p.lines = "", nil
}

func (p *TextTarget) Section(title string) {
	p.Flush()
	p.title = title
}

func (p *TextTarget) Notice(level Level, msg string) {
	marker := "i"
	switch level {
	case LevelWarning:
		marker = "!"
	case LevelError:
		marker = "x"
	}
	p.lines = append(p.lines, wrap(fmt.Sprintf("[%s] %s", marker, msg), boxWidth-4)...)
}

func (p *TextTarget) Raw(title string, value any) {
	text, ok := value.(string)
	if !ok {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			text = fmt.Sprint(value)
		} else {
			text = string(data)
		}
	}
	p.lines = append(p.lines, title+":")
	for _, line := range strings.Split(text, "\n") {
		p.lines = append(p.lines, wrap("  "+line, boxWidth-4)...)
	}
}

func (p *TextTarget) Radar(chart RadarChart) {
	p.lines = append(p.lines, chart.Title+":")
	labelWidth := 0
	for _, pt := range chart.Points {
		labelWidth = max(labelWidth, utf8.RuneCountInString(pt.Label))
	}
	labelWidth = min(labelWidth, 18)

	scale := chart.Max - chart.Min
	for _, pt := range chart.Points {
		filled := 0
		if scale > 0 {
			filled = int(math.Round((pt.Value - chart.Min) / scale * barWidth))
		}
		filled = max(0, min(barWidth, filled))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		p.lines = append(p.lines, fmt.Sprintf("  %-*s %s %s/%s",
			labelWidth, truncate(pt.Label, labelWidth), bar, formatNumber(pt.Value), formatNumber(chart.Max)))
	}
}

func (p *TextTarget) Timeline(chart TimelineChart) {
	p.lines = append(p.lines, "Progression:")
	for _, bar := range chart.Bars {
		line := fmt.Sprintf("  %d─%d  %s", bar.Start, bar.End, bar.Role)
		if bar.Color != "" {
			line += fmt.Sprintf(" [%s]", bar.Color)
		}
		if !bar.Valid {
			line += " (!)"
		}
		p.lines = append(p.lines, line)
		if len(bar.KeySkills) > 0 {
			p.lines = append(p.lines, wrap("      skills: "+strings.Join(bar.KeySkills, ", "), boxWidth-4)...)
		}
	}
}

func (p *TextTarget) Bullets(title string, items []string) {
	p.lines = append(p.lines, title+":")
	for _, item := range items {
		p.lines = append(p.lines, wrap("  • "+item, boxWidth-4)...)
	}
}

func (p *TextTarget) LineSeries(chart LineChart) {
	p.lines = append(p.lines, chart.Title+":")
	for _, pt := range chart.Points {
		p.lines = append(p.lines, fmt.Sprintf("  %-10s %s", pt.X, formatAmount(pt.Y)))
	}
}

func (p *TextTarget) Steps(steps []Step) {
	for i, s := range steps {
		p.lines = append(p.lines, wrap(fmt.Sprintf("%d. %s", s.Number, s.Title), boxWidth-4)...)
		if s.TimeCommitment != nil {
			p.lines = append(p.lines, "   Time:   "+*s.TimeCommitment)
		}
		if s.ImpactScore != nil {
			p.lines = append(p.lines, fmt.Sprintf("   Impact: %s/10", formatNumber(*s.ImpactScore)))
		}
		if s.Description != "" {
			p.lines = append(p.lines, wrap("   "+s.Description, boxWidth-4)...)
		}
		if len(s.SkillsDeveloped) > 0 {
			p.lines = append(p.lines, wrap("   Skills: "+strings.Join(s.SkillsDeveloped, ", "), boxWidth-4)...)
		}
		if s.Project != nil {
			p.lines = append(p.lines, wrap("   Project: "+*s.Project, boxWidth-4)...)
		}
		if i < len(steps)-1 {
			p.lines = append(p.lines, "")
		}
	}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *TextTarget) printBox(title string, lines []string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// wrap splits s on spaces into lines of at most width runes, keeping the
// leading indentation on continuation lines.
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	indent := s[:len(s)-len(strings.TrimLeft(s, " "))]
	var lines []string
	current := indent
	for _, word := range strings.Fields(s) {
		switch {
		case current == indent:
			current += word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > width:
			lines = append(lines, current)
			current = indent + "  " + word
		default:
			current += " " + word
		}
	}
	return append(lines, current)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatAmount renders 160000 as "$160,000".
func formatAmount(f float64) string {
	whole := strconv.FormatInt(int64(math.Round(f)), 10)
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-$" + sb.String()
	}
	return "$" + sb.String()
}
