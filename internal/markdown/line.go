package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Run is a piece of text sharing one style.
type Run struct {
	Text  string
	Style lipgloss.Style
}

// Line is one terminal row made of styled runs. A Line with no runs is a blank
// separator.
type Line struct {
	Runs []Run
}

// Blank reports whether the line is a separator with no runs at all.
func (l Line) Blank() bool {
	return len(l.Runs) == 0
}

// Width returns the display width of the line in terminal columns.
func (l Line) Width() int {
	w := 0
	for _, r := range l.Runs {
		w += ansi.StringWidth(r.Text)
	}
	return w
}

// String returns the unstyled text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Render returns the line with each run's style applied.
func (l Line) Render() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Style.Render(r.Text))
	}
	return b.String()
}

// RenderLines joins rendered lines with newlines.
func RenderLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Render()
	}
	return strings.Join(parts, "\n")
}
