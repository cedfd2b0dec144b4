// Package markdown lays out markdown source as fixed-width styled terminal
// lines. Layout is a pure function; callers cache its output per content and
// width.
package markdown

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	parserOnce sync.Once
	mdParser   parser.Parser
)

func markdownParser() parser.Parser {
	parserOnce.Do(func() {
		mdParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough)).Parser()
	})
	return mdParser
}

// Layout renders source into lines no wider than maxWidth display columns
// (clamped to MinWidth), each starting with indent spaces. The result always
// holds at least one line.
func Layout(source string, maxWidth, indent int) []Line {
	if maxWidth < MinWidth {
		maxWidth = MinWidth
	}
	if indent < 0 {
		indent = 0
	}
	src := []byte(source)
	doc := markdownParser().Parse(text.NewReader(src))

	r := &renderer{
		src:      src,
		maxWidth: maxWidth,
		indent:   indent,
		style:    stylePlain,
	}
	_ = ast.Walk(doc, r.walk)
	return r.finish()
}

type listState struct {
	ordered bool
	next    int
	// width of the current item's marker, restored after a nested list ends
	width int
}

type renderer struct {
	src []byte

	lines        []Line
	current      []Run
	currentWidth int
	pendingSpace bool

	maxWidth int
	indent   int

	style      lipgloss.Style
	styleStack []lipgloss.Style

	quoteDepth int
	inCode     bool

	lists      []listState
	itemMarker string
	itemWidth  int
	markerDone bool
}

func (r *renderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Document, *ast.TextBlock:
		// Containers only.

	case *ast.Paragraph:
		if !entering {
			r.flushLine()
			r.pushBlankLine()
		}

	case *ast.Heading:
		if entering {
			r.flushLine()
			r.pushStyle(styleHeading)
		} else {
			r.popStyle()
			r.flushLine()
			r.pushBlankLine()
		}

	case *ast.Emphasis:
		if entering {
			if n.Level >= 2 {
				r.pushStyle(styleStrong)
			} else {
				r.pushStyle(styleEmphasis)
			}
		} else {
			r.popStyle()
		}

	case *extast.Strikethrough:
		if entering {
			r.pushStyle(styleStrikethrough)
		} else {
			r.popStyle()
		}

	case *ast.Link, *ast.Image:
		if entering {
			r.pushStyle(styleLink)
		} else {
			r.popStyle()
		}

	case *ast.AutoLink:
		if entering {
			r.pushStyle(styleLink)
			r.pushText(string(n.Label(r.src)), r.style)
		} else {
			r.popStyle()
		}

	case *ast.Blockquote:
		r.flushLine()
		if entering {
			r.quoteDepth++
		} else {
			r.quoteDepth--
			r.pushBlankLine()
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		r.flushLine()
		if entering {
			r.inCode = true
			r.codeBlockLines(node.Lines())
		} else {
			r.inCode = false
			r.pushBlankLine()
		}

	case *ast.List:
		if entering {
			r.lists = append(r.lists, listState{ordered: n.IsOrdered(), next: n.Start})
		} else if len(r.lists) > 0 {
			r.lists = r.lists[:len(r.lists)-1]
		}

	case *ast.ListItem:
		r.flushLine()
		if entering {
			r.beginItem()
		} else {
			r.endItem()
		}

	case *ast.Text:
		if !entering {
			break
		}
		r.text(string(n.Segment.Value(r.src)))
		switch {
		case n.HardLineBreak():
			r.hardBreak()
		case n.SoftLineBreak():
			r.softBreak()
		}

	case *ast.String:
		if entering {
			r.text(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			r.inlineCode(r.collectText(n))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		if entering {
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				r.text(string(seg.Value(r.src)))
			}
		}

	case *ast.HTMLBlock:
		if entering {
			r.flushLine()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				r.text(string(seg.Value(r.src)))
			}
			if n.HasClosure() {
				r.text(string(n.ClosureLine.Value(r.src)))
			}
			r.flushLine()
		}
	}
	return ast.WalkContinue, nil
}

func (r *renderer) collectText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(r.src))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	// Line endings inside a code span read as spaces.
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(b.String())
}

func (r *renderer) beginItem() {
	depth := len(r.lists)
	marker := bullet
	if depth > 0 {
		top := &r.lists[depth-1]
		if top.ordered {
			marker = strconv.Itoa(top.next) + ". "
			top.next++
		}
	}
	if depth > 1 {
		marker = strings.Repeat("  ", depth-1) + marker
	}
	r.itemMarker = marker
	r.itemWidth = ansi.StringWidth(marker)
	r.markerDone = false
	if depth > 0 {
		r.lists[depth-1].width = r.itemWidth
	}
}

func (r *renderer) endItem() {
	r.itemMarker = ""
	r.itemWidth = 0
	r.markerDone = false
	// Restore the enclosing item's hanging indent for its remaining content.
	if depth := len(r.lists); depth > 1 {
		r.itemWidth = r.lists[depth-2].width
		r.itemMarker = strings.Repeat(" ", r.itemWidth)
		r.markerDone = true
	}
}

func (r *renderer) text(s string) {
	if r.inCode {
		r.codeText(s)
		return
	}
	r.pushText(s, r.style)
}

func (r *renderer) inlineCode(s string) {
	r.pushText(s, styleInlineCode.Inherit(r.style))
}

func (r *renderer) softBreak() {
	if r.inCode {
		r.hardBreak()
		return
	}
	r.pendingSpace = true
}

func (r *renderer) hardBreak() {
	r.flushLine()
}

// pushText tokenizes on whitespace. Newlines end the current line; other
// whitespace becomes a single pending space.
func (r *renderer) pushText(s string, style lipgloss.Style) {
	var word strings.Builder
	emit := func() {
		if word.Len() > 0 {
			r.pushWord(word.String(), style)
			word.Reset()
		}
	}
	for _, ch := range s {
		switch {
		case ch == '\n':
			emit()
			r.flushLine()
		case unicode.IsSpace(ch):
			emit()
			r.pendingSpace = true
		default:
			word.WriteRune(ch)
		}
	}
	emit()
}

func (r *renderer) pushWord(word string, style lipgloss.Style) {
	prefixWidth := r.prefixWidth()
	wordWidth := ansi.StringWidth(word)

	if wordWidth > r.maxWidth-prefixWidth {
		r.pushLongWord(word, style)
		r.pendingSpace = false
		return
	}

	if len(r.current) == 0 {
		r.startLine()
	}

	spaceWidth := 0
	if r.pendingSpace && r.currentWidth > prefixWidth {
		spaceWidth = 1
	}
	if r.currentWidth+spaceWidth+wordWidth > r.maxWidth && r.currentWidth > prefixWidth {
		r.flushLine()
		r.startLine()
		spaceWidth = 0
	}

	if spaceWidth > 0 {
		r.current = append(r.current, Run{Text: " ", Style: stylePlain})
		r.currentWidth++
	}
	r.pendingSpace = false

	r.current = append(r.current, Run{Text: word, Style: style})
	r.currentWidth += wordWidth
}

// pushLongWord hard-splits a word that cannot fit on any line. Each fragment
// but the last is flushed as its own line.
func (r *renderer) pushLongWord(word string, style lipgloss.Style) {
	if r.currentWidth > r.prefixWidth() {
		r.flushLine()
	}
	available := r.maxWidth - r.prefixWidth()
	if available < 1 {
		available = 1
	}
	parts := strings.Split(ansi.Hardwrap(word, available, true), "\n")
	for i, part := range parts {
		if i > 0 {
			r.flushLine()
		}
		if len(r.current) == 0 {
			r.startLine()
		}
		r.current = append(r.current, Run{Text: part, Style: style})
		r.currentWidth += ansi.StringWidth(part)
	}
}

func (r *renderer) codeBlockLines(lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.codeLine(strings.TrimRight(string(seg.Value(r.src)), "\r\n"))
	}
}

func (r *renderer) codeText(s string) {
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		r.codeLine(line)
	}
}

// codeLine emits one verbatim, unwrapped line.
func (r *renderer) codeLine(line string) {
	r.flushLine()
	r.startLine()
	r.current = append(r.current, Run{Text: line, Style: styleCodeBlock})
	r.currentWidth += ansi.StringWidth(line)
	r.flushLine()
}

func (r *renderer) prefixWidth() int {
	w := r.indent
	if r.quoteDepth > 0 {
		w += quoteWidth
	}
	return w + r.itemWidth
}

// startLine emits the block prefix at the start of an empty line.
func (r *renderer) startLine() {
	if len(r.current) > 0 {
		return
	}
	if r.indent > 0 {
		r.current = append(r.current, Run{Text: strings.Repeat(" ", r.indent), Style: stylePlain})
		r.currentWidth += r.indent
	}
	if r.quoteDepth > 0 {
		r.current = append(r.current, Run{Text: quoteMarker, Style: styleQuoteMarker})
		r.currentWidth += quoteWidth
	}
	if r.itemWidth > 0 {
		marker := r.itemMarker
		if r.markerDone {
			marker = strings.Repeat(" ", r.itemWidth)
		}
		r.markerDone = true
		r.current = append(r.current, Run{Text: marker, Style: stylePlain})
		r.currentWidth += r.itemWidth
	}
}

func (r *renderer) flushLine() {
	if len(r.current) == 0 {
		r.pendingSpace = false
		return
	}
	r.lines = append(r.lines, Line{Runs: r.current})
	r.current = nil
	r.currentWidth = 0
	r.pendingSpace = false
}

// pushBlankLine adds a separator unless the output already ends in one.
func (r *renderer) pushBlankLine() {
	if n := len(r.lines); n > 0 && r.lines[n-1].Blank() {
		return
	}
	r.lines = append(r.lines, Line{})
}

func (r *renderer) pushStyle(patch lipgloss.Style) {
	r.styleStack = append(r.styleStack, r.style)
	r.style = patch.Inherit(r.style)
}

func (r *renderer) popStyle() {
	if n := len(r.styleStack); n > 0 {
		r.style = r.styleStack[n-1]
		r.styleStack = r.styleStack[:n-1]
	}
}

func (r *renderer) finish() []Line {
	r.flushLine()
	for n := len(r.lines); n > 0 && r.lines[n-1].Blank(); n = len(r.lines) {
		r.lines = r.lines[:n-1]
	}
	if len(r.lines) == 0 {
		r.lines = append(r.lines, Line{})
	}
	return r.lines
}
