package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func findRun(t *testing.T, lines []Line, text string) Run {
	t.Helper()
	for _, l := range lines {
		for _, r := range l.Runs {
			if r.Text == text {
				return r
			}
		}
	}
	require.Failf(t, "run not found", "no run with text %q in %q", text, plain(lines))
	return Run{}
}

func TestLayoutEmptyInputYieldsOneBlankLine(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n"} {
		lines := Layout(src, 40, 0)
		require.Len(t, lines, 1, "source %q", src)
		assert.True(t, lines[0].Blank())
	}
}

func TestLayoutWrapsAtWordBoundaries(t *testing.T) {
	lines := Layout("hello world foo", 10, 0)
	assert.Equal(t, []string{"hello", "world foo"}, plain(lines))
}

func TestLayoutHardSplitsLongWord(t *testing.T) {
	lines := Layout("abcdefghijk", 10, 0)
	assert.Equal(t, []string{"abcdefghij", "k"}, plain(lines))
}

func TestLayoutLongWordAfterShortWord(t *testing.T) {
	lines := Layout("ab abcdefghijklm", 10, 0)
	assert.Equal(t, []string{"ab", "abcdefghij", "klm"}, plain(lines))
}

func TestLayoutWideCharactersRespectWidth(t *testing.T) {
	src := "你好世界你好"
	lines := Layout(src, 10, 0)
	require.Len(t, lines, 2)
	var joined strings.Builder
	for _, l := range lines {
		assert.LessOrEqual(t, l.Width(), 10)
		joined.WriteString(l.String())
	}
	assert.Equal(t, src, joined.String())
}

func TestLayoutNeverExceedsWidth(t *testing.T) {
	src := "Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n\n" +
		"> quoted text that wraps around a couple of times here\n\n" +
		"- item one with several words\n- item two\n\n" +
		"supercalifragilisticexpialidocious"
	for _, width := range []int{10, 17, 32} {
		for _, l := range Layout(src, width, 2) {
			assert.LessOrEqual(t, l.Width(), width, "width %d line %q", width, l.String())
		}
	}
}

func TestLayoutClampsToMinimumWidth(t *testing.T) {
	lines := Layout("aaaaaaaaaaaa", 3, 0)
	assert.Equal(t, []string{"aaaaaaaaaa", "aa"}, plain(lines))
}

func TestLayoutIndent(t *testing.T) {
	lines := Layout("one two three", 10, 2)
	assert.Equal(t, []string{"  one two", "  three"}, plain(lines))
}

func TestLayoutParagraphsSeparatedByOneBlank(t *testing.T) {
	lines := Layout("first\n\n\n\nsecond", 20, 0)
	assert.Equal(t, []string{"first", "", "second"}, plain(lines))
}

func TestLayoutSoftAndHardBreaks(t *testing.T) {
	t.Run("soft break joins with a space", func(t *testing.T) {
		assert.Equal(t, []string{"a b"}, plain(Layout("a\nb", 20, 0)))
	})
	t.Run("hard break ends the line", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, plain(Layout("a  \nb", 20, 0)))
	})
}

func TestLayoutBlockquote(t *testing.T) {
	lines := Layout("> a\n\n> b", 20, 0)
	assert.Equal(t, []string{"│ a", "", "│ b"}, plain(lines))

	marker := lines[0].Runs[0]
	assert.Equal(t, quoteMarker, marker.Text)
	assert.Equal(t, cQuoteGray, marker.Style.GetForeground())
}

func TestLayoutBlockquoteWrapsUnderMarker(t *testing.T) {
	lines := Layout("> one two three", 10, 0)
	assert.Equal(t, []string{"│ one two", "│ three"}, plain(lines))
}

func TestLayoutCodeBlockIsVerbatim(t *testing.T) {
	src := "```\nfoo\n  bar baz qux quux corge\n```\nafter"
	lines := Layout(src, 10, 0)
	got := plain(lines)
	require.GreaterOrEqual(t, len(got), 4)
	assert.Equal(t, "foo", got[0])
	assert.Equal(t, "  bar baz qux quux corge", got[1], "code lines are not wrapped")
	assert.Equal(t, "", got[2])
	assert.Equal(t, "after", got[3])

	run := findRun(t, lines, "foo")
	assert.Equal(t, cCodeYellow, run.Style.GetForeground())
}

func TestLayoutListBullets(t *testing.T) {
	lines := Layout("- one\n- two", 20, 0)
	assert.Equal(t, []string{"• one", "• two"}, plain(lines))
}

func TestLayoutListContinuationIsIndented(t *testing.T) {
	lines := Layout("- aaaa bbbb cccc", 10, 0)
	assert.Equal(t, []string{"• aaaa", "  bbbb", "  cccc"}, plain(lines))
}

func TestLayoutOrderedAndNestedLists(t *testing.T) {
	lines := Layout("1. first\n2. second\n   - inner", 30, 0)
	assert.Equal(t, []string{"1. first", "2. second", "  • inner"}, plain(lines))
}

func TestLayoutOrderedParentIndentAfterNestedList(t *testing.T) {
	lines := plain(Layout("10. parent\n    - child\n\n    continuation words here", 40, 0))
	require.NotEmpty(t, lines)
	assert.Equal(t, "10. parent", lines[0])
	last := lines[len(lines)-1]
	assert.Equal(t, "    continuation words here", last)
}

func TestLayoutHeadingIsBoldAndSeparated(t *testing.T) {
	lines := Layout("# Title\nbody", 20, 0)
	assert.Equal(t, []string{"Title", "", "body"}, plain(lines))
	assert.True(t, findRun(t, lines, "Title").Style.GetBold())
}

func TestLayoutEmphasisComposes(t *testing.T) {
	lines := Layout("*it* **bo** ***both***", 40, 0)

	it := findRun(t, lines, "it")
	assert.True(t, it.Style.GetItalic())
	assert.False(t, it.Style.GetBold())

	bo := findRun(t, lines, "bo")
	assert.True(t, bo.Style.GetBold())
	assert.False(t, bo.Style.GetItalic())

	both := findRun(t, lines, "both")
	assert.True(t, both.Style.GetBold())
	assert.True(t, both.Style.GetItalic())
}

func TestLayoutInlineCode(t *testing.T) {
	lines := Layout("run `go test` now", 40, 0)
	assert.Equal(t, []string{"run go test now"}, plain(lines))

	run := findRun(t, lines, "go")
	assert.True(t, run.Style.GetBold())
	assert.Equal(t, cInlineCode, run.Style.GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, findRun(t, lines, "now").Style.GetForeground())
}

func TestLayoutCodeSpanLineEndingIsSpace(t *testing.T) {
	lines := Layout("a `multi\nline` b", 40, 0)
	assert.Equal(t, []string{"a multi line b"}, plain(lines))
}

func TestLayoutLinksAndAutolinks(t *testing.T) {
	lines := Layout("see [docs](https://example.com) or <https://go.dev>", 60, 0)
	assert.True(t, findRun(t, lines, "docs").Style.GetUnderline())
	assert.Equal(t, cLinkBlue, findRun(t, lines, "https://go.dev").Style.GetForeground())
}

func TestLayoutStrikethrough(t *testing.T) {
	lines := Layout("~~gone~~", 20, 0)
	assert.True(t, findRun(t, lines, "gone").Style.GetStrikethrough())
}

func TestLayoutIsDeterministic(t *testing.T) {
	src := "# h\n\n> q *e*\n\n- a\n- b\n\n```\nc\n```"
	assert.Equal(t, plain(Layout(src, 24, 2)), plain(Layout(src, 24, 2)))
}

func TestRenderLinesJoinsWithNewlines(t *testing.T) {
	out := RenderLines(Layout("a\n\nb", 20, 0))
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
}
