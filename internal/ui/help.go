package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tissue/internal/focus"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() to maintain single source of truth.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
				{keys.Tab.Help().Key, keys.Tab.Help().Desc},
				{keys.ShiftTab.Help().Key, keys.ShiftTab.Help().Desc},
			},
		},
		{
			title: "ISSUES",
			rows: [][]string{
				{keys.Enter.Help().Key, keys.Enter.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.AddLabel.Help().Key, keys.AddLabel.Help().Desc},
				{keys.RemoveLabel.Help().Key, keys.RemoveLabel.Help().Desc},
			},
		},
		{
			title: "CONVERSATION",
			rows: [][]string{
				{keys.Post.Help().Key, keys.Post.Help().Desc},
				{keys.Back.Help().Key, keys.Back.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

const helpIntro = "Browse and discuss the issues of one **GitHub** repository. " +
	"Labels are created on demand: pick a color when a name is unknown."

// Help is the modal key reference. While open it blocks input to the focused
// leaf.
type Help struct {
	keys   KeyMap
	format string
	open   bool

	// intro caches the rendered introduction by width.
	intro      string
	introWidth int
}

func NewHelp(keys KeyMap, format string) *Help {
	return &Help{keys: keys, format: format}
}

func (h *Help) ID() ComponentID { return IDHelp }

func (h *Help) Register(Dispatcher) {}

func (h *Help) Visible() bool { return h.open }

func (h *Help) BlocksInput() bool { return h.open }

func (h *Help) FocusNode() *focus.Node { return nil }

func (h *Help) Cursor() (int, int, bool) { return 0, 0, false }

// Open reports whether the overlay is showing.
func (h *Help) Open() bool { return h.open }

// HandleAction toggles the overlay on keys nobody else consumed.
func (h *Help) HandleAction(a Action) bool {
	in, ok := a.(RawInput)
	if !ok || in.Consumed {
		return false
	}
	km, ok := in.Msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, h.keys.Help):
		h.open = !h.open
		return true
	case h.open && key.Matches(km, h.keys.Back):
		h.open = false
		return true
	}
	return false
}

func (h *Help) renderIntro(width int) string {
	if h.intro != "" && h.introWidth == width {
		return h.intro
	}
	h.intro = buildMarkdownRenderer(h.format, width)(helpIntro)
	h.introWidth = width
	return h.intro
}

// Overlay renders the help box for a frame of the given width.
func (h *Help) Overlay(width int) string {
	sections := getHelpSections(h.keys)

	leftCol := renderHelpSectionTable(sections[0])
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	if maxW := width - 8; maxW > 0 && dividerWidth > maxW {
		dividerWidth = maxW
	}

	title := styleHelpTitle.Render("✦ TISSUE HELP ✦")
	divider := styleHelpDivider.Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpFooter.Render(fmt.Sprintf("Press %s or %s to close", h.keys.Help.Help().Key, h.keys.Back.Help().Key))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		h.renderIntro(dividerWidth),
		"",
		columns,
		"",
		footer,
	)
	return styleHelpOverlay.Render(content)
}

func (h *Help) View(area Rect) string {
	if !h.open {
		return ""
	}
	return h.Overlay(area.Width)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey.Width(14)
			}
			return styleHelpDesc
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader.Render(section.title)
	underline := styleHelpUnderline.Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
