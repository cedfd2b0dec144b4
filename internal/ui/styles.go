package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

var (
	cPurple     = lipgloss.Color("99")
	cCyan       = lipgloss.Color("39")
	cGreen      = lipgloss.Color("42")
	cRed        = lipgloss.Color("203")
	cGold       = lipgloss.Color("220")
	cGray       = lipgloss.Color("240")
	cBrightGray = lipgloss.Color("246")
	cLightGray  = lipgloss.Color("250")
	cWhite      = lipgloss.Color("255")
	cHighlight  = lipgloss.Color("57")
	cField      = lipgloss.Color("63")

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cGray)

	stylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cPurple)

	stylePaneTitle = lipgloss.NewStyle().
			Foreground(cGold).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Background(cHighlight).
			Foreground(cWhite).
			Bold(true)

	styleIssueNumber = lipgloss.NewStyle().Foreground(cGold).Bold(true)
	styleIssueOpen   = lipgloss.NewStyle().Foreground(cGreen)
	styleIssueClosed = lipgloss.NewStyle().Foreground(cPurple)
	styleDim         = lipgloss.NewStyle().Foreground(cBrightGray)
	styleMuted       = lipgloss.NewStyle().Foreground(cGray)

	styleAuthorSelf  = lipgloss.NewStyle().Foreground(cGreen).Bold(true)
	styleAuthorOther = lipgloss.NewStyle().Foreground(cCyan)
	styleTimestamp   = lipgloss.NewStyle().Faint(true)

	styleError   = lipgloss.NewStyle().Foreground(cRed)
	styleSuccess = lipgloss.NewStyle().Foreground(cGreen)
	styleSpinner = lipgloss.NewStyle().Foreground(cCyan)

	styleSuggestion         = lipgloss.NewStyle().Foreground(cLightGray)
	styleSuggestionSelected = lipgloss.NewStyle().Foreground(cCyan).Bold(true)

	styleChoice         = lipgloss.NewStyle().Foreground(cLightGray)
	styleChoiceSelected = lipgloss.NewStyle().Foreground(cWhite).Background(cHighlight).Bold(true)

	// Status bar styles
	styleStatusUser = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cPurple).
			Bold(true).
			Padding(0, 1)

	styleStatusRepo = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cField)

	styleStatusCount = lipgloss.NewStyle().
				Foreground(cLightGray).
				Background(cGray)

	// Help overlay styles
	styleHelpOverlay = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cPurple).
				Padding(1, 2)

	styleHelpTitle = lipgloss.NewStyle().
			Foreground(cGold).
			Bold(true)

	styleHelpDivider = lipgloss.NewStyle().
				Foreground(cPurple)

	styleHelpSectionHeader = lipgloss.NewStyle().
				Foreground(cField).
				Bold(true)

	styleHelpUnderline = lipgloss.NewStyle().
				Foreground(cField)

	styleHelpKey = lipgloss.NewStyle().
			Foreground(cCyan).
			Bold(true)

	styleHelpDesc = lipgloss.NewStyle().
			Foreground(cLightGray)

	styleHelpFooter = lipgloss.NewStyle().
			Foreground(cBrightGray).
			Italic(true)

	// Footer hint styles
	styleKeyPill = lipgloss.NewStyle().
			Background(cPurple).
			Foreground(cWhite).
			Bold(true)

	styleKeyDesc = lipgloss.NewStyle().
			Foreground(cBrightGray)

	// Color picker styles
	stylePickerOverlay = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cPurple).
				Padding(1, 2)

	stylePickerHue = lipgloss.NewStyle().
			Foreground(cLightGray).
			Width(10)
)

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}

// adaptColor converts a six digit hex color to the closest color the given
// terminal profile can show.
func adaptColor(profile termenv.Profile, hex string) lipgloss.TerminalColor {
	switch c := profile.Color("#" + strings.TrimPrefix(hex, "#")).(type) {
	case termenv.RGBColor:
		return lipgloss.Color(string(c))
	case termenv.ANSI256Color:
		return lipgloss.Color(strconv.Itoa(int(c)))
	case termenv.ANSIColor:
		return lipgloss.Color(strconv.Itoa(int(c)))
	}
	return lipgloss.NoColor{}
}

// paneStyle returns the border style for a pane given its focus.
func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return stylePaneFocused
	}
	return stylePane
}

// renderPane draws content inside a bordered box that fills area.
func renderPane(area Rect, title string, focused bool, content string) string {
	innerW := area.Width - 2
	innerH := area.Height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	body := content
	if title != "" {
		body = stylePaneTitle.Render(title) + "\n" + content
	}
	body = lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		MaxWidth(innerW).
		MaxHeight(innerH).
		Render(body)
	return paneStyle(focused).Render(body)
}
