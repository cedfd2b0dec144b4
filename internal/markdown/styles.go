package markdown

import "github.com/charmbracelet/lipgloss"

var (
	cLinkBlue   = lipgloss.Color("12")
	cCodeYellow = lipgloss.Color("11")
	cInlineCode = lipgloss.Color("3")
	cQuoteGray  = lipgloss.Color("8")

	styleEmphasis      = lipgloss.NewStyle().Italic(true)
	styleStrong        = lipgloss.NewStyle().Bold(true)
	styleHeading       = lipgloss.NewStyle().Bold(true)
	styleLink          = lipgloss.NewStyle().Foreground(cLinkBlue).Underline(true)
	styleStrikethrough = lipgloss.NewStyle().Strikethrough(true)
	styleInlineCode    = lipgloss.NewStyle().Foreground(cInlineCode).Bold(true)
	styleCodeBlock     = lipgloss.NewStyle().Foreground(cCodeYellow)
	styleQuoteMarker   = lipgloss.NewStyle().Foreground(cQuoteGray)
	stylePlain         = lipgloss.NewStyle()
)

const (
	quoteMarker = "│ "
	quoteWidth  = 2
	bullet      = "• "

	// MinWidth is the narrowest wrap width the engine lays out at.
	MinWidth = 10
)
