package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the status bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string // Short symbol: "↑↓", "⏎", "?", etc.
	desc string // Short description: "Navigate", "Open", etc.
}

// Global footer hints (always shown)
var globalFooterHints = []footerHint{
	{"⇥", "Focus"},
	{"q", "Quit"},
	{"?", "Help"},
}

// Context-specific footer hints
var listFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"⏎", "Open"},
	{"y", "Copy URL"},
	{"a", "Label"},
}

var detailsFooterHints = []footerHint{
	{"↑↓", "Scroll"},
	{"^S", "Post"},
	{"Esc", "Back"},
}

func footerHintsFor(screen Screen) []footerHint {
	var hints []footerHint
	switch screen {
	case ScreenList:
		hints = append(hints, listFooterHints...)
	case ScreenDetails:
		hints = append(hints, detailsFooterHints...)
	}
	return append(hints, globalFooterHints...)
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill.Render(" "+key+" ") + " " + styleKeyDesc.Render(desc)
}

// trimHintsToFit progressively removes hints to fit available width.
// Removes context-specific hints first, then global hints from end.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	globalCount := len(globalFooterHints)

	for len(hints) > 0 {
		if renderHintsWidth(hints) <= availableWidth {
			break
		}
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}

// renderHintsWidth calculates the visual width of rendered hints.
func renderHintsWidth(hints []footerHint) int {
	return lipgloss.Width(renderHints(hints))
}
