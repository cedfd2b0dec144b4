package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// newCenteredOverlayLayer centers content in the frame while keeping the
// margins clear so the search bar and status bar stay visible.
func newCenteredOverlayLayer(content string, topMargin, bottomMargin int) Layer {
	return LayerFunc(func(width, height int) (string, int, int) {
		if content == "" {
			return "", 0, 0
		}
		overlayWidth, overlayHeight := blockDimensions(content)
		if overlayWidth > width {
			overlayWidth = width
		}
		x, y := centeredOffsets(width, height, overlayWidth, overlayHeight, topMargin, bottomMargin)
		return content, x, y
	})
}

func blockDimensions(content string) (int, int) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	width := maxLineWidth(lines)
	if width <= 0 {
		width = lipgloss.Width(normalized)
	}
	if width <= 0 {
		width = 1
	}
	height := lipgloss.Height(normalized)
	if height <= 0 {
		height = len(lines)
	}
	if height <= 0 {
		height = 1
	}
	return width, height
}

func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	if topMargin < 0 {
		topMargin = 0
	}
	if bottomMargin < 0 {
		bottomMargin = 0
	}

	usableHeight := containerHeight - topMargin - bottomMargin
	if usableHeight < contentHeight {
		usableHeight = contentHeight
	}

	y := topMargin
	if usableHeight > contentHeight {
		y = topMargin + (usableHeight-contentHeight)/2
	}
	maxY := containerHeight - bottomMargin - contentHeight
	if y > maxY {
		y = maxY
	}
	if y < topMargin {
		y = topMargin
	}
	if y < 0 {
		y = 0
	}

	x := (containerWidth - contentWidth) / 2
	if x < 0 {
		x = 0
	}

	return x, y
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
