package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/cellbuf"
)

// Layer is an overlay that knows where it belongs within a frame of the given
// size.
type Layer interface {
	Place(width, height int) (content string, x, y int)
}

// LayerFunc is an adapter to allow ordinary functions to act as layers.
type LayerFunc func(width, height int) (string, int, int)

// Place implements Layer for LayerFunc.
func (f LayerFunc) Place(width, height int) (string, int, int) {
	return f(width, height)
}

// composeLayers paints layers over base in order and returns the frame.
func composeLayers(base string, width, height int, layers ...Layer) string {
	if len(layers) == 0 {
		return base
	}
	width, height = max(width, 1), max(height, 1)
	scr := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{})
	w := cellbuf.NewScreenWriter(scr)

	paint(w, 0, 0, height, base)
	for _, l := range layers {
		if l == nil {
			continue
		}
		content, x, y := l.Place(width, height)
		paint(w, max(x, 0), max(y, 0), height, content)
	}

	out := cellbuf.Render(scr)
	_ = scr.Close()
	return strings.ReplaceAll(out, "\r\n", "\n")
}

// paint writes each line of block at column x, starting on row y. Rows past
// the bottom are cropped; empty lines leave the cells below untouched.
func paint(w *cellbuf.ScreenWriter, x, y, height int, block string) {
	if block == "" {
		return
	}
	for i, line := range strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n") {
		if y+i >= height {
			return
		}
		if line != "" {
			w.PrintCropAt(x, y+i, line, "")
		}
	}
}
