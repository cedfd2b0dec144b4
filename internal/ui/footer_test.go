package ui

import (
	"strings"
	"testing"
)

func TestKeyPill(t *testing.T) {
	pill := keyPill("↑↓", "Navigate")

	t.Run("ContainsKey", func(t *testing.T) {
		if !strings.Contains(pill, "↑↓") {
			t.Error("expected pill to contain key")
		}
	})

	t.Run("ContainsDesc", func(t *testing.T) {
		if !strings.Contains(pill, "Navigate") {
			t.Error("expected pill to contain description")
		}
	})
}

func TestFooterHintsFor(t *testing.T) {
	t.Run("ListScreen", func(t *testing.T) {
		hints := renderHints(footerHintsFor(ScreenList))
		for _, want := range []string{"Navigate", "Open", "Copy URL", "Quit", "Help"} {
			if !strings.Contains(hints, want) {
				t.Errorf("expected list hints to contain %q", want)
			}
		}
	})

	t.Run("DetailsScreen", func(t *testing.T) {
		hints := renderHints(footerHintsFor(ScreenDetails))
		if !strings.Contains(hints, "Post") || !strings.Contains(hints, "Back") {
			t.Error("expected details hints to contain Post and Back")
		}
		if strings.Contains(hints, "Copy URL") {
			t.Error("expected details hints not to contain list actions")
		}
	})
}

func TestTrimHintsToFit(t *testing.T) {
	t.Run("PreservesHintsWhenSpaceAvailable", func(t *testing.T) {
		hints := footerHintsFor(ScreenList)
		if got := trimHintsToFit(hints, 500); len(got) != len(hints) {
			t.Errorf("expected %d hints, got %d", len(hints), len(got))
		}
	})

	t.Run("DropsContextHintsFirst", func(t *testing.T) {
		hints := footerHintsFor(ScreenList)
		global := renderHintsWidth(globalFooterHints)
		got := trimHintsToFit(hints, global)
		if len(got) != len(globalFooterHints) {
			t.Fatalf("expected only global hints, got %d", len(got))
		}
		for i, h := range got {
			if h != globalFooterHints[i] {
				t.Errorf("hint %d: expected %v, got %v", i, globalFooterHints[i], h)
			}
		}
	})

	t.Run("EmptyWhenNothingFits", func(t *testing.T) {
		if got := trimHintsToFit(footerHintsFor(ScreenDetails), 0); len(got) != 0 {
			t.Errorf("expected no hints, got %d", len(got))
		}
	})
}

func TestRenderHintsWidth(t *testing.T) {
	hints := []footerHint{{"↑↓", "Navigate"}}
	width := renderHintsWidth(hints)
	if width <= 0 {
		t.Error("expected positive width for rendered hints")
	}
	hints = append(hints, footerHint{"q", "Quit"})
	if renderHintsWidth(hints) <= width {
		t.Error("expected width to increase with more hints")
	}
}
