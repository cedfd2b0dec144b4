package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestHelpOverlay(t *testing.T) {
	keys := DefaultKeyMap()
	h := NewHelp(keys, "plain")
	overlay := ansi.Strip(h.Overlay(120))

	t.Run("ContainsTitle", func(t *testing.T) {
		if !strings.Contains(overlay, "TISSUE HELP") {
			t.Error("expected overlay to contain 'TISSUE HELP'")
		}
	})

	t.Run("ContainsAllSections", func(t *testing.T) {
		for _, section := range []string{"NAVIGATION", "ISSUES", "CONVERSATION"} {
			if !strings.Contains(overlay, section) {
				t.Errorf("expected overlay to contain section %q", section)
			}
		}
	})

	t.Run("ContainsKeyHintsFromKeyMap", func(t *testing.T) {
		for _, hint := range []string{keys.Up.Help().Key, keys.Post.Help().Key, keys.AddLabel.Help().Desc} {
			if !strings.Contains(overlay, hint) {
				t.Errorf("expected overlay to contain %q", hint)
			}
		}
	})

	t.Run("ContainsIntro", func(t *testing.T) {
		if !strings.Contains(overlay, "GitHub") {
			t.Error("expected markdown intro in overlay")
		}
	})

	t.Run("ContainsFooter", func(t *testing.T) {
		if !strings.Contains(overlay, "Press ? or Esc to close") {
			t.Error("expected overlay to contain footer instruction")
		}
	})
}

func TestGetHelpSections(t *testing.T) {
	keys := DefaultKeyMap()
	sections := getHelpSections(keys)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].rows[0][0] != keys.Up.Help().Key || sections[0].rows[0][1] != keys.Up.Help().Desc {
		t.Errorf("expected first navigation row derived from Up binding, got %v", sections[0].rows[0])
	}
}

func TestRenderHelpSectionTable(t *testing.T) {
	rendered := renderHelpSectionTable(helpSection{
		title: "TEST",
		rows: [][]string{
			{"key1", "desc1"},
			{"key2", "desc2"},
		},
	})

	for _, want := range []string{"TEST", "────", "key1", "key2", "desc1", "desc2"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected rendered section to contain %q", want)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	h := NewHelp(DefaultKeyMap(), "plain")

	t.Run("QuestionMarkOpens", func(t *testing.T) {
		if !h.HandleAction(RawInput{Msg: runes("?")}) || !h.Open() {
			t.Fatal("expected ? to open help")
		}
		if !h.BlocksInput() || !h.Visible() {
			t.Error("expected open help to block input")
		}
	})

	t.Run("EscCloses", func(t *testing.T) {
		h.HandleAction(RawInput{Msg: keyOf(tea.KeyEsc)})
		if h.Open() {
			t.Error("expected esc to close help")
		}
	})

	t.Run("ConsumedInputIgnored", func(t *testing.T) {
		h.HandleAction(RawInput{Msg: runes("?"), Consumed: true})
		if h.Open() {
			t.Error("expected consumed ? to be ignored")
		}
	})

	t.Run("EscIgnoredWhileClosed", func(t *testing.T) {
		if h.HandleAction(RawInput{Msg: keyOf(tea.KeyEsc)}) {
			t.Error("expected esc to do nothing while closed")
		}
	})
}
