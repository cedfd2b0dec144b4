package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	t.Run("HelpBinding", func(t *testing.T) {
		if !key.Matches(runes("?"), km.Help) {
			t.Error("expected ? to match Help binding")
		}
	})

	t.Run("NavigationBindings", func(t *testing.T) {
		if !key.Matches(keyOf(tea.KeyUp), km.Up) {
			t.Error("expected up arrow to match Up binding")
		}
		if !key.Matches(runes("k"), km.Up) {
			t.Error("expected k to match Up binding")
		}
		if !key.Matches(keyOf(tea.KeyDown), km.Down) {
			t.Error("expected down arrow to match Down binding")
		}
		if !key.Matches(runes("j"), km.Down) {
			t.Error("expected j to match Down binding")
		}
		if !key.Matches(keyOf(tea.KeyLeft), km.Left) {
			t.Error("expected left arrow to match Left binding")
		}
		if !key.Matches(keyOf(tea.KeyRight), km.Right) {
			t.Error("expected right arrow to match Right binding")
		}
	})

	t.Run("FocusBindings", func(t *testing.T) {
		if !key.Matches(keyOf(tea.KeyTab), km.Tab) {
			t.Error("expected tab to match Tab binding")
		}
		if !key.Matches(keyOf(tea.KeyShiftTab), km.ShiftTab) {
			t.Error("expected shift+tab to match ShiftTab binding")
		}
	})

	t.Run("PostBinding", func(t *testing.T) {
		if !key.Matches(keyOf(tea.KeyCtrlS), km.Post) {
			t.Error("expected ctrl+s to match Post binding")
		}
	})

	t.Run("QuitBindings", func(t *testing.T) {
		if !key.Matches(runes("q"), km.Quit) {
			t.Error("expected q to match Quit binding")
		}
		if !key.Matches(keyOf(tea.KeyCtrlC), km.ForceQuit) {
			t.Error("expected ctrl+c to match ForceQuit binding")
		}
		if key.Matches(keyOf(tea.KeyCtrlC), km.Quit) {
			t.Error("expected ctrl+c not to match the plain Quit binding")
		}
	})

	t.Run("HueHotkeysAreUppercase", func(t *testing.T) {
		hues := map[string]key.Binding{
			"R": km.HueRed, "O": km.HueOrange, "Y": km.HueYellow, "G": km.HueGreen,
			"T": km.HueTeal, "B": km.HueBlue, "P": km.HuePurple, "K": km.HueGray,
		}
		for k, binding := range hues {
			if !key.Matches(runes(k), binding) {
				t.Errorf("expected %s to match its hue binding", k)
			}
		}
		if key.Matches(runes("y"), km.HueYellow) {
			t.Error("expected lowercase y to stay the copy key, not a hue")
		}
	})
}
