package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tissue/internal/debug"
	"tissue/internal/focus"
)

const FocusColorPicker = "colorpicker"

type hue struct {
	name   string
	shades [5]string
}

// hues is the picker grid: one row per hue, light to dark.
var hues = [...]hue{
	{"Red", [5]string{"ffebe9", "ffcecb", "ffaba8", "ff8182", "fa4549"}},
	{"Orange", [5]string{"fff8c5", "ffec99", "f7c843", "e16f24", "bc4c00"}},
	{"Yellow", [5]string{"fff8c5", "fae17d", "eac54f", "d4a72c", "bf8700"}},
	{"Green", [5]string{"dafbe1", "aceebb", "6fdd8b", "4ac26b", "2da44e"}},
	{"Teal", [5]string{"d2f4ea", "96e9da", "4ac9b0", "1ea7a1", "0a7f7f"}},
	{"Blue", [5]string{"ddf4ff", "b6e3ff", "80ccff", "54aeff", "0969da"}},
	{"Purple", [5]string{"fbefff", "ecd8ff", "d8b9ff", "c297ff", "a475f9"}},
	{"Gray", [5]string{"f6f8fa", "eaeef2", "d0d7de", "8c959f", "57606a"}},
}

const (
	defaultHueRow   = 7
	defaultShadeCol = 2
)

// ColorPicker is the modal grid shown while confirming a new label.
type ColorPicker struct {
	keys       KeyMap
	dispatcher Dispatcher

	active bool
	name   string
	row    int
	col    int
	custom string

	leaf *leaf
}

func NewColorPicker(keys KeyMap) *ColorPicker {
	p := &ColorPicker{keys: keys, row: defaultHueRow, col: defaultShadeCol}
	p.leaf = newLeaf(FocusColorPicker, p.handleInput)
	return p
}

// WithInitialHex preselects hex, normalized to lowercase without '#'. A hex
// found in the grid moves the selection onto it.
func (p *ColorPicker) WithInitialHex(hex string) *ColorPicker {
	hex = normalizeHex(hex)
	p.custom = ""
	for r := range hues {
		for c, shade := range hues[r].shades {
			if shade == hex {
				p.row, p.col = r, c
				return p
			}
		}
	}
	p.custom = hex
	return p
}

func normalizeHex(hex string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// Hex returns the selected color.
func (p *ColorPicker) Hex() string {
	if p.custom != "" {
		return p.custom
	}
	return hues[p.row].shades[p.col]
}

func (p *ColorPicker) ID() ComponentID { return IDColorPicker }

func (p *ColorPicker) Register(d Dispatcher) { p.dispatcher = d }

func (p *ColorPicker) Visible() bool { return p.active }

func (p *ColorPicker) FocusNode() *focus.Node { return focus.LeafNode(p.leaf) }

func (p *ColorPicker) Cursor() (int, int, bool) { return 0, 0, false }

// CapturesFocusKey keeps every key inside the picker while it holds focus.
func (p *ColorPicker) CapturesFocusKey(tea.KeyMsg) bool {
	return p.active && p.leaf.Focused()
}

func (p *ColorPicker) HandleAction(a Action) bool {
	switch act := a.(type) {
	case LabelColorRequested:
		p.active = true
		p.name = act.Name
		p.row, p.col = defaultHueRow, defaultShadeCol
		p.custom = ""
		p.send(ForceFocusChange{Target: FocusColorPicker})
		return true
	case LabelColorChosen, LabelCreateCancelled, LabelEditErrored, SelectedIssueLabels:
		if p.active {
			p.close()
			return true
		}
	case ScreenChanged:
		if p.active {
			p.close()
			p.send(LabelCreateCancelled{})
			return true
		}
	}
	return false
}

func (p *ColorPicker) close() {
	p.active = false
	p.leaf.SetFocused(false)
}

func (p *ColorPicker) handleInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !p.active {
		return false
	}
	switch {
	case key.Matches(km, p.keys.Enter):
		p.send(LabelColorChosen{Name: p.name, Color: p.Hex()})
	case key.Matches(km, p.keys.Back):
		p.send(LabelCreateCancelled{})
	case key.Matches(km, p.keys.Up):
		p.moveRow(-1)
	case key.Matches(km, p.keys.Down):
		p.moveRow(1)
	case key.Matches(km, p.keys.Left):
		p.moveCol(-1)
	case key.Matches(km, p.keys.Right):
		p.moveCol(1)
	case key.Matches(km, p.keys.HueRed):
		p.selectHue(0)
	case key.Matches(km, p.keys.HueOrange):
		p.selectHue(1)
	case key.Matches(km, p.keys.HueYellow):
		p.selectHue(2)
	case key.Matches(km, p.keys.HueGreen):
		p.selectHue(3)
	case key.Matches(km, p.keys.HueTeal):
		p.selectHue(4)
	case key.Matches(km, p.keys.HueBlue):
		p.selectHue(5)
	case key.Matches(km, p.keys.HuePurple):
		p.selectHue(6)
	case key.Matches(km, p.keys.HueGray):
		p.selectHue(7)
	case key.Matches(km, p.keys.ForceQuit):
		return false
	}
	// The picker is modal: every other key is swallowed.
	return true
}

func (p *ColorPicker) moveRow(delta int) {
	p.custom = ""
	p.row = clampInt(p.row+delta, 0, len(hues)-1)
}

func (p *ColorPicker) moveCol(delta int) {
	p.custom = ""
	p.col = clampInt(p.col+delta, 0, len(hues[0].shades)-1)
}

func (p *ColorPicker) selectHue(row int) {
	p.custom = ""
	p.row = row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (p *ColorPicker) send(a Action) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Send(a); err != nil {
		debug.Logf("colorpicker: send %T: %v", a, err)
	}
}

// Overlay renders the picker box; callers center it over the frame.
func (p *ColorPicker) Overlay() string {
	var rows []string
	for r, h := range hues {
		hotkey := string(h.name[0])
		if h.name == "Gray" {
			hotkey = "K"
		}
		cells := []string{stylePickerHue.Render(fmt.Sprintf("%s %s", hotkey, h.name))}
		for c, shade := range h.shades {
			swatch := "    "
			if r == p.row && c == p.col && p.custom == "" {
				swatch = "[  ]"
			}
			cells = append(cells, lipgloss.NewStyle().
				Background(lipgloss.Color("#"+shade)).
				Foreground(lipgloss.Color("#000000")).
				Render(swatch))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	title := styleHelpTitle.Render(fmt.Sprintf("Create label %q", p.name))
	preview := lipgloss.NewStyle().
		Background(lipgloss.Color("#"+p.Hex())).
		Foreground(lipgloss.Color("#000000")).
		Padding(0, 1).
		Render(p.name)
	footer := styleHelpFooter.Render("←↑↓→ move · R O Y G T B P K hue · Enter create · Esc cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(rows, "\n"),
		"",
		styleDim.Render("#"+p.Hex())+"  "+preview,
		"",
		footer,
	)
	return stylePickerOverlay.Render(content)
}

func (p *ColorPicker) View(Rect) string {
	if !p.active {
		return ""
	}
	return p.Overlay()
}
