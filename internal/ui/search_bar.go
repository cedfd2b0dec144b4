package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tissue/internal/debug"
	appErrors "tissue/internal/errors"
	"tissue/internal/focus"
	"tissue/internal/github"
)

const (
	FocusSearchText   = "search.text"
	FocusSearchLabels = "search.labels"
	FocusSearchState  = "search.state"

	// SearchBarHeight is the number of rows the search bar occupies.
	SearchBarHeight = 3
)

// SearchState filters issues by open/closed state.
type SearchState int

const (
	StateOpen SearchState = iota
	StateClosed
	StateAll
)

var searchStateNames = [...]string{"Open", "Closed", "All"}

func (s SearchState) String() string {
	if s < StateOpen || s > StateAll {
		return "Open"
	}
	return searchStateNames[s]
}

// ParseSearchState maps a config value to a SearchState, defaulting to open.
func ParseSearchState(s string) SearchState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closed":
		return StateClosed
	case "all":
		return StateAll
	}
	return StateOpen
}

// buildSearchQuery assembles the issue search query for one repository.
func buildSearchQuery(text, labels string, state SearchState, owner, repo string) string {
	var parts []string
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	for _, l := range strings.Split(labels, ";") {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, "label:"+l)
		}
	}
	if state != StateAll {
		parts = append(parts, "is:"+strings.ToLower(state.String()))
	}
	parts = append(parts, "repo:"+owner+"/"+repo, "is:issue")
	return strings.Join(parts, " ")
}

// SearchBar holds the search inputs and runs issue searches.
type SearchBar struct {
	client     github.Client
	owner      string
	repo       string
	keys       KeyMap
	dispatcher Dispatcher

	screen  Screen
	text    textinput.Model
	labels  textinput.Model
	state   SearchState
	loading bool
	status  string
	frame   int

	// textWidth is the inner width of the search text box from the last layout.
	textWidth int

	textLeaf   *leaf
	labelsLeaf *leaf
	stateLeaf  *leaf
}

func NewSearchBar(client github.Client, owner, repo string, initial SearchState, keys KeyMap) *SearchBar {
	s := &SearchBar{
		client: client,
		owner:  owner,
		repo:   repo,
		keys:   keys,
		state:  initial,
		text:   newSearchInput("Search issues"),
		labels: newSearchInput("label;label"),
	}
	s.textLeaf = newLeaf(FocusSearchText, func(msg tea.Msg) bool { return s.handleTextInput(&s.text, msg) })
	s.labelsLeaf = newLeaf(FocusSearchLabels, func(msg tea.Msg) bool { return s.handleTextInput(&s.labels, msg) })
	s.stateLeaf = newLeaf(FocusSearchState, s.handleStateInput)
	return s
}

func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (s *SearchBar) ID() ComponentID { return IDSearchBar }

// Register stores the dispatcher and starts the initial search.
func (s *SearchBar) Register(d Dispatcher) {
	s.dispatcher = d
	s.search()
}

func (s *SearchBar) Visible() bool { return s.screen == ScreenList }

func (s *SearchBar) FocusNode() *focus.Node {
	return focus.Group(focus.LeafNode(s.textLeaf), focus.LeafNode(s.labelsLeaf), focus.LeafNode(s.stateLeaf))
}

func (s *SearchBar) Cursor() (int, int, bool) {
	switch {
	case s.textLeaf.Focused():
		return 1 + s.text.Position(), 1, true
	case s.labelsLeaf.Focused():
		return 1 + s.textWidth + 2 + s.labels.Position(), 1, true
	}
	return 0, 0, false
}

// Query returns the query the next search would run.
func (s *SearchBar) Query() string {
	return buildSearchQuery(s.text.Value(), s.labels.Value(), s.state, s.owner, s.repo)
}

func (s *SearchBar) HandleAction(a Action) bool {
	switch act := a.(type) {
	case SearchFinished:
		s.loading = false
		s.status = act.Err
		return true
	case ScreenChanged:
		s.screen = act.Screen
		if act.Screen != ScreenList {
			s.text.Blur()
			s.labels.Blur()
		}
		return true
	case Tick:
		if s.loading {
			s.frame++
			return s.Visible()
		}
	}
	return false
}

func (s *SearchBar) search() {
	if s.loading || s.dispatcher == nil {
		return
	}
	s.loading = true
	s.status = ""

	query := s.Query()
	client, d := s.client, s.dispatcher
	debug.Logf("search: %s", query)
	d.Spawn(func(ctx context.Context) Action {
		if client == nil {
			return SearchFinished{Err: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		page, err := client.SearchIssues(ctx, query, github.SortCreated, github.OrderDesc)
		if err != nil {
			return SearchFinished{Err: appErrors.Message(err)}
		}
		if err := d.Send(SearchPageArrived{Page: page}); err != nil {
			debug.Logf("search: page dropped: %v", err)
		}
		return SearchFinished{}
	})
}

func (s *SearchBar) handleTextInput(ti *textinput.Model, msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, s.keys.Enter):
		s.search()
		return true
	case key.Matches(km, s.keys.Tab, s.keys.ShiftTab, s.keys.Back, s.keys.ForceQuit):
		return false
	}
	if !ti.Focused() {
		ti.Focus()
	}
	*ti, _ = ti.Update(km)
	return true
}

func (s *SearchBar) handleStateInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, s.keys.Enter):
		s.search()
		return true
	case key.Matches(km, s.keys.Left):
		s.state = (s.state + 2) % 3
		return true
	case key.Matches(km, s.keys.Right):
		s.state = (s.state + 1) % 3
		return true
	}
	return false
}

// boxWidths splits the bar between the text, label and state boxes.
func (s *SearchBar) boxWidths(total int) (text, labels, state int) {
	state = 22
	rest := total - state
	if rest < 20 {
		rest = 20
	}
	text = rest * 3 / 5
	labels = rest - text
	return text, labels, state
}

func (s *SearchBar) View(area Rect) string {
	textW, labelsW, stateW := s.boxWidths(area.Width)
	s.textWidth = textW - 2

	s.text.Width = textW - 3
	s.labels.Width = labelsW - 3
	if !s.textLeaf.Focused() {
		s.text.Blur()
	}
	if !s.labelsLeaf.Focused() {
		s.labels.Blur()
	}

	textContent := s.text.View()
	if s.loading {
		frames := spinner.MiniDot.Frames
		textContent = styleSpinner.Render(frames[s.frame%len(frames)]+" Loading") + " " + textContent
	} else if s.status != "" {
		textContent = styleError.Render(s.status)
	}

	var choices []string
	for st := StateOpen; st <= StateAll; st++ {
		if st == s.state {
			choices = append(choices, styleChoiceSelected.Render(st.String()))
		} else {
			choices = append(choices, styleChoice.Render(st.String()))
		}
	}

	box := func(w int, focused bool, content string) string {
		return paneStyle(focused).Width(w - 2).MaxHeight(SearchBarHeight).Render(lipgloss.NewStyle().MaxWidth(w - 2).Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box(textW, s.textLeaf.Focused(), textContent),
		box(labelsW, s.labelsLeaf.Focused(), s.labels.View()),
		box(stateW, s.stateLeaf.Focused(), strings.Join(choices, " ")),
	)
}
