package ui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"tissue/internal/debug"
	appErrors "tissue/internal/errors"
	"tissue/internal/focus"
	"tissue/internal/github"
)

const (
	FocusLabelList  = "labels.list"
	FocusLabelInput = "labels.input"
)

type labelMode int

const (
	labelIdle labelMode = iota
	labelEdit
	labelConfirmCreate
)

var hexColorPattern = regexp.MustCompile(`^[0-9a-f]{6}$`)

// validateColor normalizes color and checks it is six hex digits.
func validateColor(color string) (string, error) {
	color = normalizeHex(color)
	if !hexColorPattern.MatchString(color) {
		return "", appErrors.Validation(fmt.Sprintf("Invalid color %q: expected 6 hex digits.", color))
	}
	return color, nil
}

func validateLabelName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", appErrors.Validation("Label name cannot be empty.")
	}
	return name, nil
}

// LabelEditor shows the labels of the selected issue and adds, removes or
// creates them.
type LabelEditor struct {
	client     github.Client
	owner      string
	repo       string
	keys       KeyMap
	dispatcher Dispatcher
	profile    termenv.Profile

	screen   Screen
	issue    int
	labels   []github.Label
	selected int

	mode        labelMode
	busy        bool
	pendingName string
	status      string
	statusError bool
	frame       int

	repoLabels  []string
	input       textinput.Model
	suggestions []string
	suggestion  int

	listLeaf  *leaf
	inputLeaf *leaf
}

func NewLabelEditor(client github.Client, owner, repo string, keys KeyMap) *LabelEditor {
	input := textinput.New()
	input.Placeholder = "label name"
	input.Prompt = "› "
	input.Cursor.SetMode(cursor.CursorStatic)

	e := &LabelEditor{
		client:  client,
		owner:   owner,
		repo:    repo,
		keys:    keys,
		profile: lipgloss.ColorProfile(),
		input:   input,
	}
	e.listLeaf = newLeaf(FocusLabelList, e.handleListInput)
	e.inputLeaf = newLeaf(FocusLabelInput, e.handleNameInput)
	return e
}

func (e *LabelEditor) ID() ComponentID { return IDLabelEditor }

// Register stores the dispatcher and loads the repository labels used for
// suggestions.
func (e *LabelEditor) Register(d Dispatcher) {
	e.dispatcher = d
	client, owner, repo := e.client, e.owner, e.repo
	e.spawn(func(ctx context.Context) Action {
		if client == nil {
			return StatusNotice{Text: appErrors.Message(appErrors.ErrClientNotInitialized), Error: true}
		}
		labels, err := client.ListRepoLabels(ctx, owner, repo)
		if err != nil {
			return StatusNotice{Text: "Could not load labels: " + appErrors.Message(err), Error: true}
		}
		return RepoLabelsLoaded{Labels: labels}
	})
}

func (e *LabelEditor) Visible() bool { return e.screen == ScreenList }

func (e *LabelEditor) FocusNode() *focus.Node {
	if e.mode == labelEdit {
		return focus.Group(focus.LeafNode(e.listLeaf), focus.LeafNode(e.inputLeaf))
	}
	return focus.LeafNode(e.listLeaf)
}

// CapturesFocusKey keeps Tab (suggestion accept) and q inside the name input.
func (e *LabelEditor) CapturesFocusKey(msg tea.KeyMsg) bool {
	if e.mode != labelEdit || !e.inputLeaf.Focused() {
		return false
	}
	return key.Matches(msg, e.keys.Tab, e.keys.ShiftTab, e.keys.Quit)
}

func (e *LabelEditor) Cursor() (int, int, bool) {
	if e.mode != labelEdit || !e.inputLeaf.Focused() {
		return 0, 0, false
	}
	return 1 + lipgloss.Width(e.input.Prompt) + e.input.Position(), 3 + e.listHeight(), true
}

func (e *LabelEditor) listHeight() int {
	if len(e.labels) == 0 {
		return 1
	}
	return len(e.labels)
}

// Labels returns the labels currently shown.
func (e *LabelEditor) Labels() []github.Label {
	return e.labels
}

func (e *LabelEditor) HandleAction(a Action) bool {
	switch act := a.(type) {
	case SelectedIssueLabels:
		e.issue = act.Issue
		e.labels = act.Labels
		e.selected = 0
		e.busy = false
		e.status = ""
		e.leaveEdit(false)
		return true
	case LabelEditRequested:
		e.beginEdit()
		return true
	case LabelsUpdated:
		if act.Issue == e.issue {
			e.labels = act.Labels
			if e.selected >= len(e.labels) {
				e.selected = max(len(e.labels)-1, 0)
			}
		}
		e.busy = false
		e.setStatus(act.Status, false)
		e.leaveEdit(true)
		return true
	case LabelMissing:
		e.busy = false
		if e.mode != labelEdit || e.screen != ScreenList {
			debug.Logf("labels: ignoring not-found for %q outside edit mode", act.Name)
			return true
		}
		e.mode = labelConfirmCreate
		e.pendingName = act.Name
		e.inputLeaf.SetFocused(false)
		e.input.Blur()
		e.setStatus(fmt.Sprintf("Label %q not found. Pick a color to create it.", act.Name), false)
		e.send(LabelColorRequested{Name: act.Name})
		return true
	case LabelColorChosen:
		e.create(act.Name, act.Color)
		return true
	case LabelCreateCancelled:
		if e.mode == labelConfirmCreate {
			e.status = ""
			e.leaveEdit(true)
			return true
		}
	case LabelEditErrored:
		e.busy = false
		e.setStatus(act.Message, true)
		e.leaveEdit(true)
		return true
	case RepoLabelsLoaded:
		e.repoLabels = github.LabelNames(act.Labels)
		e.refreshSuggestions()
		return true
	case ScreenChanged:
		e.screen = act.Screen
		if act.Screen != ScreenList {
			e.listLeaf.SetFocused(false)
			e.inputLeaf.SetFocused(false)
			e.input.Blur()
		}
		return true
	case Tick:
		if e.busy {
			e.frame++
			return e.Visible()
		}
	}
	return false
}

func (e *LabelEditor) setStatus(text string, isError bool) {
	e.status = text
	e.statusError = isError
}

func (e *LabelEditor) beginEdit() {
	if e.issue == 0 {
		e.setStatus("Select an issue first.", true)
		return
	}
	e.mode = labelEdit
	e.pendingName = ""
	e.status = ""
	e.input.Reset()
	e.input.Focus()
	e.refreshSuggestions()
	e.send(ForceFocusChange{Target: FocusLabelInput})
}

// leaveEdit returns to idle. With refocus set, focus moves back to the label
// list when the editor held it.
func (e *LabelEditor) leaveEdit(refocus bool) {
	wasActive := e.mode != labelIdle
	e.mode = labelIdle
	e.pendingName = ""
	e.input.Blur()
	e.input.Reset()
	e.suggestions = nil
	e.suggestion = 0
	inputFocused := e.inputLeaf.Focused()
	e.inputLeaf.SetFocused(false)
	if inputFocused || (refocus && wasActive && e.screen == ScreenList) {
		e.send(ForceFocusChange{Target: FocusLabelList})
	}
}

func (e *LabelEditor) refreshSuggestions() {
	if e.mode != labelEdit {
		e.suggestions = nil
		return
	}
	e.suggestions = rankSuggestions(e.repoLabels, e.input.Value())
	if e.suggestion >= len(e.suggestions) {
		e.suggestion = 0
	}
}

func (e *LabelEditor) handleListInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, e.keys.Up):
		if e.selected > 0 {
			e.selected--
		}
		return true
	case key.Matches(km, e.keys.Down):
		if e.selected < len(e.labels)-1 {
			e.selected++
		}
		return true
	case key.Matches(km, e.keys.AddLabel):
		e.beginEdit()
		return true
	case key.Matches(km, e.keys.RemoveLabel):
		e.remove()
		return true
	}
	return false
}

func (e *LabelEditor) handleNameInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok || e.mode != labelEdit {
		return false
	}
	switch {
	case key.Matches(km, e.keys.Enter):
		e.submit()
		return true
	case key.Matches(km, e.keys.Back):
		e.status = ""
		e.leaveEdit(true)
		return true
	case key.Matches(km, e.keys.Tab):
		if len(e.suggestions) > 0 {
			e.input.SetValue(e.suggestions[e.suggestion])
			e.input.CursorEnd()
			e.refreshSuggestions()
		}
		return true
	case key.Matches(km, e.keys.ShiftTab):
		return true
	case km.Type == tea.KeyUp:
		if n := len(e.suggestions); n > 0 {
			e.suggestion = (e.suggestion + n - 1) % n
		}
		return true
	case km.Type == tea.KeyDown:
		if n := len(e.suggestions); n > 0 {
			e.suggestion = (e.suggestion + 1) % n
		}
		return true
	case key.Matches(km, e.keys.ForceQuit):
		return false
	}
	if !e.input.Focused() {
		e.input.Focus()
	}
	e.input, _ = e.input.Update(km)
	e.refreshSuggestions()
	return true
}

// submit looks the typed label up and adds it, or reports it missing.
func (e *LabelEditor) submit() {
	if e.busy {
		return
	}
	name, err := validateLabelName(e.input.Value())
	if err != nil {
		e.setStatus(appErrors.Message(err), true)
		return
	}
	e.busy = true
	e.status = ""

	issue := e.issue
	client, owner, repo := e.client, e.owner, e.repo
	e.spawn(func(ctx context.Context) Action {
		if client == nil {
			return LabelEditErrored{Message: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		label, err := client.GetLabel(ctx, owner, repo, name)
		if err != nil {
			if appErrors.IsCode(err, appErrors.CodeNotFound) {
				return LabelMissing{Name: name}
			}
			return LabelEditErrored{Message: appErrors.Message(err)}
		}
		labels, err := client.AddLabels(ctx, owner, repo, issue, []string{label.Name})
		if err != nil {
			return LabelEditErrored{Message: appErrors.Message(err)}
		}
		return LabelsUpdated{Issue: issue, Labels: labels, Status: "Added label " + label.Name}
	})
}

// create makes a new repository label and attaches it to the current issue.
func (e *LabelEditor) create(name, color string) {
	if e.mode != labelConfirmCreate || e.busy {
		return
	}
	if e.pendingName != "" {
		name = e.pendingName
	}
	color, err := validateColor(color)
	if err != nil {
		e.setStatus(appErrors.Message(err), true)
		e.send(LabelColorRequested{Name: name})
		return
	}
	e.busy = true
	e.status = ""
	e.repoLabels = appendUnique(e.repoLabels, name)

	issue := e.issue
	client, owner, repo := e.client, e.owner, e.repo
	e.spawn(func(ctx context.Context) Action {
		if client == nil {
			return LabelEditErrored{Message: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		label, err := client.CreateLabel(ctx, owner, repo, name, color, "")
		if err != nil {
			return LabelEditErrored{Message: appErrors.Message(err)}
		}
		labels, err := client.AddLabels(ctx, owner, repo, issue, []string{label.Name})
		if err != nil {
			return LabelEditErrored{Message: appErrors.Message(err)}
		}
		return LabelsUpdated{Issue: issue, Labels: labels, Status: "Created label " + label.Name}
	})
}

func (e *LabelEditor) remove() {
	if e.busy || e.selected < 0 || e.selected >= len(e.labels) {
		return
	}
	name := e.labels[e.selected].Name
	e.busy = true
	e.status = ""

	issue := e.issue
	client, owner, repo := e.client, e.owner, e.repo
	e.spawn(func(ctx context.Context) Action {
		if client == nil {
			return LabelEditErrored{Message: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		labels, err := client.RemoveLabel(ctx, owner, repo, issue, name)
		if err != nil {
			return LabelEditErrored{Message: appErrors.Message(err)}
		}
		return LabelsUpdated{Issue: issue, Labels: labels, Status: "Removed label " + name}
	})
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return names
		}
	}
	return append(names, name)
}

func (e *LabelEditor) spawn(task func(context.Context) Action) {
	if e.dispatcher == nil {
		debug.Logf("labels: no dispatcher, task dropped")
		return
	}
	e.dispatcher.Spawn(task)
}

func (e *LabelEditor) send(a Action) {
	if e.dispatcher == nil {
		return
	}
	if err := e.dispatcher.Send(a); err != nil {
		debug.Logf("labels: send %T: %v", a, err)
	}
}

func (e *LabelEditor) labelLine(label github.Label, width int, selected bool) string {
	text := "• " + truncate.StringWithTail(label.Name, uint(max(width-2, 1)), "…")
	if selected {
		return styleSelected.Render(text)
	}
	if label.Color == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(adaptColor(e.profile, label.Color)).Render(text)
}

func (e *LabelEditor) View(area Rect) string {
	innerW := area.Width - 2
	var lines []string
	if e.issue == 0 {
		lines = append(lines, styleDim.Render("No issue selected."))
	} else if len(e.labels) == 0 {
		lines = append(lines, styleDim.Render("No labels."))
	}
	for i, label := range e.labels {
		lines = append(lines, e.labelLine(label, innerW, i == e.selected && e.listLeaf.Focused()))
	}

	switch e.mode {
	case labelEdit:
		e.input.Width = innerW - lipgloss.Width(e.input.Prompt) - 1
		lines = append(lines, "", e.input.View())
		for i, s := range e.suggestions {
			if i == e.suggestion {
				lines = append(lines, styleSuggestionSelected.Render("  "+s))
			} else {
				lines = append(lines, styleSuggestion.Render("  "+s))
			}
		}
	case labelConfirmCreate:
		lines = append(lines, "", styleDim.Render("Creating "+e.pendingName+"…"))
	}

	if e.busy {
		frames := spinner.MiniDot.Frames
		lines = append(lines, "", styleSpinner.Render(frames[e.frame%len(frames)])+" "+styleDim.Render("Working…"))
	} else if e.status != "" {
		style := styleSuccess
		if e.statusError {
			style = styleError
		}
		lines = append(lines, "", style.Render(truncate.StringWithTail(e.status, uint(max(innerW, 1)), "…")))
	}

	title := "Labels"
	if e.issue != 0 {
		title = fmt.Sprintf("Labels #%d", e.issue)
	}
	return renderPane(area, title, e.listLeaf.Focused() || e.inputLeaf.Focused(), strings.Join(lines, "\n"))
}
