package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tissue/internal/github"
)

// Action is a message consumed by the dispatch loop. Every input event, timer
// tick and background result becomes one Action.
type Action interface {
	action()
}

// Screen selects the main view.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetails
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenDetails:
		return "details"
	}
	return "unknown"
}

// ConversationSeed identifies the issue whose conversation is opened. Body is
// optional; a blank body is treated as absent.
type ConversationSeed struct {
	Number    int
	Author    string
	CreatedAt string
	Body      string
}

// HasBody reports whether the seed carries a non-blank body.
func (s ConversationSeed) HasBody() bool {
	for _, r := range s.Body {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return true
	}
	return false
}

// RawInput carries a terminal input event. Consumed is set by the loop when
// the focused leaf handled it.
type RawInput struct {
	Msg      tea.Msg
	Consumed bool
}

// Tick advances animations and expiries.
type Tick struct{}

// Render requests a repaint.
type Render struct{}

// ScreenChanged switches the main view.
type ScreenChanged struct {
	Screen Screen
}

// ForceFocusChange transfers focus to the named leaf, or to the next leaf in
// tab order when Target is empty.
type ForceFocusChange struct {
	Target string
}

// EnterDetails opens the conversation for an issue.
type EnterDetails struct {
	Seed ConversationSeed
}

type CommentsLoaded struct {
	Issue    int
	Comments []github.Comment
}

type CommentsErrored struct {
	Issue   int
	Message string
}

type CommentPosted struct {
	Issue   int
	Comment github.Comment
}

type CommentPostErrored struct {
	Issue   int
	Message string
}

// SelectedIssueLabels announces the labels of the issue under the list cursor.
type SelectedIssueLabels struct {
	Issue  int
	Labels []github.Label
}

// LabelsUpdated carries an issue's label set after a confirmed mutation.
type LabelsUpdated struct {
	Issue  int
	Labels []github.Label
	Status string
}

// LabelMissing reports that a label lookup found nothing under Name.
type LabelMissing struct {
	Name string
}

type LabelEditErrored struct {
	Message string
}

// LabelColorChosen is sent by the color picker when the user confirms a color
// for a label about to be created.
type LabelColorChosen struct {
	Name  string
	Color string
}

// LabelColorRequested opens the color picker for a label about to be
// created. The label editor sends it once it has entered confirm-create mode.
type LabelColorRequested struct {
	Name string
}

// LabelEditRequested asks the label editor to open its name input for the
// selected issue.
type LabelEditRequested struct{}

// LabelCreateCancelled abandons the confirm-create flow.
type LabelCreateCancelled struct{}

// RepoLabelsLoaded carries every label defined in the repository.
type RepoLabelsLoaded struct {
	Labels []github.Label
}

type SearchPageArrived struct {
	Page github.SearchPage
}

// SearchFinished ends a search. Err is empty on success.
type SearchFinished struct {
	Err string
}

// StatusNotice shows a transient message in the status bar.
type StatusNotice struct {
	Text  string
	Error bool
}

type IssueCountChanged struct {
	Count int
}

// Resized reports the new terminal size.
type Resized struct {
	Width  int
	Height int
}

// Quit stops the loop.
type Quit struct{}

func (RawInput) action()             {}
func (Tick) action()                 {}
func (Render) action()               {}
func (ScreenChanged) action()        {}
func (ForceFocusChange) action()     {}
func (EnterDetails) action()         {}
func (CommentsLoaded) action()       {}
func (CommentsErrored) action()      {}
func (CommentPosted) action()        {}
func (CommentPostErrored) action()   {}
func (SelectedIssueLabels) action()  {}
func (LabelsUpdated) action()        {}
func (LabelMissing) action()         {}
func (LabelEditErrored) action()     {}
func (LabelColorChosen) action()     {}
func (LabelColorRequested) action()  {}
func (LabelCreateCancelled) action() {}
func (LabelEditRequested) action()   {}
func (RepoLabelsLoaded) action()     {}
func (SearchPageArrived) action()    {}
func (SearchFinished) action()       {}
func (StatusNotice) action()         {}
func (IssueCountChanged) action()    {}
func (Resized) action()              {}
func (Quit) action()                 {}
