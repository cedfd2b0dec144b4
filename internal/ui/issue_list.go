package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"tissue/internal/debug"
	"tissue/internal/focus"
	"tissue/internal/github"
)

const FocusIssueList = "issues.list"

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// IssueList shows the current search results.
type IssueList struct {
	keys       KeyMap
	dispatcher Dispatcher

	screen Screen
	issues []github.Issue
	total  int
	cursor int
	offset int
	height int

	leaf *leaf
}

func NewIssueList(keys KeyMap) *IssueList {
	l := &IssueList{keys: keys}
	l.leaf = newLeaf(FocusIssueList, l.handleInput)
	return l
}

func (l *IssueList) ID() ComponentID { return IDIssueList }

func (l *IssueList) Register(d Dispatcher) { l.dispatcher = d }

func (l *IssueList) Visible() bool { return l.screen == ScreenList }

func (l *IssueList) FocusNode() *focus.Node { return focus.LeafNode(l.leaf) }

func (l *IssueList) Cursor() (int, int, bool) { return 0, 0, false }

// Selected returns the issue under the cursor.
func (l *IssueList) Selected() (github.Issue, bool) {
	if l.cursor < 0 || l.cursor >= len(l.issues) {
		return github.Issue{}, false
	}
	return l.issues[l.cursor], true
}

func (l *IssueList) HandleAction(a Action) bool {
	switch act := a.(type) {
	case SearchPageArrived:
		l.issues = act.Page.Issues
		l.total = act.Page.Total
		l.cursor = 0
		l.offset = 0
		l.send(IssueCountChanged{Count: len(l.issues)})
		l.announceSelection()
		return true
	case LabelsUpdated:
		for i := range l.issues {
			if l.issues[i].Number == act.Issue {
				l.issues[i].Labels = act.Labels
			}
		}
	case CommentPosted:
		for i := range l.issues {
			if l.issues[i].Number == act.Issue {
				l.issues[i].Comments++
				return l.Visible()
			}
		}
	case ScreenChanged:
		l.screen = act.Screen
		if act.Screen == ScreenList {
			l.send(ForceFocusChange{Target: FocusIssueList})
		} else {
			l.leaf.SetFocused(false)
		}
		return true
	}
	return false
}

func (l *IssueList) handleInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, l.keys.Up):
		l.move(-1)
		return true
	case key.Matches(km, l.keys.Down):
		l.move(1)
		return true
	case key.Matches(km, l.keys.PageUp):
		l.move(-l.pageSize())
		return true
	case key.Matches(km, l.keys.PageDown):
		l.move(l.pageSize())
		return true
	case key.Matches(km, l.keys.Enter):
		l.open()
		return true
	case key.Matches(km, l.keys.Copy):
		l.copyURL()
		return true
	case key.Matches(km, l.keys.AddLabel):
		if _, ok := l.Selected(); ok {
			l.send(LabelEditRequested{})
		}
		return true
	}
	return false
}

func (l *IssueList) pageSize() int {
	if l.height > 1 {
		return l.height
	}
	return 10
}

func (l *IssueList) move(delta int) {
	if len(l.issues) == 0 {
		return
	}
	next := l.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(l.issues) {
		next = len(l.issues) - 1
	}
	if next == l.cursor {
		return
	}
	l.cursor = next
	l.announceSelection()
}

func (l *IssueList) announceSelection() {
	issue, ok := l.Selected()
	if !ok {
		return
	}
	l.send(SelectedIssueLabels{Issue: issue.Number, Labels: issue.Labels})
}

func (l *IssueList) open() {
	issue, ok := l.Selected()
	if !ok {
		return
	}
	l.send(EnterDetails{Seed: ConversationSeed{
		Number:    issue.Number,
		Author:    issue.Author,
		CreatedAt: issue.CreatedAt,
		Body:      issue.Body,
	}})
	l.send(ScreenChanged{Screen: ScreenDetails})
	l.send(ForceFocusChange{Target: FocusConversationInput})
}

func (l *IssueList) copyURL() {
	issue, ok := l.Selected()
	if !ok || issue.URL == "" {
		return
	}
	if err := copyToClipboard(issue.URL); err != nil {
		debug.Logf("issues: clipboard: %v", err)
		l.send(StatusNotice{Text: "Copy failed: " + err.Error(), Error: true})
		return
	}
	l.send(StatusNotice{Text: fmt.Sprintf("Copied #%d URL", issue.Number)})
}

func (l *IssueList) send(a Action) {
	if l.dispatcher == nil {
		return
	}
	if err := l.dispatcher.Send(a); err != nil {
		debug.Logf("issues: send %T: %v", a, err)
	}
}

// row renders one issue line no wider than width.
func (l *IssueList) row(issue github.Issue, width int, selected bool) string {
	number := fmt.Sprintf("#%d", issue.Number)
	meta := fmt.Sprintf("  💬 %d", issue.Comments)
	fixed := ansi.StringWidth("● "+number+" ") + ansi.StringWidth(meta)
	titleWidth := width - fixed
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := truncate.StringWithTail(issue.Title, uint(titleWidth), "…")

	if selected {
		return styleSelected.Render("● " + number + " " + title + meta)
	}
	state := styleIssueOpen.Render("●")
	if issue.State == "closed" {
		state = styleIssueClosed.Render("●")
	}
	return state + " " + styleIssueNumber.Render(number) + " " + title + styleDim.Render(meta)
}

func (l *IssueList) View(area Rect) string {
	innerW := area.Width - 2
	l.height = area.Height - 3
	if l.height < 1 {
		l.height = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}

	title := fmt.Sprintf("Issues (%d)", len(l.issues))
	if l.total > len(l.issues) {
		title = fmt.Sprintf("Issues (%d of %d)", len(l.issues), l.total)
	}

	if len(l.issues) == 0 {
		return renderPane(area, title, l.leaf.Focused(), styleDim.Render("No issues."))
	}

	end := l.offset + l.height
	if end > len(l.issues) {
		end = len(l.issues)
	}
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.row(l.issues[i], innerW, i == l.cursor && l.leaf.Focused()))
	}
	return renderPane(area, title, l.leaf.Focused(), strings.Join(rows, "\n"))
}
