package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tissue/internal/focus"
)

// noticeTTL is how long a status notice stays visible.
const noticeTTL = 5 * time.Second

// StatusBar is the bottom line: user, repository, issue count, transient
// notices and key hints.
type StatusBar struct {
	user   string
	owner  string
	repo   string
	screen Screen
	count  int

	notice        string
	noticeError   bool
	noticeExpires time.Time

	now func() time.Time
}

func NewStatusBar(user, owner, repo string) *StatusBar {
	return &StatusBar{user: user, owner: owner, repo: repo, now: time.Now}
}

func (s *StatusBar) ID() ComponentID { return IDStatusBar }

func (s *StatusBar) Register(Dispatcher) {}

func (s *StatusBar) Visible() bool { return true }

func (s *StatusBar) FocusNode() *focus.Node { return nil }

func (s *StatusBar) Cursor() (int, int, bool) { return 0, 0, false }

func (s *StatusBar) HandleAction(a Action) bool {
	switch act := a.(type) {
	case IssueCountChanged:
		s.count = act.Count
		return true
	case ScreenChanged:
		s.screen = act.Screen
		return true
	case StatusNotice:
		s.notice = act.Text
		s.noticeError = act.Error
		s.noticeExpires = s.now().Add(noticeTTL)
		return true
	case Tick:
		if s.notice != "" && !s.now().Before(s.noticeExpires) {
			s.notice = ""
			s.noticeError = false
			return true
		}
	}
	return false
}

func (s *StatusBar) View(area Rect) string {
	user := styleStatusUser.Render("Logged in as " + s.user)
	repo := styleStatusRepo.Render(fmt.Sprintf(" %s/%s ", s.owner, s.repo))
	count := styleStatusCount.Render(fmt.Sprintf(" Issues: %d ", s.count))
	left := user + repo + count

	if s.notice != "" {
		style := styleSuccess
		if s.noticeError {
			style = styleError
		}
		room := area.Width - lipgloss.Width(left) - 2
		if room > 0 {
			left += "  " + style.Render(truncate.StringWithTail(s.notice, uint(room), "…"))
		}
	}

	available := area.Width - lipgloss.Width(left) - 2
	hints := renderHints(trimHintsToFit(footerHintsFor(s.screen), available))
	spacing := area.Width - lipgloss.Width(left) - lipgloss.Width(hints)
	if spacing < 1 {
		spacing = 1
	}
	return lipgloss.NewStyle().MaxWidth(area.Width).Render(left + strings.Repeat(" ", spacing) + hints)
}
