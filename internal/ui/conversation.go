package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tissue/internal/debug"
	appErrors "tissue/internal/errors"
	"tissue/internal/focus"
	"tissue/internal/github"
	"tissue/internal/markdown"
)

const (
	FocusConversationList  = "conversation.list"
	FocusConversationInput = "conversation.input"

	commentsPerPage     = 100
	conversationIndent  = 2
	conversationPadding = 4
	inputHeight         = 3

	conversationPlaceholder = "Press Enter on an issue to view the conversation."
	emptyCommentMessage     = "Comment cannot be empty."
)

// Conversation shows an issue body and its comments and posts new comments.
// It owns the comment cache, the per-issue loading set and the rendered
// markdown cache.
type Conversation struct {
	client      github.Client
	owner       string
	repo        string
	currentUser string
	keys        KeyMap
	dispatcher  Dispatcher

	screen  Screen
	current *ConversationSeed

	cache   map[int][]github.Comment
	loading map[int]struct{}
	// pending holds comments posted before any fetch of their issue succeeded.
	pending map[int][]github.Comment
	posting bool
	err     string
	postErr string

	markdownCache map[int64][]markdown.Line
	bodyCache     map[int][]markdown.Line
	renderWidth   int

	viewport viewport.Model
	input    textarea.Model
	frame    int

	listLeaf  *leaf
	inputLeaf *leaf
}

// NewConversation builds the conversation view. client may be nil, in which
// case every fetch fails with a configuration error.
func NewConversation(client github.Client, owner, repo, currentUser string, keys KeyMap) *Conversation {
	input := textarea.New()
	input.Placeholder = "Write a comment… (Ctrl+S to send)"
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.Cursor.SetMode(cursor.CursorStatic)

	c := &Conversation{
		client:        client,
		owner:         owner,
		repo:          repo,
		currentUser:   currentUser,
		keys:          keys,
		cache:         make(map[int][]github.Comment),
		loading:       make(map[int]struct{}),
		pending:       make(map[int][]github.Comment),
		markdownCache: make(map[int64][]markdown.Line),
		bodyCache:     make(map[int][]markdown.Line),
		viewport:      viewport.New(0, 0),
		input:         input,
	}
	c.listLeaf = newLeaf(FocusConversationList, c.handleListInput)
	c.inputLeaf = newLeaf(FocusConversationInput, c.handleTextInput)
	return c
}

func (c *Conversation) ID() ComponentID { return IDConversation }

func (c *Conversation) Register(d Dispatcher) { c.dispatcher = d }

func (c *Conversation) Visible() bool { return c.screen == ScreenDetails }

func (c *Conversation) FocusNode() *focus.Node {
	return focus.Group(focus.LeafNode(c.listLeaf), focus.LeafNode(c.inputLeaf))
}

// CapturesFocusKey keeps Tab and q inside the comment input.
func (c *Conversation) CapturesFocusKey(msg tea.KeyMsg) bool {
	if !c.inputLeaf.Focused() {
		return false
	}
	return key.Matches(msg, c.keys.Tab, c.keys.ShiftTab, c.keys.Quit)
}

func (c *Conversation) Cursor() (int, int, bool) {
	if !c.inputLeaf.Focused() {
		return 0, 0, false
	}
	info := c.input.LineInfo()
	row := c.viewport.Height + 2 + c.input.Line()
	return 1 + info.ColumnOffset, row, true
}

func (c *Conversation) HandleAction(a Action) bool {
	switch act := a.(type) {
	case EnterDetails:
		c.enter(act.Seed)
		return true
	case ScreenChanged:
		c.screen = act.Screen
		if act.Screen == ScreenList {
			c.listLeaf.SetFocused(false)
			c.inputLeaf.SetFocused(false)
			c.input.Blur()
		}
		return true
	case CommentsLoaded:
		c.cache[act.Issue] = mergeComments(c.cache[act.Issue], act.Comments, c.pending[act.Issue])
		delete(c.pending, act.Issue)
		delete(c.loading, act.Issue)
		if c.isCurrent(act.Issue) {
			c.err = ""
		}
		return true
	case CommentsErrored:
		delete(c.loading, act.Issue)
		if c.isCurrent(act.Issue) {
			c.err = act.Message
		}
		return true
	case CommentPosted:
		c.posting = false
		if _, fetched := c.cache[act.Issue]; fetched {
			c.cache[act.Issue] = append(c.cache[act.Issue], act.Comment)
		} else {
			c.pending[act.Issue] = append(c.pending[act.Issue], act.Comment)
		}
		if c.isCurrent(act.Issue) {
			c.postErr = ""
			c.input.Reset()
		}
		return true
	case CommentPostErrored:
		c.posting = false
		if c.isCurrent(act.Issue) {
			c.postErr = act.Message
		}
		return true
	case Tick:
		if c.busy() {
			c.frame++
			return c.Visible()
		}
	}
	return false
}

func (c *Conversation) enter(seed ConversationSeed) {
	c.current = &seed
	c.postErr = ""
	delete(c.bodyCache, seed.Number)
	c.viewport.GotoTop()
	if _, ok := c.cache[seed.Number]; ok {
		delete(c.loading, seed.Number)
		c.err = ""
		return
	}
	c.fetch(seed.Number)
}

// mergeComments keeps every cached comment, adds fetched ones not seen yet and
// finishes with earlier posts the fetch did not include.
func mergeComments(cached, fetched, posted []github.Comment) []github.Comment {
	merged := make([]github.Comment, 0, len(cached)+len(fetched)+len(posted))
	seen := make(map[int64]struct{}, cap(merged))
	add := func(list []github.Comment) {
		for _, comment := range list {
			if _, dup := seen[comment.ID]; dup {
				continue
			}
			seen[comment.ID] = struct{}{}
			merged = append(merged, comment)
		}
	}
	add(cached)
	add(fetched)
	add(posted)
	return merged
}

// fetch starts loading comments for issue unless a load is already in flight.
func (c *Conversation) fetch(issue int) {
	if _, inFlight := c.loading[issue]; inFlight {
		return
	}
	c.loading[issue] = struct{}{}
	c.err = ""

	client, owner, repo := c.client, c.owner, c.repo
	c.spawn(func(ctx context.Context) Action {
		if client == nil {
			return CommentsErrored{Issue: issue, Message: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		comments, err := client.ListComments(ctx, owner, repo, issue, commentsPerPage, 1)
		if err != nil {
			debug.Logf("conversation: load #%d failed: %v", issue, err)
			return CommentsErrored{Issue: issue, Message: appErrors.Message(err)}
		}
		return CommentsLoaded{Issue: issue, Comments: comments}
	})
}

// post sends the input as a new comment on the current issue.
func (c *Conversation) post() {
	if c.current == nil || c.posting {
		return
	}
	body := strings.TrimSpace(c.input.Value())
	if body == "" {
		c.postErr = emptyCommentMessage
		return
	}
	c.posting = true
	c.postErr = ""

	issue := c.current.Number
	client, owner, repo := c.client, c.owner, c.repo
	c.spawn(func(ctx context.Context) Action {
		if client == nil {
			return CommentPostErrored{Issue: issue, Message: appErrors.Message(appErrors.ErrClientNotInitialized)}
		}
		comment, err := client.CreateComment(ctx, owner, repo, issue, body)
		if err != nil {
			return CommentPostErrored{Issue: issue, Message: appErrors.Message(err)}
		}
		return CommentPosted{Issue: issue, Comment: comment}
	})
}

func (c *Conversation) spawn(task func(context.Context) Action) {
	if c.dispatcher == nil {
		debug.Logf("conversation: no dispatcher, task dropped")
		return
	}
	c.dispatcher.Spawn(task)
}

func (c *Conversation) send(a Action) {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Send(a); err != nil {
		debug.Logf("conversation: send %T: %v", a, err)
	}
}

func (c *Conversation) isCurrent(issue int) bool {
	return c.current != nil && c.current.Number == issue
}

func (c *Conversation) busy() bool {
	if c.posting {
		return true
	}
	if c.current == nil {
		return false
	}
	_, loading := c.loading[c.current.Number]
	return loading
}

func (c *Conversation) handleListInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, c.keys.Back):
		c.send(ScreenChanged{Screen: ScreenList})
		return true
	case key.Matches(km, c.keys.Up):
		c.viewport.ScrollUp(1)
		return true
	case key.Matches(km, c.keys.Down):
		c.viewport.ScrollDown(1)
		return true
	case key.Matches(km, c.keys.PageUp):
		c.viewport.PageUp()
		return true
	case key.Matches(km, c.keys.PageDown):
		c.viewport.PageDown()
		return true
	}
	return false
}

func (c *Conversation) handleTextInput(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch {
	case key.Matches(km, c.keys.Post):
		c.post()
		return true
	case key.Matches(km, c.keys.Back):
		c.input.Blur()
		c.send(ScreenChanged{Screen: ScreenList})
		return true
	case key.Matches(km, c.keys.Tab, c.keys.ShiftTab):
		c.send(ForceFocusChange{})
		return true
	case key.Matches(km, c.keys.ForceQuit):
		return false
	}
	if !c.input.Focused() {
		c.input.Focus()
	}
	c.input, _ = c.input.Update(km)
	return true
}

// ensureWidth drops every rendered line when the layout width changes.
func (c *Conversation) ensureWidth(width int) {
	if width == c.renderWidth {
		return
	}
	c.renderWidth = width
	clear(c.markdownCache)
	clear(c.bodyCache)
}

func (c *Conversation) commentLines(comment github.Comment) []markdown.Line {
	if lines, ok := c.markdownCache[comment.ID]; ok {
		return lines
	}
	lines := markdown.Layout(comment.Body, c.renderWidth, conversationIndent)
	c.markdownCache[comment.ID] = lines
	return lines
}

func (c *Conversation) bodyLines(seed ConversationSeed) []markdown.Line {
	if lines, ok := c.bodyCache[seed.Number]; ok {
		return lines
	}
	lines := markdown.Layout(seed.Body, c.renderWidth, conversationIndent)
	c.bodyCache[seed.Number] = lines
	return lines
}

func (c *Conversation) header(author, createdAt string) string {
	style := styleAuthorOther
	if author != "" && author == c.currentUser {
		style = styleAuthorSelf
	}
	return style.Render(author) + "  " + styleTimestamp.Render(createdAt)
}

// transcript lays out the body and comments of the current issue at width.
func (c *Conversation) transcript(width int) string {
	c.ensureWidth(width)
	if c.current == nil {
		return styleDim.Render(conversationPlaceholder)
	}
	seed := *c.current

	var blocks []string
	if seed.HasBody() {
		blocks = append(blocks, c.header(seed.Author, seed.CreatedAt)+"\n"+markdown.RenderLines(c.bodyLines(seed)))
	}
	comments := append(append([]github.Comment(nil), c.cache[seed.Number]...), c.pending[seed.Number]...)
	for _, comment := range comments {
		blocks = append(blocks, c.header(comment.Author, comment.CreatedAt)+"\n"+markdown.RenderLines(c.commentLines(comment)))
	}
	if _, loading := c.loading[seed.Number]; loading {
		blocks = append(blocks, c.spinnerLine("Loading comments"))
	}
	if c.err != "" {
		blocks = append(blocks, styleError.Render(wordwrap.String(c.err, width)))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, styleDim.Render("No comments yet."))
	}
	return strings.Join(blocks, "\n\n")
}

func (c *Conversation) spinnerLine(label string) string {
	frames := spinner.MiniDot.Frames
	return styleSpinner.Render(frames[c.frame%len(frames)]) + " " + styleDim.Render(label+"…")
}

func (c *Conversation) View(area Rect) string {
	innerW := area.Width - 2
	width := area.Width - conversationPadding
	if width < markdown.MinWidth {
		width = markdown.MinWidth
	}

	status := ""
	switch {
	case c.posting:
		status = c.spinnerLine("Posting")
	case c.postErr != "":
		status = styleError.Render(wordwrap.String(c.postErr, width))
	}
	statusHeight := 0
	if status != "" {
		statusHeight = lipgloss.Height(status)
	}

	title := "Conversation"
	if c.current != nil {
		title = fmt.Sprintf("Conversation #%d", c.current.Number)
	}

	vpHeight := area.Height - 2 - 1 - (inputHeight + 2) - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	c.viewport.Width = innerW
	c.viewport.Height = vpHeight
	c.viewport.SetContent(c.transcript(width))

	c.input.SetWidth(innerW - 2)
	input := paneStyle(c.inputLeaf.Focused()).Width(innerW - 2).Render(c.input.View())

	parts := []string{c.viewport.View()}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, input)
	return renderPane(area, title, c.listLeaf.Focused(), lipgloss.JoinVertical(lipgloss.Left, parts...))
}
