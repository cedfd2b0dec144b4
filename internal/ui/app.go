package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tissue/internal/config"
	"tissue/internal/debug"
	"tissue/internal/github"
)

const (
	minAppWidth  = 40
	minAppHeight = 12

	statusBarHeight = 1
)

// Options configures the UI application.
type Options struct {
	Client github.Client
	Owner  string
	Repo   string
	// User is the login of the authenticated account.
	User string

	Keys         KeyMap
	TickInterval time.Duration
	HelpStyle    string
	SearchState  SearchState
}

// App implements the Bubble Tea model for tissue. Every terminal event becomes
// an Action on the loop's queue; Update dispatches one Action per message.
type App struct {
	loop     *Loop
	registry *Registry
	keys     KeyMap
	tick     time.Duration

	search       *SearchBar
	issues       *IssueList
	labels       *LabelEditor
	conversation *Conversation
	status       *StatusBar
	help         *Help
	picker       *ColorPicker

	width  int
	height int
	ready  bool

	rects map[ComponentID]Rect
	frame string
}

// NewApp builds the components, registers them in dispatch order and focuses
// the issue list.
func NewApp(opts Options) (*App, error) {
	keys := opts.Keys
	if len(keys.ForceQuit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = config.DefaultTickInterval
	}

	a := &App{
		keys:         keys,
		tick:         tick,
		search:       NewSearchBar(opts.Client, opts.Owner, opts.Repo, opts.SearchState, keys),
		issues:       NewIssueList(keys),
		labels:       NewLabelEditor(opts.Client, opts.Owner, opts.Repo, keys),
		conversation: NewConversation(opts.Client, opts.Owner, opts.Repo, opts.User, keys),
		status:       NewStatusBar(opts.User, opts.Owner, opts.Repo),
		help:         NewHelp(keys, opts.HelpStyle),
		picker:       NewColorPicker(keys),
		rects:        make(map[ComponentID]Rect),
	}

	registry, err := BuildRegistry(
		a.search,
		a.issues,
		a.labels,
		a.conversation,
		a.status,
		a.help,
		a.picker,
	)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	a.registry = registry
	a.loop = NewLoop(registry, keys)
	a.loop.Router().Transfer(FocusIssueList)
	debug.Logf("app: started for %s/%s as %s", opts.Owner, opts.Repo, opts.User)
	return a, nil
}

// Loop exposes the dispatch loop.
func (a *App) Loop() *Loop {
	return a.loop
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{listenForAction(a.loop.Queue()), scheduleTick(a.tick)}
	cmds = append(cmds, a.loop.TakePending()...)
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a.enqueue(RawInput{Msg: msg})
	case tea.MouseMsg:
		a.enqueue(RawInput{Msg: msg})
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.enqueue(Resized{Width: msg.Width, Height: msg.Height})
	case tickMsg:
		a.enqueue(Tick{})
		return a, scheduleTick(a.tick)
	case actionMsg:
		a.loop.Dispatch(msg.action)
		if a.loop.Quitting() {
			a.loop.Close()
			return a, tea.Quit
		}
		cmds := append(a.loop.TakePending(), listenForAction(a.loop.Queue()))
		return a, tea.Batch(cmds...)
	case queueClosedMsg:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) enqueue(act Action) {
	if err := a.loop.Queue().Send(act); err != nil {
		debug.Logf("app: dropped %T: %v", act, err)
	}
}

// layout assigns every visible component its area for a frame of w x h.
func (a *App) layout(w, h int) {
	clear(a.rects)
	details := a.conversation.Visible()
	bodyTop := 0
	bodyHeight := h - statusBarHeight
	if !details {
		a.rects[IDSearchBar] = Rect{X: 0, Y: 0, Width: w, Height: SearchBarHeight}
		bodyTop = SearchBarHeight
		bodyHeight -= SearchBarHeight
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	if details {
		a.rects[IDConversation] = Rect{X: 0, Y: bodyTop, Width: w, Height: bodyHeight}
	} else {
		issuesWidth := w * 2 / 3
		a.rects[IDIssueList] = Rect{X: 0, Y: bodyTop, Width: issuesWidth, Height: bodyHeight}
		a.rects[IDLabelEditor] = Rect{X: issuesWidth, Y: bodyTop, Width: w - issuesWidth, Height: bodyHeight}
	}
	a.rects[IDStatusBar] = Rect{X: 0, Y: bodyTop + bodyHeight, Width: w, Height: statusBarHeight}
}

// CursorPosition returns the absolute cursor cell of the focused input, if
// any component reports one.
func (a *App) CursorPosition() (x, y int, ok bool) {
	for _, c := range a.registry.Components {
		if !c.Visible() {
			continue
		}
		cx, cy, has := c.Cursor()
		if !has {
			continue
		}
		area, placed := a.rects[c.ID()]
		if !placed {
			continue
		}
		return area.X + cx, area.Y + cy, true
	}
	return 0, 0, false
}

func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}
	if !a.loop.Dirty() && a.frame != "" {
		return a.frame
	}

	w := max(a.width, minAppWidth)
	h := max(a.height, minAppHeight)
	a.layout(w, h)

	var rows []string
	if area, ok := a.rects[IDSearchBar]; ok {
		rows = append(rows, a.search.View(area))
	}
	if area, ok := a.rects[IDConversation]; ok {
		rows = append(rows, a.conversation.View(area))
	} else {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			a.issues.View(a.rects[IDIssueList]),
			a.labels.View(a.rects[IDLabelEditor]),
		))
	}
	rows = append(rows, a.status.View(a.rects[IDStatusBar]))
	base := lipgloss.JoinVertical(lipgloss.Left, rows...)

	var layers []Layer
	if a.picker.Visible() {
		layers = append(layers, newCenteredOverlayLayer(a.picker.Overlay(), SearchBarHeight, statusBarHeight))
	}
	if a.help.Open() {
		layers = append(layers, newCenteredOverlayLayer(a.help.Overlay(w), 0, statusBarHeight))
	}

	a.frame = composeLayers(base, w, h, layers...)
	a.loop.ClearDirty()
	return a.frame
}
