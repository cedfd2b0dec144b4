package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tissue/internal/bus"
	"tissue/internal/debug"
	"tissue/internal/focus"
)

// taskTimeout bounds one background remote operation.
const taskTimeout = 30 * time.Second

// Loop is the single consumer of the action queue. It delivers every Action
// to every component in registry order and tracks whether a repaint is due.
type Loop struct {
	queue    *bus.Queue[Action]
	registry *Registry
	router   *focus.Router
	keys     KeyMap

	pending []tea.Cmd
	dirty   bool
	quit    bool
}

// NewLoop wires the registry to a fresh queue, registers every component and
// takes the first focus snapshot.
func NewLoop(registry *Registry, keys KeyMap) *Loop {
	l := &Loop{
		queue:    bus.New[Action](),
		registry: registry,
		router:   focus.NewRouter(),
		keys:     keys,
		dirty:    true,
	}
	d := &loopDispatcher{loop: l}
	for _, c := range registry.Components {
		c.Register(d)
	}
	l.router.Rebuild(registry.FocusTree())
	return l
}

// Queue exposes the action queue to producers.
func (l *Loop) Queue() *bus.Queue[Action] {
	return l.queue
}

// Router exposes the focus router.
func (l *Loop) Router() *focus.Router {
	return l.router
}

// Dirty reports whether a repaint was requested since the last ClearDirty.
func (l *Loop) Dirty() bool {
	return l.dirty
}

// ClearDirty marks the current frame as painted.
func (l *Loop) ClearDirty() {
	l.dirty = false
}

// Quitting reports whether a Quit action has been dispatched.
func (l *Loop) Quitting() bool {
	return l.quit
}

// Dispatch runs one iteration for a.
func (l *Loop) Dispatch(a Action) {
	switch act := a.(type) {
	case RawInput:
		routed := l.routeInput(act)
		if routed.Consumed {
			l.dirty = true
		}
		a = routed
	case ForceFocusChange:
		l.router.Rebuild(l.registry.FocusTree())
		if act.Target == "" {
			l.router.Advance(focus.Next)
		} else if !l.router.Transfer(act.Target) {
			debug.Logf("focus: no leaf named %q", act.Target)
		}
		l.dirty = true
	case Render, Resized:
		l.dirty = true
	case Quit:
		l.quit = true
	}

	for _, c := range l.registry.Components {
		if c.HandleAction(a) {
			l.dirty = true
		}
	}
	l.router.Rebuild(l.registry.FocusTree())
}

// routeInput delivers a key or mouse event to the focused leaf, then applies
// global bindings to keys nobody consumed or captured.
func (l *Loop) routeInput(in RawInput) RawInput {
	l.router.Rebuild(l.registry.FocusTree())

	keyMsg, isKey := in.Msg.(tea.KeyMsg)
	if isKey && key.Matches(keyMsg, l.keys.ForceQuit) {
		l.send(Quit{})
		return in
	}

	blocked := l.inputBlocked()
	if !blocked && l.router.Route(in.Msg) {
		in.Consumed = true
	}
	if !isKey || in.Consumed || blocked || l.captured(keyMsg) {
		return in
	}

	switch {
	case key.Matches(keyMsg, l.keys.Tab):
		l.router.Advance(focus.Next)
		in.Consumed = true
		l.dirty = true
	case key.Matches(keyMsg, l.keys.ShiftTab):
		l.router.Advance(focus.Prev)
		in.Consumed = true
		l.dirty = true
	case key.Matches(keyMsg, l.keys.Quit):
		l.send(Quit{})
		in.Consumed = true
	}
	return in
}

func (l *Loop) inputBlocked() bool {
	for _, c := range l.registry.Components {
		if b, ok := c.(InputBlocker); ok && c.Visible() && b.BlocksInput() {
			return true
		}
	}
	return false
}

func (l *Loop) captured(msg tea.KeyMsg) bool {
	for _, c := range l.registry.Components {
		if fc, ok := c.(FocusCapturer); ok && c.Visible() && fc.CapturesFocusKey(msg) {
			return true
		}
	}
	return false
}

func (l *Loop) send(a Action) {
	if err := l.queue.Send(a); err != nil {
		debug.Logf("bus: dropped %T: %v", a, err)
	}
}

// Step dispatches the next queued action without blocking. It reports false
// when the queue was empty.
func (l *Loop) Step() bool {
	a, ok := l.queue.TryNext()
	if !ok {
		return false
	}
	l.Dispatch(a)
	return true
}

// TakePending returns and clears the background tasks spawned since the last
// call.
func (l *Loop) TakePending() []tea.Cmd {
	cmds := l.pending
	l.pending = nil
	return cmds
}

// Close stops accepting actions. Tasks still running drop their results.
func (l *Loop) Close() {
	l.queue.Close()
}

type loopDispatcher struct {
	loop *Loop
}

func (d *loopDispatcher) Send(a Action) error {
	return d.loop.queue.Send(a)
}

// Spawn queues task as a tea.Cmd. The command delivers the task's Action to
// the queue itself and returns no message.
func (d *loopDispatcher) Spawn(task func(ctx context.Context) Action) {
	q := d.loop.queue
	d.loop.pending = append(d.loop.pending, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()
		a := task(ctx)
		if a == nil {
			return nil
		}
		if err := q.Send(a); err != nil {
			if errors.Is(err, bus.ErrClosed) {
				debug.Logf("bus: task result %T dropped after shutdown", a)
			} else {
				debug.Logf("bus: task result %T dropped: %v", a, err)
			}
		}
		return nil
	})
}
