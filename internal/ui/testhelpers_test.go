package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeDispatcher records sent actions and spawned tasks without running them.
type fakeDispatcher struct {
	sent  []Action
	tasks []func(context.Context) Action
}

func (d *fakeDispatcher) Send(a Action) error {
	d.sent = append(d.sent, a)
	return nil
}

func (d *fakeDispatcher) Spawn(task func(context.Context) Action) {
	d.tasks = append(d.tasks, task)
}

// runTasks runs every pending task in spawn order and returns their results.
func (d *fakeDispatcher) runTasks() []Action {
	tasks := d.tasks
	d.tasks = nil
	results := make([]Action, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, task(context.Background()))
	}
	return results
}

func sentOfType[T Action](d *fakeDispatcher) []T {
	var out []T
	for _, a := range d.sent {
		if v, ok := a.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
