package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tissue/internal/bus"
	"tissue/internal/config"
)

// actionMsg hands one dequeued Action to Update.
type actionMsg struct {
	action Action
}

// queueClosedMsg ends the listener after shutdown.
type queueClosedMsg struct{}

type tickMsg struct{}

func scheduleTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = config.DefaultTickInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

// listenForAction blocks until the queue yields the next Action. Only one
// listener is outstanding at a time; Update re-issues it after every message.
func listenForAction(q *bus.Queue[Action]) tea.Cmd {
	return func() tea.Msg {
		a, err := q.Next(context.Background())
		if err != nil {
			return queueClosedMsg{}
		}
		return actionMsg{action: a}
	}
}
