package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a command that waits for the next event on ch.
// It yields nil when ctx is cancelled or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener keeps one subscription alive across Update calls. Re-issue
// Listen after handling each event to keep receiving.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to b for the lifetime of ctx.
func NewListener[T any](ctx context.Context, b *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: b.Subscribe(ctx)}
}

// Listen returns a command for the next event.
func (l *Listener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
