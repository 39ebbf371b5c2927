// Package input carries key events from the terminal loop to whichever panel
// currently owns focus.
//
// The producer side (Feed, Send, Close) is driven by the program's key
// reader. The consumer side offers a non-blocking Poll for panels that redraw
// every tick and a blocking Wait for modal panels with exclusive focus.
// Events are delivered in press order. Closure is terminal: once the producer
// closes and the pending events are drained, every receive reports
// queue.ErrClosed.
package input

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
	"github.com/zjrosen/letter/internal/queue"
)

// KeyMsg is delivered by WaitCmd when a key arrives.
type KeyMsg struct {
	Key keys.Key
}

// ClosedMsg is delivered by WaitCmd once the source is closed and drained.
type ClosedMsg struct{}

// Source is an ordered key event stream.
type Source struct {
	q *queue.Queue[keys.Key]
}

// NewSource creates an open, empty source.
func NewSource() *Source {
	return &Source{q: queue.New[keys.Key]()}
}

// Feed converts a bubbletea key message and enqueues it.
// Returns false if the key is outside the vocabulary or the source is closed.
func (s *Source) Feed(msg tea.KeyMsg) bool {
	k, ok := keys.FromTea(msg)
	if !ok {
		log.Debug(log.CatInput, "ignored key", "key", msg.String())
		return false
	}
	return s.Send(k) == nil
}

// Send enqueues k. Returns queue.ErrClosed after Close.
func (s *Source) Send(k keys.Key) error {
	return s.q.Push(k)
}

// Close ends the stream. Keys already sent are still delivered.
func (s *Source) Close() {
	s.q.Close()
	log.Debug(log.CatInput, "source closed")
}

// Closed reports whether Close has been called. Keys may still be pending.
func (s *Source) Closed() bool {
	return s.q.Closed()
}

// Poll returns the next key if one is pending. ok is false when nothing is
// pending; err is queue.ErrClosed once the stream has ended.
func (s *Source) Poll() (k keys.Key, ok bool, err error) {
	k, err = s.q.TryRecv()
	switch {
	case err == nil:
		return k, true, nil
	case errors.Is(err, queue.ErrEmpty):
		return keys.Key{}, false, nil
	default:
		return keys.Key{}, false, err
	}
}

// Wait blocks until a key arrives or the stream ends.
func (s *Source) Wait() (keys.Key, error) {
	return s.q.Recv()
}

// WaitCmd returns a command that blocks on Wait in the bubbletea command
// goroutine, yielding KeyMsg or ClosedMsg.
func (s *Source) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		k, err := s.Wait()
		if err != nil {
			return ClosedMsg{}
		}
		return KeyMsg{Key: k}
	}
}

// Pending returns the number of keys not yet received.
func (s *Source) Pending() int {
	return s.q.Len()
}
