// Package chord turns keystrokes into commands by incrementally matching
// them against a table of registered key sequences.
//
// A Composer holds the keys typed so far. Each PushKey either extends that
// composition, completes a registered sequence (the command is pushed to the
// output queue), or hits a dead end, in which case the whole composition is
// discarded, including the key that was just pushed. Escape always clears.
//
// Matching is greedy: a sequence that is also a prefix of a longer one fires
// as soon as it is typed, so the longer one can never be reached.
package chord

import (
	"errors"
	"fmt"

	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
	"github.com/zjrosen/letter/internal/queue"
)

var (
	// ErrEmptySequence is returned when registering a sequence with no keys.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrEscapeInSequence is returned when a sequence contains Escape, which
	// always clears the composition and so could never be matched.
	ErrEscapeInSequence = errors.New("key sequence contains escape")
)

// Outcome reports what PushKey did with a key.
type Outcome int

const (
	// Cleared means the key was Escape and the composition was discarded.
	Cleared Outcome = iota
	// Pending means the composition is a valid prefix and awaits more keys.
	Pending
	// Dropped means the composition stopped matching and was discarded.
	Dropped
	// Matched means a command was emitted and the composition reset.
	Matched
)

func (o Outcome) String() string {
	switch o {
	case Cleared:
		return "cleared"
	case Pending:
		return "pending"
	case Dropped:
		return "dropped"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Composer matches key sequences to commands of type C.
// It is not safe for concurrent use; only its output queue is.
type Composer[C any] struct {
	commands map[string]C
	prefixes map[string]struct{} // every non-empty prefix of every sequence, including the sequence itself
	current  keys.Sequence
	out      *queue.Queue[C]
}

// New creates an empty composer.
func New[C any]() *Composer[C] {
	return &Composer[C]{
		commands: make(map[string]C),
		prefixes: make(map[string]struct{}),
		out:      queue.New[C](),
	}
}

// Commands returns the queue matched commands are pushed to.
func (c *Composer[C]) Commands() *queue.Queue[C] {
	return c.out
}

// Register binds seq to cmd, replacing any command already bound to seq.
func (c *Composer[C]) Register(seq keys.Sequence, cmd C) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if seq.Contains(keys.Escape) {
		return fmt.Errorf("%w: %s", ErrEscapeInSequence, seq)
	}

	c.commands[seq.String()] = cmd
	for i := 1; i <= len(seq); i++ {
		c.prefixes[seq[:i].String()] = struct{}{}
	}
	return nil
}

// RegisterSpec parses spec with keys.ParseSequence and registers it.
func (c *Composer[C]) RegisterSpec(spec string, cmd C) error {
	seq, err := keys.ParseSequence(spec)
	if err != nil {
		return err
	}
	return c.Register(seq, cmd)
}

// PushKey feeds one key into the composition.
func (c *Composer[C]) PushKey(k keys.Key) Outcome {
	if k == keys.Escape {
		c.current = c.current[:0]
		return Cleared
	}

	c.current = append(c.current, k)
	id := c.current.String()

	if _, ok := c.prefixes[id]; !ok {
		log.Debug(log.CatChord, "dropped", "sequence", id)
		c.current = c.current[:0]
		return Dropped
	}

	cmd, ok := c.commands[id]
	if !ok {
		return Pending
	}

	c.current = c.current[:0]
	if err := c.out.Push(cmd); err != nil {
		log.ErrorErr(log.CatChord, "emit command", err, "sequence", id)
		return Dropped
	}
	log.Debug(log.CatChord, "matched", "sequence", id)
	return Matched
}

// PartialSequenceString renders the in-progress composition for display.
func (c *Composer[C]) PartialSequenceString() string {
	return c.current.String()
}

// Pending returns a copy of the in-progress composition.
func (c *Composer[C]) Pending() keys.Sequence {
	return c.current.Clone()
}

// Len returns the number of registered sequences.
func (c *Composer[C]) Len() int {
	return len(c.commands)
}

// Clear discards the in-progress composition without emitting anything.
func (c *Composer[C]) Clear() {
	c.current = c.current[:0]
}

// Reset drops every registration and the in-progress composition. The output
// queue and anything already in it are kept.
func (c *Composer[C]) Reset() {
	clear(c.commands)
	clear(c.prefixes)
	c.current = c.current[:0]
}

// Close closes the output queue. Matches after Close are dropped.
func (c *Composer[C]) Close() {
	c.out.Close()
}
