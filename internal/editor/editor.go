// Package editor provides the cursor engine: a line buffer with a 2-D cursor,
// vim-style motions and edits, and a per-key callback table that lets a host
// intercept keys before default handling runs.
//
// The engine is generic over the host's state S, which is handed to every
// callback, and the callback result type R, which ProcessKey returns to the
// host. It performs no concurrency of its own and must be driven from a
// single goroutine.
//
// Invariants held after every exported call:
//
//   - the buffer holds at least one line
//   - 0 <= row < LineCount()
//   - 0 <= col <= GraphemeCount(Line(row))
package editor

import (
	"strings"

	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
)

// Position is a cursor location. Col is a grapheme index into the line and
// may equal the line length (the append position).
type Position struct {
	Col int
	Row int
}

// Handler intercepts a key. Returning consumed=true makes ProcessKey return
// result and skip default handling.
type Handler[S, R any] func(e *Engine[S, R], state S) (consumed bool, result R)

// Option configures an Engine.
type Option func(*options)

type options struct {
	lineBreaks bool
}

// WithLineBreaks sets whether Enter and boundary-crossing Backspace may split
// and merge lines. Line breaks are allowed by default.
func WithLineBreaks(allowed bool) Option {
	return func(o *options) {
		o.lineBreaks = allowed
	}
}

// Engine owns a line buffer and its cursor.
type Engine[S, R any] struct {
	lines      []string
	col, row   int
	lineBreaks bool
	handlers   map[keys.Key]Handler[S, R]
}

// New creates an engine holding lines with the cursor at (0, 0).
// A nil or empty slice yields a single empty line.
func New[S, R any](lines []string, opts ...Option) *Engine[S, R] {
	o := options{lineBreaks: true}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine[S, R]{
		lineBreaks: o.lineBreaks,
		handlers:   make(map[keys.Key]Handler[S, R]),
	}
	e.setLines(lines)
	return e
}

// Lines returns a copy of the buffer.
func (e *Engine[S, R]) Lines() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Line returns the line at row, or "" if row is out of range.
func (e *Engine[S, R]) Line(row int) string {
	if row < 0 || row >= len(e.lines) {
		return ""
	}
	return e.lines[row]
}

// LineCount returns the number of lines, always at least 1.
func (e *Engine[S, R]) LineCount() int {
	return len(e.lines)
}

// Cursor returns the cursor position.
func (e *Engine[S, R]) Cursor() Position {
	return Position{Col: e.col, Row: e.row}
}

// Value returns the buffer joined with newlines.
func (e *Engine[S, R]) Value() string {
	return strings.Join(e.lines, "\n")
}

// DisplayColumn returns the terminal cell offset of the cursor within its
// line, for placing a visual caret.
func (e *Engine[S, R]) DisplayColumn() int {
	left, _ := SplitAt(e.lines[e.row], e.col)
	return DisplayWidth(left)
}

// LineBreaksAllowed reports the line-break policy.
func (e *Engine[S, R]) LineBreaksAllowed() bool {
	return e.lineBreaks
}

// SetLineBreaks changes the line-break policy. Existing lines are untouched.
func (e *Engine[S, R]) SetLineBreaks(allowed bool) {
	e.lineBreaks = allowed
}

// SetLines replaces the buffer and resets the cursor to (0, 0).
func (e *Engine[S, R]) SetLines(lines []string) {
	e.setLines(lines)
	log.Debug(log.CatEditor, "set lines", "count", len(e.lines))
}

// SetValue replaces the buffer with s split on newlines.
func (e *Engine[S, R]) SetValue(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	e.SetLines(strings.Split(s, "\n"))
}

func (e *Engine[S, R]) setLines(lines []string) {
	if len(lines) == 0 {
		e.lines = []string{""}
	} else {
		e.lines = make([]string, len(lines))
		copy(e.lines, lines)
	}
	e.col, e.row = 0, 0
}

func (e *Engine[S, R]) lineLen(row int) int {
	return GraphemeCount(e.lines[row])
}

func (e *Engine[S, R]) lastRow() int {
	return len(e.lines) - 1
}

// clamp pulls the cursor back inside the buffer.
func (e *Engine[S, R]) clamp() {
	e.row = max(0, min(e.row, e.lastRow()))
	e.col = max(0, min(e.col, e.lineLen(e.row)))
}
