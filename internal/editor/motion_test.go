package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Character Motions
// ============================================================================

func TestMoveLeft(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		start    Position
		expected Position
	}{
		{"interior", []string{"abc"}, Position{2, 0}, Position{1, 0}},
		{"wraps to previous line end", []string{"abc", "de"}, Position{0, 1}, Position{3, 0}},
		{"buffer start is noop", []string{"abc"}, Position{0, 0}, Position{0, 0}},
		{"wraps onto empty line", []string{"", "de"}, Position{0, 1}, Position{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.lines...).at(tt.start.Col, tt.start.Row)
			e.MoveLeft()
			require.Equal(t, tt.expected, e.Cursor())
		})
	}
}

func TestMoveRight(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		start    Position
		expected Position
	}{
		{"interior", []string{"abc"}, Position{1, 0}, Position{2, 0}},
		{"reaches append position", []string{"abc"}, Position{2, 0}, Position{3, 0}},
		{"wraps from append position", []string{"abc", "de"}, Position{3, 0}, Position{0, 1}},
		{"wraps from empty line", []string{"", "de"}, Position{0, 0}, Position{0, 1}},
		{"buffer end is noop", []string{"abc"}, Position{3, 0}, Position{3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.lines...).at(tt.start.Col, tt.start.Row)
			e.MoveRight()
			require.Equal(t, tt.expected, e.Cursor())
		})
	}
}

// TestMoveLeftThenRight_Interior verifies the pair is an identity away from line boundaries.
func TestMoveLeftThenRight_Interior(t *testing.T) {
	for col := 1; col <= 4; col++ {
		e := newTestEngine("hello").at(col, 0)
		e.MoveLeft()
		e.MoveRight()
		require.Equal(t, Position{Col: col, Row: 0}, e.Cursor())
	}
}

func TestMoveUpDown_ClampToShorterLine(t *testing.T) {
	e := newTestEngine("abcdef", "ab", "abcd").at(5, 0)

	e.MoveDown()
	require.Equal(t, Position{Col: 2, Row: 1}, e.Cursor())

	e.MoveDown()
	require.Equal(t, Position{Col: 2, Row: 2}, e.Cursor(), "column is not remembered across a clamp")

	e.MoveDown()
	require.Equal(t, Position{Col: 2, Row: 2}, e.Cursor(), "bottom row is a noop")

	e.MoveToLineEnd()
	e.MoveUp()
	require.Equal(t, Position{Col: 2, Row: 1}, e.Cursor())

	e.MoveUp()
	e.MoveUp()
	require.Equal(t, Position{Col: 2, Row: 0}, e.Cursor(), "top row is a noop")
}

func TestMoveToLineStartEnd(t *testing.T) {
	e := newTestEngine("héllo", "").at(2, 0)

	e.MoveToLineEnd()
	require.Equal(t, Position{Col: 5, Row: 0}, e.Cursor())

	e.MoveToLineStart()
	require.Equal(t, Position{Col: 0, Row: 0}, e.Cursor())

	e.MoveDown()
	e.MoveToLineEnd()
	require.Equal(t, Position{Col: 0, Row: 1}, e.Cursor())
}

// ============================================================================
// Word Motions
// ============================================================================

// TestMoveWordForward_ThreeWords verifies "abc def ghi" lands on 4, 8, then wraps.
func TestMoveWordForward_ThreeWords(t *testing.T) {
	e := newTestEngine("abc def ghi", "next")

	e.MoveWordForward()
	require.Equal(t, Position{Col: 4, Row: 0}, e.Cursor())

	e.MoveWordForward()
	require.Equal(t, Position{Col: 8, Row: 0}, e.Cursor())

	e.MoveWordForward()
	require.Equal(t, Position{Col: 0, Row: 1}, e.Cursor())
}

func TestMoveWordForward_LastLineStopsAtAppend(t *testing.T) {
	e := newTestEngine("abc def ghi").at(8, 0)
	e.MoveWordForward()
	require.Equal(t, Position{Col: 11, Row: 0}, e.Cursor())

	e.MoveWordForward()
	require.Equal(t, Position{Col: 11, Row: 0}, e.Cursor(), "append position is a fixed point")
}

func TestMoveWordForward(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		start    Position
		expected Position
	}{
		{"from inside word", []string{"hello world"}, Position{2, 0}, Position{6, 0}},
		{"from space", []string{"a   b"}, Position{1, 0}, Position{4, 0}},
		{"trailing spaces wrap", []string{"abc   ", "x"}, Position{0, 0}, Position{0, 1}},
		{"trailing spaces on last line", []string{"abc   "}, Position{0, 0}, Position{6, 0}},
		{"empty line wraps", []string{"", "x"}, Position{0, 0}, Position{0, 1}},
		{"tabs are spaces", []string{"a\tb"}, Position{0, 0}, Position{2, 0}},
		{"punctuation is part of word", []string{"foo.bar baz"}, Position{0, 0}, Position{8, 0}},
		{"graphemes", []string{"日本 語"}, Position{0, 0}, Position{3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.lines...).at(tt.start.Col, tt.start.Row)
			e.MoveWordForward()
			require.Equal(t, tt.expected, e.Cursor())
		})
	}
}

func TestMoveWordBackward(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		start    Position
		expected Position
	}{
		{"from end", []string{"abc def ghi"}, Position{11, 0}, Position{8, 0}},
		{"from word start", []string{"abc def ghi"}, Position{8, 0}, Position{4, 0}},
		{"from inside word", []string{"abc def"}, Position{6, 0}, Position{4, 0}},
		{"leading spaces", []string{"   abc"}, Position{3, 0}, Position{0, 0}},
		{"column zero wraps", []string{"abc", "def"}, Position{0, 1}, Position{3, 0}},
		{"empty line wraps", []string{"abc", ""}, Position{0, 1}, Position{3, 0}},
		{"buffer start is noop", []string{"abc"}, Position{0, 0}, Position{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.lines...).at(tt.start.Col, tt.start.Row)
			e.MoveWordBackward()
			require.Equal(t, tt.expected, e.Cursor())
		})
	}
}
