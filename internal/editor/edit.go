package editor

import (
	"slices"
	"unicode"

	"github.com/zjrosen/letter/internal/log"
)

// InsertChar inserts r before the cursor and advances past it. The cursor
// never leaves the current line. '\n' is handled as InsertLineBreak and
// other control runes except tab are ignored.
func (e *Engine[S, R]) InsertChar(r rune) {
	if r == '\n' {
		e.InsertLineBreak()
		return
	}
	if r != '\t' && !unicode.IsPrint(r) {
		return
	}

	left, right := SplitAt(e.lines[e.row], e.col)
	left += string(r)
	e.lines[e.row] = left + right

	// A combining mark joins the previous cluster, so count instead of col+1.
	e.col = min(GraphemeCount(left), e.lineLen(e.row))
}

// InsertLineBreak splits the current line at the cursor and moves to the
// start of the new second half. No-op when line breaks are disallowed.
func (e *Engine[S, R]) InsertLineBreak() {
	if !e.lineBreaks {
		return
	}

	left, right := SplitAt(e.lines[e.row], e.col)
	e.lines[e.row] = left
	e.lines = slices.Insert(e.lines, e.row+1, right)
	e.row++
	e.col = 0

	log.Debug(log.CatEditor, "split line", "row", e.row-1, "lines", len(e.lines))
}

// DeleteChar deletes the grapheme before the cursor (backspace). At column 0
// it merges the current line onto the previous one when line breaks are
// allowed, leaving the cursor at the join point.
func (e *Engine[S, R]) DeleteChar() {
	if e.col > 0 {
		left, right := SplitAt(e.lines[e.row], e.col)
		left = left[:byteOffset(left, e.col-1)]
		e.lines[e.row] = left + right
		e.col = min(GraphemeCount(left), e.lineLen(e.row))
		return
	}

	if e.row == 0 || !e.lineBreaks {
		return
	}

	prev := e.lines[e.row-1]
	join := GraphemeCount(prev)
	e.lines[e.row-1] = prev + e.lines[e.row]
	e.lines = slices.Delete(e.lines, e.row, e.row+1)
	e.row--
	e.col = min(join, e.lineLen(e.row))

	log.Debug(log.CatEditor, "merge line", "row", e.row, "lines", len(e.lines))
}

// InsertLine inserts text as a new line at index, clamped to
// [0, LineCount()]. The cursor keeps its row number; its column is clamped if
// that row now holds a shorter line.
func (e *Engine[S, R]) InsertLine(index int, text string) {
	index = max(0, min(index, len(e.lines)))
	e.lines = slices.Insert(e.lines, index, text)
	e.clamp()

	log.Debug(log.CatEditor, "insert line", "index", index, "lines", len(e.lines))
}

// DeleteCurrentLine removes the line under the cursor. Deleting the only line
// leaves a single empty line with the cursor at (0, 0).
func (e *Engine[S, R]) DeleteCurrentLine() {
	if len(e.lines) == 1 {
		e.lines[0] = ""
		e.col, e.row = 0, 0
		log.Debug(log.CatEditor, "delete line", "row", 0, "lines", 1)
		return
	}

	deleted := e.row
	e.lines = slices.Delete(e.lines, e.row, e.row+1)
	e.clamp()

	log.Debug(log.CatEditor, "delete line", "row", deleted, "lines", len(e.lines))
}
