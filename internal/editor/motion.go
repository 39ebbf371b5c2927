package editor

// MoveLeft moves one column left. At column 0 it wraps to the end of the
// previous line, if there is one.
func (e *Engine[S, R]) MoveLeft() {
	switch {
	case e.col > 0:
		e.col--
	case e.row > 0:
		e.row--
		e.col = e.lineLen(e.row)
	}
}

// MoveRight moves one column right. At the append position it wraps to
// column 0 of the next line, if there is one.
func (e *Engine[S, R]) MoveRight() {
	switch {
	case e.col < e.lineLen(e.row):
		e.col++
	case e.row < e.lastRow():
		e.row++
		e.col = 0
	}
}

// MoveUp moves one row up, clamping the column to the destination line.
func (e *Engine[S, R]) MoveUp() {
	if e.row == 0 {
		return
	}
	e.row--
	e.col = min(e.col, e.lineLen(e.row))
}

// MoveDown moves one row down, clamping the column to the destination line.
func (e *Engine[S, R]) MoveDown() {
	if e.row == e.lastRow() {
		return
	}
	e.row++
	e.col = min(e.col, e.lineLen(e.row))
}

// MoveToLineStart moves to column 0.
func (e *Engine[S, R]) MoveToLineStart() {
	e.col = 0
}

// MoveToLineEnd moves to the append position of the current line.
func (e *Engine[S, R]) MoveToLineEnd() {
	e.col = e.lineLen(e.row)
}

// MoveWordForward skips the run of non-space graphemes under the cursor and
// the spaces after it. If that reaches the end of the line the cursor moves
// to the start of the next line instead; on the last line it stops at the
// append position.
func (e *Engine[S, R]) MoveWordForward() {
	cs := clusters(e.lines[e.row])
	i := e.col
	for i < len(cs) && !isSpace(cs[i]) {
		i++
	}
	for i < len(cs) && isSpace(cs[i]) {
		i++
	}

	if i < len(cs) {
		e.col = i
		return
	}
	if e.row < e.lastRow() {
		e.row++
		e.col = 0
		return
	}
	e.col = len(cs)
}

// MoveWordBackward skips the spaces before the cursor and then the word
// before them, landing on the first grapheme of that word. At column 0, or on
// an empty line, it moves to the end of the previous line.
func (e *Engine[S, R]) MoveWordBackward() {
	cs := clusters(e.lines[e.row])
	if e.col == 0 || len(cs) == 0 {
		if e.row > 0 {
			e.row--
			e.col = e.lineLen(e.row)
		}
		return
	}

	i := min(e.col, len(cs))
	for i > 0 && isSpace(cs[i-1]) {
		i--
	}
	for i > 0 && !isSpace(cs[i-1]) {
		i--
	}
	e.col = i
}
