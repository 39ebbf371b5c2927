package editor

import "github.com/zjrosen/letter/internal/keys"

// OnKey registers h for k, replacing any previous handler. A nil handler
// removes the registration.
func (e *Engine[S, R]) OnKey(k keys.Key, h Handler[S, R]) {
	if h == nil {
		delete(e.handlers, k)
		return
	}
	e.handlers[k] = h
}

// RemoveKey removes the handler for k, if any.
func (e *Engine[S, R]) RemoveKey(k keys.Key) {
	delete(e.handlers, k)
}

// HasHandler reports whether a handler is registered for k.
func (e *Engine[S, R]) HasHandler(k keys.Key) bool {
	_, ok := e.handlers[k]
	return ok
}

// ProcessKey runs the handler registered for k, if any. When the handler
// consumes the key its result is returned with true. Otherwise default
// handling runs and ProcessKey returns the zero R with false.
//
// Default handling: arrows move, printable characters insert, Backspace
// deletes, Enter breaks the line. Every other key is ignored.
//
// The handler stays registered whatever it does, including panicking.
func (e *Engine[S, R]) ProcessKey(k keys.Key, state S) (R, bool) {
	if h, ok := e.handlers[k]; ok {
		if consumed, result := h(e, state); consumed {
			return result, true
		}
	}

	e.defaultKey(k)

	var zero R
	return zero, false
}

func (e *Engine[S, R]) defaultKey(k keys.Key) {
	switch k {
	case keys.Left:
		e.MoveLeft()
	case keys.Right:
		e.MoveRight()
	case keys.Up:
		e.MoveUp()
	case keys.Down:
		e.MoveDown()
	case keys.Backspace:
		e.DeleteChar()
	case keys.Enter:
		e.InsertLineBreak()
	default:
		if k.IsPrintable() {
			e.InsertChar(k.Rune)
		}
	}
}
