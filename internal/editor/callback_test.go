package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/letter/internal/keys"
)

// hostState stands in for a panel that owns the engine.
type hostState struct {
	submitted []string
	calls     int
}

type hostAction int

const (
	actionNone hostAction = iota
	actionSubmit
	actionCancel
)

func newHostEngine(lines ...string) *Engine[*hostState, hostAction] {
	return New[*hostState, hostAction](lines)
}

// ============================================================================
// Default Handling
// ============================================================================

func TestProcessKey_DefaultHandling(t *testing.T) {
	e := newHostEngine("ab", "cd")
	st := &hostState{}

	_, ok := e.ProcessKey(keys.Char('x'), st)
	require.False(t, ok)
	require.Equal(t, "xab", e.Line(0))

	e.ProcessKey(keys.Right, st)
	e.ProcessKey(keys.Right, st)
	e.ProcessKey(keys.Down, st)
	require.Equal(t, Position{Col: 2, Row: 1}, e.Cursor())

	e.ProcessKey(keys.Up, st)
	e.ProcessKey(keys.Left, st)
	require.Equal(t, Position{Col: 1, Row: 0}, e.Cursor())

	e.ProcessKey(keys.Backspace, st)
	require.Equal(t, "ab", e.Line(0))

	e.ProcessKey(keys.Enter, st)
	require.Equal(t, []string{"", "ab", "cd"}, e.Lines())
	require.Equal(t, Position{Col: 0, Row: 1}, e.Cursor())
}

func TestProcessKey_SpaceInserts(t *testing.T) {
	e := newHostEngine("ab").at(1, 0)
	e.ProcessKey(keys.Space, &hostState{})
	require.Equal(t, "a b", e.Line(0))
}

// TestProcessKey_UnhandledKeysAreNoops verifies keys outside default handling change nothing.
func TestProcessKey_UnhandledKeysAreNoops(t *testing.T) {
	for _, k := range []keys.Key{
		keys.Escape,
		keys.Tab,
		keys.Special(keys.CodeDelete),
		keys.Special(keys.CodeHome),
		keys.Special(keys.CodeCtrlC),
		keys.Char(0x07),
		{},
	} {
		e := newHostEngine("abc").at(1, 0)
		result, ok := e.ProcessKey(k, &hostState{})
		assert.False(t, ok, "key %s", k)
		assert.Equal(t, actionNone, result, "key %s", k)
		assert.Equal(t, []string{"abc"}, e.Lines(), "key %s", k)
		assert.Equal(t, Position{Col: 1, Row: 0}, e.Cursor(), "key %s", k)
	}
}

// ============================================================================
// Callbacks
// ============================================================================

// TestProcessKey_ConsumedCallbackSkipsDefault verifies a consuming handler returns its result
// and the default Enter behavior never runs.
func TestProcessKey_ConsumedCallbackSkipsDefault(t *testing.T) {
	e := newHostEngine("hello")
	e.OnKey(keys.Enter, func(e *Engine[*hostState, hostAction], st *hostState) (bool, hostAction) {
		st.submitted = append(st.submitted, e.Value())
		return true, actionSubmit
	})

	st := &hostState{}
	result, ok := e.ProcessKey(keys.Enter, st)
	require.True(t, ok)
	require.Equal(t, actionSubmit, result)
	require.Equal(t, []string{"hello"}, st.submitted)
	require.Equal(t, []string{"hello"}, e.Lines(), "line was not split")
}

func TestProcessKey_UnconsumedCallbackFallsThrough(t *testing.T) {
	e := newHostEngine("ab").at(2, 0)
	e.OnKey(keys.Enter, func(_ *Engine[*hostState, hostAction], st *hostState) (bool, hostAction) {
		st.calls++
		return false, actionSubmit
	})

	st := &hostState{}
	result, ok := e.ProcessKey(keys.Enter, st)
	require.False(t, ok)
	require.Equal(t, actionNone, result, "result of an unconsumed callback is discarded")
	require.Equal(t, 1, st.calls)
	require.Equal(t, []string{"ab", ""}, e.Lines())
}

func TestProcessKey_CallbackMutatesEngine(t *testing.T) {
	e := newHostEngine("draft")
	e.OnKey(keys.Escape, func(e *Engine[*hostState, hostAction], _ *hostState) (bool, hostAction) {
		e.SetLines(nil)
		return true, actionCancel
	})

	result, ok := e.ProcessKey(keys.Escape, &hostState{})
	require.True(t, ok)
	require.Equal(t, actionCancel, result)
	require.Equal(t, []string{""}, e.Lines())
}

// TestProcessKey_HandlerIsReusable verifies a handler fires on every press, not just the first.
func TestProcessKey_HandlerIsReusable(t *testing.T) {
	e := newHostEngine()
	e.OnKey(keys.Tab, func(_ *Engine[*hostState, hostAction], st *hostState) (bool, hostAction) {
		st.calls++
		return true, actionNone
	})

	st := &hostState{}
	for range 3 {
		e.ProcessKey(keys.Tab, st)
	}
	require.Equal(t, 3, st.calls)
	require.True(t, e.HasHandler(keys.Tab))
}

// TestProcessKey_PanickingHandlerStaysRegistered verifies a panic inside a handler
// does not remove it from the table.
func TestProcessKey_PanickingHandlerStaysRegistered(t *testing.T) {
	e := newHostEngine()
	shouldPanic := true
	e.OnKey(keys.Enter, func(_ *Engine[*hostState, hostAction], st *hostState) (bool, hostAction) {
		st.calls++
		if shouldPanic {
			panic("boom")
		}
		return true, actionSubmit
	})

	st := &hostState{}
	require.Panics(t, func() { e.ProcessKey(keys.Enter, st) })
	require.True(t, e.HasHandler(keys.Enter))

	shouldPanic = false
	result, ok := e.ProcessKey(keys.Enter, st)
	require.True(t, ok)
	require.Equal(t, actionSubmit, result)
	require.Equal(t, 2, st.calls)
}

func TestOnKey_ReplaceAndRemove(t *testing.T) {
	e := newHostEngine()
	e.OnKey(keys.Enter, func(*Engine[*hostState, hostAction], *hostState) (bool, hostAction) {
		return true, actionSubmit
	})
	e.OnKey(keys.Enter, func(*Engine[*hostState, hostAction], *hostState) (bool, hostAction) {
		return true, actionCancel
	})

	result, _ := e.ProcessKey(keys.Enter, &hostState{})
	require.Equal(t, actionCancel, result, "second registration replaces the first")

	e.RemoveKey(keys.Enter)
	require.False(t, e.HasHandler(keys.Enter))

	e.OnKey(keys.Escape, func(*Engine[*hostState, hostAction], *hostState) (bool, hostAction) {
		return true, actionCancel
	})
	e.OnKey(keys.Escape, nil)
	require.False(t, e.HasHandler(keys.Escape))
}

func TestOnKey_CharacterKeys(t *testing.T) {
	e := newHostEngine("")
	e.OnKey(keys.Char('q'), func(*Engine[*hostState, hostAction], *hostState) (bool, hostAction) {
		return true, actionCancel
	})

	result, ok := e.ProcessKey(keys.Char('q'), &hostState{})
	require.True(t, ok)
	require.Equal(t, actionCancel, result)
	require.Equal(t, "", e.Line(0))

	e.ProcessKey(keys.Char('Q'), &hostState{})
	require.Equal(t, "Q", e.Line(0), "registration is per exact key")
}

// TestEngines_AreIndependent verifies two engines share neither buffer nor handlers.
func TestEngines_AreIndependent(t *testing.T) {
	a := newHostEngine("a")
	b := newHostEngine("b")
	a.OnKey(keys.Enter, func(*Engine[*hostState, hostAction], *hostState) (bool, hostAction) {
		return true, actionSubmit
	})

	a.ProcessKey(keys.Char('x'), &hostState{})
	require.Equal(t, "xa", a.Line(0))
	require.Equal(t, "b", b.Line(0))
	require.False(t, b.HasHandler(keys.Enter))
}
