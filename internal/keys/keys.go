package keys

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// ErrUnknownBinding is returned when an override names a binding that does not exist.
var ErrUnknownBinding = errors.New("unknown key binding")

// Binding names used in config files (keymap.<name>) and by the host.
const (
	BindQuit         = "quit"
	BindSave         = "save"
	BindInsert       = "insert"
	BindAppend       = "append"
	BindOpenBelow    = "open_below"
	BindOpenAbove    = "open_above"
	BindDeleteLine   = "delete_line"
	BindLeft         = "left"
	BindDown         = "down"
	BindUp           = "up"
	BindRight        = "right"
	BindWordForward  = "word_forward"
	BindWordBackward = "word_backward"
	BindLineStart    = "line_start"
	BindLineEnd      = "line_end"
	BindCommandLine  = "command_line"
	BindHelp         = "help"
	BindDebug        = "debug"
)

// KeyMap defines the normal-mode chords. Each binding's keys are chord
// notations (see ParseSequence), not bubbletea key strings.
type KeyMap struct {
	// Navigation
	Left         key.Binding
	Down         key.Binding
	Up           key.Binding
	Right        key.Binding
	WordForward  key.Binding
	WordBackward key.Binding
	LineStart    key.Binding
	LineEnd      key.Binding

	// Editing
	Insert     key.Binding
	Append     key.Binding
	OpenBelow  key.Binding
	OpenAbove  key.Binding
	DeleteLine key.Binding

	// General
	CommandLine key.Binding
	Save        key.Binding
	Help        key.Binding
	Debug       key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default normal-mode chords.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "<left>"),
			key.WithHelp("h/←", "move left"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "<down>"),
			key.WithHelp("j/↓", "move down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "<up>"),
			key.WithHelp("k/↑", "move up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "<right>"),
			key.WithHelp("l/→", "move right"),
		),
		WordForward: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "next word"),
		),
		WordBackward: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "line end"),
		),

		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		OpenBelow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open line below"),
		),
		OpenAbove: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open line above"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("dd"),
			key.WithHelp("dd", "delete line"),
		),

		CommandLine: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command line"),
		),
		Save: key.NewBinding(
			key.WithKeys("<space>s"),
			key.WithHelp("␣s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Debug: key.NewBinding(
			key.WithKeys("<space>d"),
			key.WithHelp("␣d", "toggle debug log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("<space>q"),
			key.WithHelp("␣q", "quit"),
		),
	}
}

// Names returns the binding names in display order.
func Names() []string {
	return []string{
		BindLeft, BindDown, BindUp, BindRight,
		BindWordForward, BindWordBackward, BindLineStart, BindLineEnd,
		BindInsert, BindAppend, BindOpenBelow, BindOpenAbove, BindDeleteLine,
		BindCommandLine, BindSave, BindHelp, BindDebug, BindQuit,
	}
}

// Bindings returns pointers to every binding keyed by name.
func (k *KeyMap) Bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		BindLeft:         &k.Left,
		BindDown:         &k.Down,
		BindUp:           &k.Up,
		BindRight:        &k.Right,
		BindWordForward:  &k.WordForward,
		BindWordBackward: &k.WordBackward,
		BindLineStart:    &k.LineStart,
		BindLineEnd:      &k.LineEnd,
		BindInsert:       &k.Insert,
		BindAppend:       &k.Append,
		BindOpenBelow:    &k.OpenBelow,
		BindOpenAbove:    &k.OpenAbove,
		BindDeleteLine:   &k.DeleteLine,
		BindCommandLine:  &k.CommandLine,
		BindSave:         &k.Save,
		BindHelp:         &k.Help,
		BindDebug:        &k.Debug,
		BindQuit:         &k.Quit,
	}
}

// Apply replaces the chords of the named bindings. An override replaces all
// aliases of a binding with the single given chord. Nothing is changed if any
// override is invalid.
func (k *KeyMap) Apply(overrides map[string]string) error {
	bindings := k.Bindings()
	parsed := make(map[string]string, len(overrides))
	for name, spec := range overrides {
		if _, ok := bindings[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBinding, name)
		}
		seq, err := ParseSequence(spec)
		if err != nil {
			return fmt.Errorf("binding %q: %w", name, err)
		}
		parsed[name] = seq.String()
	}

	for name, notation := range parsed {
		b := bindings[name]
		b.SetKeys(notation)
		b.SetHelp(notation, b.Help().Desc)
	}
	return nil
}

// Sequences returns every chord of every binding, keyed by binding name.
func (k *KeyMap) Sequences() (map[string][]Sequence, error) {
	out := make(map[string][]Sequence)
	for name, b := range k.Bindings() {
		for _, spec := range b.Keys() {
			seq, err := ParseSequence(spec)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", name, err)
			}
			out[name] = append(out[name], seq)
		}
	}
	return out, nil
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.CommandLine, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right, k.WordForward, k.WordBackward, k.LineStart, k.LineEnd}, // Navigation
		{k.Insert, k.Append, k.OpenBelow, k.OpenAbove, k.DeleteLine},                           // Editing
		{k.CommandLine, k.Save, k.Help, k.Debug, k.Quit},                                       // General
	}
}
