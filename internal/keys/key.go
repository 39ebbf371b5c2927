// Package keys contains the key identifier vocabulary shared by the editor
// and the chord composer, the chord notation used in config files, and the
// default normal-mode keymap.
package keys

import (
	"strconv"
	"strings"
	"unicode"
)

// Code identifies a key. Character keys use CodeChar with the rune stored in Key.Rune.
type Code uint8

const (
	CodeNone Code = iota
	CodeChar
	CodeLeft
	CodeRight
	CodeUp
	CodeDown
	CodeEnter
	CodeEscape
	CodeBackspace
	CodeTab
	CodeDelete
	CodeHome
	CodeEnd
	CodeCtrlC
)

// names maps special codes to their chord notation (without brackets).
var names = map[Code]string{
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeEnter:     "enter",
	CodeEscape:    "esc",
	CodeBackspace: "bs",
	CodeTab:       "tab",
	CodeDelete:    "del",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodeCtrlC:     "c-c",
}

// String returns the name of the code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeChar:
		return "char"
	}
	if name, ok := names[c]; ok {
		return name
	}
	return "unknown"
}

// Key is a single key identifier. It is comparable and safe to use as a map key.
type Key struct {
	Code Code
	Rune rune // only set when Code == CodeChar
}

// Char returns the key for a character.
func Char(r rune) Key {
	return Key{Code: CodeChar, Rune: r}
}

// Special returns the key for a non-character code.
func Special(c Code) Key {
	return Key{Code: c}
}

// Common keys.
var (
	Left      = Special(CodeLeft)
	Right     = Special(CodeRight)
	Up        = Special(CodeUp)
	Down      = Special(CodeDown)
	Enter     = Special(CodeEnter)
	Escape    = Special(CodeEscape)
	Backspace = Special(CodeBackspace)
	Tab       = Special(CodeTab)
	Space     = Char(' ')
)

// IsChar reports whether k is a character key.
func (k Key) IsChar() bool {
	return k.Code == CodeChar
}

// IsPrintable reports whether k is a character key whose rune can be inserted into text.
func (k Key) IsPrintable() bool {
	return k.Code == CodeChar && unicode.IsPrint(k.Rune)
}

// String returns the chord notation for the key.
// Examples: "a", "<space>", "<lt>", "<enter>", "<esc>". Non-printable
// runes render as "<u+hex>" and codes without a name as "<code+N>".
func (k Key) String() string {
	if k.Code == CodeChar {
		switch k.Rune {
		case ' ':
			return "<space>"
		case '<':
			return "<lt>"
		}
		if !unicode.IsPrint(k.Rune) {
			return "<u+" + strconv.FormatInt(int64(k.Rune), 16) + ">"
		}
		return string(k.Rune)
	}
	if name, ok := names[k.Code]; ok {
		return "<" + name + ">"
	}
	return "<code+" + strconv.Itoa(int(k.Code)) + ">"
}

// Sequence is an ordered list of keys forming a chord.
type Sequence []Key

// String returns the concatenated chord notation, e.g. "dd" or "<space>q".
// Distinct sequences always produce distinct strings.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, k := range s {
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Equal reports whether two sequences contain the same keys in the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equal(prefix)
}

// Contains reports whether k appears anywhere in s.
func (s Sequence) Contains(k Key) bool {
	for _, sk := range s {
		if sk == k {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
