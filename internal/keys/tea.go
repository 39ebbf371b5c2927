package keys

import tea "github.com/charmbracelet/bubbletea"

// FromTea converts a bubbletea key message into a Key.
// Returns false for keys outside the vocabulary: alt-modified keys,
// multi-rune input (pastes) and unmapped control keys.
func FromTea(msg tea.KeyMsg) (Key, bool) {
	if msg.Alt {
		return Key{}, false
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Key{}, false
		}
		return Char(msg.Runes[0]), true
	case tea.KeySpace:
		return Space, true
	case tea.KeyLeft:
		return Left, true
	case tea.KeyRight:
		return Right, true
	case tea.KeyUp:
		return Up, true
	case tea.KeyDown:
		return Down, true
	case tea.KeyEnter:
		return Enter, true
	case tea.KeyEscape:
		return Escape, true
	case tea.KeyBackspace, tea.KeyCtrlH:
		return Backspace, true
	case tea.KeyTab:
		return Tab, true
	case tea.KeyDelete:
		return Special(CodeDelete), true
	case tea.KeyHome:
		return Special(CodeHome), true
	case tea.KeyEnd:
		return Special(CodeEnd), true
	case tea.KeyCtrlC:
		return Special(CodeCtrlC), true
	default:
		return Key{}, false
	}
}
