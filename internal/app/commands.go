package app

import (
	"fmt"
	"strings"

	"github.com/zjrosen/letter/internal/editor"
	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
)

// Command is a normal-mode command emitted by the chord composer.
type Command int

const (
	CmdQuit Command = iota
	CmdSave
	CmdInsert
	CmdAppend
	CmdOpenBelow
	CmdOpenAbove
	CmdDeleteLine
	CmdLeft
	CmdDown
	CmdUp
	CmdRight
	CmdWordForward
	CmdWordBackward
	CmdLineStart
	CmdLineEnd
	CmdCommandLine
	CmdHelp
	CmdDebug
)

// commandByBinding maps keymap binding names to the commands they emit.
var commandByBinding = map[string]Command{
	keys.BindQuit:         CmdQuit,
	keys.BindSave:         CmdSave,
	keys.BindInsert:       CmdInsert,
	keys.BindAppend:       CmdAppend,
	keys.BindOpenBelow:    CmdOpenBelow,
	keys.BindOpenAbove:    CmdOpenAbove,
	keys.BindDeleteLine:   CmdDeleteLine,
	keys.BindLeft:         CmdLeft,
	keys.BindDown:         CmdDown,
	keys.BindUp:           CmdUp,
	keys.BindRight:        CmdRight,
	keys.BindWordForward:  CmdWordForward,
	keys.BindWordBackward: CmdWordBackward,
	keys.BindLineStart:    CmdLineStart,
	keys.BindLineEnd:      CmdLineEnd,
	keys.BindCommandLine:  CmdCommandLine,
	keys.BindHelp:         CmdHelp,
	keys.BindDebug:        CmdDebug,
}

// apply runs a normal-mode command.
func (m *Model) apply(cmd Command) {
	n := m.note
	switch cmd {
	case CmdQuit:
		m.quit(false)
	case CmdSave:
		_ = m.save("")
	case CmdInsert:
		m.mode = ModeInsert
	case CmdAppend:
		pos := n.Cursor()
		if pos.Col < editor.GraphemeCount(n.Line(pos.Row)) {
			n.MoveRight()
		}
		m.mode = ModeInsert
	case CmdOpenBelow:
		n.InsertLine(n.Cursor().Row+1, "")
		n.MoveDown()
		m.mode = ModeInsert
	case CmdOpenAbove:
		n.InsertLine(n.Cursor().Row, "")
		n.MoveToLineStart()
		m.mode = ModeInsert
	case CmdDeleteLine:
		n.DeleteCurrentLine()
	case CmdLeft:
		n.MoveLeft()
	case CmdDown:
		n.MoveDown()
	case CmdUp:
		n.MoveUp()
	case CmdRight:
		n.MoveRight()
	case CmdWordForward:
		n.MoveWordForward()
	case CmdWordBackward:
		n.MoveWordBackward()
	case CmdLineStart:
		n.MoveToLineStart()
	case CmdLineEnd:
		n.MoveToLineEnd()
	case CmdCommandLine:
		m.enterCommandLine()
	case CmdHelp:
		m.showHelp = !m.showHelp
	case CmdDebug:
		m.showDebug = !m.showDebug
	}
}

// execute runs a submitted command line.
func (m *Model) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	log.Debug(log.CatUI, "Command line", "command", line)

	name, args := fields[0], fields[1:]
	switch name {
	case "q", "quit":
		m.quit(false)
	case "q!", "quit!":
		m.quit(true)
	case "w", "write":
		_ = m.save(strings.Join(args, " "))
	case "wq", "x":
		if m.save(strings.Join(args, " ")) == nil {
			m.quit(false)
		}
	case "clear":
		m.note.SetLines(nil)
	case "set":
		m.setOption(args)
	case "debug":
		m.showDebug = !m.showDebug
	case "help":
		m.showHelp = !m.showHelp
	default:
		m.message = fmt.Sprintf("unknown command: %s", name)
	}
}

func (m *Model) setOption(args []string) {
	if len(args) != 1 {
		m.message = "usage: set breaks|nobreaks"
		return
	}
	switch args[0] {
	case "breaks":
		m.note.SetLineBreaks(true)
	case "nobreaks":
		m.note.SetLineBreaks(false)
	default:
		m.message = fmt.Sprintf("unknown option: %s", args[0])
		return
	}
	m.message = "set " + args[0]
}
