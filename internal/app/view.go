package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/letter/internal/editor"
)

var (
	textMutedColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"}
	statusBgColor  = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#2A2A2A"}
	normalColor    = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	insertColor    = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	commandColor   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"})
	statusStyle  = lipgloss.NewStyle().Background(statusBgColor)
	pendingStyle = lipgloss.NewStyle().Foreground(commandColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(textMutedColor)
	caretStyle   = lipgloss.NewStyle().Reverse(true)
	debugStyle   = lipgloss.NewStyle().
			Foreground(textMutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(textMutedColor)
)

func modeColor(mode Mode) lipgloss.AdaptiveColor {
	switch mode {
	case ModeInsert:
		return insertColor
	case ModeCommand:
		return commandColor
	default:
		return normalColor
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	start, end := m.visibleRows()
	cursor := m.note.Cursor()
	for row := start; row < end; row++ {
		line := m.note.Line(row)
		if row == cursor.Row && m.mode != ModeCommand {
			line = renderCaret(line, cursor.Col)
		}
		b.WriteString(m.truncate(line))
		b.WriteByte('\n')
	}
	for row := end - start; row < m.bodyHeight(); row++ {
		b.WriteString(mutedStyle.Render("~"))
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')

	if m.showHelp {
		b.WriteString(m.help.View(m.keymap))
		b.WriteByte('\n')
	}
	if m.showDebug {
		b.WriteString(m.debugPanel())
		b.WriteByte('\n')
	}

	b.WriteString(m.bottomLine())
	return b.String()
}

func (m Model) statusLine() string {
	badge := badgeStyle.Background(modeColor(m.mode)).Render(m.mode.String())

	name := "[scratch]"
	if m.filePath != "" {
		name = filepath.Base(m.filePath)
	}
	if m.dirty() {
		name += " [+]"
	}

	left := badge + " " + name
	if pending := m.composer.PartialSequenceString(); pending != "" {
		left += " " + pendingStyle.Render(pending)
	}

	pos := m.note.Cursor()
	right := fmt.Sprintf("%d:%d", pos.Row+1, pos.Col+1)

	line := left
	if m.width > 0 {
		if gap := m.width - lipgloss.Width(left) - lipgloss.Width(right); gap > 0 {
			line += strings.Repeat(" ", gap)
		} else {
			line += " "
		}
	} else {
		line += " "
	}
	line += right

	return statusStyle.Render(m.truncate(line))
}

// bottomLine is the command line while it has focus, else the last message.
func (m Model) bottomLine() string {
	if m.mode == ModeCommand {
		return m.truncate(":" + renderCaret(m.cmdline.Line(0), m.cmdline.Cursor().Col))
	}
	return m.truncate(m.message)
}

func (m Model) debugPanel() string {
	lines := m.logLines
	if len(lines) == 0 {
		lines = []string{"(no log entries)"}
	}

	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = m.truncate(l)
	}
	return debugStyle.Render(strings.Join(rendered, "\n"))
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

// renderCaret draws the grapheme at col in reverse video, or a reversed
// space at the append position.
func renderCaret(line string, col int) string {
	left, right := editor.SplitAt(line, col)
	if right == "" {
		return left + caretStyle.Render(" ")
	}
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(right, -1)
	return left + caretStyle.Render(cluster) + rest
}

// bodyHeight is the number of note rows that fit above the status line.
// With no known height every line is shown.
func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return m.note.LineCount()
	}

	h := m.height - 2 // status and bottom line
	if m.showHelp {
		h -= lipgloss.Height(m.help.View(m.keymap))
	}
	if m.showDebug {
		h -= lipgloss.Height(m.debugPanel())
	}
	return max(1, h)
}

func (m Model) visibleRows() (start, end int) {
	start = min(m.top, m.note.LineCount()-1)
	end = min(start+m.bodyHeight(), m.note.LineCount())
	return start, end
}

// scrollToCursor moves the viewport so the cursor row is visible.
func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	row := m.note.Cursor().Row
	switch {
	case row < m.top:
		m.top = row
	case row >= m.top+h:
		m.top = row - h + 1
	}
	m.top = max(0, min(m.top, m.note.LineCount()-1))
}
