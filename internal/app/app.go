// Package app contains the root application model: a modal note editor that
// routes terminal keys through the input source to the chord composer
// (normal mode), the note engine (insert mode) or the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/letter/internal/chord"
	"github.com/zjrosen/letter/internal/config"
	"github.com/zjrosen/letter/internal/editor"
	"github.com/zjrosen/letter/internal/flags"
	"github.com/zjrosen/letter/internal/input"
	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
	"github.com/zjrosen/letter/internal/pubsub"
	"github.com/zjrosen/letter/internal/watcher"
)

// Mode is the editor mode, which decides who receives keys.
type Mode int

const (
	// ModeNormal sends keys to the chord composer.
	ModeNormal Mode = iota
	// ModeInsert sends keys to the note engine.
	ModeInsert
	// ModeCommand gives the command line exclusive focus.
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// ActionKind is what an engine callback asks the host to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionLeaveInsert
	ActionSubmit
	ActionCancel
)

// Action is the result type of the note and command-line engines.
type Action struct {
	Kind ActionKind
	Text string // submitted command line, for ActionSubmit
}

// configChangedMsg is delivered when the watched config file settles.
type configChangedMsg struct{}

// Options configures a new Model.
type Options struct {
	Config     config.Config
	ConfigPath string // watched for keymap changes when the config-reload flag is on
	FilePath   string // target of :w, may be empty
	Text       string // initial note content
	Flags      *flags.Registry
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	mode     Mode
	note     *editor.Engine[*Model, Action]
	cmdline  *editor.Engine[*Model, Action]
	composer *chord.Composer[Command]
	input    *input.Source
	waiting  bool // a WaitCmd is outstanding
	done     bool

	keymap   keys.KeyMap
	help     help.Model
	showHelp bool

	showDebug   bool
	logLines    []string
	maxLog      int
	logListener *log.Listener

	filePath string
	saved    string // note content at the last load or save

	configPath string
	watcher    *watcher.Watcher
	changes    <-chan struct{}

	history    []string
	historyIdx int
	message    string

	top    int // first visible note row
	width  int
	height int
}

// New creates the model. It fails if the configured keymap is invalid.
func New(opts Options) (Model, error) {
	km, err := config.KeyMap(opts.Config)
	if err != nil {
		return Model{}, fmt.Errorf("building keymap: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		mode:       ModeNormal,
		note:       editor.New[*Model, Action](nil, editor.WithLineBreaks(opts.Config.Editor.LineBreaks)),
		cmdline:    editor.New[*Model, Action](nil, editor.WithLineBreaks(false)),
		input:      input.NewSource(),
		help:       help.New(),
		maxLog:     opts.Config.Editor.DebugLines,
		filePath:   opts.FilePath,
		configPath: opts.ConfigPath,
	}
	m.help.ShowAll = true

	m.note.SetValue(strings.TrimSuffix(opts.Text, "\n"))
	m.saved = m.note.Value()
	m.registerCallbacks()

	if err := m.applyKeymap(km); err != nil {
		cancel()
		return Model{}, err
	}

	m.logListener = log.NewListener(ctx)

	if opts.Flags != nil && opts.Flags.Enabled(flags.FlagConfigReload) && opts.ConfigPath != "" {
		m.startWatcher(opts.Config.Editor)
	}

	return m, nil
}

func (m *Model) startWatcher(cfg config.EditorConfig) {
	w, err := watcher.New(watcher.Config{Path: m.configPath, Debounce: cfg.ReloadDebounce})
	if err != nil {
		log.Warn(log.CatWatcher, "Config watcher unavailable", "error", err)
		return
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.Warn(log.CatWatcher, "Config watcher unavailable", "error", err)
		return
	}
	m.watcher = w
	m.changes = ch
}

// registerCallbacks installs the host's key handlers on both engines.
func (m *Model) registerCallbacks() {
	m.note.OnKey(keys.Escape, func(*editor.Engine[*Model, Action], *Model) (bool, Action) {
		return true, Action{Kind: ActionLeaveInsert}
	})
	m.note.OnKey(keys.Tab, func(e *editor.Engine[*Model, Action], _ *Model) (bool, Action) {
		e.InsertChar(' ')
		e.InsertChar(' ')
		return true, Action{}
	})

	m.cmdline.OnKey(keys.Enter, func(e *editor.Engine[*Model, Action], host *Model) (bool, Action) {
		text := strings.TrimSpace(e.Value())
		if text != "" {
			host.history = append(host.history, text)
		}
		return true, Action{Kind: ActionSubmit, Text: text}
	})
	m.cmdline.OnKey(keys.Escape, func(*editor.Engine[*Model, Action], *Model) (bool, Action) {
		return true, Action{Kind: ActionCancel}
	})
	// Backspace on an empty command line leaves it; otherwise it deletes.
	m.cmdline.OnKey(keys.Backspace, func(e *editor.Engine[*Model, Action], _ *Model) (bool, Action) {
		if e.Value() != "" {
			return false, Action{}
		}
		return true, Action{Kind: ActionCancel}
	})
	m.cmdline.OnKey(keys.Up, func(e *editor.Engine[*Model, Action], host *Model) (bool, Action) {
		if host.historyIdx > 0 {
			host.historyIdx--
			e.SetValue(host.history[host.historyIdx])
			e.MoveToLineEnd()
		}
		return true, Action{}
	})
	m.cmdline.OnKey(keys.Down, func(e *editor.Engine[*Model, Action], host *Model) (bool, Action) {
		if host.historyIdx >= len(host.history) {
			return true, Action{}
		}
		host.historyIdx++
		if host.historyIdx == len(host.history) {
			e.SetLines(nil)
		} else {
			e.SetValue(host.history[host.historyIdx])
			e.MoveToLineEnd()
		}
		return true, Action{}
	})
}

// applyKeymap builds a composer holding the chords of km and swaps it in.
// On error the running composer and keymap are left untouched.
func (m *Model) applyKeymap(km keys.KeyMap) error {
	seqs, err := km.Sequences()
	if err != nil {
		return err
	}

	next := chord.New[Command]()
	for name, list := range seqs {
		cmd, ok := commandByBinding[name]
		if !ok {
			next.Close()
			return fmt.Errorf("%w: %q", keys.ErrUnknownBinding, name)
		}
		for _, seq := range list {
			if err := next.Register(seq, cmd); err != nil {
				next.Close()
				return fmt.Errorf("binding %q: %w", name, err)
			}
		}
	}

	if m.composer != nil {
		m.composer.Close()
	}
	m.composer = next
	m.keymap = km

	log.Debug(log.CatUI, "Keymap applied", "sequences", m.composer.Len())
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.changes != nil {
		cmds = append(cmds, m.waitForConfigChange())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.scrollToCursor()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil

	case tea.KeyMsg:
		if m.done {
			return nil
		}
		if msg.Type == tea.KeyCtrlC {
			m.input.Close()
		} else {
			m.input.Feed(msg)
		}
		return m.pump()

	case input.KeyMsg:
		m.waiting = false
		m.handleKey(msg.Key)
		return m.pump()

	case input.ClosedMsg:
		m.waiting = false
		m.done = true
		return tea.Quit

	case pubsub.Event[string]:
		m.logLines = append(m.logLines, msg.Payload)
		if over := len(m.logLines) - m.maxLog; over > 0 {
			m.logLines = m.logLines[over:]
		}
		if m.logListener == nil {
			return nil
		}
		return m.logListener.Listen()

	case configChangedMsg:
		m.reloadConfig()
		return m.waitForConfigChange()
	}

	return nil
}

// pump delivers pending keys. Normal and insert mode poll without blocking;
// the command line takes exclusive focus and receives through WaitCmd.
func (m *Model) pump() tea.Cmd {
	for m.mode != ModeCommand {
		k, ok, err := m.input.Poll()
		if err != nil {
			m.done = true
			log.Debug(log.CatInput, "Input closed, quitting")
			return tea.Quit
		}
		if !ok {
			return nil
		}
		m.handleKey(k)
	}

	if m.waiting {
		return nil
	}
	m.waiting = true
	return m.input.WaitCmd()
}

func (m *Model) handleKey(k keys.Key) {
	switch m.mode {
	case ModeNormal:
		m.handleNormalKey(k)
	case ModeInsert:
		if action, _ := m.note.ProcessKey(k, m); action.Kind == ActionLeaveInsert {
			m.mode = ModeNormal
		}
	case ModeCommand:
		action, _ := m.cmdline.ProcessKey(k, m)
		switch action.Kind {
		case ActionSubmit:
			m.leaveCommandLine()
			m.execute(action.Text)
		case ActionCancel:
			m.leaveCommandLine()
		}
	}
}

func (m *Model) handleNormalKey(k keys.Key) {
	if m.composer.PushKey(k) == chord.Dropped {
		log.Debug(log.CatUI, "Unbound key", "key", k.String())
	}

	for {
		cmd, err := m.composer.Commands().TryRecv()
		if err != nil {
			return
		}
		m.apply(cmd)
	}
}

func (m *Model) enterCommandLine() {
	m.mode = ModeCommand
	m.cmdline.SetLines(nil)
	m.historyIdx = len(m.history)
	m.composer.Clear()
	m.message = ""
}

func (m *Model) leaveCommandLine() {
	m.mode = ModeNormal
	m.cmdline.SetLines(nil)
}

// dirty reports whether the note differs from the last load or save.
func (m *Model) dirty() bool {
	return m.note.Value() != m.saved
}

// quit closes the input source; the session ends once pending keys are
// delivered. Unsaved changes block quitting unless force is set.
func (m *Model) quit(force bool) {
	if !force && m.dirty() {
		m.message = "unsaved changes (:q! to discard)"
		return
	}
	m.input.Close()
}

var errNoFileName = errors.New("no file name")

// save writes the note to path, or to the current file when path is empty.
func (m *Model) save(path string) error {
	if path != "" {
		m.filePath = path
	}
	if m.filePath == "" {
		m.message = errNoFileName.Error()
		return errNoFileName
	}

	value := m.note.Value()
	if err := os.WriteFile(m.filePath, []byte(value+"\n"), 0o600); err != nil {
		log.ErrorErr(log.CatUI, "Save failed", err, "path", m.filePath)
		m.message = fmt.Sprintf("save failed: %v", err)
		return err
	}

	m.saved = value
	m.message = fmt.Sprintf("%q %dL written", m.filePath, m.note.LineCount())
	log.Info(log.CatUI, "Saved note", "path", m.filePath, "lines", m.note.LineCount())
	return nil
}

func (m Model) waitForConfigChange() tea.Cmd {
	ctx, ch := m.ctx, m.changes
	return func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return configChangedMsg{}
		}
	}
}

// reloadConfig re-reads the config file and swaps in its keymap. The running
// keymap is kept when the file is invalid.
func (m *Model) reloadConfig() {
	cfg, err := config.Load(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", m.configPath)
		m.message = fmt.Sprintf("config: %v", err)
		return
	}

	km, err := config.KeyMap(cfg)
	if err == nil {
		err = m.applyKeymap(km)
	}
	if err != nil {
		log.ErrorErr(log.CatConfig, "Keymap reload failed", err, "path", m.configPath)
		m.message = fmt.Sprintf("config: %v", err)
		return
	}

	m.maxLog = cfg.Editor.DebugLines
	m.message = "config reloaded"
	log.Info(log.CatConfig, "Config reloaded", "path", m.configPath)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.input.Close()
	if m.composer != nil {
		m.composer.Close()
	}

	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			return err
		}
	}
	return nil
}
