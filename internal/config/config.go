// Package config provides configuration types, defaults and validation for letter.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/letter/internal/keys"
	"github.com/zjrosen/letter/internal/log"
)

// LocalConfigPath is the project-local config file, checked before the user config.
const LocalConfigPath = ".letter/config.yaml"

var (
	// ErrUnknownBinding is returned for keymap entries that name no binding.
	ErrUnknownBinding = keys.ErrUnknownBinding

	// ErrDuplicateChord is returned when two bindings resolve to the same chord.
	ErrDuplicateChord = errors.New("chord bound more than once")

	// ErrEscapeInChord is returned for chords containing <esc>, which
	// always clears a pending chord and so can never complete one.
	ErrEscapeInChord = errors.New("chord contains <esc>")
)

// Config holds all configuration options for letter.
type Config struct {
	Editor  EditorConfig      `mapstructure:"editor"`
	Keymap  map[string]string `mapstructure:"keymap"`   // binding name -> chord notation
	LogPath string            `mapstructure:"log_path"` // debug log file, used with --debug
	Flags   map[string]bool   `mapstructure:"flags"`
}

// EditorConfig holds note editor options.
type EditorConfig struct {
	LineBreaks     bool          `mapstructure:"line_breaks"`
	ReloadDebounce time.Duration `mapstructure:"reload_debounce"` // config watcher debounce
	DebugLines     int           `mapstructure:"debug_lines"`     // log entries kept by the debug panel
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			LineBreaks:     true,
			ReloadDebounce: 300 * time.Millisecond,
			DebugLines:     8,
		},
		LogPath: "debug.log",
	}
}

// SetDefaults registers Defaults on v so unset keys unmarshal to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.line_breaks", d.Editor.LineBreaks)
	v.SetDefault("editor.reload_debounce", d.Editor.ReloadDebounce)
	v.SetDefault("editor.debug_lines", d.Editor.DebugLines)
	v.SetDefault("log_path", d.LogPath)
}

// UserConfigPath returns ~/.config/letter/config.yaml.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "letter", "config.yaml")
}

// Load reads the config file at path into a fresh viper instance and
// validates it. Used on startup by tests and on every hot reload.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Debug(log.CatConfig, "Loaded config", "path", path, "overrides", len(cfg.Keymap))
	return cfg, nil
}

// Validate checks the keymap overrides and editor options.
func Validate(cfg Config) error {
	if cfg.Editor.ReloadDebounce < 0 {
		return fmt.Errorf("editor.reload_debounce must not be negative")
	}
	if cfg.Editor.DebugLines < 0 {
		return fmt.Errorf("editor.debug_lines must not be negative")
	}
	_, err := KeyMap(cfg)
	return err
}

// KeyMap returns the default keymap with cfg's overrides applied. It fails
// on unknown binding names, unparsable chords, chords containing <esc> and
// chords bound twice.
func KeyMap(cfg Config) (keys.KeyMap, error) {
	km := keys.DefaultKeyMap()
	if err := km.Apply(cfg.Keymap); err != nil {
		return keys.KeyMap{}, fmt.Errorf("keymap: %w", err)
	}

	seqs, err := km.Sequences()
	if err != nil {
		return keys.KeyMap{}, fmt.Errorf("keymap: %w", err)
	}

	owners := make(map[string]string)
	for _, name := range keys.Names() {
		for _, seq := range seqs[name] {
			id := seq.String()
			if seq.Contains(keys.Escape) {
				return keys.KeyMap{}, fmt.Errorf("keymap: %w: %s = %q", ErrEscapeInChord, name, id)
			}
			if other, dup := owners[id]; dup {
				return keys.KeyMap{}, fmt.Errorf("keymap: %w: %q used by %s and %s", ErrDuplicateChord, id, other, name)
			}
			owners[id] = name
		}
	}
	warnShadowed(owners)

	return km, nil
}

// warnShadowed logs chords that can never fire because a shorter chord
// matches first.
func warnShadowed(owners map[string]string) {
	ids := make([]string, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, long := range ids {
		longSeq := keys.MustParseSequence(long)
		for i := 1; i < len(longSeq); i++ {
			if short, ok := owners[longSeq[:i].String()]; ok {
				log.Warn(log.CatConfig, "Chord is shadowed by a shorter chord",
					"binding", owners[long], "chord", long, "shadowed_by", short)
				break
			}
		}
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Letter Configuration

editor:
  line_breaks: true       # Allow Enter to split lines in the note editor
  reload_debounce: 300ms  # Delay before reloading this file after it changes
  debug_lines: 8          # Log entries shown in the debug panel

# Debug log file (written only with --debug or LETTER_DEBUG=1)
log_path: debug.log

# Normal-mode chords. Each entry replaces every default chord of a binding.
# Notation: plain characters, plus <space> <lt> <enter> <esc> <bs> <tab>
# <left> <right> <up> <down> <del> <home> <end> <c-c>
# Run 'letter keys' to list bindings and their current chords.
# Quote chords that YAML would otherwise interpret (":" "?" "$").
keymap:
  # delete_line: "dd"
  # quit: "<space>q"
  # save: "<space>s"
  # command_line: ":"

# Feature flags
flags:
  config-reload: true     # Reload the keymap when this file changes
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
