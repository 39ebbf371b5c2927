package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/letter/internal/config"
	"github.com/zjrosen/letter/internal/keys"
)

// ============================================================================
// Note Loading
// ============================================================================

func TestReadNote_MissingFileIsEmpty(t *testing.T) {
	text, err := readNote(filepath.Join(t.TempDir(), "new.txt"))
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestReadNote_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o600))

	text, err := readNote(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", text)
}

func TestReadNote_DirectoryFails(t *testing.T) {
	_, err := readNote(t.TempDir())
	require.ErrorContains(t, err, "is a directory")
}

// ============================================================================
// Keys Command
// ============================================================================

// TestKeysCommand_PrintsEveryBinding verifies the table lists each binding
// with its chords and marks overrides.
func TestKeysCommand_PrintsEveryBinding(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = config.Defaults()
	cfg.Keymap = map[string]string{keys.BindDeleteLine: "<space>x"}

	var out bytes.Buffer
	keysCmd.SetOut(&out)
	t.Cleanup(func() { keysCmd.SetOut(nil) })
	require.NoError(t, keysCmd.RunE(keysCmd, nil))

	got := out.String()
	for _, name := range keys.Names() {
		require.Contains(t, got, name)
	}
	require.Contains(t, got, "delete_line*")
	require.Contains(t, got, "<space>x")
	require.Contains(t, got, "<space>q")
	require.Contains(t, got, "move left")
}

func TestKeysCommand_Registered(t *testing.T) {
	found, _, err := rootCmd.Find([]string{"keys", "set"})
	require.NoError(t, err)
	require.Equal(t, keysSetCmd, found)

	found, _, err = rootCmd.Find([]string{"keys", "unset"})
	require.NoError(t, err)
	require.Equal(t, keysUnsetCmd, found)
}

func TestSetBinding_PersistsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	c := config.Defaults()

	require.NoError(t, setBinding(path, &c, keys.BindSave, "<space>w"))
	require.Equal(t, map[string]string{keys.BindSave: "<space>w"}, c.Keymap)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "<space>w", loaded.Keymap[keys.BindSave])
	require.True(t, loaded.Editor.LineBreaks, "other sections survive")
}

func TestSetBinding_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		binding string
		chord   string
		wantErr error
	}{
		{"unknown binding", "nope", "x", keys.ErrUnknownBinding},
		{"bad chord", keys.BindSave, "<nope>", keys.ErrInvalidSpec},
		{"duplicate chord", keys.BindSave, "dd", config.ErrDuplicateChord},
		{"escape in chord", keys.BindSave, "g<esc>", config.ErrEscapeInChord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			c := config.Defaults()

			err := setBinding(path, &c, tt.binding, tt.chord)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, c.Keymap, "config is untouched")

			_, statErr := os.Stat(path)
			require.True(t, os.IsNotExist(statErr), "nothing is written")
		})
	}
}

func TestUnsetBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := config.Defaults()
	require.NoError(t, setBinding(path, &c, keys.BindQuit, "ZZ"))

	require.NoError(t, unsetBinding(path, &c, keys.BindQuit))
	require.Empty(t, c.Keymap)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Empty(t, loaded.Keymap)

	require.Error(t, unsetBinding(path, &c, keys.BindQuit), "no override left to remove")
}
