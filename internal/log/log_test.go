package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/letter/internal/pubsub"
)

func TestFormat(t *testing.T) {
	now := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(now, LevelDebug, CatChord, "matched", []any{"sequence", "dd"})
	require.Equal(t, "2025-12-06T10:45:00 [DEBUG] [chord] matched sequence=dd", got)

	got = format(now, LevelWarn, CatEditor, "odd", []any{"a", 1, "orphan"})
	require.Equal(t, "2025-12-06T10:45:00 [WARN] [editor] odd a=1 orphan=<missing>", got)
}

func TestDisabledByDefault(t *testing.T) {
	require.Nil(t, current())
	Debug(CatUI, "nobody listening")
	require.Nil(t, NewListener(context.Background()))
}

func TestInitWriter_WritesAndFilters(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	SetMinLevel(LevelInfo)
	Debug(CatUI, "hidden")
	Info(CatConfig, "loaded", "path", "config.yaml")
	ErrorErr(CatWatcher, "watch failed", errors.New("boom"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[INFO] [config] loaded path=config.yaml\n")
	require.Contains(t, out, "[ERROR] [watcher] watch failed error=boom\n")
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Warn(CatInput, "slow consumer")
	msg := l.Listen()()
	ev, ok := msg.(pubsub.Event[string])
	require.True(t, ok, "got %T", msg)
	require.Contains(t, ev.Payload, "[WARN] [input] slow consumer")
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)

	Info(CatEditor, "split line", "row", 2)
	cleanup()
	Info(CatEditor, "after cleanup")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "split line row=2")
	require.NotContains(t, string(data), "after cleanup")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "debug.log"))
	require.Error(t, err)
}

func TestEnabled(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, Enabled(false))
	require.True(t, Enabled(true))

	t.Setenv(EnvDebug, "1")
	require.True(t, Enabled(false))
}
