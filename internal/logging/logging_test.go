package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/propdesk/internal/config"
)

type fakePoster struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
}

func (f *fakePoster) Post(tag string, msg interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, msg.(map[string]interface{}))
	return nil
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewWritesPlainText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "info"}, &buf, false)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("search finished", "results", 2)
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "search finished")
	require.Contains(t, out, "results=2")
	require.NotContains(t, out, "\x1b[")
}

func TestNewRequiresFluentTag(t *testing.T) {
	t.Parallel()
	_, _, err := New(config.LogConfig{Fluent: config.FluentConfig{Enabled: true}}, &bytes.Buffer{}, false)
	require.Error(t, err)
}

func TestFluentHandlerFlattensAttrs(t *testing.T) {
	t.Parallel()
	poster := &fakePoster{}
	logger := slog.New(NewFluentHandler(poster, slog.LevelInfo)).
		With("component", "store").
		WithGroup("search")

	logger.Debug("skipped")
	logger.Warn("search failed", "seq", 3, "err", errors.New("boom"), slog.Group("filters", "type", "house"))

	require.Equal(t, []string{"warn"}, poster.tags)
	got := poster.posts[0]
	require.Equal(t, "store", got["component"])
	require.Equal(t, int64(3), got["search.seq"])
	require.Equal(t, "boom", got["search.err"])
	require.Equal(t, "house", got["search.filters.type"])
	require.Equal(t, "search failed", got["message"])
	require.Equal(t, "warn", got["level"])
	require.NotEmpty(t, got["timestamp"])
}

func TestFanoutRespectsEachLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	poster := &fakePoster{}
	h := Fanout(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		NewFluentHandler(poster, slog.LevelError),
	)
	logger := slog.New(h)
	logger.Info("only text")
	logger.Error("both")

	require.Contains(t, buf.String(), "only text")
	require.Contains(t, buf.String(), "both")
	require.Len(t, poster.posts, 1)
	require.Equal(t, "both", poster.posts[0]["message"])
}
