package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.LevelWarn, "json", &buf)
	l.Info("hidden")
	l.Warn("close failed", "host", "127.0.0.1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"close failed"`)
	assert.Contains(t, out, `"host":"127.0.0.1"`)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(slog.LevelInfo, "text", &buf).Info("opened", "port", 6667)
	assert.Contains(t, buf.String(), "port=6667")
}
