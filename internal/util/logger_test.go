package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", "", false, FormatText)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Info("hidden")
	logger.Warn("shown", String("path", "tw/alice/followers.csv"), Int("line", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown line=3 path=tw/alice/followers.csv")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", false, FormatText)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.With(String("cmd", "export")).Error("failed", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), "cmd=export error=boom")
}

func TestFileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := NewLogger("info", path, false, FormatJSON)
	require.NoError(t, err)

	logger.Infof("saved %d records", 4)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "saved 4 records", entry.Message)
}

func TestGlobalLoggerNoopWhenUninitialized(t *testing.T) {
	require.NoError(t, CloseLogger())
	assert.NotPanics(t, func() {
		LogInfo("nothing")
		LogWarnf("nothing %d", 1)
	})
}
