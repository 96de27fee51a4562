package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelInfo, "json")

	logger.Debug("hidden")
	logger.Info("sampled", "error", "boom")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"err":"boom"`)

	buf.Reset()
	NewWithFormat(&buf, slog.LevelDebug, "text").Debug("shown", "error", "x")
	assert.Contains(t, buf.String(), "err=x")
}
