package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("Borrow failed", slog.Int64("book_id", 4))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"book_id":4`)

	buf.Reset()
	NewLogger(&buf, "info", "text").Info("Book returned")
	assert.Contains(t, buf.String(), "msg=\"Book returned\"")
}
