package okcanvas

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	Logger().Warn("missing font", "family", "Lato")
	assert.Contains(t, buf.String(), "family=Lato")

	SetLogger(nil)
	Logger().Warn("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
