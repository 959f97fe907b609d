package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "INFO")

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-1", rec["request_id"])
	assert.NotContains(t, rec, "stacktrace")
}

func TestNew_ErrorHasStacktrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "INFO").With("component", "test")

	log.Error("boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "stacktrace")
	assert.Equal(t, "test", rec["component"])
	assert.NotContains(t, rec, "request_id")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "WARN")

	log.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
