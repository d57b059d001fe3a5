package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Component: ComponentStorage, Output: &buf})

	logger.Info("saved", FieldCount, 3)
	logger.Debug("dropped")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "saved", record["msg"])
	assert.Equal(t, ComponentStorage, record[FieldComponent])
	assert.Equal(t, float64(3), record[FieldCount])
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: FormatText, Output: &buf})
	child := base.WithComponent(ComponentGRPC)

	child.Warn("slow call")
	assert.Equal(t, ComponentApp, base.Component())
	assert.Equal(t, ComponentGRPC, child.Component())
	assert.Contains(t, buf.String(), "component=grpc")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
