package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(Config{Level: WarnLevel, Output: &buf})

	lgr.Info().Msg("hidden")
	lgr.Warn().Str("course", "CS101").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "CS101", entry["course"])
	assert.Equal(t, "warn", entry["level"])
}

func TestFromStrings(t *testing.T) {
	cfg := FromStrings(" DEBUG ", "text")

	assert.Equal(t, DebugLevel, cfg.Level)
	assert.True(t, cfg.Pretty)
	assert.False(t, FromStrings("info", "json").Pretty)
}
