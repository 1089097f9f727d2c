package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false, false)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Int64("assignment_id", 7).Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "tutoring-center", entry["service"])
	assert.EqualValues(t, 7, entry["assignment_id"])
}
