package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagJSON(t *testing.T) {
	tests := []struct {
		flag Flag
		want string
	}{
		{FlagUnset, "null"},
		{FlagTrue, "true"},
		{FlagFalse, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.flag.String(), func(t *testing.T) {
			data, err := json.Marshal(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Flag
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.flag, back)
		})
	}
}

func TestFlagBool(t *testing.T) {
	v, ok := FlagUnset.Bool()
	assert.False(t, v)
	assert.False(t, ok)

	v, ok = FlagOf(false).Bool()
	assert.False(t, v)
	assert.True(t, ok)

	assert.True(t, FlagOf(true).IsSet())
}

func TestAssignmentViewDistinguishesUnsetFromFalse(t *testing.T) {
	view := AssignmentView{
		Assignment:   Assignment{ID: 1, DueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		HasSubmitted: FlagFalse,
	}

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, false, raw["has_submitted"])
	assert.Contains(t, raw, "is_graded")
	assert.Nil(t, raw["is_graded"])
}

func TestIsOverdueAtIsStrict(t *testing.T) {
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	a := Assignment{DueDate: due}

	assert.False(t, a.IsOverdueAt(due))
	assert.False(t, a.IsOverdueAt(due.Add(-time.Hour)))
	assert.True(t, a.IsOverdueAt(due.Add(time.Nanosecond)))
}
