// FILE: nsdebug/src/internal/core/entry_test.go
package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"nsdebug/src/internal/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogEntry(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 15, 123456789, time.FixedZone("CET", 3600))

	t.Run("OmitsAbsentFields", func(t *testing.T) {
		entry := NewLogEntry(at, "api", "started", nil, "")

		out, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Equal(t, `{"timestamp":"2024-03-01T08:30:15.123Z","namespace":"api","message":"started"}`, string(out))
	})

	t.Run("WithDataAndRequestID", func(t *testing.T) {
		data := value.Object(value.Member{Key: "duration", Value: value.Int(12)})
		entry := NewLogEntry(at, "db", "query", &data, "req-1")

		out, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Equal(t,
			`{"timestamp":"2024-03-01T08:30:15.123Z","namespace":"db","message":"query","data":{"duration":12},"metadata":{"requestId":"req-1"}}`,
			string(out))
		assert.Equal(t, "req-1", entry.RequestID())
	})

	t.Run("DecodeRoundTrip", func(t *testing.T) {
		line := `{"timestamp":"2024-03-01T08:30:15.123Z","namespace":"db","message":"query","data":{"b":1,"a":[1,2]},"metadata":{"requestId":"r"}}`

		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Equal(t, line, string(out))
	})
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-01T08:30:15.123Z")
	require.NoError(t, err)
	assert.Equal(t, 123*time.Millisecond, time.Duration(ts.Nanosecond()))

	day, err := ParseTimestamp("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, day.Year())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestRequestIDContext(t *testing.T) {
	_, ok := RequestIDFrom(context.Background())
	assert.False(t, ok)

	ctx := WithRequestID(context.Background(), "abc")
	id, ok := RequestIDFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = RequestIDFrom(WithRequestID(ctx, ""))
	assert.False(t, ok, "empty id clears correlation")
}
