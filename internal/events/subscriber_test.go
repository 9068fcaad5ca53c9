package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(Event{
		Type:      UserCreated,
		Timestamp: time.Now().UTC(),
		Data:      UserCreatedEvent{UserID: 7, Email: "ann@x.com"},
	})
	require.NoError(t, err)

	event, err := decodeEvent(map[string]any{
		typeField:  UserCreated,
		eventField: string(payload),
	})
	require.NoError(t, err)
	assert.Equal(t, UserCreated, event.Type)

	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["userId"])
}

func TestDecodeEventRejectsBadInput(t *testing.T) {
	_, err := decodeEvent(map[string]any{eventField: "{not json"})
	assert.Error(t, err)

	_, err = decodeEvent(map[string]any{"other": "x"})
	assert.Error(t, err)
}
