package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	e := New("storeadmin", "color.created", "s1", "c1", "u1", map[string]string{"value": "#000000"})
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "color.created", e.EventType)
	assert.False(t, e.OccurredAt.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(e.Payload, &payload))
	assert.Equal(t, "#000000", payload["value"])

	assert.Nil(t, New("storeadmin", "size.deleted", "s1", "z1", "u1", nil).Payload)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Publish(Envelope{EventType: "a"})
	r.Publish(Envelope{EventType: "b"})
	assert.Equal(t, []string{"a", "b"}, r.Types())
	assert.Len(t, r.Events(), 2)
}

func TestKafkaPublisherCloseWithoutStartHonoursContext(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "t", 4)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)
	// publishing after close is a no-op
	p.Publish(Envelope{EventType: "x"})
}

func TestKafkaPublisherDropsWhenFull(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "t", 1)
	p.Publish(Envelope{EventType: "first"})
	p.Publish(Envelope{EventType: "second"})
	assert.Len(t, p.inbox, 1)
}
