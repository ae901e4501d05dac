package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("42"),
		Value:     []byte(`{"event_id":"42"}`),
		Topic:     "raw-ctf-listings",
		Partition: 2,
		Offset:    17,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("archive-collector")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("42"), raw.Key)
	assert.JSONEq(t, `{"event_id":"42"}`, string(raw.Value))
	assert.Equal(t, "raw-ctf-listings", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(17), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "archive-collector", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestOutputToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("7"),
		Value: []byte(`{"name":"DEF CON CTF Qualifier"}`),
		Headers: map[string]string{
			"processed_at": "2024-04-26T15:10:00Z",
			"format":       "Jeopardy",
		},
	}

	msg := outputToMessage(event)

	assert.Equal(t, []byte("7"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "format", msg.Headers[0].Key)
	assert.Equal(t, []byte("Jeopardy"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[1].Value)
}

func TestLoadBatchEmpty(t *testing.T) {
	// An empty batch returns without touching the producer.
	w := &Writer{}
	assert.NoError(t, w.LoadBatch(context.Background(), nil))
}
