package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev := New(EventProductCreated, "catalog-manager", 42, map[string]string{"title": "Lamp"})

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, 1, ev.EventVersion)
	assert.Equal(t, []byte("42"), ev.PartitionKey())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "Lamp", payload["title"])
}

func TestNewEventUniqueIDs(t *testing.T) {
	a := New(EventProductDeleted, "p", 1, nil)
	b := New(EventProductDeleted, "p", 1, nil)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Nil(t, a.Payload)
}

func TestKafkaPublisherDropsWhenInboxFull(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "catalog.events", 1, nil)

	p.Publish(context.Background(), New(EventProductCreated, "p", 1, nil))
	p.Publish(context.Background(), New(EventProductCreated, "p", 2, nil))

	assert.Len(t, p.inbox, 1)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	p.Publish(context.Background(), New(EventProductUpdated, "p", 1, nil))
}
