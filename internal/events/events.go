// Package events publishes catalog change notifications.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	EventProductCreated  = "ProductCreated"
	EventProductUpdated  = "ProductUpdated"
	EventProductDeleted  = "ProductDeleted"
	EventProductRestored = "ProductRestored"
)

// Event is the envelope published for every catalog mutation.
type Event struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	ProductID    int             `json:"product_id"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// New builds a version 1 event. A payload that cannot be encoded is left empty.
func New(eventType, producer string, productID int, payload any) Event {
	ev := Event{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producer,
		ProductID:    productID,
	}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			ev.Payload = b
		}
	}
	return ev
}

// PartitionKey keeps every event of one product on the same partition.
func (e Event) PartitionKey() []byte {
	return []byte(strconv.Itoa(e.ProductID))
}

// Publisher delivers events without blocking the caller on the broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}
