package model

import (
	"encoding/json"

	"github.com/babylonlabs-io/payment-service/internal/types"
)

const EventCollection = "events"

// EventDocument is an entry of the append-only event log. Payload is the
// JSON encoding of the typed event.
type EventDocument struct {
	// ID is a UUIDv7, so it sorts in emission order.
	ID         string `bson:"_id"`
	Type       string `bson:"type"`
	InstanceID string `bson:"instance_id"`
	Payload    string `bson:"payload"`
	// CreatedAt is a unix timestamp in milliseconds.
	CreatedAt int64 `bson:"created_at"`
}

func FromEvent(event *types.Event) (*EventDocument, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, err
	}

	return &EventDocument{
		ID:         event.ID,
		Type:       event.Type.String(),
		InstanceID: event.InstanceID,
		Payload:    string(payload),
		CreatedAt:  event.CreatedAt.UnixMilli(),
	}, nil
}
