package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/payment-service/internal/db/model"
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/observability/metrics"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

// StoredEvent is an entry of the event log as served to readers.
type StoredEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	InstanceID string          `json:"instanceId"`
	CreatedAt  int64           `json:"createdAt"`
	Payload    json.RawMessage `json:"payload"`
}

// emit queues an event for a committed operation. The caller must hold mu;
// the event is dispatched when the lock is released.
func (s *Service) emit(state *ledger.State, eventType types.EventType, payload any) {
	s.pending = append(s.pending, types.NewEvent(state.InstanceID, eventType, payload, s.now()))
}

// dispatch records event in the event log and forwards it to the queue.
// Failures here never undo the commit.
func (s *Service) dispatch(ctx context.Context, event *types.Event) {
	log := log.Ctx(ctx).With().
		Str("event_id", event.ID).
		Str("event_type", event.Type.String()).
		Logger()

	doc, err := model.FromEvent(event)
	if err == nil {
		err = s.db.SaveEvent(ctx, doc)
	}
	if err != nil {
		metrics.RecordEventStoreError()
		log.Error().Err(err).Msg("failed to store event")
	}

	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		metrics.RecordQueueSendError()
		log.Error().Err(err).Msg("failed to publish event")
		return
	}

	log.Debug().Msg("event emitted")
}

// ListEvents returns the newest events first, optionally filtered by type.
func (s *Service) ListEvents(ctx context.Context, eventType string, limit int64) ([]StoredEvent, *types.Error) {
	if eventType != "" && !types.IsKnownEventType(eventType) {
		return nil, types.NewValidationFailedError(fmt.Errorf("unknown event type %q", eventType))
	}
	if limit <= 0 || limit > s.cfg.Server.MaxEventsLimit {
		limit = s.cfg.Server.MaxEventsLimit
	}

	docs, err := s.db.FindEvents(ctx, eventType, limit)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to find events: %w", err))
	}

	events := make([]StoredEvent, 0, len(docs))
	for _, doc := range docs {
		events = append(events, StoredEvent{
			ID:         doc.ID,
			Type:       doc.Type,
			InstanceID: doc.InstanceID,
			CreatedAt:  doc.CreatedAt,
			Payload:    json.RawMessage(doc.Payload),
		})
	}
	return events, nil
}
