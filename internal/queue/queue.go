package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/babylonlabs-io/payment-service/internal/config"
	"github.com/babylonlabs-io/payment-service/internal/types"
)

const routingKeyPrefix = "payment"

// EventPublisher forwards committed ledger events to downstream consumers.
//
//go:generate mockery --name=EventPublisher --output=../../testutil/mocks --outpkg=mocks --filename=mock_event_publisher.go
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *types.Event) error
}

type QueueManager struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewQueueManager dials the broker and declares the durable topic exchange
// events are published to.
func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	qm := &QueueManager{
		cfg:    cfg,
		logger: logger,
	}

	err := retry.Do(
		qm.connect,
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("failed to connect to queue, retrying",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	return qm, nil
}

// connect dials the broker and declares the exchange. Callers must hold mu.
func (qm *QueueManager) connect() error {
	conn, err := amqp.Dial(dialURL(qm.cfg))
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	err = channel.ExchangeDeclare(
		qm.cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return err
	}

	qm.conn = conn
	qm.channel = channel
	return nil
}

func (qm *QueueManager) PublishEvent(ctx context.Context, event *types.Event) error {
	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.channel == nil || qm.channel.IsClosed() {
		if err := qm.connect(); err != nil {
			return fmt.Errorf("failed to reconnect to queue: %w", err)
		}
	}

	err = qm.channel.PublishWithContext(ctx, qm.cfg.Exchange, RoutingKey(event.Type), false, false, msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s event %s: %w", event.Type, event.ID, err)
	}

	qm.logger.Debug("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type.String()),
	)
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.logger.Info("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.conn != nil {
		if err := qm.conn.Close(); err != nil {
			qm.logger.Error("failed to close queue connection", zap.Error(err))
		}
	}
}

// RoutingKey maps an event type to a topic routing key, e.g. Withdraw -> payment.withdraw.
func RoutingKey(eventType types.EventType) string {
	return routingKeyPrefix + "." + strings.ToLower(eventType.String())
}

func NewPublishing(event *types.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.CreatedAt,
		Type:         event.Type.String(),
		Body:         body,
	}, nil
}

func dialURL(cfg *config.QueueConfig) string {
	u := &url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.QueueUser, cfg.QueuePassword),
		Host:   cfg.Url,
		Path:   "/",
	}
	return u.String()
}

// NopPublisher is used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, *types.Event) error {
	return nil
}
