package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

// EventPublisher pushes protocol events to downstream consumers. Publishing
// is fire-and-forget from the ledger's point of view: a broker failure is
// logged and counted, never rolled into the operation result.
type EventPublisher interface {
	PublishProtocolEvent(ctx context.Context, ev *types.ProtocolEvent) error
	Shutdown()
}

type QueueManager struct {
	cfg     *config.QueueConfig
	logger  *zap.Logger
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	qm := &QueueManager{
		cfg:    cfg,
		logger: logger,
	}
	if !cfg.Enabled {
		logger.Info("queue disabled, protocol events will be dropped")
		return qm, nil
	}

	conn, err := amqp.Dial(cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	qm.conn = conn
	qm.channel = channel
	return qm, nil
}

func (qm *QueueManager) PublishProtocolEvent(ctx context.Context, ev *types.ProtocolEvent) error {
	if qm.channel == nil {
		qm.logger.Debug("dropping protocol event, queue disabled",
			zap.String("type", ev.Type.String()))
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal protocol event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	err = qm.channel.PublishWithContext(
		ctx,
		qm.cfg.Exchange,
		ev.Type.String(), // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type, err)
	}
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all
// resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.logger.Info("shutting down queue manager")
	if qm.channel != nil {
		_ = qm.channel.Close()
	}
	if qm.conn != nil {
		_ = qm.conn.Close()
	}
}

var _ EventPublisher = (*QueueManager)(nil)
