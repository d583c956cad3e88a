// Package leads hands validated contact-form leads to the sales pipeline.
package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// MessageType tags published lead messages.
const MessageType = "lead.created"

const defaultPublishTimeout = 10 * time.Second

// RabbitConfig configures RabbitPublisher.
type RabbitConfig struct {
	URL            string
	Exchange       string
	RoutingKey     string
	PublishTimeout time.Duration
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes leads as persistent JSON messages on a durable
// topic exchange.
type RabbitPublisher struct {
	mu         sync.Mutex
	conn       io.Closer
	ch         channel
	exchange   string
	routingKey string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRabbitPublisher dials the broker, opens a channel and declares the exchange.
func NewRabbitPublisher(cfg RabbitConfig, logger *slog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	p, err := newRabbitPublisher(ch, conn, cfg, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(ch channel, conn io.Closer, cfg RabbitConfig, logger *slog.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}

	err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", cfg.Exchange, err)
	}

	return &RabbitPublisher{
		conn:       conn,
		ch:         ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		timeout:    cfg.PublishTimeout,
		logger:     logger.With("component", "lead_publisher", "exchange", cfg.Exchange),
	}, nil
}

// Publish sends lead to the exchange, bounded by the publish timeout.
func (p *RabbitPublisher) Publish(ctx context.Context, lead model.Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead %s: %w", lead.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    lead.ReceivedAt,
		MessageId:    lead.ID,
		Type:         MessageType,
		Headers: amqp.Table{
			"x-project-type": string(lead.ProjectType),
		},
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		msg.Headers["x-request-id"] = reqID
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return fmt.Errorf("publisher is closed")
	}
	if err := p.ch.PublishWithContext(publishCtx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish lead %s: %w", lead.ID, err)
	}

	p.logger.DebugContext(ctx, "lead published", "leadId", lead.ID, "routingKey", p.routingKey)
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}

// LogPublisher records leads in the application log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "lead_publisher")}
}

// Publish logs the lead without contact details.
func (p *LogPublisher) Publish(ctx context.Context, lead model.Lead) error {
	p.logger.InfoContext(ctx, "lead captured, no broker configured",
		"leadId", lead.ID,
		"projectType", lead.ProjectType,
		"hasSimulation", lead.Simulation != nil,
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error {
	return nil
}
