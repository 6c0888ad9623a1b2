// Package broker is the Redis Streams client for the payment lifecycle
// channels: outbound lifecycle events, the inbound CREATE_ORDER feed, and the
// dead-letter stream for messages that exhaust their retry budget.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/orderflow/payment-service/internal/domain/payment"
)

const (
	// CreateOrderStream carries inbound payment-creation requests.
	CreateOrderStream = "CREATE_ORDER"
	// PaymentUpdateStream carries a full payment snapshot after creation
	// and after every status transition.
	PaymentUpdateStream = "PAYMENT_UPDATE"
)

// PaymentEvent is the published snapshot of a payment record.
type PaymentEvent struct {
	ID            string    `json:"id"`
	OrderID       int64     `json:"orderId"`
	UserID        int64     `json:"userId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	PaymentAmount float64   `json:"paymentAmount"`
}

func eventFromPayment(p *payment.Payment) PaymentEvent {
	return PaymentEvent{
		ID:            p.ID.String(),
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		Status:        string(p.Status),
		Timestamp:     p.Timestamp,
		PaymentAmount: float64(p.AmountCents) / 100.0,
	}
}

type StreamProducer struct {
	client *redis.Client
}

func NewStreamProducer(client *redis.Client) *StreamProducer {
	return &StreamProducer{client: client}
}

// PublishPaymentUpdate publishes the payment snapshot to the lifecycle
// event stream.
func (p *StreamProducer) PublishPaymentUpdate(ctx context.Context, pm *payment.Payment) error {
	payload, err := json.Marshal(eventFromPayment(pm))
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: PaymentUpdateStream,
		Values: map[string]any{
			"payment_id": pm.ID.String(),
			"order_id":   pm.OrderID,
			"payload":    string(payload),
			"timestamp":  time.Now().Unix(),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish payment event: %w", err)
	}
	return nil
}

// PublishDeadLetter routes an exhausted message's original payload to the
// dead-letter stream for manual inspection.
func (p *StreamProducer) PublishDeadLetter(ctx context.Context, stream, payload, reason string) error {
	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"payload":   payload,
			"reason":    reason,
			"timestamp": time.Now().Unix(),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish to dead-letter stream: %w", err)
	}
	return nil
}

type StreamConsumer struct {
	client        *redis.Client
	stream        string
	group         string
	consumer      string
	batchSize     int64
	blockDuration time.Duration
}

func NewStreamConsumer(
	client *redis.Client,
	stream string,
	group string,
	consumer string,
	batchSize int64,
	blockDuration time.Duration,
) *StreamConsumer {
	return &StreamConsumer{
		client:        client,
		stream:        stream,
		group:         group,
		consumer:      consumer,
		batchSize:     batchSize,
		blockDuration: blockDuration,
	}
}

func (c *StreamConsumer) CreateGroup(ctx context.Context) error {
	// Create stream if it doesn't exist
	const busyGroupMsg = "BUSYGROUP"
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), busyGroupMsg) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

func (c *StreamConsumer) Read(ctx context.Context) ([]redis.XStream, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    c.batchSize,
		Block:    c.blockDuration,
	}).Result()

	if err != nil {
		if err == redis.Nil {
			// No new messages
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return streams, nil
}

func (c *StreamConsumer) Ack(ctx context.Context, messageID string) error {
	err := c.client.XAck(ctx, c.stream, c.group, messageID).Err()
	if err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}
