package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/orderflow/payment-service/internal/identity"
	"github.com/orderflow/payment-service/internal/infrastructure/config"
	"github.com/orderflow/payment-service/internal/infrastructure/observability"
	"github.com/orderflow/payment-service/internal/service"
	"github.com/orderflow/payment-service/pkg/retry"
)

// CreateOrderMessage is the inbound payload on the CREATE_ORDER stream.
type CreateOrderMessage struct {
	OrderID       int64   `json:"orderId" validate:"required,gt=0"`
	UserID        int64   `json:"userId" validate:"required,gt=0"`
	PaymentAmount float64 `json:"paymentAmount" validate:"gte=0"`
}

// consumer is the slice of StreamConsumer the ingester needs.
type consumer interface {
	CreateGroup(ctx context.Context) error
	Read(ctx context.Context) ([]redis.XStream, error)
	Ack(ctx context.Context, messageID string) error
}

// deadLetterPublisher routes exhausted payloads to the dead-letter stream.
type deadLetterPublisher interface {
	PublishDeadLetter(ctx context.Context, stream, payload, reason string) error
}

// Ingester consumes CREATE_ORDER messages and turns each into a payment
// created under the synthetic broker identity. Messages that fail to decode
// or validate are dropped after acking; nothing upstream can fix them, so
// they are not retried and not dead-lettered. Transient creation failures are
// retried with a fixed backoff, and a message that exhausts its retry budget
// goes to the dead-letter stream before being acked so the group never
// redelivers it.
type Ingester struct {
	consumer   consumer
	creator    service.PaymentService
	deadLetter deadLetterPublisher
	validate   *validator.Validate
	retryCfg   retry.Config
	dlqStream  string
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

func NewIngester(
	consumer consumer,
	creator service.PaymentService,
	deadLetter deadLetterPublisher,
	cfg config.BrokerConfig,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Ingester {
	return &Ingester{
		consumer:   consumer,
		creator:    creator,
		deadLetter: deadLetter,
		validate:   validator.New(),
		// RetryAttempts counts redeliveries, so total tries is one more.
		retryCfg:  retry.Fixed(cfg.RetryAttempts+1, cfg.RetryBackoff),
		dlqStream: cfg.DeadLetterStream,
		metrics:   metrics,
		logger:    logger.With().Str("component", "create_order_ingester").Logger(),
	}
}

// Run consumes until the context is cancelled. Messages in a batch are
// processed in order; each is acked exactly once regardless of outcome.
func (i *Ingester) Run(ctx context.Context) error {
	if err := i.consumer.CreateGroup(ctx); err != nil {
		return fmt.Errorf("preparing consumer group: %w", err)
	}

	i.logger.Info().Str("stream", CreateOrderStream).Msg("create-order ingester started")

	for {
		select {
		case <-ctx.Done():
			i.logger.Info().Msg("create-order ingester stopping")
			return ctx.Err()
		default:
		}

		streams, err := i.consumer.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			i.logger.Error().Err(err).Msg("failed to read from stream")
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				i.handleMessage(ctx, msg)
			}
		}
	}
}

func (i *Ingester) handleMessage(ctx context.Context, msg redis.XMessage) {
	start := time.Now()
	logger := i.logger.With().Str("message_id", msg.ID).Logger()

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		logger.Error().Msg("dropping message with missing payload field")
		i.drop(ctx, msg.ID, "dropped")
		return
	}

	order, err := i.decode(payload)
	if err != nil {
		logger.Error().Err(err).Msg("dropping malformed create-order message")
		i.drop(ctx, msg.ID, "dropped")
		return
	}

	err = retry.Do(ctx, i.retryCfg, func() error {
		// Each attempt gets a fresh context carrying the broker's
		// synthetic admin identity; it never outlives the message.
		msgCtx := identity.WithIdentity(ctx, identity.System())
		_, createErr := i.creator.CreatePayment(msgCtx, service.CreatePaymentRequest{
			OrderID:     order.OrderID,
			UserID:      order.UserID,
			AmountCents: int64(math.Round(order.PaymentAmount * 100)),
		})
		return createErr
	})
	if err != nil {
		logger.Error().Err(err).Msg("create-order message exhausted retries, dead-lettering")
		if dlqErr := i.deadLetter.PublishDeadLetter(ctx, i.dlqStream, payload, err.Error()); dlqErr != nil {
			logger.Error().Err(dlqErr).Msg("failed to publish to dead-letter stream")
		} else if i.metrics != nil {
			i.metrics.DeadLetterTotal.WithLabelValues(i.dlqStream).Inc()
		}
		i.drop(ctx, msg.ID, "dead_lettered")
		return
	}

	logger.Debug().Int64("order_id", order.OrderID).Msg("created payment from order message")
	i.drop(ctx, msg.ID, "processed")
	if i.metrics != nil {
		i.metrics.PaymentsCreatedTotal.WithLabelValues("broker").Inc()
		i.metrics.ConsumerProcessingDuration.WithLabelValues(CreateOrderStream).Observe(time.Since(start).Seconds())
	}
}

func (i *Ingester) decode(payload string) (*CreateOrderMessage, error) {
	var order CreateOrderMessage
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		return nil, fmt.Errorf("unmarshaling create-order payload: %w", err)
	}
	if err := i.validate.Struct(&order); err != nil {
		return nil, fmt.Errorf("validating create-order payload: %w", err)
	}
	return &order, nil
}

// drop acks the message and records its terminal outcome.
func (i *Ingester) drop(ctx context.Context, messageID, outcome string) {
	if err := i.consumer.Ack(ctx, messageID); err != nil {
		i.logger.Error().Err(err).Str("message_id", messageID).Msg("failed to ack message")
	}
	if i.metrics != nil {
		i.metrics.ConsumerMessagesTotal.WithLabelValues(CreateOrderStream, outcome).Inc()
	}
}
