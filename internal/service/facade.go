package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/infrastructure/observability"
)

// PaymentFacade sequences the creation pipeline: persist the pending record,
// publish it, consult the decision oracle, settle, publish the settled
// record. All other operations pass straight through to the authorization
// router.
//
// CreatePayment returns the pending snapshot, not the settled record:
// settlement completes inline, but callers observe its outcome through the
// published events or a subsequent read. Failures anywhere in the pipeline
// propagate to the caller as-is; a pending event that was already published
// is not compensated.
type PaymentFacade struct {
	svc       PaymentService
	publisher EventPublisher
	oracle    DecisionClient
	metrics   *observability.Metrics
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewPaymentFacade creates the orchestrating facade over the authorization
// router. Metrics may be nil.
func NewPaymentFacade(svc PaymentService, publisher EventPublisher, oracle DecisionClient, metrics *observability.Metrics, logger zerolog.Logger) *PaymentFacade {
	return &PaymentFacade{
		svc:       svc,
		publisher: publisher,
		oracle:    oracle,
		metrics:   metrics,
		tracer:    otel.Tracer("payment-facade"),
		logger:    logger.With().Str("component", "payment_facade").Logger(),
	}
}

// CreatePayment runs the full creation pipeline and returns the pending
// snapshot from the first step.
func (f *PaymentFacade) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	ctx, span := f.tracer.Start(ctx, "CreatePayment",
		trace.WithAttributes(attribute.Int64("order.id", req.OrderID)))
	defer span.End()

	created, err := f.svc.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := f.publisher.PublishPaymentUpdate(ctx, created); err != nil {
		return nil, err
	}

	// Simulated settlement: the oracle's parity decides the outcome.
	decision, err := f.oracle.PaymentDecision(ctx)
	if err != nil {
		return nil, err
	}
	newStatus := payment.StatusFailed
	if decision%2 == 0 {
		newStatus = payment.StatusSuccess
	}
	f.logger.Debug().Stringer("payment_id", created.ID).Int("decision", decision).
		Str("status", string(newStatus)).Msg("settling payment")

	if _, err := f.UpdatePaymentStatus(ctx, created.ID, newStatus); err != nil {
		return nil, err
	}
	if f.metrics != nil {
		f.metrics.SettlementsTotal.WithLabelValues(string(newStatus)).Inc()
	}

	return created, nil
}

// UpdatePaymentStatus updates the status through the router and publishes
// the updated record.
func (f *PaymentFacade) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	updated, err := f.svc.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := f.publisher.PublishPaymentUpdate(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (f *PaymentFacade) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return f.svc.DeletePayment(ctx, id)
}

func (f *PaymentFacade) FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	return f.svc.FindPaymentsByOrderID(ctx, orderID)
}

func (f *PaymentFacade) FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	return f.svc.FindPaymentsByUserID(ctx, userID)
}

func (f *PaymentFacade) FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	return f.svc.FindPaymentsByStatuses(ctx, statuses)
}

func (f *PaymentFacade) PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	return f.svc.PaymentTotalForPeriod(ctx, start, end)
}
