package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/payment-service/internal/domain/payment"
)

// CreatePaymentRequest holds the input for creating a payment.
type CreatePaymentRequest struct {
	OrderID     int64
	UserID      int64
	AmountCents int64
}

// PaymentService is the full payment lifecycle operation set. Both
// privilege-scoped variants, the authorization router and the facade
// implement it, so callers compose them without caring which layer they
// hold.
type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error)
	FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error)
	FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error)
	PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error)
}

// EventPublisher publishes payment lifecycle events.
type EventPublisher interface {
	PublishPaymentUpdate(ctx context.Context, p *payment.Payment) error
}

// DecisionClient is the external oracle consulted to settle a payment.
type DecisionClient interface {
	PaymentDecision(ctx context.Context) (int, error)
}
