package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/payment-service/internal/domain/errors"
)

// Status represents the payment settlement status.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// ParseStatus converts a wire-level status string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", errors.NewValidationError("status", fmt.Sprintf("unknown status %q", s))
	}
	return st, nil
}

// Payment represents a payment record for an order.
//
// ID is assigned by the store on first save. UserID identifies the owning
// caller and is never reassigned. Timestamp is the creation instant and is
// not touched by status updates.
type Payment struct {
	ID          uuid.UUID
	OrderID     int64
	UserID      int64
	Status      Status
	Timestamp   time.Time
	AmountCents int64
}

// New creates a pending payment for the given order and owner.
func New(orderID, userID, amountCents int64) (*Payment, error) {
	if orderID <= 0 {
		return nil, errors.NewValidationError("orderId", "must be positive")
	}
	if userID <= 0 {
		return nil, errors.NewValidationError("userId", "must be positive")
	}
	if amountCents < 0 {
		return nil, errors.NewValidationError("paymentAmount", "must not be negative")
	}

	return &Payment{
		OrderID:     orderID,
		UserID:      userID,
		Status:      StatusPending,
		Timestamp:   time.Now(),
		AmountCents: amountCents,
	}, nil
}

// OwnedBy reports whether the payment belongs to the given user.
func (p *Payment) OwnedBy(userID int64) bool {
	return p.UserID == userID
}
