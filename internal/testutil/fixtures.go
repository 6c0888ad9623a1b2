package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/identity"
)

func NewTestPayment(orderID, userID, amountCents int64) *payment.Payment {
	return &payment.Payment{
		ID:          uuid.New(),
		OrderID:     orderID,
		UserID:      userID,
		Status:      payment.StatusPending,
		Timestamp:   time.Now(),
		AmountCents: amountCents,
	}
}

func NewSettledPayment(orderID, userID, amountCents int64, status payment.Status) *payment.Payment {
	p := NewTestPayment(orderID, userID, amountCents)
	p.Status = status
	return p
}

// AdminContext returns a context carrying an admin identity.
func AdminContext(internalID int64) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		InternalID: internalID,
		Subject:    "test-admin",
		Roles:      []identity.Role{identity.RoleAdmin},
	})
}

// UserContext returns a context carrying a plain user identity.
func UserContext(internalID int64) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		InternalID: internalID,
		Subject:    "test-user",
		Roles:      []identity.Role{identity.RoleUser},
	})
}
