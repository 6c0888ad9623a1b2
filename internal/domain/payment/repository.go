package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for payment persistence.
//
// Lookups that do not match return errors.ErrPaymentNotFound; Delete is a
// hard delete and succeeds even when the record is absent. The store performs
// no transition checks on Update - the services own those semantics.
type Repository interface {
	// Create persists a new payment, assigning its ID on first save.
	Create(ctx context.Context, p *Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// GetByIDAndUserID retrieves a payment by ID scoped to its owner.
	// A record that exists but is owned by someone else is reported as
	// not found.
	GetByIDAndUserID(ctx context.Context, id uuid.UUID, userID int64) (*Payment, error)

	// Update persists the current state of an existing payment.
	Update(ctx context.Context, p *Payment) error

	// Delete removes a payment by ID. Deleting an absent record is not
	// an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByOrderID lists payments for an order.
	FindByOrderID(ctx context.Context, orderID int64) ([]*Payment, error)

	// FindByOrderIDAndUserID lists payments for an order owned by the
	// given user.
	FindByOrderIDAndUserID(ctx context.Context, orderID, userID int64) ([]*Payment, error)

	// FindByUserID lists payments owned by the given user.
	FindByUserID(ctx context.Context, userID int64) ([]*Payment, error)

	// FindByStatuses lists payments whose status is in the given set.
	FindByStatuses(ctx context.Context, statuses []Status) ([]*Payment, error)

	// FindByStatusesAndUserID lists payments whose status is in the given
	// set, owned by the given user.
	FindByStatusesAndUserID(ctx context.Context, statuses []Status, userID int64) ([]*Payment, error)

	// TotalForPeriod sums payment amounts (in cents) over records whose
	// timestamp falls in [start, end], inclusive. Zero when nothing
	// matches.
	TotalForPeriod(ctx context.Context, start, end time.Time) (int64, error)

	// TotalForPeriodAndUserID is TotalForPeriod scoped to one owner.
	TotalForPeriodAndUserID(ctx context.Context, start, end time.Time, userID int64) (int64, error)
}
