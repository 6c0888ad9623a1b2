package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/identity"
)

// UserPaymentService is the self-service lifecycle variant: every operation
// is scoped to the caller's own records. A record that exists but belongs to
// someone else is reported as not found on lookups, so callers cannot probe
// for other users' payment IDs.
type UserPaymentService struct {
	repo   payment.Repository
	logger zerolog.Logger
}

// NewUserPaymentService creates the owner-scoped lifecycle service variant.
func NewUserPaymentService(repo payment.Repository, logger zerolog.Logger) *UserPaymentService {
	return &UserPaymentService{
		repo:   repo,
		logger: logger.With().Str("component", "user_payment_service").Logger(),
	}
}

func callerID(ctx context.Context) (int64, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return 0, domainErrors.ErrIdentityMissing
	}
	return id.InternalID, nil
}

// CreatePayment persists a new pending payment owned by the caller. Creating
// a payment on behalf of another user is denied before the store is touched.
func (s *UserPaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserID != internalID {
		return nil, domainErrors.ErrAccessDenied
	}

	p, err := payment.New(req.OrderID, req.UserID, req.AmountCents)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug().Stringer("payment_id", p.ID).Int64("user_id", internalID).Msg("persisted payment")
	return p, nil
}

// UpdatePaymentStatus overwrites the status of a payment the caller owns.
// The lookup is by id and owner jointly: a foreign record surfaces as not
// found, not as access denied.
func (s *UserPaymentService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByIDAndUserID(ctx, id, internalID)
	if err != nil {
		return nil, err
	}

	p.Status = status
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug().Stringer("payment_id", id).Int64("user_id", internalID).
		Str("status", string(status)).Msg("updated payment status")
	return p, nil
}

// DeletePayment removes a payment the caller owns. When the record exists
// but is owned by someone else the call silently does nothing; no error is
// signaled.
func (s *UserPaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	internalID, err := callerID(ctx)
	if err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotFound) {
			return nil
		}
		return err
	}

	if !p.OwnedBy(internalID) {
		s.logger.Debug().Stringer("payment_id", id).Int64("user_id", internalID).
			Msg("skipping delete of payment owned by another user")
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug().Stringer("payment_id", id).Int64("user_id", internalID).Msg("deleted payment")
	return nil
}

// FindPaymentsByOrderID lists the caller's payments for the given order.
func (s *UserPaymentService) FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByOrderIDAndUserID(ctx, orderID, internalID)
}

// FindPaymentsByUserID lists the caller's own payments; asking for another
// user's records is denied.
func (s *UserPaymentService) FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if userID != internalID {
		return nil, domainErrors.ErrAccessDenied
	}
	return s.repo.FindByUserID(ctx, userID)
}

// FindPaymentsByStatuses lists the caller's payments in any of the given
// statuses.
func (s *UserPaymentService) FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatusesAndUserID(ctx, statuses, internalID)
}

// PaymentTotalForPeriod sums the caller's own amounts over [start, end],
// regardless of any caller-supplied filters.
func (s *UserPaymentService) PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	internalID, err := callerID(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.TotalForPeriodAndUserID(ctx, start, end, internalID)
}
