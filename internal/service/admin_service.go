package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/orderflow/payment-service/internal/domain/payment"
)

// AdminPaymentService operates over the entire record set with no ownership
// filtering.
type AdminPaymentService struct {
	repo   payment.Repository
	logger zerolog.Logger
}

// NewAdminPaymentService creates the unrestricted lifecycle service variant.
func NewAdminPaymentService(repo payment.Repository, logger zerolog.Logger) *AdminPaymentService {
	return &AdminPaymentService{
		repo:   repo,
		logger: logger.With().Str("component", "admin_payment_service").Logger(),
	}
}

// CreatePayment persists a new pending payment and returns it.
func (s *AdminPaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	p, err := payment.New(req.OrderID, req.UserID, req.AmountCents)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug().Stringer("payment_id", p.ID).Msg("persisted payment")
	return p, nil
}

// UpdatePaymentStatus overwrites the payment's status. Any status can be set
// at any time; no transition graph is enforced.
func (s *AdminPaymentService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Status = status
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug().Stringer("payment_id", id).Str("status", string(status)).Msg("updated payment status")
	return p, nil
}

// DeletePayment removes the payment unconditionally; deleting an absent
// record is not an error.
func (s *AdminPaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug().Stringer("payment_id", id).Msg("deleted payment")
	return nil
}

// FindPaymentsByOrderID lists payments for the given order.
func (s *AdminPaymentService) FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

// FindPaymentsByUserID lists payments for the given owner.
func (s *AdminPaymentService) FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// FindPaymentsByStatuses lists payments in any of the given statuses.
func (s *AdminPaymentService) FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	return s.repo.FindByStatuses(ctx, statuses)
}

// PaymentTotalForPeriod sums amounts over [start, end], inclusive.
func (s *AdminPaymentService) PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	return s.repo.TotalForPeriod(ctx, start, end)
}
