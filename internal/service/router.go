package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/identity"
)

// AuthorizationRouter dispatches every operation to the admin or user
// service variant based on the caller's roles. The check is admin-first: a
// caller holding both roles is routed as admin. Callers with neither role
// are rejected before either variant is touched.
type AuthorizationRouter struct {
	admin  PaymentService
	user   PaymentService
	logger zerolog.Logger
}

// NewAuthorizationRouter wires the two privilege-scoped variants behind a
// single PaymentService.
func NewAuthorizationRouter(admin, user PaymentService, logger zerolog.Logger) *AuthorizationRouter {
	return &AuthorizationRouter{
		admin:  admin,
		user:   user,
		logger: logger.With().Str("component", "authorization_router").Logger(),
	}
}

func (r *AuthorizationRouter) delegate(ctx context.Context) (PaymentService, error) {
	ident, ok := identity.FromContext(ctx)
	if !ok {
		r.logger.Warn().Msg("rejecting call with no caller identity")
		return nil, domainErrors.ErrInsufficientRole
	}

	switch {
	case ident.IsAdmin():
		r.logger.Debug().Int64("internal_id", ident.InternalID).Msg("routing to admin payment service")
		return r.admin, nil
	case ident.IsUser():
		r.logger.Debug().Int64("internal_id", ident.InternalID).Msg("routing to user payment service")
		return r.user, nil
	default:
		r.logger.Warn().Int64("internal_id", ident.InternalID).
			Msg("rejecting caller lacking 'admin' or 'user' role")
		return nil, domainErrors.ErrInsufficientRole
	}
}

func (r *AuthorizationRouter) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return nil, err
	}
	return svc.CreatePayment(ctx, req)
}

func (r *AuthorizationRouter) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return nil, err
	}
	return svc.UpdatePaymentStatus(ctx, id, status)
}

func (r *AuthorizationRouter) DeletePayment(ctx context.Context, id uuid.UUID) error {
	svc, err := r.delegate(ctx)
	if err != nil {
		return err
	}
	return svc.DeletePayment(ctx, id)
}

func (r *AuthorizationRouter) FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return nil, err
	}
	return svc.FindPaymentsByOrderID(ctx, orderID)
}

func (r *AuthorizationRouter) FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return nil, err
	}
	return svc.FindPaymentsByUserID(ctx, userID)
}

func (r *AuthorizationRouter) FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return nil, err
	}
	return svc.FindPaymentsByStatuses(ctx, statuses)
}

func (r *AuthorizationRouter) PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	svc, err := r.delegate(ctx)
	if err != nil {
		return 0, err
	}
	return svc.PaymentTotalForPeriod(ctx, start, end)
}
