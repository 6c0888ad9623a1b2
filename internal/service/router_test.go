package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/identity"
	"github.com/orderflow/payment-service/internal/testutil"
)

// recordingService records which variant handled the call.
type recordingService struct {
	name   string
	called *string
}

func (s *recordingService) record() { *s.called = s.name }

func (s *recordingService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	s.record()
	return testutil.NewTestPayment(req.OrderID, req.UserID, req.AmountCents), nil
}

func (s *recordingService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	s.record()
	return testutil.NewSettledPayment(1, 1, 100, status), nil
}

func (s *recordingService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	s.record()
	return nil
}

func (s *recordingService) FindPaymentsByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	s.record()
	return nil, nil
}

func (s *recordingService) FindPaymentsByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	s.record()
	return nil, nil
}

func (s *recordingService) FindPaymentsByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	s.record()
	return nil, nil
}

func (s *recordingService) PaymentTotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	s.record()
	return 0, nil
}

func setupRouter() (*AuthorizationRouter, *string) {
	called := new(string)
	admin := &recordingService{name: "admin", called: called}
	user := &recordingService{name: "user", called: called}
	return NewAuthorizationRouter(admin, user, zerolog.Nop()), called
}

func TestRouter_AdminRoutesToAdmin(t *testing.T) {
	router, called := setupRouter()

	_, err := router.CreatePayment(testutil.AdminContext(1), CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	require.NoError(t, err)
	assert.Equal(t, "admin", *called)
}

func TestRouter_UserRoutesToUser(t *testing.T) {
	router, called := setupRouter()

	_, err := router.CreatePayment(testutil.UserContext(1), CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	require.NoError(t, err)
	assert.Equal(t, "user", *called)
}

func TestRouter_BothRolesRouteAdminFirst(t *testing.T) {
	router, called := setupRouter()
	ctx := identity.WithIdentity(context.Background(), identity.Identity{
		InternalID: 1,
		Roles:      []identity.Role{identity.RoleUser, identity.RoleAdmin},
	})

	_, err := router.CreatePayment(ctx, CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	require.NoError(t, err)
	assert.Equal(t, "admin", *called)
}

func TestRouter_NoRecognizedRole(t *testing.T) {
	router, called := setupRouter()
	ctx := identity.WithIdentity(context.Background(), identity.Identity{
		InternalID: 1,
		Roles:      []identity.Role{"auditor"},
	})

	_, err := router.CreatePayment(ctx, CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)
	assert.Empty(t, *called, "neither variant may be invoked")
}

func TestRouter_NoIdentity(t *testing.T) {
	router, called := setupRouter()

	_, err := router.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)
	assert.Empty(t, *called)
}

func TestRouter_AllOperationsGated(t *testing.T) {
	router, _ := setupRouter()
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	_, err := router.UpdatePaymentStatus(ctx, id, payment.StatusSuccess)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)

	err = router.DeletePayment(ctx, id)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)

	_, err = router.FindPaymentsByOrderID(ctx, 1)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)

	_, err = router.FindPaymentsByUserID(ctx, 1)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)

	_, err = router.FindPaymentsByStatuses(ctx, []payment.Status{payment.StatusPending})
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)

	_, err = router.PaymentTotalForPeriod(ctx, now.Add(-time.Hour), now)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientRole)
}

func TestRouter_SystemIdentityIsAdmin(t *testing.T) {
	router, called := setupRouter()
	ctx := identity.WithIdentity(context.Background(), identity.System())

	_, err := router.CreatePayment(ctx, CreatePaymentRequest{OrderID: 1, UserID: 1, AmountCents: 100})
	require.NoError(t, err)
	assert.Equal(t, "admin", *called)
}
