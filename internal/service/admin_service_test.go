package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/testutil"
)

func setupAdminService() (*AdminPaymentService, *testutil.MockPaymentRepository) {
	repo := testutil.NewMockPaymentRepository()
	return NewAdminPaymentService(repo, zerolog.Nop()), repo
}

func TestAdminCreatePayment_Success(t *testing.T) {
	svc, repo := setupAdminService()

	p, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{
		OrderID:     100,
		UserID:      7,
		AmountCents: 2500,
	})
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPending, p.Status)
	assert.NotEqual(t, uuid.Nil, p.ID)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.OrderID)
}

func TestAdminCreatePayment_InvalidInput(t *testing.T) {
	svc, _ := setupAdminService()

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{
		OrderID:     -1,
		UserID:      7,
		AmountCents: 2500,
	})
	require.Error(t, err)

	var ve *domainErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAdminUpdatePaymentStatus_AnyOwner(t *testing.T) {
	svc, repo := setupAdminService()
	p := testutil.NewTestPayment(100, 7, 2500)
	repo.Seed(p)

	updated, err := svc.UpdatePaymentStatus(context.Background(), p.ID, payment.StatusSuccess)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, updated.Status)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, stored.Status)
}

func TestAdminUpdatePaymentStatus_NotFound(t *testing.T) {
	svc, _ := setupAdminService()

	_, err := svc.UpdatePaymentStatus(context.Background(), uuid.New(), payment.StatusFailed)
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
}

func TestAdminUpdatePaymentStatus_NoTransitionGraph(t *testing.T) {
	svc, repo := setupAdminService()
	p := testutil.NewSettledPayment(100, 7, 2500, payment.StatusSuccess)
	repo.Seed(p)

	// Settled records can be rewound; the store does not gate transitions.
	updated, err := svc.UpdatePaymentStatus(context.Background(), p.ID, payment.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, updated.Status)
}

func TestAdminDeletePayment_AbsentIsNotAnError(t *testing.T) {
	svc, _ := setupAdminService()

	err := svc.DeletePayment(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestAdminDeletePayment_ForeignOwner(t *testing.T) {
	svc, repo := setupAdminService()
	p := testutil.NewTestPayment(100, 7, 2500)
	repo.Seed(p)

	require.NoError(t, svc.DeletePayment(context.Background(), p.ID))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
}

func TestAdminFinds_Unscoped(t *testing.T) {
	svc, repo := setupAdminService()
	repo.Seed(testutil.NewTestPayment(100, 7, 1000))
	repo.Seed(testutil.NewTestPayment(100, 8, 2000))
	repo.Seed(testutil.NewSettledPayment(200, 7, 3000, payment.StatusFailed))

	byOrder, err := svc.FindPaymentsByOrderID(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)

	byUser, err := svc.FindPaymentsByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byStatus, err := svc.FindPaymentsByStatuses(context.Background(), []payment.Status{payment.StatusFailed})
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)
}

func TestAdminPaymentTotalForPeriod(t *testing.T) {
	svc, repo := setupAdminService()
	repo.Seed(testutil.NewTestPayment(100, 7, 1000))
	repo.Seed(testutil.NewTestPayment(101, 8, 2500))

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	total, err := svc.PaymentTotalForPeriod(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), total)
}

func TestAdminCreatePayment_RepositoryErrorPropagates(t *testing.T) {
	svc, repo := setupAdminService()
	storeErr := errors.New("connection refused")
	repo.CreateFunc = func(ctx context.Context, p *payment.Payment) error {
		return storeErr
	}

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{
		OrderID:     100,
		UserID:      7,
		AmountCents: 2500,
	})
	assert.ErrorIs(t, err, storeErr)
}
