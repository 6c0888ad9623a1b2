package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
)

func TestNew_Success(t *testing.T) {
	before := time.Now()
	p, err := New(42, 7, 10050)
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, p.ID, "ID is assigned by the store, not the constructor")
	assert.Equal(t, int64(42), p.OrderID)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, int64(10050), p.AmountCents)
	assert.False(t, p.Timestamp.Before(before))
}

func TestNew_ZeroAmountAllowed(t *testing.T) {
	p, err := New(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.AmountCents)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		orderID int64
		userID  int64
		amount  int64
	}{
		{"zero order id", 0, 1, 100},
		{"negative order id", -5, 1, 100},
		{"zero user id", 1, 0, 100},
		{"negative user id", 1, -3, 100},
		{"negative amount", 1, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.orderID, tt.userID, tt.amount)
			require.Error(t, err)

			var ve *domainErrors.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusSuccess.Valid())
	assert.True(t, StatusFailed.Valid())
	assert.False(t, Status("CANCELLED").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("pending").Valid(), "statuses are case sensitive")
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("SUCCESS")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, st)

	_, err = ParseStatus("bogus")
	require.Error(t, err)
	var ve *domainErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOwnedBy(t *testing.T) {
	p, err := New(1, 10, 500)
	require.NoError(t, err)

	assert.True(t, p.OwnedBy(10))
	assert.False(t, p.OwnedBy(11))
}
