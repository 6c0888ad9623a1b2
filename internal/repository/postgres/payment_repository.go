package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
)

const paymentColumns = `id, order_id, user_id, status, amount, created_at`

// PaymentRepository implements payment.Repository using PostgreSQL.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Create inserts a new payment, assigning its ID.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (id, order_id, user_id, status, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.OrderID, p.UserID, string(p.Status), centsToNumericString(p.AmountCents), p.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

// GetByIDAndUserID retrieves a payment by ID scoped to its owner.
func (r *PaymentRepository) GetByIDAndUserID(ctx context.Context, id uuid.UUID, userID int64) (*payment.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND user_id = $2`, id, userID))
}

// Update persists the current state of an existing payment. The creation
// timestamp and owner are immutable and never written back.
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET status = $1, amount = $2 WHERE id = $3`,
		string(p.Status), centsToNumericString(p.AmountCents), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment by ID. Absent records are not an error.
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// FindByOrderID lists payments for an order.
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY created_at`, orderID)
}

// FindByOrderIDAndUserID lists payments for an order owned by the given user.
func (r *PaymentRepository) FindByOrderIDAndUserID(ctx context.Context, orderID, userID int64) ([]*payment.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 AND user_id = $2 ORDER BY created_at`,
		orderID, userID)
}

// FindByUserID lists payments owned by the given user.
func (r *PaymentRepository) FindByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY created_at`, userID)
}

// FindByStatuses lists payments whose status is in the given set.
func (r *PaymentRepository) FindByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = ANY($1) ORDER BY created_at`,
		statusStrings(statuses))
}

// FindByStatusesAndUserID lists payments whose status is in the given set,
// owned by the given user.
func (r *PaymentRepository) FindByStatusesAndUserID(ctx context.Context, statuses []payment.Status, userID int64) ([]*payment.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = ANY($1) AND user_id = $2 ORDER BY created_at`,
		statusStrings(statuses), userID)
}

// TotalForPeriod sums payment amounts over [start, end], inclusive.
func (r *PaymentRepository) TotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	return r.scanTotal(r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM payments
		 WHERE created_at >= $1 AND created_at <= $2`, start, end))
}

// TotalForPeriodAndUserID sums one owner's payment amounts over [start, end].
func (r *PaymentRepository) TotalForPeriodAndUserID(ctx context.Context, start, end time.Time, userID int64) (int64, error) {
	return r.scanTotal(r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM payments
		 WHERE created_at >= $1 AND created_at <= $2 AND user_id = $3`, start, end, userID))
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*payment.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) scanPayment(row scanner) (*payment.Payment, error) {
	var (
		p         payment.Payment
		status    string
		amountStr string
	)
	err := row.Scan(&p.ID, &p.OrderID, &p.UserID, &status, &amountStr, &p.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	p.Status = payment.Status(status)
	p.AmountCents, err = numericStringToCents(amountStr)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) scanTotal(row scanner) (int64, error) {
	var totalStr string
	if err := row.Scan(&totalStr); err != nil {
		return 0, fmt.Errorf("scan payment total: %w", err)
	}
	return numericStringToCents(totalStr)
}

func statusStrings(statuses []payment.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
