package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/domain/payment"
)

// --- Payment Repository Mock ---

// MockPaymentRepository is an in-memory implementation of payment.Repository.
// Any Func field, when set, overrides the default behavior of the matching
// method.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*payment.Payment

	CreateFunc                  func(ctx context.Context, p *payment.Payment) error
	GetByIDFunc                 func(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	GetByIDAndUserIDFunc        func(ctx context.Context, id uuid.UUID, userID int64) (*payment.Payment, error)
	UpdateFunc                  func(ctx context.Context, p *payment.Payment) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	FindByOrderIDFunc           func(ctx context.Context, orderID int64) ([]*payment.Payment, error)
	FindByOrderIDAndUserIDFunc  func(ctx context.Context, orderID, userID int64) ([]*payment.Payment, error)
	FindByUserIDFunc            func(ctx context.Context, userID int64) ([]*payment.Payment, error)
	FindByStatusesFunc          func(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error)
	FindByStatusesAndUserIDFunc func(ctx context.Context, statuses []payment.Status, userID int64) ([]*payment.Payment, error)
	TotalForPeriodFunc          func(ctx context.Context, start, end time.Time) (int64, error)
	TotalForPeriodAndUserIDFunc func(ctx context.Context, start, end time.Time, userID int64) (int64, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[uuid.UUID]*payment.Payment),
	}
}

// Seed stores a payment directly, bypassing any CreateFunc override.
func (m *MockPaymentRepository) Seed(p *payment.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, domainErrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentRepository) GetByIDAndUserID(ctx context.Context, id uuid.UUID, userID int64) (*payment.Payment, error) {
	if m.GetByIDAndUserIDFunc != nil {
		return m.GetByIDAndUserIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok || p.UserID != userID {
		return nil, domainErrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[p.ID]; !ok {
		return domainErrors.ErrPaymentNotFound
	}
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, id)
	return nil
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	if m.FindByOrderIDFunc != nil {
		return m.FindByOrderIDFunc(ctx, orderID)
	}
	return m.filter(func(p *payment.Payment) bool { return p.OrderID == orderID }), nil
}

func (m *MockPaymentRepository) FindByOrderIDAndUserID(ctx context.Context, orderID, userID int64) ([]*payment.Payment, error) {
	if m.FindByOrderIDAndUserIDFunc != nil {
		return m.FindByOrderIDAndUserIDFunc(ctx, orderID, userID)
	}
	return m.filter(func(p *payment.Payment) bool { return p.OrderID == orderID && p.UserID == userID }), nil
}

func (m *MockPaymentRepository) FindByUserID(ctx context.Context, userID int64) ([]*payment.Payment, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return m.filter(func(p *payment.Payment) bool { return p.UserID == userID }), nil
}

func (m *MockPaymentRepository) FindByStatuses(ctx context.Context, statuses []payment.Status) ([]*payment.Payment, error) {
	if m.FindByStatusesFunc != nil {
		return m.FindByStatusesFunc(ctx, statuses)
	}
	return m.filter(func(p *payment.Payment) bool { return statusIn(p.Status, statuses) }), nil
}

func (m *MockPaymentRepository) FindByStatusesAndUserID(ctx context.Context, statuses []payment.Status, userID int64) ([]*payment.Payment, error) {
	if m.FindByStatusesAndUserIDFunc != nil {
		return m.FindByStatusesAndUserIDFunc(ctx, statuses, userID)
	}
	return m.filter(func(p *payment.Payment) bool { return p.UserID == userID && statusIn(p.Status, statuses) }), nil
}

func (m *MockPaymentRepository) TotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	if m.TotalForPeriodFunc != nil {
		return m.TotalForPeriodFunc(ctx, start, end)
	}
	return m.sum(func(p *payment.Payment) bool { return inPeriod(p.Timestamp, start, end) }), nil
}

func (m *MockPaymentRepository) TotalForPeriodAndUserID(ctx context.Context, start, end time.Time, userID int64) (int64, error) {
	if m.TotalForPeriodAndUserIDFunc != nil {
		return m.TotalForPeriodAndUserIDFunc(ctx, start, end, userID)
	}
	return m.sum(func(p *payment.Payment) bool { return p.UserID == userID && inPeriod(p.Timestamp, start, end) }), nil
}

func (m *MockPaymentRepository) filter(keep func(*payment.Payment) bool) []*payment.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*payment.Payment
	for _, p := range m.payments {
		if keep(p) {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result
}

func (m *MockPaymentRepository) sum(keep func(*payment.Payment) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, p := range m.payments {
		if keep(p) {
			total += p.AmountCents
		}
	}
	return total
}

func statusIn(s payment.Status, statuses []payment.Status) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

func inPeriod(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// --- Event Publisher Mock ---

// MockPublisher records published payment snapshots in order.
type MockPublisher struct {
	mu     sync.Mutex
	events []payment.Payment

	PublishFunc func(ctx context.Context, p *payment.Payment) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishPaymentUpdate(ctx context.Context, p *payment.Payment) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *p)
	return nil
}

// Events returns the snapshots published so far, in publish order.
func (m *MockPublisher) Events() []payment.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]payment.Payment(nil), m.events...)
}

// --- Decision Client Mock ---

// MockDecision returns a fixed verdict, or fails when Err is set.
type MockDecision struct {
	Decision int
	Err      error

	mu    sync.Mutex
	calls int
}

func (m *MockDecision) PaymentDecision(ctx context.Context) (int, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Decision, nil
}

// Calls reports how many times the oracle was consulted.
func (m *MockDecision) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
