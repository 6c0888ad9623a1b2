package controller

import (
	"math"
	"time"

	"github.com/orderflow/payment-service/internal/domain/payment"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money, validation tags).
// Controllers convert these to service layer DTOs before calling business logic.

// CreatePaymentRequest holds the input for creating a payment.
type CreatePaymentRequest struct {
	OrderID       int64   `json:"orderId" validate:"required,gt=0"`
	UserID        int64   `json:"userId" validate:"required,gt=0"`
	PaymentAmount float64 `json:"paymentAmount" validate:"gte=0"`
}

// UpdatePaymentStatusRequest holds the input for overwriting a payment's
// status.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SUCCESS FAILED"`
}

// --- Response DTOs ---

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID            string    `json:"id"`
	OrderID       int64     `json:"orderId"`
	UserID        int64     `json:"userId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	PaymentAmount float64   `json:"paymentAmount"`
}

// PaymentTotalResponse represents a summed amount over a period.
type PaymentTotalResponse struct {
	PaymentTotal float64 `json:"paymentTotal"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromPayment converts a domain payment to API response.
func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID.String(),
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		Status:        string(p.Status),
		Timestamp:     p.Timestamp,
		PaymentAmount: centsToFloat(p.AmountCents),
	}
}

// FromPayments converts a slice of domain payments to API responses.
func FromPayments(payments []*payment.Payment) []*PaymentResponse {
	resp := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, FromPayment(p))
	}
	return resp
}

// floatToCents converts a float dollar amount to cents.
func floatToCents(f float64) int64 {
	return int64(math.Round(f * 100))
}

// centsToFloat converts cents to a float dollar amount.
func centsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}
