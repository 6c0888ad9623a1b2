package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orderflow/payment-service/internal/domain/payment"
	"github.com/orderflow/payment-service/internal/infrastructure/observability"
	"github.com/orderflow/payment-service/internal/service"
)

// PaymentController handles payment-related HTTP requests. Authorization is
// resolved below this layer; the controller only translates between HTTP and
// the service's types.
type PaymentController struct {
	paymentService service.PaymentService
	metrics        *observability.Metrics
}

// NewPaymentController creates a new PaymentController. Metrics may be nil.
func NewPaymentController(paymentService service.PaymentService, metrics *observability.Metrics) *PaymentController {
	return &PaymentController{paymentService: paymentService, metrics: metrics}
}

// CreatePayment handles POST /api/payments
func (h *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.paymentService.CreatePayment(r.Context(), service.CreatePaymentRequest{
		OrderID:     req.OrderID,
		UserID:      req.UserID,
		AmountCents: floatToCents(req.PaymentAmount),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PaymentsCreatedTotal.WithLabelValues("api").Inc()
	}

	// The settlement outcome arrives on the event stream; the response is
	// the pending snapshot.
	writeJSON(w, http.StatusCreated, FromPayment(p))
}

// UpdatePaymentStatus handles PATCH /api/payments/{id}/status
func (h *PaymentController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment id", Code: "invalid_id"})
		return
	}

	var req UpdatePaymentStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status, err := payment.ParseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.paymentService.UpdatePaymentStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

// DeletePayment handles DELETE /api/payments/{id}
func (h *PaymentController) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment id", Code: "invalid_id"})
		return
	}

	if err := h.paymentService.DeletePayment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FindByOrderID handles GET /api/payments/by-order/{orderId}
func (h *PaymentController) FindByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	payments, err := h.paymentService.FindPaymentsByOrderID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayments(payments))
}

// FindByUserID handles GET /api/payments/by-user/{userId}
func (h *PaymentController) FindByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id", Code: "invalid_id"})
		return
	}

	payments, err := h.paymentService.FindPaymentsByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayments(payments))
}

// FindByStatuses handles GET /api/payments/by-status?statuses=PENDING,FAILED
func (h *PaymentController) FindByStatuses(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("statuses")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "statuses query parameter is required", Code: "invalid_input"})
		return
	}

	var statuses []payment.Status
	for _, s := range strings.Split(raw, ",") {
		status, err := payment.ParseStatus(strings.TrimSpace(s))
		if err != nil {
			writeError(w, err)
			return
		}
		statuses = append(statuses, status)
	}

	payments, err := h.paymentService.FindPaymentsByStatuses(r.Context(), statuses)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayments(payments))
}

// PaymentTotal handles GET /api/payments/total?start=...&end=...
// Bounds are RFC 3339 timestamps and the range is inclusive on both ends.
func (h *PaymentController) PaymentTotal(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid start timestamp, want RFC 3339", Code: "invalid_input"})
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid end timestamp, want RFC 3339", Code: "invalid_input"})
		return
	}

	total, err := h.paymentService.PaymentTotalForPeriod(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentTotalResponse{PaymentTotal: centsToFloat(total)})
}
