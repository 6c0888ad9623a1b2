package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/orderflow/payment-service/internal/infrastructure/config"
	"github.com/orderflow/payment-service/internal/infrastructure/observability"
	customMW "github.com/orderflow/payment-service/internal/middleware"
	"github.com/orderflow/payment-service/internal/service"
)

type RouterDeps struct {
	Pool           *pgxpool.Pool
	RedisClient    *redis.Client
	PaymentService service.PaymentService
	Metrics        *observability.Metrics
	CORSConfig     config.CORSConfig
	JWTSecret      string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	paymentH := NewPaymentController(deps.PaymentService, deps.Metrics)
	decisionH := NewDecisionController()

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	// Mock authorization provider; unauthenticated like a third-party API.
	r.Get("/totallyLegitDecisionApi", decisionH.Decide)

	r.Route("/api/payments", func(r chi.Router) {
		r.Use(customMW.RequireAuth(deps.JWTSecret))

		r.Post("/", paymentH.CreatePayment)
		r.Patch("/{id}/status", paymentH.UpdatePaymentStatus)
		r.Delete("/{id}", paymentH.DeletePayment)
		r.Get("/by-order/{orderId}", paymentH.FindByOrderID)
		r.Get("/by-user/{userId}", paymentH.FindByUserID)
		r.Get("/by-status", paymentH.FindByStatuses)
		r.Get("/total", paymentH.PaymentTotal)
	})

	return r
}
