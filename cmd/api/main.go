package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/orderflow/payment-service/internal/bootstrap"
	"github.com/orderflow/payment-service/internal/broker"
	"github.com/orderflow/payment-service/internal/client"
	"github.com/orderflow/payment-service/internal/controller"
	"github.com/orderflow/payment-service/internal/repository/postgres"
	"github.com/orderflow/payment-service/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "payments-api", "payments")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	paymentRepo := postgres.NewPaymentRepository(app.Pool)

	// --- Services ---
	adminSvc := service.NewAdminPaymentService(paymentRepo, app.Logger)
	userSvc := service.NewUserPaymentService(paymentRepo, app.Logger)
	router := service.NewAuthorizationRouter(adminSvc, userSvc, app.Logger)

	producer := broker.NewStreamProducer(app.Redis)
	oracle := client.NewHTTPDecisionClient(app.Config.Decision, app.Logger)
	facade := service.NewPaymentFacade(router, producer, oracle, app.Metrics, app.Logger)

	// --- Build router ---
	mux := controller.NewRouter(controller.RouterDeps{
		Pool:           app.Pool,
		RedisClient:    app.Redis,
		PaymentService: facade,
		Metrics:        app.Metrics,
		CORSConfig:     app.Config.Server.CORS,
		JWTSecret:      app.Config.Auth.JWTSecret,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
