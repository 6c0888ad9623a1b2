package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"github.com/orderflow/payment-service/internal/bootstrap"
	"github.com/orderflow/payment-service/internal/broker"
	"github.com/orderflow/payment-service/internal/client"
	"github.com/orderflow/payment-service/internal/repository/postgres"
	"github.com/orderflow/payment-service/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "payments-worker", "payments_worker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Services ---
	// The worker runs the same creation pipeline as the API; only the
	// entry point differs.
	paymentRepo := postgres.NewPaymentRepository(app.Pool)
	adminSvc := service.NewAdminPaymentService(paymentRepo, app.Logger)
	userSvc := service.NewUserPaymentService(paymentRepo, app.Logger)
	router := service.NewAuthorizationRouter(adminSvc, userSvc, app.Logger)

	producer := broker.NewStreamProducer(app.Redis)
	oracle := client.NewHTTPDecisionClient(app.Config.Decision, app.Logger)
	facade := service.NewPaymentFacade(router, producer, oracle, app.Metrics, app.Logger)

	// --- CREATE_ORDER consumer ---
	brokerCfg := app.Config.Broker
	consumer := broker.NewStreamConsumer(
		app.Redis,
		broker.CreateOrderStream,
		brokerCfg.ConsumerGroup,
		app.Config.InstanceID,
		brokerCfg.BatchSize,
		brokerCfg.BlockDuration,
	)
	ingester := broker.NewIngester(consumer, facade, producer, brokerCfg, app.Metrics, app.Logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ingester.Run(gCtx)
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
			app.Logger.Info().Msg("Shutting down worker...")
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		app.Logger.Error().Err(err).Msg("Worker error")
	}
	app.Logger.Info().Msg("Worker exited")
}
