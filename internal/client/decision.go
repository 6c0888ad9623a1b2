package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	domainErrors "github.com/orderflow/payment-service/internal/domain/errors"
	"github.com/orderflow/payment-service/internal/infrastructure/config"
)

const decisionPath = "/totallyLegitDecisionApi"

// HTTPDecisionClient fetches settlement decisions from the external decision
// endpoint. Calls run through a circuit breaker so a flapping upstream fails
// fast instead of holding request threads; all failures surface as
// ErrDecisionUnavailable.
type HTTPDecisionClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[int]
	logger  zerolog.Logger
}

// NewHTTPDecisionClient builds the client from config: request timeout,
// breaker trip threshold and open-state duration.
func NewHTTPDecisionClient(cfg config.DecisionConfig, logger zerolog.Logger) *HTTPDecisionClient {
	settings := gobreaker.Settings{
		Name:     "decision-api",
		Interval: 0,
		Timeout:  cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
	}

	return &HTTPDecisionClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		breaker: gobreaker.NewCircuitBreaker[int](settings),
		logger:  logger.With().Str("component", "decision_client").Logger(),
	}
}

// PaymentDecision returns the oracle's integer verdict. Interpretation of the
// value is left to the caller.
func (c *HTTPDecisionClient) PaymentDecision(ctx context.Context) (int, error) {
	decision, err := c.breaker.Execute(func() (int, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("decision fetch failed")
		return 0, fmt.Errorf("%w: %w", domainErrors.ErrDecisionUnavailable, err)
	}
	return decision, nil
}

func (c *HTTPDecisionClient) fetch(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+decisionPath, nil)
	if err != nil {
		return 0, fmt.Errorf("building decision request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling decision api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return 0, fmt.Errorf("reading decision response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("decision api returned status %d", resp.StatusCode)
	}

	decision, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("parsing decision %q: %w", string(body), err)
	}
	return decision, nil
}
