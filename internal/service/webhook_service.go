package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// HeaderWebhookSignature carries the hex HMAC-SHA256 of the request body.
const HeaderWebhookSignature = "X-Ledger-Signature"

// defaultWebhookRetryIntervals is the wait before each redelivery.
var defaultWebhookRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// WebhookPayload is the JSON body posted to the webhook URL.
type WebhookPayload struct {
	EventType string             `json:"event_type"`
	Data      domain.LedgerEvent `json:"data"`
	Signature string             `json:"signature"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookConfig configures a WebhookSink.
type WebhookConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
	// BreakerFailures consecutive failures open the breaker for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	RetryIntervals  []time.Duration
}

var errWebhookStatus = errors.New("webhook: non-2xx response")

// WebhookSink implements ports.EventSink by posting signed events to one URL.
// Delivery is asynchronous with retries; a circuit breaker short-circuits
// attempts while the endpoint keeps failing.
type WebhookSink struct {
	cfg        WebhookConfig
	signer     ports.PayloadSigner
	httpClient HTTPClient
	breaker    *gobreaker.CircuitBreaker
	wg         sync.WaitGroup
	stop       chan struct{}
	stopOnce   sync.Once
	log        zerolog.Logger
}

// NewWebhookSink creates a webhook sink.
func NewWebhookSink(cfg WebhookConfig, signer ports.PayloadSigner, httpClient HTTPClient, log zerolog.Logger) *WebhookSink {
	if cfg.RetryIntervals == nil {
		cfg.RetryIntervals = defaultWebhookRetryIntervals
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	failures := cfg.BreakerFailures

	s := &WebhookSink{
		cfg:        cfg,
		signer:     signer,
		httpClient: httpClient,
		stop:       make(chan struct{}),
		log:        log,
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "webhook",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("webhook: circuit breaker state changed")
		},
	})
	return s
}

// Name returns the sink name.
func (s *WebhookSink) Name() string {
	return "webhook"
}

// Publish signs event and schedules its delivery.
func (s *WebhookSink) Publish(ctx context.Context, event *domain.LedgerEvent) error {
	dataBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	payload := WebhookPayload{
		EventType: string(event.Kind),
		Data:      *event,
		Signature: s.signer.Sign(s.cfg.Secret, string(dataBytes)),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliverWithRetries(body, s.signer.Sign(s.cfg.Secret, string(body)), event.ID.String())
	}()
	return nil
}

// Wait blocks until every scheduled delivery has finished.
func (s *WebhookSink) Wait() {
	s.wg.Wait()
}

// Close abandons pending redeliveries and waits for in-flight attempts.
func (s *WebhookSink) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *WebhookSink) deliverWithRetries(body []byte, bodySig, eventID string) {
	for attempt := 0; attempt <= len(s.cfg.RetryIntervals); attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.cfg.RetryIntervals[attempt-1]):
			case <-s.stop:
				s.log.Warn().Str("event_id", eventID).Int("attempt", attempt+1).Msg("webhook: shutting down, redelivery abandoned")
				return
			}
		}

		_, err := s.breaker.Execute(func() (interface{}, error) {
			return nil, s.deliver(body, bodySig)
		})
		if err == nil {
			s.log.Info().Str("event_id", eventID).Int("attempt", attempt+1).Msg("webhook: delivered successfully")
			return
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.log.Warn().Str("event_id", eventID).Int("attempt", attempt+1).Msg("webhook: circuit open, attempt skipped")
			continue
		}
		s.log.Warn().Err(err).Str("event_id", eventID).Int("attempt", attempt+1).Msg("webhook: delivery failed")
	}

	s.log.Error().Str("event_id", eventID).Msg("webhook: all retry attempts exhausted")
}

func (s *WebhookSink) deliver(body []byte, bodySig string) error {
	ctx := context.Background()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderWebhookSignature, bodySig)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", errWebhookStatus, resp.StatusCode)
	}
	return nil
}
