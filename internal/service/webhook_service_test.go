package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports/mocks"
	"treasury-ledger/pkg/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}
}

func testEvent() *domain.LedgerEvent {
	e := domain.NewLedgerEvent(domain.EventPayoutExecuted, types.Address{2}, types.Address{1}, types.Address{9}, time.Now().UTC())
	e.Amount = 500
	return e
}

func TestWebhookSink_Publish_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockPayloadSigner(ctrl)
	signer.EXPECT().Sign("secret", gomock.Any()).Return("sig").Times(2)

	var got WebhookPayload
	var header string
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			header = req.Header.Get(HeaderWebhookSignature)
			body, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(body, &got)
			return okResponse(), nil
		},
	}

	sink := NewWebhookSink(WebhookConfig{URL: "https://hooks.example.com/ledger", Secret: "secret"}, signer, httpClient, newTestLogger())
	event := testEvent()

	require.NoError(t, sink.Publish(context.Background(), event))
	sink.Wait()

	assert.Equal(t, "sig", header)
	assert.Equal(t, "PAYOUT_EXECUTED", got.EventType)
	assert.Equal(t, event.ID, got.Data.ID)
	assert.Equal(t, uint64(500), got.Data.Amount)
	assert.Equal(t, "sig", got.Signature)
	assert.Equal(t, "webhook", sink.Name())
}

func TestWebhookSink_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			if calls.Add(1) < 3 {
				return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader(""))}, nil
			}
			return okResponse(), nil
		},
	}

	cfg := WebhookConfig{
		URL:             "https://hooks.example.com/ledger",
		Secret:          "secret",
		BreakerFailures: 10,
		RetryIntervals:  []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
	}
	sink := NewWebhookSink(cfg, NewHMACPayloadSigner(), httpClient, newTestLogger())

	require.NoError(t, sink.Publish(context.Background(), testEvent()))
	sink.Wait()

	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookSink_BreakerStopsHammering(t *testing.T) {
	var calls atomic.Int32
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("connection refused")
		},
	}

	cfg := WebhookConfig{
		URL:             "https://hooks.example.com/ledger",
		Secret:          "secret",
		BreakerFailures: 2,
		BreakerTimeout:  time.Hour,
		RetryIntervals:  []time.Duration{0, 0, 0, 0},
	}
	sink := NewWebhookSink(cfg, NewHMACPayloadSigner(), httpClient, newTestLogger())

	require.NoError(t, sink.Publish(context.Background(), testEvent()))
	sink.Wait()

	assert.Equal(t, int32(2), calls.Load(), "open breaker must skip the remaining attempts")
}

func TestWebhookSink_SignatureVerifiable(t *testing.T) {
	signer := NewHMACPayloadSigner()
	done := make(chan bool, 1)
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			done <- signer.Verify("shared", string(body), req.Header.Get(HeaderWebhookSignature))
			return okResponse(), nil
		},
	}

	sink := NewWebhookSink(WebhookConfig{URL: "https://hooks.example.com", Secret: "shared"}, signer, httpClient, newTestLogger())
	require.NoError(t, sink.Publish(context.Background(), testEvent()))

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook delivery timed out")
	}
	sink.Wait()
}

func TestWebhookSink_CloseAbandonsRedelivery(t *testing.T) {
	var calls atomic.Int32
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("connection refused")
		},
	}

	cfg := WebhookConfig{
		URL:            "https://hooks.example.com/ledger",
		Secret:         "secret",
		RetryIntervals: []time.Duration{time.Hour},
	}
	sink := NewWebhookSink(cfg, NewHMACPayloadSigner(), httpClient, newTestLogger())

	require.NoError(t, sink.Publish(context.Background(), testEvent()))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		sink.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while a redelivery was pending")
	}
	assert.Equal(t, int32(1), calls.Load())
	sink.Close()
}
