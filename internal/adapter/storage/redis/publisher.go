package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"

	goredis "github.com/redis/go-redis/v9"
)

// EventChannelPrefix prefixes the per-vault pub/sub channel.
const EventChannelPrefix = "ledger:events:"

// EventPublisher implements ports.EventSink over Redis PUBLISH.
type EventPublisher struct {
	client *goredis.Client
}

// NewEventPublisher creates a publisher on client.
func NewEventPublisher(client *goredis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// EventChannel returns the channel a vault's events are published on.
func EventChannel(vault types.Address) string {
	return EventChannelPrefix + vault.String()
}

// Publish sends the JSON encoding of event to its vault channel.
func (p *EventPublisher) Publish(ctx context.Context, event *domain.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}
	if err := p.client.Publish(ctx, EventChannel(event.Vault), payload).Err(); err != nil {
		return fmt.Errorf("publish ledger event: %w", err)
	}
	return nil
}

// Name returns the sink name.
func (p *EventPublisher) Name() string {
	return "redis"
}
