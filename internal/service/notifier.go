package service

import (
	"context"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

const sinkTimeout = 5 * time.Second

// EventNotifier implements ports.Notifier. Every committed event is logged
// and handed to each sink in order; sink failures are logged and dropped.
type EventNotifier struct {
	sinks []ports.EventSink
	log   zerolog.Logger
}

// NewEventNotifier creates a notifier over sinks.
func NewEventNotifier(log zerolog.Logger, sinks ...ports.EventSink) *EventNotifier {
	return &EventNotifier{sinks: sinks, log: log}
}

// Notify fans event out. It never fails the caller.
func (n *EventNotifier) Notify(ctx context.Context, event *domain.LedgerEvent) {
	n.log.Info().
		Str("event_id", event.ID.String()).
		Str("kind", string(event.Kind)).
		Str("actor", event.Actor.String()).
		Str("vault", event.Vault.String()).
		Str("subject", event.Subject.String()).
		Uint64("amount", event.Amount).
		Uint64("running_total", event.RunningTotal).
		Msg("ledger event")

	// The operation has already committed; a cancelled request must not
	// stop delivery.
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	for _, sink := range n.sinks {
		if err := sink.Publish(sinkCtx, event); err != nil {
			n.log.Warn().Err(err).
				Str("sink", sink.Name()).
				Str("event_id", event.ID.String()).
				Msg("event sink publish failed")
		}
	}
}
