package service

import (
	"context"
	"errors"
	"testing"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestEventNotifier_FansOutAndSwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	event := testEvent()

	gomock.InOrder(
		first.EXPECT().Publish(gomock.Any(), event).Return(errors.New("redis down")),
		first.EXPECT().Name().Return("redis"),
		second.EXPECT().Publish(gomock.Any(), event).Return(nil),
	)

	n := NewEventNotifier(newTestLogger(), first, second)
	n.Notify(context.Background(), event)
}

func TestEventNotifier_IgnoresCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockEventSink(ctrl)
	event := testEvent()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sinkErr error
	sink.EXPECT().Publish(gomock.Any(), event).DoAndReturn(func(ctx context.Context, _ *domain.LedgerEvent) error {
		sinkErr = ctx.Err()
		return nil
	})

	NewEventNotifier(newTestLogger(), sink).Notify(ctx, event)
	assert.NoError(t, sinkErr)
}
