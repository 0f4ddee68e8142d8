package events_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"relay/internal/adapters/out/events"
	"relay/internal/core/domain/model/chat"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendChatMessage(ctx context.Context, msg chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotifier) Notify(ctx context.Context, userID kernel.UUID, event kernel.DomainEvent) error {
	args := m.Called(ctx, userID, event)
	return args.Error(0)
}

type unrelatedEvent struct{}

func (unrelatedEvent) EventName() string { return "test.unrelated" }

func TestBus_PublishAndClose(t *testing.T) {
	bus := events.NewBus(2)
	first := unrelatedEvent{}

	require.NoError(t, bus.Publish(t.Context(), first, first))
	bus.Close()
	bus.Close()

	require.ErrorIs(t, bus.Publish(t.Context(), first), events.ErrBusClosed)

	received := 0
	for range bus.Events() {
		received++
	}
	assert.Equal(t, 2, received)
}

func TestBus_PublishRespectsContext(t *testing.T) {
	bus := events.NewBus(0)
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	err := bus.Publish(ctx, unrelatedEvent{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBus_CloseReleasesBlockedPublisher(t *testing.T) {
	bus := events.NewBus(0)
	published := make(chan error, 1)
	go func() {
		published <- bus.Publish(context.Background(), unrelatedEvent{})
	}()

	// Give the publisher time to block on the unbuffered channel.
	time.Sleep(20 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		bus.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return while a publisher was blocked")
	}
	require.ErrorIs(t, <-published, events.ErrBusClosed)

	_, ok := <-bus.Events()
	assert.False(t, ok)
}

func TestDispatcher_Run(t *testing.T) {
	notifier := new(MockNotifier)
	bus := events.NewBus(8)
	dispatcher := events.NewDispatcher(bus, notifier, slog.New(slog.DiscardHandler))

	holder := kernel.NewUUID()
	stepA, stepB := kernel.NewUUID(), kernel.NewUUID()
	day := kernel.NewDate(2024, time.January, 5)

	accepted := route.RouteFullyAccepted{
		RouteID:  kernel.NewUUID(),
		PacketID: kernel.NewUUID(),
		Handovers: []route.Handover{
			{StepID: stepA, HolderID: holder, PlaceName: "Berlin", Date: day},
			{StepID: stepB, HolderID: kernel.NewUUID(), PlaceName: "Munich", Date: day.AddDays(3)},
		},
	}
	changed := route.StepStatusChanged{StepID: stepA, HolderID: holder, From: route.Suggested, To: route.Accepted}
	moved := route.ParcelMoved{StepID: stepA, HolderID: holder, PlaceName: "Berlin"}

	notifier.On("SendChatMessage", mock.Anything, chat.NewSystemMessage(stepA, chat.HandoverArranged,
		chat.SystemArgs{Date: day, Location: "Berlin"})).Return(errors.New("chat unavailable")).Once()
	notifier.On("SendChatMessage", mock.Anything, chat.NewSystemMessage(stepB, chat.HandoverArranged,
		chat.SystemArgs{Date: day.AddDays(3), Location: "Munich"})).Return(nil).Once()
	notifier.On("Notify", mock.Anything, holder, changed).Return(nil).Once()
	notifier.On("Notify", mock.Anything, holder, moved).Return(nil).Once()

	require.NoError(t, bus.Publish(t.Context(), accepted, changed, unrelatedEvent{}, moved))
	bus.Close()

	done := make(chan struct{})
	go func() {
		dispatcher.Run(t.Context())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after the bus was closed")
	}
	notifier.AssertExpectations(t)
}

func TestDispatcher_Dispatch_ForcedCancellation(t *testing.T) {
	notifier := new(MockNotifier)
	dispatcher := events.NewDispatcher(events.NewBus(0), notifier, slog.New(slog.DiscardHandler))
	holder := kernel.NewUUID()
	stepID := kernel.NewUUID()

	forced := route.StepStatusChanged{
		StepID: stepID, HolderID: holder, PlaceName: "Berlin",
		From: route.Accepted, To: route.Cancelled, Forced: true,
	}
	byHolder := route.StepStatusChanged{
		StepID: stepID, HolderID: holder, PlaceName: "Berlin",
		From: route.Accepted, To: route.Cancelled,
	}
	notifier.On("SendChatMessage", mock.Anything,
		chat.NewSystemMessage(stepID, chat.HandoverCancelled, chat.SystemArgs{Location: "Berlin"})).Return(nil).Once()
	notifier.On("Notify", mock.Anything, holder, forced).Return(nil).Once()
	notifier.On("Notify", mock.Anything, holder, byHolder).Return(nil).Once()

	dispatcher.Dispatch(t.Context(), forced)
	dispatcher.Dispatch(t.Context(), byHolder)

	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "SendChatMessage", 1)
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	bus := events.NewBus(1)
	dispatcher := events.NewDispatcher(bus, new(MockNotifier), slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dispatcher.Run(ctx)
}
