// Package events moves committed domain events from the unit of work to the
// notifier.
//
// Example:
//
//	bus := events.NewBus(256)
//	dispatcher := events.NewDispatcher(bus, notifier, logger)
//	go dispatcher.Run(ctx)
//
//	uowFactory := postgres.NewGormUnitOfWorkFactory(db, bus, rule, logger)
package events

import (
	"context"
	"errors"
	"sync"

	"relay/internal/core/domain/model/kernel"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a buffered in-process event channel implementing
// ports.EventPublisher. Publish blocks while the buffer is full, until the
// event fits, ctx ends or the bus is closed.
type Bus struct {
	mu       sync.RWMutex
	ch       chan kernel.DomainEvent
	done     chan struct{}
	inflight sync.WaitGroup
	closed   bool
}

func NewBus(buffer int) *Bus {
	if buffer < 0 {
		buffer = 0
	}
	return &Bus{
		ch:   make(chan kernel.DomainEvent, buffer),
		done: make(chan struct{}),
	}
}

func (b *Bus) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	b.inflight.Add(1)
	b.mu.RUnlock()
	defer b.inflight.Done()

	for _, e := range events {
		select {
		case b.ch <- e:
		case <-ctx.Done():
			return ctx.Err()
		case <-b.done:
			return ErrBusClosed
		}
	}
	return nil
}

// Events is drained by the dispatcher. It is closed by Close.
func (b *Bus) Events() <-chan kernel.DomainEvent {
	return b.ch
}

// Close stops accepting events and releases blocked publishers. Buffered
// events stay readable.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.inflight.Wait()
	close(b.ch)
}
