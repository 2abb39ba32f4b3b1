// Package bus defines the in-process notification channel used to tell
// other parts of the application that shared data changed.
//
// Delivery is synchronous and single-threaded: Publish invokes every
// current subscriber of the topic, in subscription order, before it
// returns. The bus is memory only; nothing survives a restart.
package bus

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Topic names a notification channel.
type Topic string

// Topics published by the application.
const (
	// TopicDataChanged signals that an event or category mutated and
	// consumers should re-run reconciliation and filtering.
	TopicDataChanged Topic = "dataChanged"

	// TopicResetFilters signals that consumers should reset their
	// filter specification to defaults.
	TopicResetFilters Topic = "resetFilters"
)

// Handler receives a published topic.
type Handler func(ctx context.Context, topic Topic)

// Bus provides publish/subscribe semantics for notification topics.
type Bus interface {
	// Publish delivers the topic to all current subscribers, in
	// subscription order. Returns false if the bus is closed.
	Publish(ctx context.Context, topic Topic) bool

	// Subscribe registers a handler for a topic and returns an opaque
	// token for Unsubscribe.
	Subscribe(topic Topic, h Handler) string

	// Unsubscribe removes a previously registered handler.
	// Unknown tokens are ignored.
	Unsubscribe(token string)

	// Close shuts down the bus; further publishes are dropped.
	Close() error

	// IsClosed returns true if the bus has been closed.
	IsClosed() bool
}

type subscriber struct {
	token   string
	handler Handler
}

// InMemoryBus implements Bus with mutex-guarded subscriber lists.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]subscriber
	closed      bool
}

// NewInMemoryBus creates a new in-memory bus.
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		subscribers: make(map[Topic][]subscriber),
	}
}

// Publish delivers the topic to all current subscribers.
func (b *InMemoryBus) Publish(ctx context.Context, topic Topic) bool {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return false
	}
	// Copy so handlers can subscribe/unsubscribe without deadlocking.
	subs := make([]subscriber, len(b.subscribers[topic]))
	copy(subs, b.subscribers[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(ctx, topic)
	}
	return true
}

// Subscribe registers a handler and returns its unsubscribe token.
func (b *InMemoryBus) Subscribe(topic Topic, h Handler) string {
	token := uuid.NewString()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || h == nil {
		return token
	}
	b.subscribers[topic] = append(b.subscribers[topic], subscriber{token: token, handler: h})
	return token
}

// Unsubscribe removes the handler registered under token.
func (b *InMemoryBus) Unsubscribe(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.subscribers {
		for i, s := range subs {
			if s.token == token {
				b.subscribers[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Close shuts down the bus and drops all subscriptions.
func (b *InMemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.subscribers = make(map[Topic][]subscriber)
	return nil
}

// IsClosed returns true if the bus has been closed.
func (b *InMemoryBus) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
