// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package events

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// Event is an audit event published by the ledger or the adapter.
type Event interface {
	EventType() string
}

// Bus is a synchronous publish/subscribe bus for audit events.
type Bus struct {
	mu          sync.Mutex
	subscribers []func(Event)
	logger      zerolog.Logger
}

func NewBus(logger zerolog.Logger) *Bus {
	b := new(Bus)
	b.logger = logger
	return b
}

func (b *Bus) subscribe(sub func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, sub)
}

// Publish delivers the event to every subscriber.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	n := len(b.subscribers)
	subs := b.subscribers
	b.mu.Unlock()

	for _, sub := range subs[:n] {
		sub(event)
	}
}

// SubscribeSync subscribes to events of type T, delivered on the publisher's
// goroutine.
func SubscribeSync[T Event](b *Bus, sub func(T)) {
	b.subscribe(func(e Event) {
		et, ok := e.(T)
		if !ok {
			return
		}

		defer func() {
			err := recover()
			if err == nil {
				return
			}

			b.logger.Error().Interface("error", err).Str("stack", string(debug.Stack())).Msg("Subscriber panicked")
		}()

		sub(et)
	})
}

// SubscribeAll subscribes to every event.
func SubscribeAll(b *Bus, sub func(Event)) {
	SubscribeSync[Event](b, sub)
}
