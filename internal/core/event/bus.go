package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus for world lifecycle diagnostics.
// Events emitted in tick N are dispatched in tick N+1, after SwapBuffers.
// Emit and dispatch run on the simulation goroutine; only handler
// registration is locked.
type Bus struct {
	mu       sync.Mutex
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer, readable next tick.
func Emit[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) {
		fn(ev.(T))
	})
}

// SwapBuffers rotates back to front and clears the new back buffer. Called
// once at tick start by the event dispatch system.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers every front-buffer event to its subscribers.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := b.handlers
	b.mu.Unlock()
	for t, events := range b.front {
		hs := handlers[t]
		if len(hs) == 0 {
			continue
		}
		for _, ev := range events {
			for _, h := range hs {
				h(ev)
			}
		}
	}
}
