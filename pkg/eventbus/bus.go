// Package eventbus is the in-process source of navigation lifecycle events.
//
// Listeners run synchronously on the emitting goroutine, in registration
// order, so a navigation's EventBefore is always fully handled before its
// EventSuccess:
//
//	bus := eventbus.New()
//	sub := bus.On(bridge.EventSuccess, func(ctx context.Context, e bridge.Event) {
//	    log.Println(e.Page.URL)
//	})
//	defer sub.Unsubscribe()
//	bus.Emit(ctx, bridge.Event{Name: bridge.EventSuccess, Page: page})
package eventbus

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

type listener struct {
	id uint64
	fn bridge.Listener
}

// Bus dispatches events to the listeners registered for their name.
// Safe for concurrent use.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	nextID    uint64
	closed    bool
	logger    *slog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[string][]listener),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription removes its listener from the bus. Unsubscribe is idempotent.
type Subscription struct {
	bus  *Bus
	name string
	id   uint64
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.bus != nil {
			s.bus.remove(s.name, s.id)
		}
	})
}

// On registers fn for events named name. On a closed bus the returned
// subscription is inert.
func (b *Bus) On(name string, fn bridge.Listener) bridge.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || fn == nil {
		return &Subscription{}
	}
	b.nextID++
	id := b.nextID
	b.listeners[name] = append(b.listeners[name], listener{id: id, fn: fn})
	return &Subscription{bus: b, name: name, id: id}
}

// Emit calls every listener registered for e.Name. A panicking listener is
// logged and does not stop the others.
func (b *Bus) Emit(ctx context.Context, e bridge.Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	ls := slices.Clone(b.listeners[e.Name])
	b.mu.RUnlock()

	for _, l := range ls {
		b.call(ctx, l, e)
	}
}

// Len returns the number of listeners registered for name.
func (b *Bus) Len(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Close drops all listeners. Later Emit calls do nothing.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	clear(b.listeners)
}

func (b *Bus) call(ctx context.Context, l listener, e bridge.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.LogAttrs(ctx, slog.LevelError, "event listener panicked",
				logger.Component("eventbus"),
				logger.Event(e.Name),
				slog.Any("panic", r),
			)
		}
	}()
	l.fn(ctx, e)
}

func (b *Bus) remove(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[name]
	i := slices.IndexFunc(ls, func(l listener) bool { return l.id == id })
	if i < 0 {
		return
	}
	ls = slices.Delete(slices.Clone(ls), i, i+1)
	if len(ls) == 0 {
		delete(b.listeners, name)
		return
	}
	b.listeners[name] = ls
}
