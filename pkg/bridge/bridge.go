package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

// Outcomes reported to the Recorder for each handled event.
const (
	ResultProcessed    = "processed"
	ResultDeduplicated = "deduplicated"
	ResultEmpty        = "empty"
	ResultReset        = "reset"
)

// Recorder receives bridge activity.
type Recorder interface {
	FlashEvent(event, result string)
}

type noopRecorder struct{}

func (noopRecorder) FlashEvent(string, string) {}

// Bridge turns navigation lifecycle events into queued notifications.
//
// A successful navigation whose flash payload is identical to the previous
// one is ignored until the next EventBefore, so re-rendering the same page
// response does not repeat toasts. EventFlash payloads are never
// deduplicated.
type Bridge struct {
	notifier *notify.Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder Recorder

	mu      sync.Mutex
	lastKey string
	subs    []Subscription
}

// Option configures a Bridge.
type Option func(*Bridge)

func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTracer sets the tracer used for event spans.
func WithTracer(t trace.Tracer) Option {
	return func(b *Bridge) {
		if t != nil {
			b.tracer = t
		}
	}
}

// WithRecorder sets the event metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(b *Bridge) {
		if rec != nil {
			b.recorder = rec
		}
	}
}

// New returns a bridge that queues into n.
func New(n *notify.Notifier, opts ...Option) *Bridge {
	b := &Bridge{
		notifier: n,
		logger:   slog.Default(),
		tracer:   otel.Tracer("github.com/dmitrymomot/flashkit/pkg/bridge"),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Before clears the deduplication key. Call it when a navigation starts.
func (b *Bridge) Before(ctx context.Context) {
	b.mu.Lock()
	b.lastKey = ""
	b.mu.Unlock()

	b.recorder.FlashEvent(EventBefore, ResultReset)
	b.logger.LogAttrs(ctx, slog.LevelDebug, "flash dedup reset",
		logger.Component("bridge"),
		logger.Event(EventBefore),
	)
}

// Success queues the flash payload of page unless it is empty or identical
// to the previous successful navigation's payload. It returns the number of
// notifications queued.
func (b *Bridge) Success(ctx context.Context, page *Page) int {
	if page == nil || page.Flash.Empty() {
		b.recorder.FlashEvent(EventSuccess, ResultEmpty)
		return 0
	}

	key, ok := dedupKey(page.Flash)

	b.mu.Lock()
	if ok && key == b.lastKey {
		b.mu.Unlock()
		b.recorder.FlashEvent(EventSuccess, ResultDeduplicated)
		b.logger.LogAttrs(ctx, slog.LevelDebug, "flash payload deduplicated",
			logger.Component("bridge"),
			logger.Event(EventSuccess),
			logger.URL(page.URL),
		)
		return 0
	}
	b.lastKey = key
	b.mu.Unlock()

	return b.process(ctx, EventSuccess, page.Flash)
}

// Flash queues payload as pushed from the server outside of navigation.
func (b *Bridge) Flash(ctx context.Context, payload flash.Payload) int {
	if payload.Empty() {
		b.recorder.FlashEvent(EventFlash, ResultEmpty)
		return 0
	}
	return b.process(ctx, EventFlash, payload)
}

// Handle routes e to Before, Success or Flash. Unknown events are ignored.
func (b *Bridge) Handle(ctx context.Context, e Event) int {
	switch e.Name {
	case EventBefore:
		b.Before(ctx)
	case EventSuccess:
		return b.Success(ctx, e.Page)
	case EventFlash:
		return b.Flash(ctx, e.Flash)
	default:
		b.logger.LogAttrs(ctx, slog.LevelDebug, "unknown event ignored",
			logger.Component("bridge"),
			logger.Event(e.Name),
		)
	}
	return 0
}

// Attach subscribes the bridge to all lifecycle events of src. Handles are
// kept until Detach.
func (b *Bridge) Attach(src Source) {
	listener := func(ctx context.Context, e Event) { b.Handle(ctx, e) }

	subs := []Subscription{
		src.On(EventBefore, listener),
		src.On(EventSuccess, listener),
		src.On(EventFlash, listener),
	}

	b.mu.Lock()
	b.subs = append(b.subs, subs...)
	b.mu.Unlock()
}

// Detach releases every listener registered by Attach.
func (b *Bridge) Detach() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

func (b *Bridge) process(ctx context.Context, event string, payload flash.Payload) int {
	ctx, span := b.tracer.Start(ctx, "flashkit.bridge.process",
		trace.WithAttributes(attribute.String("flashkit.event", event)),
	)
	defer span.End()

	queued := 0
	for _, key := range b.notifier.FlashKeys() {
		raw, ok := payload[string(key)]
		if !ok || raw == nil {
			continue
		}
		if _, ok := b.notifier.Notify(ctx, raw, key); ok {
			queued++
		}
	}

	span.SetAttributes(attribute.Int("flashkit.queued", queued))
	b.recorder.FlashEvent(event, ResultProcessed)
	b.logger.LogAttrs(ctx, slog.LevelDebug, "flash payload processed",
		logger.Component("bridge"),
		logger.Event(event),
		logger.Count(queued),
	)
	return queued
}

// dedupKey serializes the payload. encoding/json writes map keys sorted, so
// payloads that differ only in key order share a key. Payloads that cannot
// be serialized are never treated as duplicates.
func dedupKey(p flash.Payload) (string, bool) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", false
	}
	return string(data), true
}
