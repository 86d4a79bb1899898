package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

// Notifier owns the notification queue, the merged configuration and the
// action registry. Create one per installation and share it.
type Notifier struct {
	cfg      Config
	queue    *Queue
	registry *actions.Registry
	logger   *slog.Logger

	recorder   Recorder
	bufferSize int
	regOpts    []actions.Option
	now        func() time.Time
	newID      func() string
}

// Option configures a Notifier.
type Option func(*Notifier)

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithRecorder sets the queue metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(n *Notifier) {
		if rec != nil {
			n.recorder = rec
		}
	}
}

// WithRegistryOptions passes options to the underlying action registry.
func WithRegistryOptions(opts ...actions.Option) Option {
	return func(n *Notifier) {
		n.regOpts = append(n.regOpts, opts...)
	}
}

// WithSubscriberBuffer sets the per-subscriber change buffer (default 32).
func WithSubscriberBuffer(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.bufferSize = size
		}
	}
}

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// WithIDGenerator overrides the uuid based notification IDs.
func WithIDGenerator(gen func() string) Option {
	return func(n *Notifier) {
		if gen != nil {
			n.newID = gen
		}
	}
}

// New merges o over DefaultConfig and builds a notifier. nav performs URL
// actions and may be nil.
func New(o Overrides, nav actions.Navigator, opts ...Option) *Notifier {
	n := &Notifier{
		cfg:        DefaultConfig().Merge(o),
		logger:     slog.Default(),
		recorder:   noopRecorder{},
		bufferSize: 32,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(n)
	}

	regOpts := append([]actions.Option{
		actions.WithLogger(n.logger),
		actions.WithHandlers(n.cfg.Actions),
	}, n.regOpts...)

	n.registry = actions.New(nav, regOpts...)
	n.queue = newQueue(n.bufferSize, n.recorder)
	return n
}

// Notify normalizes raw under the category hint and appends it to the queue.
// It returns false only when raw carries nothing displayable (nil or an
// unsupported type); such values are skipped.
func (n *Notifier) Notify(ctx context.Context, raw any, hint flash.Key) (flash.Notification, bool) {
	v, ok := flash.DecodeValue(raw)
	if !ok {
		n.logger.LogAttrs(ctx, slog.LevelDebug, "flash value skipped",
			logger.Component("notify"),
			logger.FlashKey(hint),
		)
		return flash.Notification{}, false
	}

	notif := flash.Normalize(v, hint, n.cfg.FlashOptions())
	notif.ID = n.newID()
	notif.CreatedAt = n.now()
	n.queue.push(notif)

	n.logger.LogAttrs(ctx, slog.LevelDebug, "notification queued",
		logger.Component("notify"),
		logger.NotificationID(notif.ID),
		logger.FlashKey(hint),
	)
	return notif, true
}

// Queue returns the live queue.
func (n *Notifier) Queue() *Queue {
	return n.queue
}

// Config returns a copy of the merged configuration.
func (n *Notifier) Config() Config {
	return n.cfg.Clone()
}

// FlashKeys returns the configured keys in scan order.
func (n *Notifier) FlashKeys() []flash.Key {
	return append([]flash.Key(nil), n.cfg.FlashKeys...)
}

// Registry exposes the action registry.
func (n *Notifier) Registry() *actions.Registry {
	return n.registry
}

// Register binds an action handler, replacing any previous one.
func (n *Notifier) Register(name string, h actions.Handler) error {
	return n.registry.Register(name, h)
}

// Unregister removes an action handler.
func (n *Notifier) Unregister(name string) {
	n.registry.Unregister(name)
}

// Dispatch performs an action. See actions.Registry.Dispatch.
func (n *Notifier) Dispatch(ctx context.Context, a flash.Action) error {
	return n.registry.Dispatch(ctx, a)
}

// DispatchByID performs the action at index of the queued notification id.
// The notification stays queued; removing it is up to the presentation layer.
func (n *Notifier) DispatchByID(ctx context.Context, id string, index int) error {
	notif, ok := n.queue.Get(id)
	if !ok {
		return ErrNotificationNotFound
	}
	a, ok := notif.Action(index)
	if !ok {
		return ErrActionNotFound
	}
	ctx = logger.WithAttrs(ctx, logger.NotificationID(id))
	return n.registry.Dispatch(ctx, a)
}

// Close ends all queue subscriptions.
func (n *Notifier) Close() {
	n.queue.Close()
}
