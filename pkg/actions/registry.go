package actions

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

const tracerName = "github.com/dmitrymomot/flashkit/pkg/actions"

// Dispatch results reported to the Recorder.
const (
	ResultOK         = "ok"
	ResultFailed     = "failed"
	ResultUnresolved = "unresolved"
)

// Handler runs a named action. The payload is passed exactly as it was
// attached to the action.
type Handler func(ctx context.Context, payload any) error

// Recorder receives dispatch outcomes.
type Recorder interface {
	ActionDispatched(kind, result string)
}

type noopRecorder struct{}

func (noopRecorder) ActionDispatched(string, string) {}

// Registry maps action names to handlers and dispatches notification actions.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	nav      Navigator
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder Recorder
}

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithHandlers registers initial handlers. Nil handlers and blank names are skipped.
func WithHandlers(handlers map[string]Handler) Option {
	return func(r *Registry) {
		for name, h := range handlers {
			if name == "" || h == nil {
				continue
			}
			r.handlers[name] = h
		}
	}
}

// New creates a registry. nav may be nil when no URL actions are expected.
func New(nav Navigator, opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		nav:      nav,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds h to name, replacing any previous handler.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return ErrEmptyActionName
	}
	if h == nil {
		return ErrNilHandler
	}
	r.mu.Lock()
	r.handlers[name] = h
	r.mu.Unlock()
	return nil
}

// Unregister removes the handler for name. Missing names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.handlers, name)
	r.mu.Unlock()
}

// Has reports whether a handler is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// Names returns registered action names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Dispatch performs a notification action.
//
// Named actions call the registered handler and return its error as is.
// An unregistered name is logged as a warning and returns nil. URL actions
// are handed to the Navigator with the method lowercased.
func (r *Registry) Dispatch(ctx context.Context, a flash.Action) error {
	ctx, span := r.tracer.Start(ctx, "flashkit.action.dispatch",
		trace.WithAttributes(
			attribute.String("flashkit.action.kind", string(a.Kind)),
			attribute.String("flashkit.action.label", a.Label),
		),
	)
	defer span.End()

	var err error
	switch a.Kind {
	case flash.ActionNamed:
		err = r.dispatchNamed(ctx, span, a)
	case flash.ActionURL:
		err = r.dispatchVisit(ctx, span, a)
	default:
		err = ErrUnknownActionKind
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *Registry) dispatchNamed(ctx context.Context, span trace.Span, a flash.Action) error {
	span.SetAttributes(attribute.String("flashkit.action.name", a.Name))

	r.mu.RLock()
	h, ok := r.handlers[a.Name]
	r.mu.RUnlock()

	if !ok {
		r.recorder.ActionDispatched(string(a.Kind), ResultUnresolved)
		r.logger.LogAttrs(ctx, slog.LevelWarn, "action not registered",
			logger.Component("actions"),
			logger.ActionKind(a.Kind),
			logger.ActionName(a.Name),
		)
		return nil
	}

	if err := h(ctx, a.Payload); err != nil {
		r.recorder.ActionDispatched(string(a.Kind), ResultFailed)
		return err
	}
	r.recorder.ActionDispatched(string(a.Kind), ResultOK)
	return nil
}

func (r *Registry) dispatchVisit(ctx context.Context, span trace.Span, a flash.Action) error {
	method := strings.ToLower(a.Method)
	span.SetAttributes(
		attribute.String("flashkit.action.method", method),
		attribute.String("flashkit.action.url", a.URL),
	)

	if r.nav == nil {
		r.recorder.ActionDispatched(string(a.Kind), ResultFailed)
		return ErrNoNavigator
	}

	if err := r.nav.Visit(ctx, a.URL, VisitOptions{Method: method, Data: a.Data}); err != nil {
		r.recorder.ActionDispatched(string(a.Kind), ResultFailed)
		return err
	}
	r.recorder.ActionDispatched(string(a.Kind), ResultOK)
	return nil
}
