package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

// Emitter receives lifecycle events posted over HTTP or the websocket.
// *eventbus.Bus implements it.
type Emitter interface {
	Emit(ctx context.Context, e bridge.Event)
}

// Server holds the HTTP handlers of a notifier.
type Server struct {
	notifier *notify.Notifier
	events   Emitter
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	basePath string
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer exposes g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithBasePath sets the prefix the router is mounted under. Action and
// dismiss URLs rendered into the queue view use it.
func WithBasePath(p string) Option {
	return func(s *Server) {
		s.basePath = p
	}
}

// WithCheckOrigin sets the websocket origin policy. The default accepts
// same-origin requests only.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		if fn != nil {
			s.upgrader.CheckOrigin = fn
		}
	}
}

// NewRouter builds the notifier HTTP API on a chi router.
func NewRouter(n *notify.Notifier, events Emitter, opts ...Option) chi.Router {
	s := &Server{
		notifier: n,
		events:   events,
		logger:   slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requestLogAttrs,
		middleware.Recoverer,
		notify.Middleware(n),
	)

	r.Post("/events/{name}", wrap(s.logger, s.handleEvent))

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", wrap(s.logger, s.handleList))
		r.Get("/stream", s.handleStream)
		r.Delete("/{id}", wrap(s.logger, s.handleRemove))
		r.Post("/{id}/actions/{index}", wrap(s.logger, s.handleDispatch))
	})

	r.Get("/ws", s.handleWebSocket)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// requestLogAttrs adds the chi request ID to every log record written with
// the request context.
func requestLogAttrs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithAttrs(r.Context(), logger.RequestID(id)))
		}
		next.ServeHTTP(w, r)
	})
}
