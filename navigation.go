package flashkit

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

type collectorKey struct{}

// collector gathers the flash payload a handler sets during one navigation.
type collector struct {
	mu      sync.Mutex
	payload flash.Payload
}

func (c *collector) set(key flash.Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload == nil {
		c.payload = flash.Payload{}
	}
	c.payload[string(key)] = value
}

func (c *collector) snapshot() flash.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.payload) == 0 {
		return nil
	}
	return maps.Clone(c.payload)
}

// Flash sets the flash value for key on the current navigation. The value is
// anything flash.DecodeValue accepts: a string, a flash.Value or a record
// map. Setting the same key twice keeps the last value.
func Flash(ctx context.Context, key flash.Key, value any) error {
	c, ok := ctx.Value(collectorKey{}).(*collector)
	if !ok {
		return ErrNoNavigation
	}
	c.set(key, value)
	return nil
}

// Navigation treats every request it wraps as a page navigation: it emits
// bridge.EventBefore, runs next with a flash collector and the notifier in
// the context, and emits bridge.EventSuccess with the collected payload when
// next responds with a status below 400.
//
// htmx history restores and websocket upgrades pass through untouched.
func (p *Plugin) Navigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXHistoryRestore(r) || websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		p.bus.Emit(ctx, bridge.Event{Name: bridge.EventBefore})

		c := &collector{}
		inner := context.WithValue(notify.WithNotifier(ctx, p.notifier), collectorKey{}, c)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(inner))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status >= http.StatusBadRequest {
			p.logger.LogAttrs(ctx, slog.LevelDebug, "navigation failed, flash discarded",
				logger.Component("flashkit"),
				logger.URL(r.URL.RequestURI()),
				slog.Int("status", status),
			)
			return
		}

		p.logger.LogAttrs(ctx, slog.LevelDebug, "navigation succeeded",
			logger.Component("flashkit"),
			logger.URL(r.URL.RequestURI()),
			slog.String("client", clientKind(r)),
		)
		p.bus.Emit(ctx, bridge.Event{
			Name: bridge.EventSuccess,
			Page: &bridge.Page{URL: r.URL.RequestURI(), Flash: c.snapshot()},
		})
	})
}

// Push queues payload immediately, outside of any navigation.
func (p *Plugin) Push(ctx context.Context, payload flash.Payload) {
	p.bus.Emit(ctx, bridge.Event{Name: bridge.EventFlash, Flash: payload})
}
