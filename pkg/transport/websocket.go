package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

const (
	maxFrameSize = 64 << 10
	writeTimeout = 10 * time.Second
)

// ChangeFrame is sent to websocket clients after every queue change.
type ChangeFrame struct {
	Kind         notify.ChangeKind   `json:"kind"`
	Notification *flash.Notification `json:"notification,omitempty"`
	Len          int                 `json:"len"`
}

// handleWebSocket reads lifecycle events as JSON text frames and emits them,
// while a writer goroutine pushes queue changes back to the client.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	n, err := notify.FromContext(r.Context())
	if err != nil {
		_ = JSONError(err).Render(w, r)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	sub := n.Queue().Subscribe(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeChanges(ctx, conn, sub)
	}()
	defer wg.Wait()
	defer cancel()

	conn.SetReadLimit(maxFrameSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var e bridge.Event
		if err := json.Unmarshal(data, &e); err != nil || !bridge.Known(e.Name) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "invalid websocket event skipped",
				logger.Component("transport"),
				logger.Event(e.Name),
				logger.Error(err),
			)
			continue
		}
		s.events.Emit(ctx, e)
	}
}

func (s *Server) writeChanges(ctx context.Context, conn *websocket.Conn, sub *notify.Subscription) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-sub.C():
			if !ok {
				return
			}
			frame := ChangeFrame{Kind: c.Kind, Len: c.Len}
			if c.Kind != notify.ChangeCleared {
				frame.Notification = &c.Notification
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}
