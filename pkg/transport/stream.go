package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

// handleStream keeps a datastar SSE connection open and patches the queue
// view on connect and after every queue change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	n, err := notify.FromContext(r.Context())
	if err != nil {
		_ = JSONError(err).Render(w, r)
		return
	}

	ctx := r.Context()
	sub := n.Queue().Subscribe(ctx)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	if err := s.patchQueue(ctx, sse, n); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C():
			if !ok {
				return
			}
			if err := s.patchQueue(ctx, sse, n); err != nil {
				return
			}
		}
	}
}

func (s *Server) patchQueue(ctx context.Context, sse *datastar.ServerSentEventGenerator, n *notify.Notifier) error {
	err := sse.PatchElementTempl(
		QueueView(n.Queue().Items(), s.basePath),
		datastar.WithSelector("#"+QueueElementID),
	)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "queue stream closed",
			logger.Component("transport"),
			logger.Error(err),
		)
	}
	return err
}
