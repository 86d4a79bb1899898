package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

func (s *Server) handleList(r *http.Request) Response {
	n, err := notify.FromContext(r.Context())
	if err != nil {
		return JSONError(err)
	}
	items := n.Queue().Items()
	if items == nil {
		items = []flash.Notification{}
	}
	return JSON(http.StatusOK, items)
}

// handleRemove is called by the presentation layer when a toast is dismissed
// or times out.
func (s *Server) handleRemove(r *http.Request) Response {
	n, err := notify.FromContext(r.Context())
	if err != nil {
		return JSONError(err)
	}
	if !n.Queue().Remove(chi.URLParam(r, "id")) {
		return JSONError(ErrNotFound)
	}
	return Empty()
}

func (s *Server) handleDispatch(r *http.Request) Response {
	n, err := notify.FromContext(r.Context())
	if err != nil {
		return JSONError(err)
	}

	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return JSONError(ErrInvalidIndex)
	}

	err = n.DispatchByID(r.Context(), id, index)
	switch {
	case err == nil:
		return Empty()
	case errors.Is(err, notify.ErrNotificationNotFound), errors.Is(err, notify.ErrActionNotFound):
		return JSONError(ErrNotFound)
	default:
		s.logger.LogAttrs(r.Context(), slog.LevelError, "action failed",
			logger.Component("transport"),
			logger.NotificationID(id),
			slog.Int("index", index),
			logger.Error(err),
		)
		return JSONError(ErrActionFailed)
	}
}
