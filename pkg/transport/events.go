package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
)

const maxEventBody = 1 << 20

type eventRequest struct {
	Page  json.RawMessage `json:"page"`
	Flash json.RawMessage `json:"flash"`
}

// handleEvent accepts a lifecycle event from the host application and
// emits it. Bodies are read leniently: a malformed body or a flash that is
// not an object carries no flash, and the event is emitted regardless.
func (s *Server) handleEvent(r *http.Request) Response {
	name := chi.URLParam(r, "name")
	if !bridge.Known(name) {
		return JSONError(ErrUnknownEvent)
	}

	ev := bridge.Event{Name: name}
	if name != bridge.EventBefore {
		var req eventRequest
		// a body that fails to decode is treated as empty
		_ = json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&req)
		ev.Page = decodePage(req.Page)
		ev.Flash = decodeFlash(req.Flash)
	}

	s.events.Emit(r.Context(), ev)
	return EmptyWithStatus(http.StatusAccepted)
}

func decodePage(raw json.RawMessage) *bridge.Page {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}
	page := &bridge.Page{Flash: decodeFlash(fields["flash"])}
	_ = json.Unmarshal(fields["component"], &page.Component)
	_ = json.Unmarshal(fields["url"], &page.URL)
	return page
}

func decodeFlash(raw json.RawMessage) flash.Payload {
	var p flash.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return p
}
