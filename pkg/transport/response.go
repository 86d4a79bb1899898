package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/flashkit/pkg/logger"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Envelope is the JSON body of every non-empty API response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v in the data field of an Envelope.
func JSON(status int, v any) Response {
	return jsonResponse{status: status, body: Envelope{Data: v}}
}

// JSONError renders err in the error field of an Envelope. HTTPError keeps
// its status; anything else becomes a 500 without leaking the message.
func JSONError(err error) Response {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return jsonResponse{
			status: httpErr.Code,
			body: Envelope{Error: &ErrorDetail{
				Code:    httpErr.Key,
				Message: http.StatusText(httpErr.Code),
			}},
		}
	}
	return jsonResponse{
		status: http.StatusInternalServerError,
		body: Envelope{Error: &ErrorDetail{
			Code:    "internal_error",
			Message: http.StatusText(http.StatusInternalServerError),
		}},
	}
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus responds with status and no body.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

// HandlerFunc handles a request and returns what to render.
type HandlerFunc func(r *http.Request) Response

// wrap adapts h to http.HandlerFunc. Render failures are logged; the
// response may already be partially written by then.
func wrap(log *slog.Logger, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			resp = Empty()
		}
		if err := resp.Render(w, r); err != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render response",
				logger.Component("transport"),
				logger.Error(err),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
	}
}
