package transport_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/eventbus"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/metrics"
	"github.com/dmitrymomot/flashkit/pkg/notify"
	"github.com/dmitrymomot/flashkit/pkg/transport"
)

type fixture struct {
	notifier *notify.Notifier
	router   chi.Router
}

func newFixture(t *testing.T, o notify.Overrides) fixture {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))
	log := logger.Discard()

	n := notify.New(o, nil, notify.WithLogger(log), notify.WithRecorder(m))
	bus := eventbus.New(eventbus.WithLogger(log))
	b := bridge.New(n, bridge.WithLogger(log), bridge.WithRecorder(m))
	b.Attach(bus)

	t.Cleanup(func() {
		b.Detach()
		n.Close()
	})

	return fixture{
		notifier: n,
		router: transport.NewRouter(n, bus,
			transport.WithLogger(log),
			transport.WithGatherer(reg),
		),
	}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env transport.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func TestPostEvent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})

	rec := f.do(http.MethodPost, "/events/before-navigation", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = f.do(http.MethodPost, "/events/navigation-succeeded",
		`{"page":{"url":"/items","flash":{"success":"Saved","info":"Reviewed"}}}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = f.do(http.MethodPost, "/events/flash-pushed", `{"flash":{"warning":"Low disk"}}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	items := f.notifier.Queue().Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Saved", items[0].Text)
	assert.Equal(t, "Reviewed", items[1].Text)
	assert.Equal(t, "Low disk", items[2].Text)
}

func TestPostEvent_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})

	rec := f.do(http.MethodPost, "/events/navigate", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_event", decodeError(t, rec))

	assert.Zero(t, f.notifier.Queue().Len())
}

func TestPostEvent_LenientBodies(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})

	for _, tc := range []struct{ path, body string }{
		{"/events/navigation-succeeded", `{"page":{"flash":"oops"}}`},
		{"/events/navigation-succeeded", `{"page":"oops"}`},
		{"/events/flash-pushed", `{"flash":`},
		{"/events/flash-pushed", `{"flash":["a","b"]}`},
		{"/events/before-navigation", `garbage`},
	} {
		rec := f.do(http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusAccepted, rec.Code, tc.path+" "+tc.body)
	}
	assert.Zero(t, f.notifier.Queue().Len())
}

func TestPostEvent_GarbageBeforeNavigationResetsDedup(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})
	success := `{"page":{"url":"/items","flash":{"success":"Saved"}}}`

	f.do(http.MethodPost, "/events/navigation-succeeded", success)
	f.do(http.MethodPost, "/events/navigation-succeeded", success)
	require.Equal(t, 1, f.notifier.Queue().Len(), "same payload twice is shown once")

	rec := f.do(http.MethodPost, "/events/before-navigation", `garbage`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	f.do(http.MethodPost, "/events/navigation-succeeded", success)
	assert.Equal(t, 2, f.notifier.Queue().Len())
}

func TestListNotifications(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})

	rec := f.do(http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	_, _ = f.notifier.Notify(context.Background(), map[string]any{
		"message": "Item moved to trash",
		"type":    "warning",
		"timeout": 10000,
		"actions": []any{map[string]any{"label": "Undo", "name": "undo-delete"}},
	}, "")

	rec = f.do(http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Data []flash.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Item moved to trash", body.Data[0].Text)
	assert.Equal(t, 10*time.Second, body.Data[0].Timeout)
	assert.Equal(t, "undo-delete", body.Data[0].Actions[0].Name)
}

func TestRemoveNotification(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})
	n, _ := f.notifier.Notify(context.Background(), "Saved", flash.KeySuccess)

	rec := f.do(http.MethodDelete, "/notifications/"+n.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, f.notifier.Queue().Len())

	rec = f.do(http.MethodDelete, "/notifications/"+n.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec))
}

func TestDispatchAction(t *testing.T) {
	t.Parallel()

	var got any
	f := newFixture(t, notify.Overrides{
		Actions: map[string]actions.Handler{
			"undo-delete": func(_ context.Context, payload any) error {
				got = payload
				return nil
			},
			"explode": func(context.Context, any) error { return errors.New("boom") },
		},
	})

	n, _ := f.notifier.Notify(context.Background(), flash.Value{
		Structured: true,
		Message:    "Item moved to trash",
		Actions: []flash.Action{
			flash.Named("Undo", "undo-delete", map[string]any{"id": 42}),
			flash.Named("Explode", "explode", nil),
			flash.Named("Nobody", "unregistered", nil),
		},
	}, flash.KeyWarning)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"dispatches named action", "/notifications/" + n.ID + "/actions/0", http.StatusNoContent},
		{"handler error", "/notifications/" + n.ID + "/actions/1", http.StatusInternalServerError},
		{"unregistered name is a no-op", "/notifications/" + n.ID + "/actions/2", http.StatusNoContent},
		{"missing action", "/notifications/" + n.ID + "/actions/9", http.StatusNotFound},
		{"missing notification", "/notifications/nope/actions/0", http.StatusNotFound},
		{"non numeric index", "/notifications/" + n.ID + "/actions/first", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.Equal(t, map[string]any{"id": 42}, got)
	assert.Equal(t, 1, f.notifier.Queue().Len(), "dispatch leaves the notification queued")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})
	f.do(http.MethodPost, "/events/flash-pushed", `{"flash":{"success":"Saved"}}`)

	rec := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `flashkit_notifications_queued_total{key="success"} 1`)
	assert.Contains(t, body, `flashkit_flash_events_total{event="flash-pushed",result="processed"} 1`)
	assert.Contains(t, body, "flashkit_queue_length 1")
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	t.Parallel()

	n := notify.New(notify.Overrides{}, nil, notify.WithLogger(logger.Discard()))
	t.Cleanup(n.Close)
	router := transport.NewRouter(n, eventbus.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStream(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})
	srv := httptest.NewServer(f.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/notifications/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	waitFor := func(substr string) {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream ended before %q", substr)
				if strings.Contains(line, substr) {
					return
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", substr)
			}
		}
	}

	waitFor(transport.QueueElementID)

	_, _ = f.notifier.Notify(context.Background(), "Saved from stream", flash.KeySuccess)
	waitFor("Saved from stream")
}

func TestWebSocket(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Overrides{})
	srv := httptest.NewServer(f.router)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteJSON(bridge.Event{
		Name:  bridge.EventFlash,
		Flash: flash.Payload{"error": "Failed over ws"},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame transport.ChangeFrame
	require.NoError(t, conn.ReadJSON(&frame))

	assert.Equal(t, notify.ChangeAdded, frame.Kind)
	assert.Equal(t, 1, frame.Len)
	require.NotNil(t, frame.Notification)
	assert.Equal(t, "Failed over ws", frame.Notification.Text)
	assert.Equal(t, "error", frame.Notification.Color)

	f.notifier.Queue().Clear()
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, notify.ChangeCleared, frame.Kind)
	assert.Zero(t, frame.Len)
}
