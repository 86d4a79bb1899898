// Package flashkit turns server flash messages into a client-side
// notification queue.
//
// A server sets flash values while handling a page navigation; when the
// navigation succeeds the payload is normalized into notifications (text,
// color, timeout, closable, location, actions) and appended to a queue the
// browser renders as toasts. Toast buttons run named actions registered on
// the server or visit URLs.
//
// Install wires the pieces:
//
//	p, err := flashkit.Install(notify.Overrides{
//	    ColorMap: map[string]string{"error": "red"},
//	    Actions: map[string]actions.Handler{
//	        "undo-delete": restoreItem,
//	    },
//	},
//	    flashkit.WithLogger(log),
//	    flashkit.WithMetrics(reg),
//	    flashkit.WithTransportOptions(transport.WithBasePath("/flashkit")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer p.Uninstall()
//
//	r := chi.NewRouter()
//	r.Mount("/flashkit", p.Handler())
//	r.With(p.Navigation).Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    trash(chi.URLParam(r, "id"))
//	    _ = flashkit.Flash(r.Context(), flash.KeyWarning, flash.Value{
//	        Structured: true,
//	        Message:    "Item moved to trash",
//	        Actions:    []flash.Action{flash.Named("Undo", "undo-delete", chi.URLParam(r, "id"))},
//	    })
//	    http.Redirect(w, r, "/items", http.StatusSeeOther)
//	})
//
// Host frameworks that track navigation themselves post lifecycle events to
// the handler's /events/{name} route or the /ws websocket instead of using
// Navigation.
//
// The building blocks live in pkg/: flash (model and normalization),
// actions (registry and dispatch), notify (queue, configuration and context
// lookup), bridge (lifecycle events to queue), eventbus, redisevents
// (cross-process relay) and transport (HTTP).
package flashkit
