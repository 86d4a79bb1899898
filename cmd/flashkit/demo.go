package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flashkit"
	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/transport"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// demoFlashes maps each demo route to the flash it sets.
var demoFlashes = map[string]func() flash.Payload{
	"success": func() flash.Payload { return flash.Payload{"success": "Item saved successfully!"} },
	"error":   func() flash.Payload { return flash.Payload{"error": "Something went wrong. Please try again."} },
	"warning": func() flash.Payload { return flash.Payload{"warning": "Please review your input before continuing."} },
	"info":    func() flash.Payload { return flash.Payload{"info": "New features are now available!"} },
	"structured": func() flash.Payload {
		return flash.Payload{"notification": map[string]any{
			"message":  "Server-side structured notification with custom options",
			"type":     "info",
			"timeout":  8000,
			"closable": true,
		}}
	},
	"with-actions": func() flash.Payload {
		id := 100 + rand.IntN(900)
		return flash.Payload{"notification": map[string]any{
			"message": fmt.Sprintf("Item #%d moved to trash", id),
			"type":    "warning",
			"timeout": 10000,
			"actions": []any{
				map[string]any{
					"label":   "Undo",
					"name":    "undo-delete",
					"payload": map[string]any{"id": id, "name": fmt.Sprintf("Item #%d", id)},
				},
				map[string]any{"label": "View Trash", "method": "get", "url": "/demo"},
			},
		}}
	},
	"multiple": func() flash.Payload {
		return flash.Payload{
			"success": "Data saved successfully!",
			"info":    "Your changes will be reviewed.",
		}
	},
}

var demoOrder = []string{"success", "error", "warning", "info", "structured", "with-actions", "multiple"}

// demoRoutes serves a page with one button per flash kind. Each button is a
// plain form post, so it runs through the Navigation middleware like any
// server-rendered page would.
func demoRoutes(p *flashkit.Plugin, basePath string) http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = demoPage(p, basePath).Render(r.Context(), w)
	})

	r.With(p.Navigation).Post("/flash/{kind}", func(w http.ResponseWriter, r *http.Request) {
		build, ok := demoFlashes[chi.URLParam(r, "kind")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		for key, value := range build() {
			_ = flashkit.Flash(r.Context(), flash.Key(key), value)
		}
		http.Redirect(w, r, "/demo", http.StatusSeeOther)
	})

	return r
}

func demoPage(p *flashkit.Plugin, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := strings.TrimSuffix(basePath, "/")

		var b strings.Builder
		b.WriteString(`<!doctype html><html><head><meta charset="utf-8"><title>flashkit demo</title>`)
		b.WriteString(`<script type="module" src="` + datastarScript + `"></script></head><body>`)
		b.WriteString(`<div data-on-load="@get('` + templ.EscapeString(base) + `/notifications/stream')"></div>`)
		for _, kind := range demoOrder {
			b.WriteString(`<form method="post" action="/demo/flash/` + kind + `"><button>` + kind + `</button></form>`)
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := transport.QueueView(p.Notifier().Queue().Items(), basePath).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func undoDelete(log *slog.Logger) actions.Handler {
	return func(ctx context.Context, payload any) error {
		log.LogAttrs(ctx, slog.LevelInfo, "item restored",
			logger.Component("demo"),
			slog.Any("payload", payload),
		)
		return nil
	}
}

// demoNavigator stands in for a host router when serve runs with --demo and
// no navigator_url: visits are logged instead of issued.
func demoNavigator(log *slog.Logger) actions.Navigator {
	return actions.NavigatorFunc(func(ctx context.Context, url string, opts actions.VisitOptions) error {
		log.LogAttrs(ctx, slog.LevelInfo, "visit",
			logger.Component("demo"),
			slog.String("method", opts.Method),
			logger.URL(url),
		)
		return nil
	})
}
