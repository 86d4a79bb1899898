// Package notify holds the notification context: the queue of normalized
// notifications, the merged configuration and the action registry.
//
// # Configuration
//
// New merges Overrides over DefaultConfig. Flash keys are replaced as a
// whole, the display defaults field by field, and the color map and initial
// actions key by key, so overriding one color keeps the others:
//
//	n := notify.New(notify.Overrides{
//	    ColorMap: map[string]string{"error": "red"},
//	    Actions: map[string]actions.Handler{
//	        "undo-delete": restoreItem,
//	    },
//	}, navigator, notify.WithLogger(log))
//
// Settings reads the same overrides from FLASHKIT_* environment variables.
//
// # Queue
//
// Notify decodes, normalizes and appends. Nothing is ever evicted by the
// queue itself; the presentation layer reads Items and calls Remove when a
// toast is dismissed. Subscribe streams every change:
//
//	sub := n.Queue().Subscribe(ctx)
//	defer sub.Close()
//	for change := range sub.C() {
//	    render(change)
//	}
//
// # Scoped lookup
//
// Components that receive only a context use FromContext, which fails with
// ErrNotInstalled when no notifier was installed by WithNotifier or
// Middleware.
package notify
