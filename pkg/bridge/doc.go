// Package bridge connects navigation lifecycle events to the notification
// queue.
//
// The host framework reports three events: EventBefore when a navigation
// starts, EventSuccess with the resulting Page, and EventFlash when the
// server pushes a flash payload outside of navigation. For every payload the
// bridge walks the notifier's configured flash keys in order and queues each
// non-nil value under its key.
//
//	b := bridge.New(notifier, bridge.WithLogger(log))
//	b.Attach(bus)
//	defer b.Detach()
//
// Handle can be called directly when events arrive from somewhere that is
// not a Source.
package bridge
