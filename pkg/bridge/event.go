package bridge

import (
	"context"

	"github.com/dmitrymomot/flashkit/pkg/flash"
)

// Navigation lifecycle event names.
const (
	EventBefore  = "before-navigation"
	EventSuccess = "navigation-succeeded"
	EventFlash   = "flash-pushed"
)

// Known reports whether name is one of the lifecycle events the bridge
// handles.
func Known(name string) bool {
	switch name {
	case EventBefore, EventSuccess, EventFlash:
		return true
	}
	return false
}

// Page is the navigated-to page as the host framework reports it.
type Page struct {
	Component string        `json:"component,omitempty"`
	URL       string        `json:"url,omitempty"`
	Flash     flash.Payload `json:"flash,omitempty"`
}

// Event is a navigation lifecycle notification. Page is set for
// EventSuccess, Flash for EventFlash.
type Event struct {
	Name  string        `json:"name"`
	Page  *Page         `json:"page,omitempty"`
	Flash flash.Payload `json:"flash,omitempty"`
}

// Listener receives events from a Source.
type Listener func(ctx context.Context, e Event)

// Subscription is a listener handle returned by Source.On.
type Subscription interface {
	Unsubscribe()
}

// Source is anything the bridge can listen to: the in-process event bus or
// a remote feed relayed into it.
type Source interface {
	On(name string, l Listener) Subscription
}
