package notify

import "errors"

var (
	// ErrNotInstalled is returned when a notifier is looked up in a context
	// that was never given one.
	ErrNotInstalled = errors.New("notifier is not installed in this context: wrap the handler with notify.Middleware or call notify.WithNotifier")

	// ErrNotificationNotFound is returned when no queued notification has the given ID.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrActionNotFound is returned when a notification has no action at the given index.
	ErrActionNotFound = errors.New("notification action not found")

	// ErrInvalidClosable is returned when FLASHKIT_CLOSABLE is not a boolean.
	ErrInvalidClosable = errors.New("invalid closable setting")
)
