package flashkit

import "errors"

var (
	// ErrInvalidFlashKey is returned by Install when a configured flash key is blank.
	ErrInvalidFlashKey = errors.New("flashkit: flash keys must not be blank")

	// ErrNoNavigation is returned by Flash outside of a request wrapped by
	// Plugin.Navigation.
	ErrNoNavigation = errors.New("flashkit: no navigation in context: wrap the handler with Plugin.Navigation")
)
