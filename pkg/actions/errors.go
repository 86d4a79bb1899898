package actions

import "errors"

var (
	// ErrNoNavigator is returned when a URL action is dispatched on a registry
	// created without a Navigator.
	ErrNoNavigator = errors.New("no navigator configured for url actions")

	// ErrUnknownActionKind is returned for an Action built without Named or Visit.
	ErrUnknownActionKind = errors.New("unknown action kind")

	// ErrEmptyActionName is returned by Register for a blank name.
	ErrEmptyActionName = errors.New("action name must not be empty")

	// ErrNilHandler is returned by Register for a nil handler.
	ErrNilHandler = errors.New("action handler must not be nil")
)
