package flash

import "errors"

var (
	// ErrInvalidAction is returned when an action object has neither a name
	// nor a url/method pair.
	ErrInvalidAction = errors.New("action must have a name or both url and method")

	// ErrInvalidValue is returned when raw JSON is neither text nor an object.
	ErrInvalidValue = errors.New("flash value must be a string or an object")
)
