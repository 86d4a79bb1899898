package transport

import "net/http"

// HTTPError is an error with a status code and a machine readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest     = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound       = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrUnknownEvent   = HTTPError{Code: http.StatusBadRequest, Key: "unknown_event"}
	ErrInvalidIndex   = HTTPError{Code: http.StatusBadRequest, Key: "invalid_action_index"}
	ErrActionFailed   = HTTPError{Code: http.StatusInternalServerError, Key: "action_failed"}
)
