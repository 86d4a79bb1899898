package flashkit

import (
	"net/http"
	"strings"
)

const (
	// DataStarQueryParam carries datastar signals on GET requests.
	DataStarQueryParam = "datastar"
	// DataStarRequestHeader is set by the datastar client on every fetch.
	DataStarRequestHeader = "Datastar-Request"
)

// IsDataStar reports whether r was issued by the datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// clientKind names the client that issued a navigation, for logs.
func clientKind(r *http.Request) string {
	switch {
	case IsHTMX(r):
		return "htmx"
	case IsDataStar(r):
		return "datastar"
	default:
		return "browser"
	}
}
