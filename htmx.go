package flashkit

import "net/http"

// HTMX request headers used to classify navigations.
const (
	HXRequest        = "HX-Request"
	HXBoosted        = "HX-Boosted"
	HXHistoryRestore = "HX-History-Restore-Request"
	HXCurrentURL     = "HX-Current-URL"
)

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HXRequest) == "true"
}

// IsHTMXBoosted reports whether r is a boosted link or form navigation.
func IsHTMXBoosted(r *http.Request) bool {
	return r.Header.Get(HXBoosted) == "true"
}

// IsHTMXHistoryRestore reports whether htmx is restoring a page from its
// history cache. Such requests replay an old page and must not flash again.
func IsHTMXHistoryRestore(r *http.Request) bool {
	return r.Header.Get(HXHistoryRestore) == "true"
}
