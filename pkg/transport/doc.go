// Package transport serves a notifier over HTTP.
//
// NewRouter returns a chi router with:
//
//	POST   /events/{name}                      emit a lifecycle event (202)
//	GET    /notifications                      queued notifications as JSON
//	DELETE /notifications/{id}                 dismiss a toast (204, 404)
//	POST   /notifications/{id}/actions/{index} run a toast action (204, 404, 500)
//	GET    /notifications/stream               datastar SSE patches of QueueView
//	GET    /ws                                 websocket event ingress and change feed
//	GET    /metrics                            Prometheus, when WithGatherer is set
//
// Handlers look the notifier up from the request context, so they also work
// when mounted behind an application's own notify.Middleware.
//
// Mount the router under a prefix and tell it where it lives so rendered
// toast buttons post to the right place:
//
//	r.Mount("/flash", transport.NewRouter(n, bus, transport.WithBasePath("/flash")))
package transport
