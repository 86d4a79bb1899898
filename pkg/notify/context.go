package notify

import (
	"context"
	"net/http"
)

type notifierKey struct{}

// WithNotifier returns a context carrying n.
func WithNotifier(ctx context.Context, n *Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// FromContext returns the notifier installed in ctx, or ErrNotInstalled.
func FromContext(ctx context.Context) (*Notifier, error) {
	if ctx == nil {
		return nil, ErrNotInstalled
	}
	n, ok := ctx.Value(notifierKey{}).(*Notifier)
	if !ok || n == nil {
		return nil, ErrNotInstalled
	}
	return n, nil
}

// MustFromContext is FromContext for call sites where a missing notifier is
// a wiring bug. It panics with ErrNotInstalled.
func MustFromContext(ctx context.Context) *Notifier {
	n, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return n
}

// Middleware installs n into every request context.
func Middleware(n *Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithNotifier(r.Context(), n)))
		})
	}
}
