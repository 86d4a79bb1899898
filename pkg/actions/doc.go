// Package actions dispatches the follow-up actions attached to notifications.
//
// Named actions ("undo-delete") are resolved against handlers registered on a
// Registry. URL actions are performed through a Navigator:
//
//	reg := actions.New(nav, actions.WithLogger(log))
//	_ = reg.Register("undo-delete", func(ctx context.Context, payload any) error {
//	    return trash.Restore(ctx, payload)
//	})
//
//	err := reg.Dispatch(ctx, flash.Named("Undo", "undo-delete", map[string]any{"id": 42}))
//
// A name that is not registered is not an error: Dispatch logs a warning and
// returns nil. Handler errors are returned to the caller untouched.
//
// HTTPNavigator performs visits as plain HTTP requests against the host
// application, which is what a server-side process can do in place of a
// browser router.
package actions
