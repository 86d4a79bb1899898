package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a navigation event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// FlashKey records the flash category under the key "flash_key".
// Empty keys produce an empty Attr.
func FlashKey[K ~string](key K) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("flash_key", string(key))
}

// ActionName records a named action under the key "action".
func ActionName(name string) slog.Attr {
	return slog.String("action", name)
}

// ActionKind records the action variant under the key "action_kind".
func ActionKind[K ~string](kind K) slog.Attr {
	return slog.String("action_kind", string(kind))
}

// NotificationID records a queued notification identifier under the key "notification_id".
// Empty identifiers produce an empty Attr.
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// URL records a navigation target under the key "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// Count records a number of processed items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// RequestID records the request identifier under the key "request_id".
// Empty identifiers produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
