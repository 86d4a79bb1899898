package flash

import (
	"strings"
	"time"
)

// Key is a flash category label. It is used both to find entries in a flash
// payload and to pick a default display color.
type Key string

const (
	KeySuccess      Key = "success"
	KeyError        Key = "error"
	KeyWarning      Key = "warning"
	KeyInfo         Key = "info"
	KeyNotification Key = "notification"
)

// DefaultKeys returns the standard categories in the order payloads are scanned.
func DefaultKeys() []Key {
	return []Key{KeySuccess, KeyError, KeyWarning, KeyInfo, KeyNotification}
}

// ParseKeys splits a comma separated list into keys, skipping blanks and
// duplicates while keeping the first occurrence order.
func ParseKeys(s string) []Key {
	parts := strings.Split(s, ",")
	keys := make([]Key, 0, len(parts))
	seen := make(map[Key]struct{}, len(parts))
	for _, p := range parts {
		k := Key(strings.TrimSpace(p))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Payload is an opaque flash record as delivered by the navigation layer.
type Payload map[string]any

// Empty reports whether the payload carries no entries.
func (p Payload) Empty() bool {
	return len(p) == 0
}

// ColorMap maps a category to a display color token.
type ColorMap map[Key]string

// DefaultColorMap maps the four standard categories onto same-named colors.
func DefaultColorMap() ColorMap {
	return ColorMap{
		KeySuccess: "success",
		KeyError:   "error",
		KeyWarning: "warning",
		KeyInfo:    "info",
	}
}

// Lookup returns the color for k, if any.
func (m ColorMap) Lookup(k Key) (string, bool) {
	if k == "" || m == nil {
		return "", false
	}
	c, ok := m[k]
	return c, ok
}

// Clone returns an independent copy of the map.
func (m ColorMap) Clone() ColorMap {
	out := make(ColorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Defaults are the display options applied when a value does not set them.
type Defaults struct {
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	Closable bool          `json:"closable" yaml:"closable"`
	Location string        `json:"location" yaml:"location"`
}

const (
	DefaultTimeout  = 5 * time.Second
	DefaultLocation = "bottom"
)

// DefaultDefaults returns 5s timeout, closable, bottom location.
func DefaultDefaults() Defaults {
	return Defaults{
		Timeout:  DefaultTimeout,
		Closable: true,
		Location: DefaultLocation,
	}
}
