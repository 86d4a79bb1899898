package notify

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/flash"
)

// Config is the resolved notifier configuration.
type Config struct {
	// FlashKeys are scanned in this order when a flash payload arrives.
	FlashKeys []flash.Key
	Defaults  flash.Defaults
	ColorMap  flash.ColorMap
	// Actions are the handlers registered when the notifier is created.
	Actions map[string]actions.Handler
}

// DefaultConfig returns the standard keys, 5s closable bottom toasts and the
// identity color map for success, error, warning and info.
func DefaultConfig() Config {
	return Config{
		FlashKeys: flash.DefaultKeys(),
		Defaults:  flash.DefaultDefaults(),
		ColorMap:  flash.DefaultColorMap(),
		Actions:   map[string]actions.Handler{},
	}
}

// FlashOptions returns what flash.Normalize needs from the config.
func (c Config) FlashOptions() flash.Options {
	return flash.Options{Defaults: c.Defaults, ColorMap: c.ColorMap}
}

// Clone returns a deep copy so callers cannot mutate a notifier's config.
func (c Config) Clone() Config {
	return Config{
		FlashKeys: slices.Clone(c.FlashKeys),
		Defaults:  c.Defaults,
		ColorMap:  c.ColorMap.Clone(),
		Actions:   maps.Clone(c.Actions),
	}
}

// Overrides are user supplied settings merged over a Config. Nil and empty
// fields leave the base value in place.
type Overrides struct {
	FlashKeys []flash.Key       `yaml:"flash_keys"`
	Timeout   *time.Duration    `yaml:"timeout"`
	Closable  *bool             `yaml:"closable"`
	Location  *string           `yaml:"location"`
	ColorMap  map[string]string `yaml:"color_map"`

	Actions map[string]actions.Handler `yaml:"-"`
}

// Merge applies o over c. FlashKeys are replaced as a whole; defaults are
// merged field by field; color map and action entries key by key.
func (c Config) Merge(o Overrides) Config {
	out := c.Clone()
	if out.ColorMap == nil {
		out.ColorMap = flash.ColorMap{}
	}
	if out.Actions == nil {
		out.Actions = map[string]actions.Handler{}
	}

	if len(o.FlashKeys) > 0 {
		out.FlashKeys = slices.Clone(o.FlashKeys)
	}
	if o.Timeout != nil {
		out.Defaults.Timeout = *o.Timeout
	}
	if o.Closable != nil {
		out.Defaults.Closable = *o.Closable
	}
	if o.Location != nil {
		out.Defaults.Location = *o.Location
	}
	for k, v := range o.ColorMap {
		out.ColorMap[flash.Key(k)] = v
	}
	for name, h := range o.Actions {
		out.Actions[name] = h
	}
	return out
}

// Settings is the environment form of Overrides. Empty values are unset.
type Settings struct {
	FlashKeys string            `env:"FLASHKIT_FLASH_KEYS" yaml:"flash_keys"`
	Timeout   time.Duration     `env:"FLASHKIT_TIMEOUT" yaml:"timeout"`
	Closable  string            `env:"FLASHKIT_CLOSABLE" yaml:"closable"`
	Location  string            `env:"FLASHKIT_LOCATION" yaml:"location"`
	ColorMap  map[string]string `env:"FLASHKIT_COLOR_MAP" yaml:"color_map"`
}

// Overrides converts environment settings into Overrides.
func (s Settings) Overrides() (Overrides, error) {
	var o Overrides
	if s.FlashKeys != "" {
		o.FlashKeys = flash.ParseKeys(s.FlashKeys)
	}
	if s.Timeout != 0 {
		d := s.Timeout
		o.Timeout = &d
	}
	if s.Closable != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(s.Closable))
		if err != nil {
			return Overrides{}, errors.Join(ErrInvalidClosable, err)
		}
		o.Closable = &b
	}
	if s.Location != "" {
		loc := s.Location
		o.Location = &loc
	}
	if len(s.ColorMap) > 0 {
		o.ColorMap = maps.Clone(s.ColorMap)
	}
	return o, nil
}

// Combine layers b over a: b's set fields win.
func Combine(a, b Overrides) Overrides {
	out := a
	if len(b.FlashKeys) > 0 {
		out.FlashKeys = b.FlashKeys
	}
	if b.Timeout != nil {
		out.Timeout = b.Timeout
	}
	if b.Closable != nil {
		out.Closable = b.Closable
	}
	if b.Location != nil {
		out.Location = b.Location
	}
	if len(b.ColorMap) > 0 {
		merged := maps.Clone(a.ColorMap)
		if merged == nil {
			merged = map[string]string{}
		}
		maps.Copy(merged, b.ColorMap)
		out.ColorMap = merged
	}
	if len(b.Actions) > 0 {
		merged := maps.Clone(a.Actions)
		if merged == nil {
			merged = map[string]actions.Handler{}
		}
		maps.Copy(merged, b.Actions)
		out.Actions = merged
	}
	return out
}
