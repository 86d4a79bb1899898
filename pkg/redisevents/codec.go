package redisevents

import (
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
)

// Encode serializes an event for the wire.
func Encode(e bridge.Event) ([]byte, error) {
	if e.Name == "" {
		return nil, ErrMalformedEvent
	}
	return json.Marshal(e)
}

// Decode parses a wire message. Messages without an event name are malformed.
func Decode(data []byte) (bridge.Event, error) {
	var e bridge.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return bridge.Event{}, errors.Join(ErrMalformedEvent, err)
	}
	if e.Name == "" {
		return bridge.Event{}, ErrMalformedEvent
	}
	return e, nil
}
