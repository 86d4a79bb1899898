package flash

import (
	"encoding/json"
	"time"
)

// Notification is the queue-resident form of a flash entry.
type Notification struct {
	ID        string
	Key       Key
	Text      string
	Color     string
	Timeout   time.Duration
	Closable  bool
	Location  string
	Actions   []Action
	CreatedAt time.Time
}

// HasActions reports whether the notification offers any action.
func (n Notification) HasActions() bool {
	return len(n.Actions) > 0
}

// Action returns the action at index i.
func (n Notification) Action(i int) (Action, bool) {
	if i < 0 || i >= len(n.Actions) {
		return Action{}, false
	}
	return n.Actions[i], true
}

type notificationJSON struct {
	ID        string    `json:"id"`
	Key       Key       `json:"key,omitempty"`
	Text      string    `json:"text"`
	Color     string    `json:"color,omitempty"`
	Timeout   int64     `json:"timeout"`
	Closable  bool      `json:"closable"`
	Location  string    `json:"location,omitempty"`
	Actions   []Action  `json:"actions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON encodes the timeout in milliseconds.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:        n.ID,
		Key:       n.Key,
		Text:      n.Text,
		Color:     n.Color,
		Timeout:   n.Timeout.Milliseconds(),
		Closable:  n.Closable,
		Location:  n.Location,
		Actions:   n.Actions,
		CreatedAt: n.CreatedAt,
	})
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var raw notificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	timeout, ok := MillisDuration(raw.Timeout)
	if !ok {
		timeout = DefaultTimeout
	}
	*n = Notification{
		ID:        raw.ID,
		Key:       raw.Key,
		Text:      raw.Text,
		Color:     raw.Color,
		Timeout:   timeout,
		Closable:  raw.Closable,
		Location:  raw.Location,
		Actions:   raw.Actions,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

// Options carry the configuration Normalize resolves against.
type Options struct {
	Defaults Defaults
	ColorMap ColorMap
}

// Normalize turns a value into a notification.
//
// Color resolution: a record's category wins (mapped through ColorMap, or used
// verbatim when unmapped); otherwise the hint is mapped through ColorMap;
// otherwise the color stays empty. The hint is recorded as the notification
// key. ID and CreatedAt are left for the queue to assign.
func Normalize(v Value, hint Key, opts Options) Notification {
	n := Notification{
		Key:      hint,
		Text:     v.Message,
		Timeout:  opts.Defaults.Timeout,
		Closable: opts.Defaults.Closable,
		Location: opts.Defaults.Location,
	}

	if !v.Structured {
		n.Color, _ = opts.ColorMap.Lookup(hint)
		return n
	}

	switch {
	case v.Category != "":
		if c, ok := opts.ColorMap.Lookup(Key(v.Category)); ok {
			n.Color = c
		} else {
			n.Color = v.Category
		}
	default:
		n.Color, _ = opts.ColorMap.Lookup(hint)
	}

	if v.Timeout != nil {
		n.Timeout = *v.Timeout
	}
	if v.Closable != nil {
		n.Closable = *v.Closable
	}
	n.Actions = v.Actions
	return n
}
