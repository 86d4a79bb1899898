package flash

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionKind discriminates the two action variants.
type ActionKind string

const (
	ActionNamed ActionKind = "named"
	ActionURL   ActionKind = "url"
)

// Action is a user-invokable follow-up to a notification.
//
// Named actions carry Name and Payload and are dispatched to a registered
// handler. URL actions carry Method, URL and Data and are performed as a
// navigation. Use Named or Visit to construct one.
type Action struct {
	Kind  ActionKind
	Label string

	Name    string
	Payload any

	Method string
	URL    string
	Data   any
}

// Named builds an action dispatched to the handler registered under name.
func Named(label, name string, payload any) Action {
	return Action{
		Kind:    ActionNamed,
		Label:   label,
		Name:    name,
		Payload: payload,
	}
}

// Visit builds an action performed as a navigation to url.
// The method is stored lowercased.
func Visit(label, method, url string, data any) Action {
	return Action{
		Kind:   ActionURL,
		Label:  label,
		Method: strings.ToLower(method),
		URL:    url,
		Data:   data,
	}
}

// IsNamed reports whether a is a named action.
func (a Action) IsNamed() bool { return a.Kind == ActionNamed }

// IsURL reports whether a is a URL action.
func (a Action) IsURL() bool { return a.Kind == ActionURL }

// DecodeAction resolves an untyped action object into its variant.
// A string name takes precedence over url/method when both are present.
func DecodeAction(m map[string]any) (Action, error) {
	label, _ := m["label"].(string)

	if name, ok := m["name"].(string); ok {
		return Named(label, name, m["payload"]), nil
	}

	url, urlOK := m["url"].(string)
	method, methodOK := m["method"].(string)
	if urlOK && methodOK {
		return Visit(label, method, url, m["data"]), nil
	}

	return Action{}, ErrInvalidAction
}

type namedJSON struct {
	Label   string `json:"label"`
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

type urlJSON struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	URL    string `json:"url"`
	Data   any    `json:"data,omitempty"`
}

// MarshalJSON encodes the action in the wire shape of its variant.
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case ActionNamed:
		return json.Marshal(namedJSON{Label: a.Label, Name: a.Name, Payload: a.Payload})
	case ActionURL:
		return json.Marshal(urlJSON{Label: a.Label, Method: a.Method, URL: a.URL, Data: a.Data})
	default:
		return nil, fmt.Errorf("marshal action %q: %w", a.Label, ErrInvalidAction)
	}
}

// UnmarshalJSON decodes either variant, see DecodeAction.
func (a *Action) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal action: %w", err)
	}
	decoded, err := DecodeAction(m)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
