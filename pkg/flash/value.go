package flash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Value is a decoded flash entry: plain text or a structured record.
// Optional fields are nil when the record does not set them.
type Value struct {
	Message    string
	Category   string
	Timeout    *time.Duration
	Closable   *bool
	Actions    []Action
	Structured bool
}

// Text wraps a plain message.
func Text(message string) Value {
	return Value{Message: message}
}

// DecodeValue converts whatever the navigation layer delivered under a flash
// key into a Value. It returns false for nil and for types that cannot carry
// a message (slices, channels, functions).
func DecodeValue(raw any) (Value, bool) {
	switch v := raw.(type) {
	case nil:
		return Value{}, false
	case string:
		return Text(v), true
	case Value:
		return v, true
	case *Value:
		if v == nil {
			return Value{}, false
		}
		return *v, true
	case Payload:
		return decodeRecord(v), true
	case map[string]any:
		return decodeRecord(v), true
	case json.RawMessage:
		return decodeJSON(v)
	case []byte:
		return decodeJSON(v)
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32, json.Number:
		return Text(fmt.Sprint(v)), true
	case fmt.Stringer:
		return Text(v.String()), true
	default:
		return Value{}, false
	}
}

func decodeJSON(data []byte) (Value, bool) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, false
	}
	return v, true
}

func decodeRecord(m map[string]any) Value {
	v := Value{Structured: true}
	v.Message, _ = m["message"].(string)

	if c, ok := m["type"].(string); ok && c != "" {
		v.Category = c
	} else if c, ok := m["category"].(string); ok {
		v.Category = c
	}

	if d, ok := millis(m["timeout"]); ok {
		v.Timeout = &d
	}

	if c, ok := m["closable"].(bool); ok {
		v.Closable = &c
	}

	v.Actions = decodeActions(m["actions"])
	return v
}

// decodeActions keeps valid entries in order and drops the rest.
func decodeActions(raw any) []Action {
	switch list := raw.(type) {
	case []Action:
		return list
	case []map[string]any:
		out := make([]Action, 0, len(list))
		for _, m := range list {
			if a, err := DecodeAction(m); err == nil {
				out = append(out, a)
			}
		}
		return out
	case []any:
		out := make([]Action, 0, len(list))
		for _, item := range list {
			switch it := item.(type) {
			case Action:
				out = append(out, it)
			case map[string]any:
				if a, err := DecodeAction(it); err == nil {
					out = append(out, a)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millis reads a millisecond count. Negative values are kept: hosts use
// them for toasts that never auto-dismiss. Non-finite and out of range
// values are rejected.
func millis(raw any) (time.Duration, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case time.Duration:
		return v, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > float64(maxMillis) {
		return 0, false
	}
	return MillisDuration(int64(f))
}

// MillisDuration converts a millisecond count, reporting false when it does
// not fit in a time.Duration.
func MillisDuration(ms int64) (time.Duration, bool) {
	if ms > maxMillis || ms < -maxMillis {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// UnmarshalJSON accepts a JSON string or object.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidValue
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal flash text: %w", err)
		}
		*v = Text(s)
		return nil
	case '{':
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("unmarshal flash record: %w", err)
		}
		*v = decodeRecord(m)
		return nil
	default:
		return ErrInvalidValue
	}
}

// MarshalJSON encodes plain text as a string and records as an object.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Structured {
		return json.Marshal(v.Message)
	}
	rec := map[string]any{"message": v.Message}
	if v.Category != "" {
		rec["type"] = v.Category
	}
	if v.Timeout != nil {
		rec["timeout"] = v.Timeout.Milliseconds()
	}
	if v.Closable != nil {
		rec["closable"] = *v.Closable
	}
	if len(v.Actions) > 0 {
		rec["actions"] = v.Actions
	}
	return json.Marshal(rec)
}
