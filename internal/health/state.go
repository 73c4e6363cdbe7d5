package health

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// State is a named probe outcome.
type State string

const (
	Waiting State = "WAITING"
	// Successful is never stored for a host; a successful probe stores the
	// response payload instead. It labels successful probes in metrics.
	Successful State = "SUCCESSFUL"
	Timeout    State = "TIMEOUT"
	Error      State = "ERROR"
	Unknown    State = "UNKNOWN"
)

var states = map[State]struct{}{
	Waiting:    {},
	Successful: {},
	Timeout:    {},
	Error:      {},
	Unknown:    {},
}

// ErrInvalidPayload is returned when a probe body is not valid JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")

// Known reports whether s is one of the declared states.
func (s State) Known() bool {
	_, ok := states[s]
	return ok
}

func (s State) String() string {
	return string(s)
}

// Value is the latest outcome recorded for a host. It holds either a State or
// the compacted JSON payload of a successful probe, never both.
type Value struct {
	state   State
	payload json.RawMessage
}

// StateValue wraps a named state.
func StateValue(s State) Value {
	return Value{state: s}
}

// PayloadValue validates raw as JSON and returns it compacted.
func PayloadValue(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return Value{}, ErrInvalidPayload
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Value{}, err
	}

	return Value{payload: buf.Bytes()}, nil
}

// IsPayload reports whether v holds a response body.
func (v Value) IsPayload() bool {
	return v.payload != nil
}

// State returns the named state, or false when v holds a payload.
func (v Value) State() (State, bool) {
	if v.IsPayload() {
		return "", false
	}
	return v.state, true
}

// Payload returns a copy of the stored JSON, nil for a named state.
func (v Value) Payload() json.RawMessage {
	if v.payload == nil {
		return nil
	}
	out := make(json.RawMessage, len(v.payload))
	copy(out, v.payload)
	return out
}

// Name is the state name, or the key text of a string or array payload (see
// keyName). Payloads of any other kind have no name.
func (v Value) Name() string {
	if !v.IsPayload() {
		return string(v.state)
	}

	var decoded any
	if err := json.Unmarshal(v.payload, &decoded); err != nil {
		return ""
	}
	return keyName(decoded)
}

// keyName turns a decoded payload into the text it would name a state with
// when used as a lookup key: strings as is, arrays as their elements joined
// by commas, so ["ERROR"] and [["ERROR"]] name ERROR. Other payloads have no
// name.
func keyName(decoded any) string {
	switch t := decoded.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, elem := range t {
			parts[i] = keyName(elem)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// IsStateName reports whether Name matches a declared state. A host that
// answered with the JSON string "ERROR" is indistinguishable from the ERROR
// state here.
func (v Value) IsStateName() bool {
	return State(v.Name()).Known()
}

// String returns the state name or the compact JSON text.
func (v Value) String() string {
	if v.IsPayload() {
		return string(v.payload)
	}
	return string(v.state)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsPayload() {
		return v.Payload(), nil
	}
	return json.Marshal(string(v.state))
}

// Equal compares the state or payload bytes.
func (v Value) Equal(other Value) bool {
	if v.IsPayload() != other.IsPayload() {
		return false
	}
	if v.IsPayload() {
		return bytes.Equal(v.payload, other.payload)
	}
	return v.state == other.state
}
