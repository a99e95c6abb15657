package models

import (
	"encoding/json"
	"errors"
)

// Payload is an opaque JSON value carried through handoffs and stored as a
// node's input or output. The engine never inspects it; callers encode and
// decode it at the edges.
type Payload json.RawMessage

// NewPayload encodes a Go value into a Payload.
func NewPayload(v any) (Payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Payload(b), nil
}

// Decode unmarshals the payload into v.
func (p Payload) Decode(v any) error {
	if len(p) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(p, v)
}

// IsEmpty reports whether the payload carries no value.
func (p Payload) IsEmpty() bool {
	return len(p) == 0
}

// Clone returns a copy of the payload bytes.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return append(Payload(nil), p...)
}

// String returns the raw JSON text.
func (p Payload) String() string {
	return string(p)
}

// MarshalJSON emits the raw JSON bytes unchanged, or null when empty.
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON stores the raw JSON bytes unchanged.
func (p *Payload) UnmarshalJSON(data []byte) error {
	if p == nil {
		return errors.New("models.Payload: UnmarshalJSON on nil pointer")
	}
	*p = append((*p)[0:0], data...)
	return nil
}
