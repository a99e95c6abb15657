// Package api exposes the engine as a transport-agnostic set of actions with
// a uniform response envelope, the contract the HTTP bridge and the CLI both
// mount.
package api

import "encoding/json"

// Envelope is the uniform response wrapper: {"success":true, ...result} on
// success, {"success":false,"error":...} on failure. Result fields marshal
// flat, next to "success".
type Envelope struct {
	Success bool
	Error   string
	Data    any
}

// OK wraps a successful result.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error into a failure envelope.
func Fail(err error) Envelope {
	return Envelope{Success: false, Error: err.Error()}
}

// MarshalJSON flattens the result's fields alongside "success". A result
// that is not a JSON object nests under "data" instead.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{
		"success": jsonBool(e.Success),
	}
	if !e.Success {
		msg, err := json.Marshal(e.Error)
		if err != nil {
			return nil, err
		}
		out["error"] = msg
		return json.Marshal(out)
	}

	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil {
			for k, v := range fields {
				if k == "success" || k == "error" {
					continue
				}
				out[k] = v
			}
		} else {
			out["data"] = raw
		}
	}
	return json.Marshal(out)
}

func jsonBool(b bool) json.RawMessage {
	if b {
		return json.RawMessage("true")
	}
	return json.RawMessage("false")
}

// Result is the client-side view of an envelope: Success and Error decode
// from the wrapper while the remaining fields stay available as raw JSON for
// a second, action-specific decode.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
