package wire

import (
	"encoding/json"
	"fmt"
)

// StatusSuccess is the status marker the server sets on successful acks.
const StatusSuccess = "success"

// Ack is the acknowledgment envelope returned by every acknowledged event.
type Ack struct {
	// Status distinguishes success from failure; StatusSuccess on success.
	Status string `json:"status"`
	// Message is a human-readable annotation; on failure it is the error
	// surfaced to the caller.
	Message string `json:"message,omitempty"`
	// Data is the operation-specific response payload on success.
	Data json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the ack carries the success marker.
func (a *Ack) OK() bool {
	return a.Status == StatusSuccess
}

// DecodeAck converts a raw ack argument (as delivered by the socket layer,
// typically a map) into an Ack.
func DecodeAck(raw any) (*Ack, error) {
	if raw == nil {
		return nil, fmt.Errorf("missing ack payload")
	}
	if ack, ok := raw.(*Ack); ok {
		return ack, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ack: %w", err)
	}

	var ack Ack
	if err := json.Unmarshal(encoded, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode ack: %w", err)
	}
	return &ack, nil
}

// DecodeInto converts a raw event argument into target via a JSON round-trip.
// Socket payloads arrive as map[string]any; this is the single conversion
// point into typed structs.
func DecodeInto(raw any, target any) error {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}
	if err := json.Unmarshal(encoded, target); err != nil {
		return fmt.Errorf("failed to decode event payload: %w", err)
	}
	return nil
}
