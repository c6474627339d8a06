package ws

import (
	"encoding/json"

	"horizon/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSnapshotRequest = "twin:refresh"

	// Server -> Client
	TypeTelemetryUpdate = "telemetry:update"
	TypeTwinSnapshot    = "twin:snapshot"
)

// TelemetryUpdatePayload mirrors an accepted telemetry reading plus
// the twin's computed response for that device.
type TelemetryUpdatePayload struct {
	DeviceID  int              `json:"device_id"`
	RoomID    int              `json:"room_id"`
	Type      model.DeviceType `json:"device_type"`
	PowerKW   float64          `json:"power_kw"`
	TempC     *float64         `json:"temp_c,omitempty"`
	Status    string           `json:"status,omitempty"`
	Timestamp string           `json:"timestamp"`
	Computed  any              `json:"computed,omitempty"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
