package ws

import (
	"log"
	"time"

	"horizon/internal/model"
	"horizon/internal/twin"
)

// Bridge turns twin events into WebSocket broadcasts. The API layer
// calls it after each accepted ingest, outside the twin's lock.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

// OnTelemetry broadcasts an accepted reading and its computed result.
func (b *Bridge) OnTelemetry(sample model.Telemetry, res twin.Result) {
	msg, err := NewEnvelope(TypeTelemetryUpdate, TelemetryUpdatePayload{
		DeviceID:  res.DeviceID,
		RoomID:    res.RoomID,
		Type:      res.Type,
		PowerKW:   sample.PowerKW,
		TempC:     sample.TempC,
		Status:    sample.Status,
		Timestamp: sample.Timestamp.UTC().Format(time.RFC3339),
		Computed:  res.Computed,
	})
	if err != nil {
		log.Printf("Error marshaling telemetry update: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

// OnSnapshot broadcasts a full twin snapshot.
func (b *Bridge) OnSnapshot(s twin.Snapshot) {
	msg, err := NewEnvelope(TypeTwinSnapshot, s)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
