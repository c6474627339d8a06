package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizon/internal/model"
	"horizon/internal/twin"
)

func newTestClient(buffer int) *Client {
	return &Client{send: make(chan []byte, buffer)}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())

	c1 := newTestClient(1)
	c2 := newTestClient(1)
	hub.Register(c1)
	hub.Register(c2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount())

	// Unregistering twice is a no-op.
	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount())

	// The client's channel is closed on unregister.
	_, open := <-c1.send
	assert.False(t, open)
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient(4)
	c2 := newTestClient(4)
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-c1.send)
	assert.Equal(t, []byte("hello"), <-c2.send)
}

func TestHub_BroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(1)
	hub.Register(slow)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second")) // dropped, must not block

	assert.Equal(t, []byte("first"), <-slow.send)
	select {
	case msg := <-slow.send:
		t.Fatalf("unexpected extra message: %s", msg)
	default:
	}
}

func TestNewEnvelope_RoundTrip(t *testing.T) {
	raw, err := NewEnvelope(TypeTwinSnapshot, map[string]string{"home_name": "Villa A"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, TypeTwinSnapshot, env.Type)
	assert.JSONEq(t, `{"home_name":"Villa A"}`, string(env.Payload))
}

func TestNewEnvelope_NoPayload(t *testing.T) {
	raw, err := NewEnvelope(TypeSnapshotRequest, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"twin:refresh"}`, string(raw))
}

func TestBridge_OnTelemetryBroadcastsUpdate(t *testing.T) {
	hub := NewHub()
	c := newTestClient(4)
	hub.Register(c)

	bridge := NewBridge(hub)
	temp := 33.5
	ts := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	bridge.OnTelemetry(
		model.Telemetry{DeviceID: 10, PowerKW: 1.2, TempC: &temp, Status: "on", Timestamp: ts},
		twin.Result{DeviceID: 10, RoomID: 1, Type: model.DeviceClimate},
	)

	var env Envelope
	require.NoError(t, json.Unmarshal(<-c.send, &env))
	assert.Equal(t, TypeTelemetryUpdate, env.Type)

	var payload TelemetryUpdatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, 10, payload.DeviceID)
	assert.Equal(t, 1, payload.RoomID)
	assert.Equal(t, model.DeviceClimate, payload.Type)
	assert.Equal(t, 1.2, payload.PowerKW)
	assert.Equal(t, "2026-08-31T14:30:00Z", payload.Timestamp)
}
