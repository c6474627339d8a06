package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"horizon/internal/metrics"
	"horizon/internal/twin"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades connections, registers them with the hub, and
// serves snapshot refreshes on request.
type Handler struct {
	hub  *Hub
	twin *twin.Twin
}

func NewHandler(hub *Hub, t *twin.Twin) *Handler {
	return &Handler{hub: hub, twin: t}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	metrics.WSClients.Inc()
	go client.writePump()

	// New clients get the current state immediately.
	h.sendSnapshot(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		metrics.WSClients.Dec()
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			log.Printf("Invalid message: %v", err)
			continue
		}

		switch env.Type {
		case TypeSnapshotRequest:
			h.sendSnapshot(c)
		default:
			log.Printf("Unknown message type: %s", env.Type)
		}
	}
}

func (h *Handler) sendSnapshot(c *Client) {
	if h.twin == nil {
		return
	}
	msg, err := NewEnvelope(TypeTwinSnapshot, h.twin.Snapshot())
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
