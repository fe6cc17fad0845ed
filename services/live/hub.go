package live

import (
	"encoding/json"
	"sync"

	"github.com/AimalShah/BarterDash-sub004/internal/events"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// Hub tracks websocket viewers grouped by stream and fans auction events out
// to them. It subscribes to the in-process event bus; cross-node fan-out goes
// through the Redis publisher instead.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[*Client]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{streams: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.streams[c.streamID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.streams[c.streamID] = clients
	}
	clients[c] = struct{}{}
	utils.Info("viewer joined stream", map[string]any{"stream_id": c.streamID, "user_id": c.userID, "viewers": len(clients)})
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.streams[c.streamID]
	if !ok {
		return
	}
	if _, present := clients[c]; !present {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.streams, c.streamID)
	}
}

// HandleEvent satisfies events.Handler: it serializes the event once and
// queues it to every viewer of the stream. Slow viewers are dropped rather
// than allowed to stall the publishing goroutine.
func (h *Hub) HandleEvent(e events.Event) {
	if e.StreamID == "" {
		return
	}

	payload, err := json.Marshal(e)
	if err != nil {
		utils.Error("failed to marshal event for websocket feed", map[string]any{"type": string(e.Type), "error": err.Error()})
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.streams[e.StreamID]))
	for c := range h.streams[e.StreamID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- payload:
		default:
			h.unregister(c)
			utils.Warn("dropped slow websocket viewer", map[string]any{"stream_id": c.streamID, "user_id": c.userID})
		}
	}
}

// ViewerCount reports how many clients are watching a stream
func (h *Hub) ViewerCount(streamID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[streamID])
}
