package live

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/AimalShah/BarterDash-sub004/services/auction/helpers"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the storefront origin; enforcement is
	// expected at the gateway in front of this service.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket viewer of a stream's live feed
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	streamID string
	userID   string

	// limiter throttles inbound frames; the feed is server-to-client and a
	// chatty connection gets cut.
	limiter *rate.Limiter
}

// ServeWS upgrades the request and attaches the viewer to the stream's feed.
// Route: GET /ws/streams/:stream_id
func (h *Hub) ServeWS(c *gin.Context) {
	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		streamID: c.Param("stream_id"),
		userID:   user.UserID,
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound frames so pong handlers fire and the connection's
// close is noticed. Payloads are not interpreted.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("websocket read error", map[string]any{"stream_id": c.streamID, "error": err.Error()})
			}
			return
		}
		if !c.limiter.Allow() {
			utils.Warn("websocket viewer exceeded message rate", map[string]any{"stream_id": c.streamID, "user_id": c.userID})
			return
		}
	}
}

// writePump forwards queued events to the connection and keeps it alive with
// pings. A closed send channel means the hub dropped this viewer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
