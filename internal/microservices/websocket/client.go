package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Individual subscriber connection; room id = topic id

const ( // ping pong(2-way heartbeat) to keep connection alive
	WriteWait      = 10 * time.Second    // max time write a message to the peer
	PongWait       = 60 * time.Second    // max time to wait for pong from peer => no pong = no connection
	PingPeriod     = (PongWait * 9) / 10 // send pings before pong wait expires, 10% slack for jitter
	MaxMessageSize = 512                 // maximum message size allowed from peer
	SendBuffer     = 64                  // queued outbound events per client
)

type Client struct {
	ID          string          // unique client ID
	UserID      string          // user ID from JWT claims
	UserName    string          // user name from JWT claims
	TopicID     string          // watched topic
	Conn        *websocket.Conn // WebSocket connection
	SendChannel chan []byte     // outbound events
	Hub         *Hub
}

func NewClient(id, userID, userName, topicID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		UserName:    userName,
		TopicID:     topicID,
		Conn:        conn,
		SendChannel: make(chan []byte, SendBuffer),
		Hub:         hub,
	}
}

// ReadPump drains the connection so control frames are processed; subscribers send nothing else.
// It unregisters the client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.logger.Debug("websocket closed unexpectedly", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}

// WritePump forwards queued events and pings the peer until SendChannel is closed
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.SendChannel:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
