package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HTTP upgrade handler to WebSocket connections

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the native client sends no Origin; browsers are limited by CORS on the REST side
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TopicExistsFunc reports whether a topic can be watched
type TopicExistsFunc func(ctx context.Context, topicID string) (bool, error)

// WSHandler upgrades GET /api/ws/topics/:id and subscribes the caller to that topic
func WSHandler(hub *Hub, topicExists TopicExistsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		userName := c.GetString("name")

		topicID := c.Param("id")
		if _, err := uuid.Parse(topicID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic ID"})
			return
		}
		if topicExists != nil {
			ok, err := topicExists(c.Request.Context(), topicID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load topic"})
				return
			}
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already replied to the peer
			hub.logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		client := NewClient(uuid.NewString(), userID.(string), userName, topicID, conn, hub)
		if !hub.Register(client) {
			_ = conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
