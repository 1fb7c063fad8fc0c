package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	feed "cineforo/internal/microservices/websocket"

	"github.com/gorilla/websocket"
)

// ws_client.go = follows a topic's live feed over WebSocket.

// WatchTopic streams the topic's events to onEvent until ctx is cancelled or the server hangs up
func (c *HTTPClient) WatchTopic(ctx context.Context, topicID string, onEvent func(*feed.Event)) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws/topics/" + url.PathEscape(topicID)

	// Connect with auth header
	header := http.Header{}
	header.Add("Authorization", "Bearer "+c.token)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return decodeError(resp)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// unblock ReadMessage when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("feed closed: %w", err)
		}
		event, err := feed.EventFromJSON(data)
		if err != nil {
			continue
		}
		onEvent(event)
	}
}
