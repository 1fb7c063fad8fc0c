package websocket

import (
	"log/slog"
	"sync"
)

// Room = the set of clients watching one forum topic
type Room struct {
	ID      string             // topic ID
	Clients map[string]*Client // map[clientID] -> *Client
	mu      sync.RWMutex
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Clients: make(map[string]*Client),
	}
}

// AddUser: adds new client to the room
func (r *Room) AddUser(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Clients[c.ID] == nil {
		slog.Debug("Client added to room", "topic_id", r.ID, "client_id", c.ID)
		r.Clients[c.ID] = c
	} else {
		slog.Warn("Client already in room", "topic_id", r.ID, "client_id", c.ID)
	}
}

// RemoveUser reports whether the client was present
func (r *Room) RemoveUser(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Clients[c.ID] != c {
		return false
	}
	slog.Debug("Client removed from room", "topic_id", r.ID, "client_id", c.ID)
	delete(r.Clients, c.ID)
	return true
}

// Broadcast queues message on every client and returns the ones whose buffer was full
func (r *Room) Broadcast(message []byte) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stalled []*Client
	for _, client := range r.Clients {
		select {
		case client.SendChannel <- message:
		default:
			stalled = append(stalled, client)
		}
	}
	return stalled
}

// GetUserCount: returns the number of clients in the room
func (r *Room) GetUserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Clients)
}

// GetClients: returns copy of clients list in the room
func (r *Room) GetClients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]*Client, 0, len(r.Clients))
	for _, client := range r.Clients {
		clients = append(clients, client)
	}
	return clients
}
