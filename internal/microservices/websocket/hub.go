package websocket

import (
	"context"
	"log/slog"
	"sync"
)

// Central hub managing all connections and rooms.
// Each WebSocket connection runs in its own goroutines but room membership
// only changes inside Run, so clients are registered and dropped through channels.

const broadcastBuffer = 256

type Hub struct {
	rooms      map[string]*Room
	mu         sync.RWMutex // guards rooms for readers outside Run
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

// Publish queues an event for every subscriber of topicID; it never blocks the caller
func (h *Hub) Publish(topicID string, eventType EventType, payload any) {
	ev, err := NewEvent(eventType, topicID, payload)
	if err != nil {
		h.logger.Error("failed to encode live event", "topic_id", topicID, "type", eventType, "error", err)
		return
	}
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("live feed saturated, dropping event", "topic_id", topicID, "type", eventType)
	}
}

// RoomSize returns how many clients watch topicID
func (h *Hub) RoomSize(topicID string) int {
	h.mu.RLock()
	room, ok := h.rooms[topicID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	return room.GetUserCount()
}

// Register hands a client to the hub; false means the hub has stopped
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.TopicID]
	if !ok {
		room = NewRoom(c.TopicID)
		h.rooms[c.TopicID] = room
	}
	h.mu.Unlock()

	room.AddUser(c)
	h.logger.Info("client subscribed", "topic_id", c.TopicID, "user_id", c.UserID, "watchers", room.GetUserCount())

	if data, err := NewSystemEvent(c.TopicID, "subscribed").ToJSON(); err == nil {
		select {
		case c.SendChannel <- data:
		default:
		}
	}
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.TopicID]
	if !ok || !room.RemoveUser(c) {
		return
	}
	close(c.SendChannel)
	if room.GetUserCount() == 0 {
		delete(h.rooms, c.TopicID)
	}
	h.logger.Info("client unsubscribed", "topic_id", c.TopicID, "user_id", c.UserID)
}

func (h *Hub) deliver(ev *Event) {
	h.mu.RLock()
	room, ok := h.rooms[ev.TopicID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := ev.ToJSON()
	if err != nil {
		return
	}
	for _, c := range room.Broadcast(data) {
		h.logger.Warn("dropping slow client", "topic_id", ev.TopicID, "client_id", c.ID)
		h.removeClient(c)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.GetClients() {
			room.RemoveUser(c)
			close(c.SendChannel)
		}
		delete(h.rooms, id)
	}
}
