package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Event protocol pushed to topic subscribers

type EventType string

const (
	TypeCommentAdded    EventType = "comment_added"    // new comment on the topic
	TypeCommentDeleted  EventType = "comment_deleted"  // comment removed by author or moderator
	TypeCommentReaction EventType = "comment_reaction" // like/dislike counters changed
	TypeTopicLike       EventType = "topic_like"       // topic like counter changed
	TypeSystem          EventType = "system"           // server notice, e.g. welcome
)

// Event is one message on a topic's live feed
type Event struct {
	Type      EventType       `json:"type"`
	TopicID   string          `json:"topic_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent encodes payload into an event for topicID
func NewEvent(eventType EventType, topicID string, payload any) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return &Event{
		Type:      eventType,
		TopicID:   topicID,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// NewSystemEvent wraps a plain notice
func NewSystemEvent(topicID, content string) *Event {
	ev, _ := NewEvent(TypeSystem, topicID, map[string]string{"message": content})
	return ev
}

// Decode unmarshals the payload into dest
func (e *Event) Decode(dest any) error {
	if len(e.Payload) == 0 {
		return errors.New("event has no payload")
	}
	return json.Unmarshal(e.Payload, dest)
}

// ToJSON: marshal Event struct to JSON
func (e *Event) ToJSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("Failed to marshal event to JSON", "error", err)
		return nil, err
	}
	return data, nil
}

// EventFromJSON: unmarshal JSON data to Event struct
func EventFromJSON(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Error("Failed to unmarshal event from JSON", "error", err)
		return nil, err
	}
	return &ev, nil
}
