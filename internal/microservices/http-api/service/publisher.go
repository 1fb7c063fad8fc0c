package service

import (
	"cineforo/internal/microservices/websocket"
	"cineforo/internal/microservices/http-api/models"
)

// FeedPublisher pushes forum changes to live topic subscribers
type FeedPublisher interface {
	Publish(topicID string, eventType websocket.EventType, payload any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, websocket.EventType, any) {}

// Actor is the authenticated caller of a mutating operation
type Actor struct {
	UserID string
	Role   string
}

// CanModify reports whether the actor may remove content owned by ownerID
func (a Actor) CanModify(ownerID string) bool {
	return a.UserID == ownerID || a.Role == models.RoleModerator
}
