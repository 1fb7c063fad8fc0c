package dto

import (
	"time"

	"cineforo/internal/microservices/http-api/models"
)

type CreateTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TopicResponse is a topic with its author's display fields
type TopicResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"comment_count"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar *string   `json:"author_avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModelToTopicResponse(topic *models.Topic) *TopicResponse {
	return &TopicResponse{
		ID:           topic.ID,
		UserID:       topic.UserID,
		Title:        topic.Title,
		Description:  topic.Description,
		Category:     topic.Category,
		Likes:        topic.Likes,
		CommentCount: topic.CommentCount,
		AuthorName:   topic.User.Name,
		AuthorAvatar: topic.User.AvatarURL,
		CreatedAt:    topic.CreatedAt,
	}
}

// LikeResponse reports the caller's like state and the topic's counter
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type PaginatedTopicResponse struct {
	Data       []TopicResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedTopicResponse(data []TopicResponse, total, page, pageSize int) *PaginatedTopicResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedTopicResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
