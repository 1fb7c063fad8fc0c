package dto

import (
	"time"

	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/reaction"
)

// CreateCommentRequest for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ReactionRequest carries "like" or "dislike"
type ReactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// CommentResponse is a comment annotated with the caller's own reaction
type CommentResponse struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	TopicID      *string       `json:"topic_id,omitempty"`
	MovieID      *int64        `json:"movie_id,omitempty"`
	Content      string        `json:"content"`
	Likes        int           `json:"likes"`
	Dislikes     int           `json:"dislikes"`
	AuthorName   string        `json:"author_name"`
	AuthorAvatar *string       `json:"author_avatar,omitempty"`
	UserReaction reaction.Kind `json:"user_reaction,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment, userReaction reaction.Kind) *CommentResponse {
	author := comment.AuthorName
	if comment.User.Name != "" {
		author = comment.User.Name
	}
	return &CommentResponse{
		ID:           comment.ID,
		UserID:       comment.UserID,
		TopicID:      comment.TopicID,
		MovieID:      comment.MovieID,
		Content:      comment.Content,
		Likes:        comment.Likes,
		Dislikes:     comment.Dislikes,
		AuthorName:   author,
		AuthorAvatar: comment.User.AvatarURL,
		UserReaction: userReaction,
		CreatedAt:    comment.CreatedAt,
	}
}

// ReactionResponse is the state after a toggle
type ReactionResponse struct {
	CommentID string        `json:"comment_id"`
	Reaction  reaction.Kind `json:"reaction"`
	Likes     int           `json:"likes"`
	Dislikes  int           `json:"dislikes"`
}
