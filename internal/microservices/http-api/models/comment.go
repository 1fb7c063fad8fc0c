package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs either to a forum topic or to a catalog movie
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	TopicID    *string   `json:"topic_id,omitempty" gorm:"type:uuid;index"`
	MovieID    *int64    `json:"movie_id,omitempty" gorm:"index"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	Likes      int       `json:"likes" gorm:"not null;default:0"`
	Dislikes   int       `json:"dislikes" gorm:"not null;default:0"`
	AuthorName string    `json:"author_name" gorm:"not null;default:''"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	// Associations
	User  User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Topic *Topic `json:"-" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE;"`
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}

// CommentReaction is one user's like or dislike on a comment
type CommentReaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID string    `json:"comment_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_reactions_comment_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_reactions_comment_user;index"`
	Kind      string    `json:"kind" gorm:"not null;check:kind IN ('like','dislike')"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Comment Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}
