package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic is a forum discussion thread
type Topic struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string    `gorm:"not null;size:200" json:"title"`
	Description  string    `gorm:"not null;type:text" json:"description"`
	Category     string    `gorm:"not null;default:'General';index" json:"category"`
	Likes        int       `gorm:"not null;default:0" json:"likes"`
	CommentCount int       `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (topic *Topic) BeforeCreate(tx *gorm.DB) (err error) {
	if topic.ID == "" {
		topic.ID = uuid.New().String()
	}
	return
}

func (Topic) TableName() string {
	return "topics"
}

// TopicLike records that a user liked a topic; one row per (topic, user)
type TopicLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_topic_likes_topic_user" json:"topic_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_topic_likes_topic_user;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (TopicLike) TableName() string {
	return "topic_likes"
}
