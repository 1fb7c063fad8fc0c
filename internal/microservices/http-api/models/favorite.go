package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite bookmarks a catalog movie for a user, with display fields copied at creation
type Favorite struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_movie" json:"user_id"`
	MovieID     int64     `gorm:"not null;uniqueIndex:idx_favorites_user_movie" json:"movie_id"`
	MovieTitle  string    `gorm:"not null" json:"movie_title"`
	MoviePoster *string   `json:"movie_poster,omitempty"`
	MovieRating float64   `gorm:"not null;default:0" json:"movie_rating"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (favorite *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	return
}

func (Favorite) TableName() string {
	return "favorites"
}
