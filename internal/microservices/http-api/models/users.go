package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold; moderators may delete any topic or comment
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
)

type User struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"column:password_hash;not null" json:"-"`
	FavoriteGenre string     `gorm:"not null;default:''" json:"favorite_genre"`
	AvatarURL     *string    `gorm:"type:text" json:"avatar_url,omitempty"` // data URL of the processed avatar
	Role          string     `gorm:"default:'user';not null" json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// IsModerator reports whether the user may moderate forum content
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}
