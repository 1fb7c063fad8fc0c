package dto

import (
	"time"

	"cineforo/internal/microservices/http-api/models"
)

// UserResponse is the public profile; the password hash never leaves the server
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	FavoriteGenre string     `json:"favorite_genre"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		FavoriteGenre: user.FavoriteGenre,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role,
		CreatedAt:     user.CreatedAt,
		LastLogin:     user.LastLogin,
	}
}

type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	FavoriteGenre string `json:"favorite_genre" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword      string `json:"current_password"`
	NewPassword          string `json:"new_password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user moderator"`
}

type UserStatsResponse struct {
	Favorites int64 `json:"favorites"`
	Comments  int64 `json:"comments"`
	Topics    int64 `json:"topics"`
	Likes     int64 `json:"likes"`
}

// ReferenceListResponse carries the fixed genre and category lists
type ReferenceListResponse struct {
	Data []string `json:"data"`
}
