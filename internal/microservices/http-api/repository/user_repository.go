package repository

import (
	"context"
	"time"

	"cineforo/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserStats counts what a user has contributed
type UserStats struct {
	Favorites int64 `json:"favorites"`
	Comments  int64 `json:"comments"`
	Topics    int64 `json:"topics"`
	Likes     int64 `json:"likes"` // comment reactions and topic likes given
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Stats(ctx context.Context, id string) (*UserStats, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil on error so a zero-value user is never mistaken for a hit
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *userRepository) Stats(ctx context.Context, id string) (*UserStats, error) {
	db := r.db.WithContext(ctx)
	var stats UserStats
	var topicLikes int64

	counts := []struct {
		model  any
		target *int64
	}{
		{&models.Favorite{}, &stats.Favorites},
		{&models.Comment{}, &stats.Comments},
		{&models.Topic{}, &stats.Topics},
		{&models.CommentReaction{}, &stats.Likes},
		{&models.TopicLike{}, &topicLikes},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("user_id = ?", id).Count(c.target).Error; err != nil {
			return nil, err
		}
	}
	stats.Likes += topicLikes
	return &stats, nil
}
