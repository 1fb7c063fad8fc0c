package repository

import (
	"context"

	"cineforo/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID string, movieID int64) error
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create adds a favorite; a second one for the same movie yields ErrDuplicate
func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	count, err := r.count(ctx, "user_id = ? AND movie_id = ?", userID, movieID)
	return count > 0, err
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "user_id = ?", userID)
}

func (r *favoriteRepository) count(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where(where, args...).Count(&count).Error
	return count, err
}
