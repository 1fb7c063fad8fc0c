package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrFavoriteExists   = errors.New("movie is already in favorites")
	ErrFavoriteNotFound = errors.New("movie is not in favorites")
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID string, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error)
	RemoveFavorite(ctx context.Context, userID string, movieID int64) error
	ListFavorites(ctx context.Context, userID string) ([]dto.FavoriteResponse, error)
	IsFavorite(ctx context.Context, userID string, movieID int64) (bool, error)
	CountFavorites(ctx context.Context, userID string) (int64, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// AddFavorite bookmarks a movie; the display fields are copied so the list renders without the catalog
func (s *favoriteService) AddFavorite(ctx context.Context, userID string, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	favorite := &models.Favorite{
		UserID:      userID,
		MovieID:     req.MovieID,
		MovieTitle:  strings.TrimSpace(req.MovieTitle),
		MoviePoster: req.MoviePoster,
		MovieRating: req.MovieRating,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFavoriteExists
		}
		return nil, err
	}

	slog.Info("favorite added", "user_id", userID, "movie_id", req.MovieID)
	return dto.FromModelToFavoriteResponse(favorite), nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID string, movieID int64) error {
	if err := s.favoriteRepo.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	slog.Info("favorite removed", "user_id", userID, "movie_id", movieID)
	return nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]dto.FavoriteResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, *dto.FromModelToFavoriteResponse(&favorites[i]))
	}
	return out, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID string, movieID int64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, movieID)
}

func (s *favoriteService) CountFavorites(ctx context.Context, userID string) (int64, error) {
	return s.favoriteRepo.CountByUser(ctx, userID)
}
