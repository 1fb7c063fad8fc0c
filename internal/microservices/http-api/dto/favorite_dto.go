package dto

import (
	"time"

	"cineforo/internal/microservices/http-api/models"
)

type AddFavoriteRequest struct {
	MovieID     int64   `json:"movie_id" binding:"required,gt=0"`
	MovieTitle  string  `json:"movie_title" binding:"required"`
	MoviePoster *string `json:"movie_poster"`
	MovieRating float64 `json:"movie_rating" binding:"gte=0,lte=10"`
}

type FavoriteResponse struct {
	ID          string    `json:"id"`
	MovieID     int64     `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster *string   `json:"movie_poster,omitempty"`
	MovieRating float64   `json:"movie_rating"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToFavoriteResponse(favorite *models.Favorite) *FavoriteResponse {
	return &FavoriteResponse{
		ID:          favorite.ID,
		MovieID:     favorite.MovieID,
		MovieTitle:  favorite.MovieTitle,
		MoviePoster: favorite.MoviePoster,
		MovieRating: favorite.MovieRating,
		CreatedAt:   favorite.CreatedAt,
	}
}

type FavoriteStatusResponse struct {
	MovieID    int64 `json:"movie_id"`
	IsFavorite bool  `json:"is_favorite"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
