package handler_test

import (
	"context"
	"net/http"
	"testing"

	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupMovieRouter(mockService *MockMovieService) http.Handler {
	r := newTestRouter()
	handler.NewMovieHandler(mockService).RegisterRoutes(r.Group("/api/movies"))
	return r
}

func TestMovieLists(t *testing.T) {
	mockService := new(MockMovieService)
	page := &tmdb.MoviePage{Page: 2, Results: []tmdb.Movie{{ID: 603, Title: "The Matrix"}}, TotalPages: 10}
	mockService.On("Popular", mock.Anything, 2).Return(page, nil)
	mockService.On("NowPlaying", mock.Anything, 1).Return(page, nil)
	mockService.On("Upcoming", mock.Anything, 500).Return(page, nil)
	r := setupMovieRouter(mockService)

	w := doJSON(r, http.MethodGet, "/api/movies/popular?page=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Matrix", decode[tmdb.MoviePage](w).Results[0].Title)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/movies/now-playing?page=abc", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/movies/upcoming?page=9000", nil).Code)
	mockService.AssertExpectations(t)
}

func TestSearchMovies(t *testing.T) {
	mockService := new(MockMovieService)
	mockService.On("Search", mock.Anything, "", 1).Return(nil, service.ErrEmptyQuery)
	mockService.On("Search", mock.Anything, "matrix", 1).Return(&tmdb.MoviePage{Page: 1}, nil)
	r := setupMovieRouter(mockService)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/api/movies/search", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/movies/search?q=matrix", nil).Code)
}

func TestMovieDetails(t *testing.T) {
	mockService := new(MockMovieService)
	mockService.On("Details", mock.Anything, int64(603)).Return(&tmdb.Movie{ID: 603, Title: "The Matrix", Runtime: 136}, nil)
	mockService.On("Details", mock.Anything, int64(9)).Return(nil, service.ErrMovieNotFound)
	mockService.On("Details", mock.Anything, int64(10)).Return(nil, context.DeadlineExceeded)
	r := setupMovieRouter(mockService)

	w := doJSON(r, http.MethodGet, "/api/movies/603", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 136, decode[tmdb.Movie](w).Runtime)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/api/movies/9", nil).Code)
	assert.Equal(t, http.StatusGatewayTimeout, doJSON(r, http.MethodGet, "/api/movies/10", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/api/movies/-1", nil).Code)
}
