package handler

import (
	"context"
	"net/http"
	"strconv"

	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// the catalog refuses pages past 500
const maxCatalogPage = 500

type MovieHandler struct {
	movieService service.MovieService
}

func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/popular", h.Popular)
	rg.GET("/now-playing", h.NowPlaying)
	rg.GET("/upcoming", h.Upcoming)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Details)
}

// GET /api/movies/popular?page=1
func (h *MovieHandler) Popular(c *gin.Context) {
	h.list(c, h.movieService.Popular)
}

// GET /api/movies/now-playing?page=1
func (h *MovieHandler) NowPlaying(c *gin.Context) {
	h.list(c, h.movieService.NowPlaying)
}

// GET /api/movies/upcoming?page=1
func (h *MovieHandler) Upcoming(c *gin.Context) {
	h.list(c, h.movieService.Upcoming)
}

func (h *MovieHandler) list(c *gin.Context, fetch func(ctx context.Context, page int) (*tmdb.MoviePage, error)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	movies, err := fetch(ctx, catalogPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GET /api/movies/search?q=matrix&page=1
func (h *MovieHandler) Search(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	movies, err := h.movieService.Search(ctx, c.Query("q"), catalogPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GET /api/movies/:id
func (h *MovieHandler) Details(c *gin.Context) {
	movieID, ok := movieIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	movie, err := h.movieService.Details(ctx, movieID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func catalogPage(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return min(max(page, 1), maxCatalogPage)
}
