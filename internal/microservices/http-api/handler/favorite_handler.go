package handler

import (
	"net/http"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.GET("/count", h.Count)
	rg.GET("/:movie_id", h.Check)
	rg.DELETE("/:movie_id", h.Remove)
}

// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	favorites, err := h.favoriteService.ListFavorites(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": favorites})
}

// POST /api/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	favorite, err := h.favoriteService.AddFavorite(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// GET /api/favorites/count
func (h *FavoriteHandler) Count(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	count, err := h.favoriteService.CountFavorites(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// Check reports whether a movie is bookmarked
// GET /api/favorites/:movie_id
func (h *FavoriteHandler) Check(c *gin.Context) {
	movieID, ok := movieIDParam(c, "movie_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	isFavorite, err := h.favoriteService.IsFavorite(ctx, userID, movieID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteStatusResponse{MovieID: movieID, IsFavorite: isFavorite})
}

// DELETE /api/favorites/:movie_id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	movieID, ok := movieIDParam(c, "movie_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.favoriteService.RemoveFavorite(ctx, userID, movieID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Removed from favorites"})
}
