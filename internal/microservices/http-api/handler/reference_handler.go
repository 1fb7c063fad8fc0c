package handler

import (
	"net/http"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the fixed lists the forms are built from
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/genres", h.Genres)
	rg.GET("/categories", h.Categories)
}

// GET /api/genres
func (h *ReferenceHandler) Genres(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ReferenceListResponse{Data: validation.Genres})
}

// GET /api/categories
func (h *ReferenceHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ReferenceListResponse{Data: validation.Categories})
}
