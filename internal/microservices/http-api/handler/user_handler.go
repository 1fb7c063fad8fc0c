package handler

import (
	"net/http"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/middleware"
	"cineforo/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const avatarField = "avatar"

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes expects rg to be authenticated already
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.PUT("/me", h.UpdateMe)
	rg.PUT("/me/password", h.ChangePassword)
	rg.POST("/me/avatar", h.UploadAvatar)
	rg.GET("/me/stats", h.Stats)
	rg.PUT("/:id/role", middleware.RequireRole(models.RoleModerator), h.SetRole)
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.userService.UpdateProfile(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.userService.ChangePassword(ctx, userID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

// UploadAvatar takes a multipart "avatar" file
// POST /api/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	header, err := c.FormFile(avatarField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required", "field": avatarField})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar file", "field": avatarField})
		return
	}
	defer file.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.userService.UploadAvatar(ctx, userID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/users/me/stats
func (h *UserHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.userService.GetStats(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SetRole is moderator only
// PUT /api/users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	targetID, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.userService.SetRole(ctx, targetID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
