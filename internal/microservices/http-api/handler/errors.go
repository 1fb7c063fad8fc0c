package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/microservices/http-api/validation"
	"cineforo/internal/reaction"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestTimeout = 5 * time.Second

// respondError maps service errors onto HTTP status codes with a human readable message
func respondError(c *gin.Context, err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, reaction.ErrInvalidKind),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrWrongPassword):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, service.ErrMovieNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrFavoriteExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "internal server error"})
			return
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUserID returns the authenticated user id, answering 401 when it is missing
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return userID, true
}

func currentActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: c.GetString("role")}, true
}

// uuidParam reads a uuid path parameter, answering 400 when it is malformed
func uuidParam(c *gin.Context, name, label string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return "", false
	}
	return id, true
}

func movieIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return 0, false
	}
	return id, true
}

// maxListPage keeps (page-1)*pageSize far from overflowing the SQL offset
const maxListPage = 10000

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	page = min(max(page, 1), maxListPage)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
