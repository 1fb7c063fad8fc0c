package handler

import (
	"net/http"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/reaction"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes under the authenticated /api group
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/topics/:id/comments", h.ListByTopic)
	rg.POST("/topics/:id/comments", h.CreateOnTopic)
	rg.GET("/movies/:id/comments", h.ListByMovie)
	rg.POST("/movies/:id/comments", h.CreateOnMovie)
	rg.DELETE("/comments/:id", h.Delete)
	rg.POST("/comments/:id/reaction", h.React)
}

// GET /api/topics/:id/comments
func (h *CommentHandler) ListByTopic(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.commentService.ListTopicComments(ctx, topicID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// POST /api/topics/:id/comments
func (h *CommentHandler) CreateOnTopic(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentService.AddTopicComment(ctx, topicID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GET /api/movies/:id/comments
func (h *CommentHandler) ListByMovie(c *gin.Context) {
	movieID, ok := movieIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.commentService.ListMovieComments(ctx, movieID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// POST /api/movies/:id/comments
func (h *CommentHandler) CreateOnMovie(c *gin.Context) {
	movieID, ok := movieIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentService.AddMovieComment(ctx, movieID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete is allowed for the author and moderators
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := uuidParam(c, "id", "comment")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.commentService.DeleteComment(ctx, commentID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comment deleted"})
}

// React toggles a like or dislike
// POST /api/comments/:id/reaction {"kind": "like"}
func (h *CommentHandler) React(c *gin.Context) {
	commentID, ok := uuidParam(c, "id", "comment")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := reaction.ParseKind(req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.commentService.ToggleReaction(ctx, commentID, userID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
