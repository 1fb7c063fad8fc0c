package handler

import (
	"net/http"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicService service.TopicService
}

func NewTopicHandler(topicService service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// RegisterRoutes registers forum topic routes; rg is authenticated by the parent group
func (h *TopicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/mine", h.ListMine)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/like", h.ToggleLike)
	rg.GET("/:id/like", h.LikeStatus)
}

// List returns topics newest first
// GET /api/topics?category=Debate&page=1&page_size=20
func (h *TopicHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	topics, err := h.topicService.ListTopics(ctx, c.Query("category"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// ListMine returns the caller's own topics
// GET /api/topics/mine
func (h *TopicHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	topics, err := h.topicService.ListUserTopics(ctx, userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GET /api/topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	topic, err := h.topicService.GetTopic(ctx, topicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	topic, err := h.topicService.CreateTopic(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// Delete is allowed for the author and moderators
// DELETE /api/topics/:id
func (h *TopicHandler) Delete(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.topicService.DeleteTopic(ctx, topicID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Topic deleted"})
}

// ToggleLike likes or unlikes the topic
// POST /api/topics/:id/like
func (h *TopicHandler) ToggleLike(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.topicService.ToggleLike(ctx, topicID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/topics/:id/like
func (h *TopicHandler) LikeStatus(c *gin.Context) {
	topicID, ok := uuidParam(c, "id", "topic")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.topicService.LikeStatus(ctx, topicID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
