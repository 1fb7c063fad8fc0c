package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTopicRouter(mockService *MockTopicService, role string) http.Handler {
	r := newTestRouter(asUser(testUserID, role))
	handler.NewTopicHandler(mockService).RegisterRoutes(r.Group("/api/topics"))
	return r
}

func TestListTopics(t *testing.T) {
	mockService := new(MockTopicService)
	page := &dto.PaginatedTopicResponse{
		Data:  []dto.TopicResponse{{ID: testTopicID, Title: "Best of 2024", Category: "Debate"}},
		Total: 1, Page: 2, PageSize: 10, TotalPages: 1,
	}
	mockService.On("ListTopics", mock.Anything, "Debate", 2, 10).Return(page, nil)

	w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics?category=Debate&page=2&page_size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.PaginatedTopicResponse](w)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Best of 2024", resp.Data[0].Title)
	mockService.AssertExpectations(t)
}

func TestListTopics_PaginationDefaults(t *testing.T) {
	mockService := new(MockTopicService)
	mockService.On("ListTopics", mock.Anything, "", 1, 20).Return(&dto.PaginatedTopicResponse{}, nil)

	w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics?page=-3&page_size=500", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListTopics_PageClamped(t *testing.T) {
	mockService := new(MockTopicService)
	mockService.On("ListTopics", mock.Anything, "", 10000, 20).Return(&dto.PaginatedTopicResponse{}, nil)

	w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics?page=4611686018427387904", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetTopic(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockTopicService)
		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("GetTopic", mock.Anything, testTopicID).Return(nil, service.ErrTopicNotFound)

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics/"+testTopicID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Mine", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("ListUserTopics", mock.Anything, testUserID, 1, 20).Return(&dto.PaginatedTopicResponse{}, nil)

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodGet, "/api/topics/mine", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCreateTopic(t *testing.T) {
	req := dto.CreateTopicRequest{Title: "Best of 2024", Description: "Let's talk", Category: "Debate"}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("CreateTopic", mock.Anything, testUserID, req).
			Return(&dto.TopicResponse{ID: testTopicID, UserID: testUserID, Title: req.Title}, nil)

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodPost, "/api/topics", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, testTopicID, decode[dto.TopicResponse](w).ID)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("CreateTopic", mock.Anything, testUserID, mock.Anything).
			Return(nil, &validation.ValidationError{Field: "title", Message: "title is required"})

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodPost, "/api/topics", dto.CreateTopicRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title", decode[map[string]string](w)["field"])
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mockService := new(MockTopicService)
		r := newTestRouter()
		handler.NewTopicHandler(mockService).RegisterRoutes(r.Group("/api/topics"))

		w := doJSON(r, http.MethodPost, "/api/topics", req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "CreateTopic", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteTopic(t *testing.T) {
	t.Run("ModeratorActorPassedThrough", func(t *testing.T) {
		mockService := new(MockTopicService)
		actor := service.Actor{UserID: testUserID, Role: models.RoleModerator}
		mockService.On("DeleteTopic", mock.Anything, testTopicID, actor).Return(nil)

		w := doJSON(setupTopicRouter(mockService, models.RoleModerator), http.MethodDelete, "/api/topics/"+testTopicID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Forbidden", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("DeleteTopic", mock.Anything, testTopicID, mock.Anything).Return(service.ErrForbidden)

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodDelete, "/api/topics/"+testTopicID, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("InternalErrorHidden", func(t *testing.T) {
		mockService := new(MockTopicService)
		mockService.On("DeleteTopic", mock.Anything, testTopicID, mock.Anything).Return(errors.New("pq: connection reset"))

		w := doJSON(setupTopicRouter(mockService, models.RoleUser), http.MethodDelete, "/api/topics/"+testTopicID, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
	})
}

func TestToggleTopicLike(t *testing.T) {
	mockService := new(MockTopicService)
	mockService.On("ToggleLike", mock.Anything, testTopicID, testUserID).Return(&dto.LikeResponse{Liked: true, Likes: 4}, nil)
	mockService.On("LikeStatus", mock.Anything, testTopicID, testUserID).Return(&dto.LikeResponse{Liked: true, Likes: 4}, nil)
	r := setupTopicRouter(mockService, models.RoleUser)

	w := doJSON(r, http.MethodPost, "/api/topics/"+testTopicID+"/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.LikeResponse{Liked: true, Likes: 4}, decode[dto.LikeResponse](w))

	w = doJSON(r, http.MethodGet, "/api/topics/"+testTopicID+"/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
