package handler_test

import (
	"net/http"
	"testing"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/reaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCommentRouter(mockService *MockCommentService) http.Handler {
	r := newTestRouter(asUser(testUserID, models.RoleUser))
	handler.NewCommentHandler(mockService).RegisterRoutes(r.Group("/api"))
	return r
}

func TestListTopicComments(t *testing.T) {
	mockService := new(MockCommentService)
	comments := []dto.CommentResponse{
		{ID: testComment, Content: "Great movie", Likes: 2, UserReaction: reaction.Like},
	}
	mockService.On("ListTopicComments", mock.Anything, testTopicID, testUserID).Return(comments, nil)

	w := doJSON(setupCommentRouter(mockService), http.MethodGet, "/api/topics/"+testTopicID+"/comments", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Data []dto.CommentResponse `json:"data"`
	}](w)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, reaction.Like, resp.Data[0].UserReaction)
}

func TestListMovieComments_InvalidID(t *testing.T) {
	mockService := new(MockCommentService)

	w := doJSON(setupCommentRouter(mockService), http.MethodGet, "/api/movies/abc/comments", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddComment(t *testing.T) {
	t.Run("OnTopic", func(t *testing.T) {
		mockService := new(MockCommentService)
		mockService.On("AddTopicComment", mock.Anything, testTopicID, testUserID, "I loved the ending").
			Return(&dto.CommentResponse{ID: testComment, Content: "I loved the ending"}, nil)

		w := doJSON(setupCommentRouter(mockService), http.MethodPost, "/api/topics/"+testTopicID+"/comments",
			dto.CreateCommentRequest{Content: "I loved the ending"})

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("OnMovie", func(t *testing.T) {
		mockService := new(MockCommentService)
		mockService.On("AddMovieComment", mock.Anything, int64(603), testUserID, "Classic sci-fi").
			Return(&dto.CommentResponse{ID: testComment}, nil)

		w := doJSON(setupCommentRouter(mockService), http.MethodPost, "/api/movies/603/comments",
			dto.CreateCommentRequest{Content: "Classic sci-fi"})

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("TopicMissing", func(t *testing.T) {
		mockService := new(MockCommentService)
		mockService.On("AddTopicComment", mock.Anything, testTopicID, testUserID, mock.Anything).
			Return(nil, service.ErrTopicNotFound)

		w := doJSON(setupCommentRouter(mockService), http.MethodPost, "/api/topics/"+testTopicID+"/comments",
			dto.CreateCommentRequest{Content: "I loved the ending"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReactToComment(t *testing.T) {
	t.Run("Dislike", func(t *testing.T) {
		mockService := new(MockCommentService)
		mockService.On("ToggleReaction", mock.Anything, testComment, testUserID, reaction.Dislike).
			Return(&dto.ReactionResponse{CommentID: testComment, Reaction: reaction.Dislike, Likes: 1, Dislikes: 1}, nil)

		w := doJSON(setupCommentRouter(mockService), http.MethodPost, "/api/comments/"+testComment+"/reaction",
			dto.ReactionRequest{Kind: "DISLIKE"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.ReactionResponse](w)
		assert.Equal(t, reaction.Dislike, resp.Reaction)
		assert.Equal(t, 1, resp.Dislikes)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		mockService := new(MockCommentService)

		w := doJSON(setupCommentRouter(mockService), http.MethodPost, "/api/comments/"+testComment+"/reaction",
			dto.ReactionRequest{Kind: "love"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ToggleReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteComment(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("DeleteComment", mock.Anything, testComment, service.Actor{UserID: testUserID, Role: models.RoleUser}).
		Return(service.ErrForbidden)

	w := doJSON(setupCommentRouter(mockService), http.MethodDelete, "/api/comments/"+testComment, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}
