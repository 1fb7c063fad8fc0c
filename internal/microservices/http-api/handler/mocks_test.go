package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/reaction"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

const (
	testUserID  = "11111111-1111-1111-1111-111111111111"
	testTopicID = "22222222-2222-2222-2222-222222222222"
	testComment = "33333333-3333-3333-3333-333333333333"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.TokenPair, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockUserService) UploadAvatar(ctx context.Context, userID string, image io.Reader) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserStatsResponse), args.Error(1)
}

func (m *MockUserService) SetRole(ctx context.Context, userID, role string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

type MockTopicService struct {
	mock.Mock
}

func (m *MockTopicService) ListTopics(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	args := m.Called(ctx, category, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTopicResponse), args.Error(1)
}

func (m *MockTopicService) ListUserTopics(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTopicResponse), args.Error(1)
}

func (m *MockTopicService) GetTopic(ctx context.Context, topicID string) (*dto.TopicResponse, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TopicResponse), args.Error(1)
}

func (m *MockTopicService) TopicExists(ctx context.Context, topicID string) (bool, error) {
	args := m.Called(ctx, topicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTopicService) CreateTopic(ctx context.Context, userID string, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TopicResponse), args.Error(1)
}

func (m *MockTopicService) DeleteTopic(ctx context.Context, topicID string, actor service.Actor) error {
	return m.Called(ctx, topicID, actor).Error(0)
}

func (m *MockTopicService) ToggleLike(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error) {
	args := m.Called(ctx, topicID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

func (m *MockTopicService) LikeStatus(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error) {
	args := m.Called(ctx, topicID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListTopicComments(ctx context.Context, topicID, userID string) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, topicID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) ListMovieComments(ctx context.Context, movieID int64, userID string) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) AddTopicComment(ctx context.Context, topicID, userID, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, topicID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) AddMovieComment(ctx context.Context, movieID int64, userID, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, movieID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID string, actor service.Actor) error {
	return m.Called(ctx, commentID, actor).Error(0)
}

func (m *MockCommentService) ToggleReaction(ctx context.Context, commentID, userID string, kind reaction.Kind) (*dto.ReactionResponse, error) {
	args := m.Called(ctx, commentID, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, userID string, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FavoriteResponse), args.Error(1)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, userID string, movieID int64) error {
	return m.Called(ctx, userID, movieID).Error(0)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID string) ([]dto.FavoriteResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FavoriteResponse), args.Error(1)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, userID string, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) CountFavorites(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) page(args mock.Arguments) (*tmdb.MoviePage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MoviePage), args.Error(1)
}

func (m *MockMovieService) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page(m.Called(ctx, page))
}

func (m *MockMovieService) NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page(m.Called(ctx, page))
}

func (m *MockMovieService) Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page(m.Called(ctx, page))
}

func (m *MockMovieService) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	return m.page(m.Called(ctx, query, page))
}

func (m *MockMovieService) Details(ctx context.Context, id int64) (*tmdb.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.Movie), args.Error(1)
}

// --- SETUP ---

// asUser stands in for the auth middleware
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Set("name", "Tester")
		c.Next()
	}
}

func newTestRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var out T
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}
