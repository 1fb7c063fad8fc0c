package service

import (
	"context"
	"time"

	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/repository"
	"cineforo/internal/microservices/websocket"
	"cineforo/internal/reaction"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Stats(ctx context.Context, id string) (*repository.UserStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTopicRepository mocks the TopicRepository interface
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockTopicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) List(ctx context.Context, category string, page, pageSize int) ([]models.Topic, int64, error) {
	args := m.Called(ctx, category, page, pageSize)
	return args.Get(0).([]models.Topic), args.Get(1).(int64), args.Error(2)
}

func (m *MockTopicRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Topic, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]models.Topic), args.Get(1).(int64), args.Error(2)
}

func (m *MockTopicRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTopicRepository) HasLiked(ctx context.Context, topicID, userID string) (bool, error) {
	args := m.Called(ctx, topicID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTopicRepository) ToggleLike(ctx context.Context, topicID, userID string) (*reaction.Outcome, error) {
	args := m.Called(ctx, topicID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reaction.Outcome), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByTopic(ctx context.Context, topicID string) ([]models.Comment, error) {
	args := m.Called(ctx, topicID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Comment, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) UserReactions(ctx context.Context, userID string, commentIDs []string) (map[string]reaction.Kind, error) {
	args := m.Called(ctx, userID, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]reaction.Kind), args.Error(1)
}

func (m *MockCommentRepository) ToggleReaction(ctx context.Context, commentID, userID string, desired reaction.Kind) (*reaction.Outcome, error) {
	args := m.Called(ctx, commentID, userID, desired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reaction.Outcome), args.Error(1)
}

// MockFavoriteRepository mocks the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher records live feed events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topicID string, eventType websocket.EventType, payload any) {
	m.Called(topicID, eventType, payload)
}

// MockCatalog mocks the MovieCatalog interface
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MoviePage), args.Error(1)
}

func (m *MockCatalog) NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MoviePage), args.Error(1)
}

func (m *MockCatalog) Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MoviePage), args.Error(1)
}

func (m *MockCatalog) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MoviePage), args.Error(1)
}

func (m *MockCatalog) Details(ctx context.Context, id int64) (*tmdb.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.Movie), args.Error(1)
}
