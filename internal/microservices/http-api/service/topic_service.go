package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/repository"
	"cineforo/internal/microservices/http-api/validation"
	"cineforo/internal/microservices/websocket"
	"cineforo/internal/reaction"

	"gorm.io/gorm"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrForbidden     = errors.New("you don't have permission to modify this content")
)

type TopicService interface {
	ListTopics(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedTopicResponse, error)
	ListUserTopics(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedTopicResponse, error)
	GetTopic(ctx context.Context, topicID string) (*dto.TopicResponse, error)
	TopicExists(ctx context.Context, topicID string) (bool, error)
	CreateTopic(ctx context.Context, userID string, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	DeleteTopic(ctx context.Context, topicID string, actor Actor) error
	ToggleLike(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error)
	LikeStatus(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error)
}

type topicService struct {
	topicRepo repository.TopicRepository
	feed      FeedPublisher
}

func NewTopicService(topicRepo repository.TopicRepository, feed FeedPublisher) TopicService {
	if feed == nil {
		feed = noopPublisher{}
	}
	return &topicService{topicRepo: topicRepo, feed: feed}
}

// ListTopics returns topics newest first; an empty category means all of them
func (s *topicService) ListTopics(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	if category != "" && !validation.IsValidCategory(category) {
		return nil, &validation.ValidationError{Field: "category", Message: "category is not valid"}
	}
	topics, total, err := s.topicRepo.List(ctx, category, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toTopicPage(topics, total, page, pageSize), nil
}

func (s *topicService) ListUserTopics(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedTopicResponse, error) {
	topics, total, err := s.topicRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toTopicPage(topics, total, page, pageSize), nil
}

func (s *topicService) GetTopic(ctx context.Context, topicID string) (*dto.TopicResponse, error) {
	topic, err := s.findTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTopicResponse(topic), nil
}

func (s *topicService) TopicExists(ctx context.Context, topicID string) (bool, error) {
	_, err := s.findTopic(ctx, topicID)
	if errors.Is(err, ErrTopicNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CreateTopic validates and stores a topic; a blank category files it under General
func (s *topicService) CreateTopic(ctx context.Context, userID string, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = validation.DefaultCategory
	}
	if err := validation.ValidateTopic(req.Title, req.Description, category); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	slog.Info("topic created", "topic_id", topic.ID, "user_id", userID, "category", category)

	// Reload with author data
	return s.GetTopic(ctx, topic.ID)
}

// DeleteTopic removes a topic if the actor wrote it or moderates the forum
func (s *topicService) DeleteTopic(ctx context.Context, topicID string, actor Actor) error {
	topic, err := s.findTopic(ctx, topicID)
	if err != nil {
		return err
	}
	if !actor.CanModify(topic.UserID) {
		return ErrForbidden
	}

	if err := s.topicRepo.Delete(ctx, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopicNotFound
		}
		return err
	}
	slog.Info("topic deleted", "topic_id", topicID, "by", actor.UserID, "role", actor.Role)
	return nil
}

// ToggleLike likes the topic, or withdraws the like if the user already gave one
func (s *topicService) ToggleLike(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error) {
	outcome, err := s.topicRepo.ToggleLike(ctx, topicID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		slog.Error("failed to toggle topic like", "topic_id", topicID, "user_id", userID, "error", err)
		return nil, err
	}

	resp := &dto.LikeResponse{
		Liked: outcome.Reaction == reaction.Like,
		Likes: outcome.Counts.Likes,
	}
	s.feed.Publish(topicID, websocket.TypeTopicLike, map[string]any{"likes": resp.Likes})
	return resp, nil
}

func (s *topicService) LikeStatus(ctx context.Context, topicID, userID string) (*dto.LikeResponse, error) {
	topic, err := s.findTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	liked, err := s.topicRepo.HasLiked(ctx, topicID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, Likes: topic.Likes}, nil
}

func (s *topicService) findTopic(ctx context.Context, topicID string) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

func toTopicPage(topics []models.Topic, total int64, page, pageSize int) *dto.PaginatedTopicResponse {
	data := make([]dto.TopicResponse, 0, len(topics))
	for i := range topics {
		data = append(data, *dto.FromModelToTopicResponse(&topics[i]))
	}
	return dto.NewPaginatedTopicResponse(data, int(total), page, pageSize)
}
