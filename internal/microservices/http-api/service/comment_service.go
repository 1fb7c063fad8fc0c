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

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListTopicComments(ctx context.Context, topicID, userID string) ([]dto.CommentResponse, error)
	ListMovieComments(ctx context.Context, movieID int64, userID string) ([]dto.CommentResponse, error)
	AddTopicComment(ctx context.Context, topicID, userID, content string) (*dto.CommentResponse, error)
	AddMovieComment(ctx context.Context, movieID int64, userID, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID string, actor Actor) error
	ToggleReaction(ctx context.Context, commentID, userID string, kind reaction.Kind) (*dto.ReactionResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	feed        FeedPublisher
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	feed FeedPublisher,
) CommentService {
	if feed == nil {
		feed = noopPublisher{}
	}
	return &commentService{
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		feed:        feed,
	}
}

// ListTopicComments returns a topic's comments newest first with the caller's reactions
func (s *commentService) ListTopicComments(ctx context.Context, topicID, userID string) ([]dto.CommentResponse, error) {
	if err := s.ensureTopic(ctx, topicID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, comments, userID)
}

func (s *commentService) ListMovieComments(ctx context.Context, movieID int64, userID string) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, comments, userID)
}

// AddTopicComment stores a comment on a topic and notifies the topic's watchers
func (s *commentService) AddTopicComment(ctx context.Context, topicID, userID, content string) (*dto.CommentResponse, error) {
	if err := validation.ValidateComment(content); err != nil {
		return nil, err
	}
	if err := s.ensureTopic(ctx, topicID); err != nil {
		return nil, err
	}

	comment, err := s.create(ctx, userID, content, &topicID, nil)
	if err != nil {
		return nil, err
	}
	s.feed.Publish(topicID, websocket.TypeCommentAdded, comment)
	return comment, nil
}

func (s *commentService) AddMovieComment(ctx context.Context, movieID int64, userID, content string) (*dto.CommentResponse, error) {
	if err := validation.ValidateComment(content); err != nil {
		return nil, err
	}
	if movieID <= 0 {
		return nil, &validation.ValidationError{Field: "movie_id", Message: "movie id is not valid"}
	}
	return s.create(ctx, userID, content, nil, &movieID)
}

// DeleteComment removes a comment if the actor wrote it or moderates the forum
func (s *commentService) DeleteComment(ctx context.Context, commentID string, actor Actor) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.UserID) {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	slog.Info("comment deleted", "comment_id", commentID, "by", actor.UserID, "role", actor.Role)

	if comment.TopicID != nil {
		s.feed.Publish(*comment.TopicID, websocket.TypeCommentDeleted, map[string]string{"comment_id": commentID})
	}
	return nil
}

// ToggleReaction applies the like/dislike toggle and returns the caller's new reaction with fresh counters
func (s *commentService) ToggleReaction(ctx context.Context, commentID, userID string, kind reaction.Kind) (*dto.ReactionResponse, error) {
	if kind != reaction.Like && kind != reaction.Dislike {
		return nil, reaction.ErrInvalidKind
	}
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.commentRepo.ToggleReaction(ctx, commentID, userID, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		slog.Error("failed to toggle comment reaction", "comment_id", commentID, "user_id", userID, "error", err)
		return nil, err
	}

	resp := &dto.ReactionResponse{
		CommentID: commentID,
		Reaction:  outcome.Reaction,
		Likes:     outcome.Counts.Likes,
		Dislikes:  outcome.Counts.Dislikes,
	}
	if comment.TopicID != nil {
		s.feed.Publish(*comment.TopicID, websocket.TypeCommentReaction, map[string]any{
			"comment_id": commentID,
			"likes":      resp.Likes,
			"dislikes":   resp.Dislikes,
		})
	}
	return resp, nil
}

func (s *commentService) create(ctx context.Context, userID, content string, topicID *string, movieID *int64) (*dto.CommentResponse, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		UserID:     userID,
		TopicID:    topicID,
		MovieID:    movieID,
		Content:    strings.TrimSpace(content),
		AuthorName: author.Name,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *author

	slog.Info("comment added", "comment_id", comment.ID, "user_id", userID)
	return dto.FromModelToCommentResponse(comment, reaction.None), nil
}

func (s *commentService) annotate(ctx context.Context, comments []models.Comment, userID string) ([]dto.CommentResponse, error) {
	ids := make([]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	mine, err := s.commentRepo.UserReactions(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *dto.FromModelToCommentResponse(&comments[i], mine[comments[i].ID]))
	}
	return out, nil
}

func (s *commentService) ensureTopic(ctx context.Context, topicID string) error {
	if _, err := s.topicRepo.GetByID(ctx, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopicNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
