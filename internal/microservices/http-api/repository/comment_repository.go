package repository

import (
	"context"
	"errors"
	"fmt"

	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/reaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByTopic(ctx context.Context, topicID string) ([]models.Comment, error)
	ListByMovie(ctx context.Context, movieID int64) ([]models.Comment, error)
	UserReactions(ctx context.Context, userID string, commentIDs []string) (map[string]reaction.Kind, error)
	ToggleReaction(ctx context.Context, commentID, userID string, desired reaction.Kind) (*reaction.Outcome, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment; topic comments also refresh the topic's comment count
// while holding the topic row lock.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.TopicID != nil {
			if err := lockTopic(tx, *comment.TopicID); err != nil {
				return err
			}
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if comment.TopicID == nil {
			return nil
		}
		return recountTopicComments(tx, *comment.TopicID)
	})
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			return err
		}
		if comment.TopicID != nil {
			if err := lockTopic(tx, *comment.TopicID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		if comment.TopicID == nil {
			return nil
		}
		return recountTopicComments(tx, *comment.TopicID)
	})
}

func lockTopic(tx *gorm.DB, topicID string) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&models.Topic{}, "id = ?", topicID).Error
}

func recountTopicComments(tx *gorm.DB, topicID string) error {
	var count int64
	if err := tx.Model(&models.Comment{}).Where("topic_id = ?", topicID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Topic{}).Where("id = ?", topicID).Update("comment_count", count).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTopic(ctx context.Context, topicID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("topic_id = ?", topicID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// UserReactions returns the user's reaction for each of the given comments that has one
func (r *commentRepository) UserReactions(ctx context.Context, userID string, commentIDs []string) (map[string]reaction.Kind, error) {
	out := make(map[string]reaction.Kind, len(commentIDs))
	if userID == "" || len(commentIDs) == 0 {
		return out, nil
	}

	var rows []models.CommentReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CommentID] = reaction.Kind(row.Kind)
	}
	return out, nil
}

// ToggleReaction applies reaction.Toggle to the user's reaction on a comment and
// recomputes the comment's like/dislike counters from the reaction rows.
// The comment row is locked for the duration so concurrent toggles serialise.
func (r *commentRepository) ToggleReaction(ctx context.Context, commentID, userID string, desired reaction.Kind) (*reaction.Outcome, error) {
	var outcome reaction.Outcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, "id = ?", commentID).Error; err != nil {
			return err
		}

		current := reaction.None
		var existing models.CommentReaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case err == nil:
			current = reaction.Kind(existing.Kind)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		outcome = reaction.Toggle(current, desired, reaction.Counts{Likes: comment.Likes, Dislikes: comment.Dislikes})
		switch outcome.Action {
		case reaction.ActionRemove:
			err = tx.Delete(&existing).Error
		case reaction.ActionReplace:
			err = tx.Model(&existing).Update("kind", string(desired)).Error
		case reaction.ActionInsert:
			err = tx.Create(&models.CommentReaction{CommentID: commentID, UserID: userID, Kind: string(desired)}).Error
		}
		if err != nil {
			return err
		}

		counts, err := countCommentReactions(tx, commentID)
		if err != nil {
			return err
		}
		outcome.Counts = counts

		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			Updates(map[string]any{"likes": counts.Likes, "dislikes": counts.Dislikes}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("toggle comment reaction: %w", err)
	}
	return &outcome, nil
}

func countCommentReactions(tx *gorm.DB, commentID string) (reaction.Counts, error) {
	var rows []struct {
		Kind  string
		Total int
	}
	err := tx.Model(&models.CommentReaction{}).
		Select("kind, COUNT(*) AS total").
		Where("comment_id = ?", commentID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return reaction.Counts{}, err
	}

	var counts reaction.Counts
	for _, row := range rows {
		switch reaction.Kind(row.Kind) {
		case reaction.Like:
			counts.Likes = row.Total
		case reaction.Dislike:
			counts.Dislikes = row.Total
		}
	}
	return counts, nil
}
