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

type TopicRepository interface {
	Create(ctx context.Context, topic *models.Topic) error
	GetByID(ctx context.Context, id string) (*models.Topic, error)
	List(ctx context.Context, category string, page, pageSize int) ([]models.Topic, int64, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Topic, int64, error)
	Delete(ctx context.Context, id string) error
	HasLiked(ctx context.Context, topicID, userID string) (bool, error)
	ToggleLike(ctx context.Context, topicID, userID string) (*reaction.Outcome, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if err := r.db.WithContext(ctx).Create(topic).Error; err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// GetByID retrieves a topic with its author's display fields
func (r *topicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&topic, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// List returns topics newest first, optionally filtered by category
func (r *topicRepository) List(ctx context.Context, category string, page, pageSize int) ([]models.Topic, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	return r.paginate(query, page, pageSize)
}

func (r *topicRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Topic, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{}).Where("user_id = ?", userID)
	return r.paginate(query, page, pageSize)
}

func (r *topicRepository) paginate(query *gorm.DB, page, pageSize int) ([]models.Topic, int64, error) {
	var topics []models.Topic
	var total int64

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset(page, pageSize)).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// Delete removes a topic; likes and comments go with it through the FK cascade
func (r *topicRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Topic{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *topicRepository) HasLiked(ctx context.Context, topicID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TopicLike{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Count(&count).Error
	return count > 0, err
}

// ToggleLike adds or removes the user's like and recomputes the topic's counter
// from the like rows, all in one transaction holding the topic row lock.
func (r *topicRepository) ToggleLike(ctx context.Context, topicID, userID string) (*reaction.Outcome, error) {
	var outcome reaction.Outcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&topic, "id = ?", topicID).Error; err != nil {
			return err
		}

		current := reaction.None
		var existing models.TopicLike
		err := tx.Where("topic_id = ? AND user_id = ?", topicID, userID).First(&existing).Error
		switch {
		case err == nil:
			current = reaction.Like
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		outcome = reaction.Toggle(current, reaction.Like, reaction.Counts{Likes: topic.Likes})
		switch outcome.Action {
		case reaction.ActionRemove:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case reaction.ActionInsert:
			if err := tx.Create(&models.TopicLike{TopicID: topicID, UserID: userID}).Error; err != nil {
				return err
			}
		}

		var likes int64
		if err := tx.Model(&models.TopicLike{}).Where("topic_id = ?", topicID).Count(&likes).Error; err != nil {
			return err
		}
		outcome.Counts = reaction.Counts{Likes: int(likes)}

		return tx.Model(&models.Topic{}).Where("id = ?", topicID).Update("likes", likes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("toggle topic like: %w", err)
	}
	return &outcome, nil
}
