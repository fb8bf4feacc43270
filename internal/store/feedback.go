package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/models"
)

// FeedbackStore persists feedback items. Vote counts are attached by the
// caller, see service.FeedbackService.
type FeedbackStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db, now: time.Now}
}

// Create inserts a new feedback item in the Open status
func (s *FeedbackStore) Create(ctx context.Context, title, content string, category models.Category, authorID uint) (*models.Feedback, error) {
	if err := models.ValidateNewFeedback(title, content, category); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		Title:    strings.TrimSpace(title),
		Content:  strings.TrimSpace(content),
		Category: category,
		Status:   models.StatusOpen,
		AuthorID: authorID,
	}
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("author %d: %w", authorID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

func (s *FeedbackStore) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback %d: %w", id, err)
	}
	return &feedback, nil
}

// List returns one page of feedback, newest first, and the size of the whole
// filtered set. Count and fetch share the same filter scope.
func (s *FeedbackStore) List(ctx context.Context, filters models.FeedbackFilters) ([]models.Feedback, int64, error) {
	filters = filters.Normalize()
	scope := func(db *gorm.DB) *gorm.DB {
		if filters.Category != nil {
			db = db.Where("category = ?", *filters.Category)
		}
		if filters.Status != nil {
			db = db.Where("status = ?", *filters.Status)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Feedback{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	feedbacks := make([]models.Feedback, 0, filters.Limit)
	err := s.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filters.Limit).
		Offset(filters.Offset()).
		Find(&feedbacks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	return feedbacks, total, nil
}

// Update applies a validated partial update and refreshes updated_at.
// author_id cannot be reached through models.FeedbackUpdate.
func (s *FeedbackStore) Update(ctx context.Context, id uint, upd models.FeedbackUpdate) (*models.Feedback, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	cols := upd.Columns()
	cols["updated_at"] = s.now()

	result := s.db.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update feedback %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a feedback item and, through the foreign key, its votes.
// Deleting a missing item is not an error.
func (s *FeedbackStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Feedback{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, err)
	}
	return nil
}
