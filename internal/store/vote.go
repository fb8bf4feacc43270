package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/models"
)

// VoteStore is the per-user, per-feedback vote ledger
type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

// Add records a vote. The composite primary key rejects a second vote from
// the same user even when two requests race past HasVoted.
func (s *VoteStore) Add(ctx context.Context, userID, feedbackID uint) (*models.Vote, error) {
	vote := &models.Vote{UserID: userID, FeedbackID: feedbackID}
	if err := s.db.WithContext(ctx).Create(vote).Error; err != nil {
		switch {
		case isDuplicateKey(err):
			return nil, ErrDuplicateVote
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("feedback %d: %w", feedbackID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to add vote: %w", err)
	}
	return vote, nil
}

// Remove deletes a vote, returning ErrNotFound when there was none
func (s *VoteStore) Remove(ctx context.Context, userID, feedbackID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND feedback_id = ?", userID, feedbackID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove vote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *VoteStore) HasVoted(ctx context.Context, userID, feedbackID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ? AND feedback_id = ?", userID, feedbackID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return n > 0, nil
}

func (s *VoteStore) Count(ctx context.Context, feedbackID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("feedback_id = ?", feedbackID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes for feedback %d: %w", feedbackID, err)
	}
	return n, nil
}

// CountMany counts votes for several feedback items in one grouped query.
// Items without votes are absent from the result.
func (s *VoteStore) CountMany(ctx context.Context, feedbackIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(feedbackIDs))
	if len(feedbackIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FeedbackID uint
		Votes      int64
	}
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("feedback_id, COUNT(*) AS votes").
		Where("feedback_id IN ?", feedbackIDs).
		Group("feedback_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	for _, r := range rows {
		counts[r.FeedbackID] = r.Votes
	}
	return counts, nil
}

