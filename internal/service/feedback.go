package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/store"
)

// FeedbackService composes the feedback and vote stores. It owns the
// authorship rule and the voting protocol and attaches vote counts to every
// feedback it returns.
type FeedbackService struct {
	feedbacks *store.FeedbackStore
	votes     *store.VoteStore
	cache     VoteCache
	log       logrus.FieldLogger
}

// NewFeedbackService returns a FeedbackService. cache may be nil.
func NewFeedbackService(feedbacks *store.FeedbackStore, votes *store.VoteStore, cache VoteCache, log logrus.FieldLogger) *FeedbackService {
	return &FeedbackService{feedbacks: feedbacks, votes: votes, cache: cache, log: log}
}

func (s *FeedbackService) Create(ctx context.Context, authorID uint, title, content string, category models.Category) (*models.Feedback, error) {
	feedback, err := s.feedbacks.Create(ctx, title, content, category, authorID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"feedback_id": feedback.ID, "author_id": authorID}).Info("Feedback created")
	return feedback, nil
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (*models.Feedback, error) {
	feedback, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback.Votes, err = s.voteCount(ctx, id); err != nil {
		return nil, err
	}
	return feedback, nil
}

// List returns one page of feedback with vote counts from a single grouped
// query.
func (s *FeedbackService) List(ctx context.Context, filters models.FeedbackFilters) (*models.FeedbackPage, error) {
	filters = filters.Normalize()
	items, total, err := s.feedbacks.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	counts, err := s.votes.CountMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Votes = counts[items[i].ID]
	}

	return &models.FeedbackPage{
		Feedbacks:  items,
		Pagination: models.NewPagination(total, filters.Page, filters.Limit),
	}, nil
}

// Update applies upd when callerID is the author. Any other caller gets
// ErrForbidden and the row is left as it was.
func (s *FeedbackService) Update(ctx context.Context, callerID, id uint, upd models.FeedbackUpdate) (*models.Feedback, error) {
	if err := s.authorize(ctx, callerID, id); err != nil {
		return nil, err
	}

	feedback, err := s.feedbacks.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if feedback.Votes, err = s.voteCount(ctx, id); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Delete removes the item when callerID is the author. Authorship is checked
// with a plain read.
func (s *FeedbackService) Delete(ctx context.Context, callerID, id uint) error {
	if err := s.authorize(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.feedbacks.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.WithFields(logrus.Fields{"feedback_id": id, "author_id": callerID}).Info("Feedback deleted")
	return nil
}

// Vote records userID's vote. The HasVoted check only avoids a failing
// insert; the primary key decides races.
func (s *FeedbackService) Vote(ctx context.Context, userID, feedbackID uint) error {
	if _, err := s.feedbacks.GetByID(ctx, feedbackID); err != nil {
		return err
	}

	voted, err := s.votes.HasVoted(ctx, userID, feedbackID)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}

	if _, err := s.votes.Add(ctx, userID, feedbackID); err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			return ErrAlreadyVoted
		}
		return err
	}
	s.invalidate(ctx, feedbackID)
	return nil
}

func (s *FeedbackService) Unvote(ctx context.Context, userID, feedbackID uint) error {
	if _, err := s.feedbacks.GetByID(ctx, feedbackID); err != nil {
		return err
	}

	voted, err := s.votes.HasVoted(ctx, userID, feedbackID)
	if err != nil {
		return err
	}
	if !voted {
		return ErrNoVoteToRemove
	}

	if err := s.votes.Remove(ctx, userID, feedbackID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoVoteToRemove
		}
		return err
	}
	s.invalidate(ctx, feedbackID)
	return nil
}

func (s *FeedbackService) authorize(ctx context.Context, callerID, id uint) error {
	feedback, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if feedback.AuthorID != callerID {
		s.log.WithFields(logrus.Fields{"feedback_id": id, "caller_id": callerID}).Warn("Rejected change by non-author")
		return ErrForbidden
	}
	return nil
}

// voteCount reads through the cache when one is configured. Cache failures
// fall back to the database. The generation is taken before counting so a
// vote that lands in between keeps the stale count out of the cache.
func (s *FeedbackService) voteCount(ctx context.Context, feedbackID uint) (int64, error) {
	cacheable := false
	var gen int64
	if s.cache != nil {
		count, ok, err := s.cache.Get(ctx, feedbackID)
		switch {
		case err != nil:
			s.log.WithError(err).Warn("Vote count cache read failed")
		case ok:
			return count, nil
		default:
			if gen, err = s.cache.Generation(ctx, feedbackID); err != nil {
				s.log.WithError(err).Warn("Vote count cache read failed")
			} else {
				cacheable = true
			}
		}
	}

	count, err := s.votes.Count(ctx, feedbackID)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, feedbackID, gen, count); err != nil {
			s.log.WithError(err).Warn("Vote count cache write failed")
		}
	}
	return count, nil
}

func (s *FeedbackService) invalidate(ctx context.Context, feedbackID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, feedbackID); err != nil {
		s.log.WithError(err).WithField("feedback_id", feedbackID).Warn("Vote count cache invalidation failed")
	}
}
