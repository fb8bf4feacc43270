package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/feedbackboard/backend/internal/models"
)

// MockFeedbackService is a mock implementation of the FeedbackService interface
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Create(ctx context.Context, authorID uint, title, content string, category models.Category) (*models.Feedback, error) {
	args := m.Called(ctx, authorID, title, content, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Get(ctx context.Context, id uint) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context, filters models.FeedbackFilters) (*models.FeedbackPage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackPage), args.Error(1)
}

func (m *MockFeedbackService) Update(ctx context.Context, callerID, id uint, upd models.FeedbackUpdate) (*models.Feedback, error) {
	args := m.Called(ctx, callerID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Delete(ctx context.Context, callerID, id uint) error {
	return m.Called(ctx, callerID, id).Error(0)
}

func (m *MockFeedbackService) Vote(ctx context.Context, userID, feedbackID uint) error {
	return m.Called(ctx, userID, feedbackID).Error(0)
}

func (m *MockFeedbackService) Unvote(ctx context.Context, userID, feedbackID uint) error {
	return m.Called(ctx, userID, feedbackID).Error(0)
}
