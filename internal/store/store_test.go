package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/testhelpers"
)

type stores struct {
	db        *gorm.DB
	users     *UserStore
	feedbacks *FeedbackStore
	votes     *VoteStore
}

func newStores(t *testing.T) stores {
	db := testhelpers.NewSQLiteDB(t)
	return stores{
		db:        db,
		users:     NewUserStore(db, bcrypt.MinCost),
		feedbacks: NewFeedbackStore(db),
		votes:     NewVoteStore(db),
	}
}

func (s stores) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := s.users.Create(context.Background(), email, "secret", nil)
	require.NoError(t, err)
	return u
}

func (s stores) feedback(t *testing.T, author uint, title string, category models.Category) *models.Feedback {
	t.Helper()
	fb, err := s.feedbacks.Create(context.Background(), title, "content of "+title, category, author)
	require.NoError(t, err)
	return fb
}
