package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackboard/backend/internal/models"
)

func TestVoteStore_AddRemove(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	author := s.user(t, "author@example.com")
	voter := s.user(t, "voter@example.com")
	fb := s.feedback(t, author.ID, "Votable", models.CategoryFeatureRequest)

	voted, err := s.votes.HasVoted(ctx, voter.ID, fb.ID)
	require.NoError(t, err)
	assert.False(t, voted)

	vote, err := s.votes.Add(ctx, voter.ID, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, voter.ID, vote.UserID)

	voted, err = s.votes.HasVoted(ctx, voter.ID, fb.ID)
	require.NoError(t, err)
	assert.True(t, voted)

	_, err = s.votes.Add(ctx, voter.ID, fb.ID)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	n, err := s.votes.Count(ctx, fb.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.votes.Remove(ctx, voter.ID, fb.ID))
	assert.ErrorIs(t, s.votes.Remove(ctx, voter.ID, fb.ID), ErrNotFound)

	n, err = s.votes.Count(ctx, fb.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVoteStore_AddMissingFeedback(t *testing.T) {
	s := newStores(t)
	voter := s.user(t, "voter@example.com")

	_, err := s.votes.Add(context.Background(), voter.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoteStore_ConcurrentAddSingleRow(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	author := s.user(t, "author@example.com")
	voter := s.user(t, "voter@example.com")
	fb := s.feedback(t, author.ID, "Hot", models.CategoryFeatureRequest)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.votes.Add(ctx, voter.ID, fb.ID)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrDuplicateVote)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	n, err := s.votes.Count(ctx, fb.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestVoteStore_CountMany(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()
	author := s.user(t, "author@example.com")
	a := s.feedback(t, author.ID, "A", models.CategoryBugReport)
	b := s.feedback(t, author.ID, "B", models.CategoryBugReport)
	c := s.feedback(t, author.ID, "C", models.CategoryBugReport)

	for _, email := range []string{"v1@example.com", "v2@example.com"} {
		v := s.user(t, email)
		_, err := s.votes.Add(ctx, v.ID, a.ID)
		require.NoError(t, err)
	}
	_, err := s.votes.Add(ctx, author.ID, b.ID)
	require.NoError(t, err)

	counts, err := s.votes.CountMany(ctx, []uint{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{a.ID: 2, b.ID: 1}, counts)

	counts, err = s.votes.CountMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
