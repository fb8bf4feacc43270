package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/store"
	"github.com/feedbackboard/backend/internal/testhelpers"
)

type fixture struct {
	db        *gorm.DB
	logs      *test.Hook
	auth      *AuthService
	users     *UserService
	feedbacks *FeedbackService
	userStore *store.UserStore
	cache     *fakeCache
	avatars   *fakeAvatars
}

func newFixture(t *testing.T) *fixture {
	db := testhelpers.NewSQLiteDB(t)
	log := testhelpers.QuietLogger()

	f := &fixture{
		db:        db,
		logs:      test.NewLocal(log),
		auth:      NewAuthService(testSecret, time.Hour),
		userStore: store.NewUserStore(db, bcrypt.MinCost),
		cache:     newFakeCache(),
		avatars:   &fakeAvatars{},
	}
	f.users = NewUserService(f.userStore, f.auth, f.avatars, log)
	f.feedbacks = NewFeedbackService(store.NewFeedbackStore(db), store.NewVoteStore(db), f.cache, log)
	return f
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), email, "pw123", nil)
	require.NoError(t, err)
	return u
}

func (f *fixture) submit(t *testing.T, author uint) *models.Feedback {
	t.Helper()
	fb, err := f.feedbacks.Create(context.Background(), author, "Bug", "Crashes", models.CategoryBugReport)
	require.NoError(t, err)
	return fb
}

type fakeCache struct {
	mu          sync.Mutex
	counts      map[uint]int64
	generations map[uint]int64
	invalidated []uint
	fail        bool
	// beforeSet runs between the database count and the conditional write
	beforeSet func()
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: map[uint]int64{}, generations: map[uint]int64{}}
}

var errCacheDown = errors.New("cache down")

func (c *fakeCache) Get(_ context.Context, id uint) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return 0, false, errCacheDown
	}
	n, ok := c.counts[id]
	return n, ok, nil
}

func (c *fakeCache) Generation(_ context.Context, id uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return 0, errCacheDown
	}
	return c.generations[id], nil
}

func (c *fakeCache) Set(_ context.Context, id uint, gen, n int64) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	if c.generations[id] == gen {
		c.counts[id] = n
	}
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
	if c.fail {
		return errCacheDown
	}
	c.generations[id]++
	delete(c.counts, id)
	return nil
}

type fakeAvatars struct {
	key         string
	contentType string
	data        []byte
	err         error
	afterPut    func()
}

func (a *fakeAvatars) PutObject(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.afterPut != nil {
		defer a.afterPut()
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	a.key, a.contentType, a.data = key, contentType, data
	return "https://avatars.example.com/" + key, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngBody(size int) io.Reader {
	data := make([]byte, size)
	copy(data, pngHeader)
	return bytes.NewReader(data)
}
