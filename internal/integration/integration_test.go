package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedbackboard/backend/config"
	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/server"
	"github.com/feedbackboard/backend/internal/testhelpers"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := testhelpers.NewPostgresDB(t)
	return server.BuildRouter(server.Dependencies{
		Config: &config.Config{
			JWTSecret:    "integration-secret-that-is-long-enough",
			TokenTTL:     time.Hour,
			BcryptCost:   bcrypt.MinCost,
			VoteCacheTTL: time.Minute,
		},
		DB:  db,
		Log: testhelpers.QuietLogger(),
	})
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, r *gin.Engine, email string) string {
	creds := map[string]string{"email": email, "password": "pw123"}
	require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/api/users/register", "", creds).Code)
	w := call(t, r, http.MethodPost, "/api/users/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct{ Token string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestConcurrentVotesPostgres(t *testing.T) {
	r := setupRouter(t)
	author := token(t, r, "author@example.com")
	voter := token(t, r, "voter@example.com")

	w := call(t, r, http.MethodPost, "/api/feedbacks", author, map[string]interface{}{"title": "Bug", "content": "Crashes", "category": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var fb models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))

	const workers = 10
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = call(t, r, http.MethodPost, fmt.Sprintf("/api/vote/%d", fb.ID), voter, nil).Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		default:
			assert.Equal(t, http.StatusBadRequest, code)
		}
	}
	assert.Equal(t, 1, created)

	w = call(t, r, http.MethodGet, fmt.Sprintf("/api/feedbacks/%d", fb.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	assert.EqualValues(t, 1, fb.Votes)
}

func TestCheckConstraintsPostgres(t *testing.T) {
	r := setupRouter(t)
	author := token(t, r, "author@example.com")

	w := call(t, r, http.MethodPost, "/api/feedbacks", author, map[string]interface{}{"title": "Bug", "content": "Crashes", "category": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodGet, "/api/feedbacks?category=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.FeedbackPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Zero(t, page.Pagination.Total)
	assert.Empty(t, page.Feedbacks)
}
