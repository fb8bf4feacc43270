package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackboard/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
	calls  int
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	v.calls++
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.claims, v.err
}

func newTestRouter(mw ...gin.HandlerFunc) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	reached := false
	r.GET("/protected", func(c *gin.Context) {
		reached = true
		id, ok := IdentityFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "email": id.Email})
	})
	return r, &reached
}

func TestAuthMiddleware(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: 3, Email: "u@example.com"}}

	tests := []struct {
		name   string
		header string
		status int
		calls  int
	}{
		{"missing header", "", http.StatusUnauthorized, 0},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, 0},
		{"no token", "Bearer", http.StatusUnauthorized, 0},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, 1},
		{"valid token", "Bearer good", http.StatusOK, 1},
		{"lowercase scheme", "bearer good", http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator.calls = 0
			r, reached := newTestRouter(AuthMiddleware(validator))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.calls, validator.calls)
			assert.Equal(t, tt.status == http.StatusOK, *reached, "handler reached")
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":3,"email":"u@example.com"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestIdentityFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := IdentityFromContext(c)
	assert.False(t, ok, "nothing stored")

	c.Set(ContextIdentity, uint(3))
	_, ok = IdentityFromContext(c)
	assert.False(t, ok, "raw id is not an identity")

	c.Set(ContextIdentity, types.Identity{Email: "u@example.com"})
	_, ok = IdentityFromContext(c)
	assert.False(t, ok, "zero user id")

	c.Set(ContextIdentity, types.Identity{UserID: 3, Email: "u@example.com"})
	id, ok := IdentityFromContext(c)
	require.True(t, ok)
	assert.Equal(t, types.Identity{UserID: 3, Email: "u@example.com"}, id)
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "Recovered from panic")
	assert.Contains(t, buf.String(), "boom")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r, _ := newTestRouter(RequestLogger(log))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), `"path":"/protected"`)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r, _ := newTestRouter(CORS([]string{"http://localhost:5173"}))

	req := httptest.NewRequest(http.MethodOptions, "/protected", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/protected", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
