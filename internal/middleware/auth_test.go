package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware_test_secret_at_least_32_chars"

func newAuthRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(security.NewJWTVerifier(testSecret)))
	if rl != nil {
		r.Use(UserRateLimit(rl))
	}
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func TestAuth(t *testing.T) {
	token, err := security.GenerateJWT("user-7", "", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "Valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "user-7"},
		{name: "Missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	r := newAuthRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestUserRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 100, time.Minute)
	defer rl.Close()
	r := newAuthRouter(rl)

	token, err := security.GenerateJWT("user-8", "", testSecret, time.Hour)
	require.NoError(t, err)

	send := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil).WithContext(context.Background())
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
