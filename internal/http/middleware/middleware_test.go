package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Silence()
	m.Run()
}

func newAdminRouter(creds AdminCredentials) *gin.Engine {
	r := gin.New()
	r.Use(AdminAuth(creds))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAdminKey))
	})
	return r
}

func TestAdminAuth_MissingCredentials(t *testing.T) {
	r := newAdminRouter(AdminCredentials{Username: "admin", Password: "secret"})

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="admin"`, w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAdminAuth_PlainPassword(t *testing.T) {
	r := newAdminRouter(AdminCredentials{Username: "admin", Password: "secret"})

	tests := []struct {
		name     string
		user     string
		pass     string
		expected int
	}{
		{"valid", "admin", "secret", http.StatusOK},
		{"wrong password", "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "root", "secret", http.StatusUnauthorized},
		{"empty", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
			req.SetBasicAuth(tt.user, tt.pass)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestAdminAuth_PasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := newAdminRouter(AdminCredentials{Username: "admin", Password: "ignored", PasswordHash: string(hash)})

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.SetBasicAuth("admin", "hashed-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	// При заданном хэше открытый пароль не принимается
	req, _ = http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.SetBasicAuth("admin", "ignored")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCredentials_EmptyPasswordNeverMatches(t *testing.T) {
	creds := AdminCredentials{Username: "admin"}
	assert.False(t, creds.Verify("admin", ""))
}

func TestRateLimitMiddleware_DeniesOverQuota(t *testing.T) {
	limiter, err := ratelimit.New("2-M", "test", nil)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "198.51.100.10:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func TestRateLimitMiddleware_LimiterFailure(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(brokenLimiter{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/limited", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(response.RequestIDKey))
	})

	t.Run("generates when missing", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/id", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps valid client id", func(t *testing.T) {
		id := uuid.NewString()
		req, _ := http.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, id, w.Body.String())
	})

	t.Run("replaces garbage", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Body.String())
	})
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestErrorHandler_UsesContextErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("something broke"))
	})

	req, _ := http.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "something broke")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
