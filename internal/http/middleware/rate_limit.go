package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
)

// RateLimitMiddleware ограничивает количество запросов с одного IP.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":      err.Error(),
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(response.RequestIDKey),
			}).Error("Rate limiter unavailable")
			response.Error(c, apperror.Wrap(err, apperror.ErrCodeInternal, apperror.ErrRateLimitUnavailable.Message))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			response.TooManyRequests(c, "слишком много запросов, попробуйте позже")
			c.Abort()
			return
		}

		c.Next()
	}
}
