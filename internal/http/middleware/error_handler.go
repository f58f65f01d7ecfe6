package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/logger"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Ошибки из c.Errors и panic превращаются в ответ по AppError; детали остаются в логе.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"panic":      fmt.Sprint(r),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(response.RequestIDKey),
				}).Error("Panic in handler")
				if !c.Writer.Written() {
					response.Error(c, fmt.Errorf("panic: %v", r))
				}
				c.Abort()
			}
		}()

		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		response.Error(c, c.Errors.Last().Err)
	}
}

// RequestLogger пишет одну строку на запрос.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.Log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(response.RequestIDKey),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("HTTP request")
			return
		}
		entry.Info("HTTP request")
	}
}
