package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/salary-backend/internal/interface/http/response"
	"github.com/ignatzorin/salary-backend/internal/logger"
)

// ContextAdminKey - ключ gin.Context с именем прошедшего проверку администратора.
const ContextAdminKey = "admin"

// AdminCredentials - учётные данные администратора.
// Если задан PasswordHash (bcrypt), Password не используется.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Verify сравнивает имя и пароль за время, не зависящее от совпадения префикса.
func (a AdminCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1

	var passOK bool
	if a.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	} else {
		passOK = a.Password != "" && subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	}

	return userOK && passOK
}

// AdminAuth проверяет HTTP Basic авторизацию администратора.
func AdminAuth(creds AdminCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !creds.Verify(username, password) {
			logger.Log.WithFields(logrus.Fields{
				"path":       c.Request.URL.Path,
				"client_ip":  c.ClientIP(),
				"request_id": c.GetString(response.RequestIDKey),
			}).Warn("Admin authentication failed")

			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Unauthorized(c, "неверное имя пользователя или пароль")
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, username)
		c.Next()
	}
}
