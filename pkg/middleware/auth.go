package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	HeaderTelegramID = "X-Telegram-ID"
	telegramIDKey    = "telegram_id"
)

// AuthMiddleware requires a numeric X-Telegram-ID header and stores it on
// the context for TelegramID.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderTelegramID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "telegram_id is required in 'X-Telegram-ID' header"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "X-Telegram-ID must be a positive integer"})
			return
		}
		logrus.WithField("telegram_id", id).Debug("request authenticated")
		c.Set(telegramIDKey, id)
		c.Next()
	}
}

func TelegramID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(telegramIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
