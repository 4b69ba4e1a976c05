package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.WithFields(logrus.Fields{"path": c.FullPath(), "status": statusCode}).Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

func wrapOutcome(c *gin.Context, out *models.Outcome) {
	wrapOkJSON(c, map[string]interface{}{
		"outcome": out,
	})
}
