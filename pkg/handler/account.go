package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

type provisionRequest struct {
	Username string `json:"username"`
}

type pinRequest struct {
	CurrentPIN string `json:"current_pin"`
	PIN        string `json:"pin" binding:"required"`
}

// Provision registers the caller on first contact and returns the user with
// its deposit addresses.
func (h *Handler) Provision(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Account.Provision(c.Request.Context(), id, req.Username)
	if err != nil {
		logrus.WithError(err).WithField("telegram_id", id).Error("provision")
		newErrorResponse(c, http.StatusInternalServerError, "cannot create user")
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"user": user,
	})
}

func (h *Handler) SetPIN(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "pin is required")
		return
	}

	err := h.service.Account.SetPIN(c.Request.Context(), id, req.CurrentPIN, req.PIN)
	switch {
	case errors.Is(err, models.ErrPinFormat):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, models.ErrPinMismatch):
		newErrorResponse(c, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, models.ErrPinChangeBlocked):
		newErrorResponse(c, http.StatusConflict, err.Error())
		return
	case errors.Is(err, models.ErrPinChangeLocked):
		newErrorResponse(c, http.StatusTooManyRequests, err.Error())
		return
	case errors.Is(err, models.ErrUserNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		logrus.WithError(err).WithField("telegram_id", id).Error("set pin")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"status": "ok",
	})
}
