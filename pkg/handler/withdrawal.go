package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/middleware"
)

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

type chainRequest struct {
	Chain string `json:"chain" binding:"required"`
}

type currencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func telegramID(c *gin.Context) (int64, bool) {
	id, ok := middleware.TelegramID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "telegram id missing")
	}
	return id, ok
}

// Message routes free text: a new request, a bank name answer or a PIN.
func (h *Handler) Message(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "text is required")
		return
	}

	out, err := h.service.Withdrawal.HandleText(c.Request.Context(), id, req.Text)
	if err != nil {
		logrus.WithError(err).WithField("telegram_id", id).Error("handle message")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOutcome(c, out)
}

func (h *Handler) SelectChain(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	var req chainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "chain is required")
		return
	}

	out, err := h.service.Withdrawal.SelectChain(c.Request.Context(), id, req.Chain)
	if err != nil {
		logrus.WithError(err).WithField("telegram_id", id).Error("select chain")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOutcome(c, out)
}

func (h *Handler) SelectCurrency(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "currency is required")
		return
	}

	out, err := h.service.Withdrawal.SelectCurrency(c.Request.Context(), id, req.Currency)
	if err != nil {
		logrus.WithError(err).WithField("telegram_id", id).Error("select currency")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOutcome(c, out)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	out, err := h.service.Withdrawal.Cancel(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).WithField("telegram_id", id).Error("cancel")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOutcome(c, out)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := telegramID(c)
	if !ok {
		return
	}
	sess, found, err := h.service.Withdrawal.Session(c.Request.Context(), id)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if !found {
		newErrorResponse(c, http.StatusNotFound, models.ErrSessionExpired.Error())
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"session": sess,
	})
}
