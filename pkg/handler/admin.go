package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Reconcile lists payouts recorded in the ledger that never got a dispatch outcome.
func (h *Handler) Reconcile(c *gin.Context) {
	recs, err := h.service.Reconciliation.Undispatched(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("reconcile")
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"count": len(recs),
		"data":  recs,
	})
}
