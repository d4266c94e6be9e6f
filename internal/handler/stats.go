package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the dashboard counts.
func (h *Handler) GetStats(c *gin.Context) {
	snap, err := h.Stats.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
