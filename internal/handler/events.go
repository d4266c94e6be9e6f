package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusattend/internal/apperr"
	"campusattend/internal/event"
)

// ListEvents returns all events, most recent first.
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent stores a new active event.
func (h *Handler) CreateEvent(c *gin.Context) {
	var in event.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	e, err := h.Events.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event_id": e.ID})
}

// UpdateEvent applies a partial update.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var p event.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.Events.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent removes the event and its attendance records.
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
