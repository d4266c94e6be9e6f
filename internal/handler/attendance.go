package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusattend/internal/apperr"
	"campusattend/internal/attendance"
)

// ListAttendance returns records filtered by ?event_id= or ?student_id=.
func (h *Handler) ListAttendance(c *gin.Context) {
	records, err := h.Recorder.List(c.Request.Context(), c.Query("event_id"), c.Query("student_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// MarkAttendance records a verified student as present at an event.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req struct {
		EventID   string `json:"event_id"`
		StudentID string `json:"student_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	rec, err := h.Recorder.Mark(c.Request.Context(), req.EventID, req.StudentID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Attendance marked successfully", "attendance_id": rec.ID})
}

// DeleteAttendance removes one record; an unknown id still succeeds.
func (h *Handler) DeleteAttendance(c *gin.Context) {
	if err := h.Recorder.Unmark(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted"})
}
