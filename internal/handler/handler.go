// Package handler wires the HTTP surface to the services. Handlers bind
// JSON, call one service operation and translate its error kind into a
// status; unexpected errors are logged and never echoed to clients.
package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusattend/internal/apperr"
	"campusattend/internal/attendance"
	"campusattend/internal/cloudinary"
	"campusattend/internal/event"
	"campusattend/internal/identity"
	"campusattend/internal/session"
	"campusattend/internal/stats"
)

// Handler carries the service dependencies of the HTTP layer.
type Handler struct {
	Users    *identity.Service
	Events   *event.Service
	Recorder *attendance.Service
	Stats    *stats.Service
	Sessions session.Store
	Cloud    *cloudinary.Client // nil when not configured

	JWTIssuer     string
	JWTSigningKey string
	AccessTTL     time.Duration
	SecureCookies bool
}

// fail writes the error response for err. Business errors carry their
// message; anything unclassified becomes a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
