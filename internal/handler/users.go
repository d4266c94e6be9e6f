package handler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campusattend/internal/apperr"
	"campusattend/internal/cloudinary"
	"campusattend/internal/identity"
)

// ListUsers returns all accounts, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if users == nil {
		users = []identity.Public{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one account.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser applies a profile patch.
func (h *Handler) UpdateUser(c *gin.Context) {
	var p identity.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.Users.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteUser removes the account and its attendance records.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// VerifyUser marks the student verified and stores the issued credential.
func (h *Handler) VerifyUser(c *gin.Context) {
	var req struct {
		QRCode string `json:"qr_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.Users.Verify(c.Request.Context(), c.Param("id"), req.QRCode); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User verified successfully"})
}

// SetUserRole switches a user between student and admin.
func (h *Handler) SetUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.Users.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

// UploadUserPhoto stores a profile photo in Cloudinary and saves its URL on
// the user. Accepts a multipart file field or a JSON base64 data URL.
func (h *Handler) UploadUserPhoto(c *gin.Context) {
	if h.Cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	var result *cloudinary.UploadResult
	var err error
	switch {
	case strings.Contains(c.ContentType(), "multipart/form-data"):
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			h.fail(c, apperr.Validation("file field required"))
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(file)
		if ferr != nil {
			h.fail(c, ferr)
			return
		}
		result, err = h.Cloud.UploadBytes(data, header.Filename)
	default:
		var body struct {
			Data string `json:"data"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil || body.Data == "" {
			h.fail(c, apperr.Validation("provide a file or a base64 data URL"))
			return
		}
		result, err = h.Cloud.UploadBase64(body.Data)
	}
	if err != nil {
		log.Printf("cloudinary upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}

	url := result.SecureURL
	if err := h.Users.Update(c.Request.Context(), c.Param("id"), identity.Patch{ProfilePhoto: &url}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile photo updated", "profile_photo": url})
}
