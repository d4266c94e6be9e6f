package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusattend/internal/apperr"
	"campusattend/internal/auth"
	"campusattend/internal/identity"
)

// Register creates a pending student account.
func (h *Handler) Register(c *gin.Context) {
	var in identity.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if _, err := h.Users.Register(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful. Awaiting admin verification."})
}

// Login checks credentials, opens a server-side session and issues a
// bearer token for non-browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	user, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Sessions.Create(c.Request.Context(), user.ID, user.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(auth.CookieName, token, 0, "/", "", h.SecureCookies, true)

	bearer, exp, err := auth.Issue(user.ID, user.Role, h.JWTIssuer, h.JWTSigningKey, h.AccessTTL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      bearer,
		"expires_at": exp.Unix(),
	})
}

// Logout drops the server-side session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		_ = h.Sessions.Delete(c.Request.Context(), token)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Check reports whether the request carries a live principal.
func (h *Handler) Check(c *gin.Context) {
	p, ok := auth.From(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	user, err := h.Users.Get(c.Request.Context(), p.UserID)
	if err != nil {
		// Session outliving a deleted account reads as unauthenticated.
		if apperr.KindOf(err) == apperr.KindNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}
