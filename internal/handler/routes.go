package handler

import (
	"github.com/gin-gonic/gin"

	"campusattend/internal/auth"
)

// Routes registers the API surface. Principal resolution runs on every
// request; the role gates sit on the mutating admin routes.
func (h *Handler) Routes(r gin.IRouter) {
	r.Use(auth.Resolve(h.Sessions, h.JWTSigningKey, h.JWTIssuer))

	api := r.Group("/api")

	ag := api.Group("/auth")
	ag.POST("/register", h.Register)
	ag.POST("/login", h.Login)
	ag.POST("/logout", h.Logout)
	ag.GET("/check", h.Check)

	ug := api.Group("/users")
	ug.GET("", auth.RequireAdmin(), h.ListUsers)
	ug.GET("/:id", auth.RequireSelfOrAdmin("id"), h.GetUser)
	ug.PUT("/:id", auth.RequireSelfOrAdmin("id"), h.UpdateUser)
	ug.DELETE("/:id", auth.RequireAdmin(), h.DeleteUser)
	ug.POST("/:id/verify", auth.RequireAdmin(), h.VerifyUser)
	ug.PUT("/:id/role", auth.RequireAdmin(), h.SetUserRole)
	ug.POST("/:id/photo", auth.RequireSelfOrAdmin("id"), h.UploadUserPhoto)

	eg := api.Group("/events")
	eg.GET("", h.ListEvents)
	eg.POST("", auth.RequireAdmin(), h.CreateEvent)
	eg.PUT("/:id", auth.RequireAdmin(), h.UpdateEvent)
	eg.DELETE("/:id", auth.RequireAdmin(), h.DeleteEvent)

	tg := api.Group("/attendance")
	tg.GET("", h.ListAttendance)
	tg.POST("", auth.RequireAdmin(), h.MarkAttendance)
	tg.DELETE("/:id", auth.RequireAdmin(), h.DeleteAttendance)

	api.GET("/stats", auth.RequireAdmin(), h.GetStats)
}
