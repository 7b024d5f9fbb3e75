package httpapi

import (
	"github.com/labstack/echo/v4"
)

func register(api *echo.Group, h *handler) {
	authed := requireUser(h.auth)

	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", h.Me, authed)
	api.PUT("/auth/me", h.UpdateProfile, authed)

	api.GET("/jobs", h.ListJobs, optionalUser(h.auth))
	api.GET("/jobs/mine", h.ListMyJobs, authed)
	api.POST("/jobs", h.CreateJob, authed)
	api.GET("/jobs/:id", h.GetJob)
	api.PATCH("/jobs/:id/status", h.UpdateJobStatus, authed)
	api.GET("/jobs/:id/bids", h.ListBidsForJob)
	api.POST("/jobs/:id/bids", h.PlaceBid, authed)

	api.GET("/bids/mine", h.ListMyBids, authed)
	api.POST("/bids/:id/accept", h.AcceptBid, authed)
	api.POST("/bids/:id/reject", h.RejectBid, authed)

	api.GET("/notifications", h.ListNotifications, authed)
	api.GET("/notifications/unread-count", h.UnreadCount, authed)
	api.POST("/notifications/:id/read", h.MarkRead, authed)
	api.POST("/notifications/read-all", h.MarkAllRead, authed)

	api.GET("/admin/users", h.ListUsers, authed)
	api.GET("/admin/stats", h.Stats, authed)
	api.POST("/admin/users/:id/verify", h.VerifyUser, authed)
	api.POST("/admin/users/:id/reject", h.RejectUser, authed)
}
