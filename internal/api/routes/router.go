package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/api/handlers"
	"github.com/tamilsociety/tls-platform/internal/api/middleware"
	"github.com/tamilsociety/tls-platform/internal/metrics"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// --- public site ---
	public := r.Group("/project-items")
	{
		public.GET("/:id/recruitment", h.Form.GetProjectRecruitment)
		public.POST("/:id/recruitment/submit", middleware.OptionalJWT(), h.Response.SubmitProjectApplication)
	}

	// --- signed-in users ---
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}

	// --- admin dashboard ---
	admin := auth.Group("/")
	admin.Use(middleware.Admin())
	{
		admin.GET("/ws/recruitment", h.Feed.StreamRecruitment)
		admin.GET("/audit/logs", h.Audit.GetAuditLogs)

		forms := admin.Group("/recruitment-forms")
		{
			forms.GET("", h.Form.ListForms)
			forms.GET("/:id", h.Form.GetForm)
			forms.POST("", h.Form.CreateForm)
			forms.PUT("", h.Form.UpdateForm)
			forms.PUT("/:id", h.Form.UpdateForm)
			forms.DELETE("", h.Form.DeleteForm)
			forms.DELETE("/:id", h.Form.DeleteForm)
			forms.POST("/recount", h.Form.RecountAll)
			forms.POST("/:id/recount", h.Form.Recount)
		}

		responses := admin.Group("/recruitment-responses")
		{
			responses.GET("", h.Response.ListResponses)
			responses.GET("/orphans", h.Response.ListOrphans)
			responses.GET("/:id", h.Response.GetResponse)
			responses.POST("", h.Response.SubmitResponse)
			responses.PUT("", h.Response.ReviewResponse)
			responses.PUT("/:id", h.Response.ReviewResponse)
			responses.DELETE("", h.Response.DeleteResponse)
			responses.DELETE("/:id", h.Response.DeleteResponse)
		}

		projects := admin.Group("/project-items")
		{
			projects.GET("", h.ProjectItem.ListProjectItems)
			projects.GET("/:id", h.ProjectItem.GetProjectItem)
			projects.POST("", h.ProjectItem.CreateProjectItem)
			projects.POST("/:id/recruitment", h.Form.CreateProjectRecruitment)
		}
	}
}
