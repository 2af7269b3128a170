package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/controllers"
	"github.com/qmc/portal/internal/middleware"
	"github.com/qmc/portal/internal/pkg/websocket"
)

// Controllers groups every controller the router mounts
type Controllers struct {
	View      *controllers.ViewController
	Admission *controllers.AdmissionController
	Console   *controllers.ConsoleController
	Branding  *controllers.BrandingController
	Staff     *controllers.StaffController
	Records   *controllers.RecordsController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	secureCookies bool,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", c.Health.Health)
	v1.GET("/ws", wsHandler.HandleConnection)

	// --- Public pages ---
	views := v1.Group("/views")
	views.Use(middleware.Visitor(secureCookies))
	{
		views.GET("", c.View.CurrentView)
		views.GET("/:view", c.View.Navigate)
	}
	v1.GET("/config", c.View.GetSiteConfig)
	v1.GET("/home/quote", c.View.GetQuote)
	v1.GET("/staff", c.View.GetStaffDirectory)

	// --- Admissions ---
	admissions := v1.Group("/admissions")
	{
		admissions.POST("", c.Admission.Submit)
		admissions.POST("/chat", c.Admission.Chat)

		drafts := admissions.Group("/drafts")
		{
			drafts.POST("", c.Admission.CreateDraft)
			drafts.GET("/:id", c.Admission.GetDraft)
			drafts.PATCH("/:id", c.Admission.UpdateDraft)
			drafts.DELETE("/:id", c.Admission.DiscardDraft)
			drafts.POST("/:id/camera", c.Admission.StartCamera)
			drafts.DELETE("/:id/camera", c.Admission.CancelCamera)
			drafts.PUT("/:id/camera/frame", c.Admission.PushFrame)
			drafts.POST("/:id/camera/capture", c.Admission.CapturePhoto)
			drafts.PUT("/:id/photo", c.Admission.UploadPhoto)
			drafts.POST("/:id/submit", c.Admission.SubmitDraft)
			drafts.POST("/:id/reset", c.Admission.ResetDraft)
		}
	}

	// --- Admin console ---
	v1.POST("/admin/login", c.Console.Login)

	admin := v1.Group("/admin")
	admin.Use(authMiddleware.SessionRequired())
	{
		admin.POST("/logout", c.Console.Logout)
		admin.GET("/dashboard", c.Console.Dashboard)
		admin.GET("/security", c.Console.GetSecurity)
		admin.PUT("/security", c.Console.UpdateSecurity)

		admin.GET("/branding", c.Branding.GetBranding)
		admin.PUT("/branding", c.Branding.UpdateBranding)
		admin.PUT("/branding/hero-image", c.Branding.SetHeroImage)
		admin.PUT("/branding/director-image", c.Branding.SetDirectorImage)
		admin.GET("/quote", c.Branding.GetQuote)
		admin.PUT("/quote", c.Branding.UpdateQuote)

		admin.GET("/staff", c.Staff.ListStaff)
		admin.POST("/staff", c.Staff.CreateStaff)
		admin.PUT("/staff/:id", c.Staff.UpdateStaff)
		admin.DELETE("/staff/:id", c.Staff.DeleteStaff)
		admin.PUT("/staff/:id/photo", c.Staff.UpdateStaffPhoto)

		admin.GET("/applications", c.Records.ListApplications)
		admin.GET("/registrations", c.Records.GetRegistrations)
		admin.POST("/registrations", c.Records.IssueRegistration)
		admin.GET("/logs", c.Records.ListLogs)
		admin.DELETE("/logs", c.Records.ClearLogs)
	}
}
