package main

import (
	"github.com/credboost/backend/internal/handlers"
	"github.com/credboost/backend/internal/middleware"
	"github.com/credboost/backend/internal/models"
	"github.com/credboost/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// Public submission surface, rate limited per IP. Identity is
	// optional here: forms carrying the require-authentication flag
	// check it per request.
	publicLimiter := middleware.NewRateLimiter(10, 20)
	submissionHandler := handlers.NewSubmissionHandler(db)
	public := r.Group("/public", publicLimiter.Middleware(), middleware.AuthOptional())
	{
		public.GET("/forms/:spaceId/:formId", submissionHandler.GetForm)
		public.GET("/links/:link", submissionHandler.GetFormByLink)
		public.POST("/forms/:spaceId/:formId/submissions", submissionHandler.Submit)
	}

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Onboarding and subscription
			onboardingHandler := handlers.NewOnboardingHandler(db)
			protected.POST("/onboarding", onboardingHandler.Complete)
			protected.GET("/subscription", onboardingHandler.Subscription)

			// Spaces
			spaceHandler := handlers.NewSpaceHandler(db)
			protected.GET("/spaces", spaceHandler.List)
			protected.POST("/spaces", spaceHandler.Create)
			protected.GET("/spaces/:id", spaceHandler.Get)
			protected.PUT("/spaces/:id", spaceHandler.Update)
			protected.DELETE("/spaces/:id", spaceHandler.Delete)

			// Forms
			formHandler := handlers.NewFormHandler(db)
			protected.GET("/spaces/:id/forms", formHandler.ListBySpace)
			protected.POST("/spaces/:id/forms", formHandler.Create)
			protected.GET("/forms/:id", formHandler.Get)
			protected.DELETE("/forms/:id", formHandler.Delete)
			protected.GET("/forms/:id/reviews", formHandler.ListReviews)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			systemLogHandler := handlers.NewSystemLogHandler(db)
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)

			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
		}
	}
}
