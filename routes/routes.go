package routes

import (
	"net/http"

	"wordcat/handlers"
	"wordcat/middleware"
	"wordcat/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	studentHandler *handlers.StudentHandler,
	adminHandler *handlers.AdminHandler,
	authService *services.AuthService,
) {
	// API routes
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", studentHandler.Register)
		api.GET("/results/:id", studentHandler.GetResult)
		api.GET("/results/:id/detail", studentHandler.GetResultDetail)

		// Student routes (require the identity token from registration)
		student := api.Group("/")
		student.Use(middleware.StudentAuth(authService))
		{
			student.GET("/test", studentHandler.GetTest)
			student.POST("/submit-test", studentHandler.SubmitTest)
			student.GET("/my-result", studentHandler.MyResult)
			student.GET("/my-results", studentHandler.MyResults)
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("/")
			protected.Use(middleware.AdminAuth(authService))
			{
				protected.GET("/dashboard", adminHandler.Dashboard)
				protected.GET("/question-analysis", adminHandler.QuestionAnalysis)
				protected.GET("/student-analysis", adminHandler.StudentAnalysis)
				protected.GET("/category-analysis", adminHandler.CategoryAnalysis)
				protected.GET("/questions/:id/analysis", adminHandler.QuestionDetail)
				protected.GET("/export", adminHandler.ExportData)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
