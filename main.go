package main

import (
	"log"

	"wordcat/config"
	"wordcat/handlers"
	"wordcat/models"
	"wordcat/routes"
	"wordcat/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Student{},
		&models.TestResult{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Load the question bank; the server cannot run without it
	bank, err := services.LoadQuestionBank(cfg.QuestionsFile)
	if err != nil {
		log.Fatal("Failed to load question bank:", err)
	}
	log.Printf("Loaded %d questions from %s", bank.Len(), cfg.QuestionsFile)

	// Initialize services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPassword)
	studentService := services.NewStudentService(db)
	sittingService := services.NewSittingService(bank, redisClient, cfg.TestSize)
	resultService := services.NewResultService(db)
	analyticsService := services.NewAnalyticsService(db, bank)

	// Initialize handlers
	studentHandler := handlers.NewStudentHandler(studentService, sittingService, resultService, authService, bank)
	adminHandler := handlers.NewAdminHandler(authService, analyticsService, resultService)

	// Setup Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(router, studentHandler, adminHandler, authService)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
