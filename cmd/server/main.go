package main

import (
	"log"

	"github.com/justinharry4/qz-trivia-api/internal/config"
	"github.com/justinharry4/qz-trivia-api/internal/database"
	"github.com/justinharry4/qz-trivia-api/internal/handlers"
	"github.com/justinharry4/qz-trivia-api/internal/middleware"
	"github.com/justinharry4/qz-trivia-api/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           QZ Trivia API
// @version         1.0
// @description     Quiz-hosting backend seeded from the Open Trivia DB
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}
	catalogService := services.NewCatalogService(db)
	samplerService := services.NewSamplerService(db)
	scoringService := services.NewScoringService(db)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(catalogService)
	questionHandler := handlers.NewQuestionHandler(samplerService)
	resultHandler := handlers.NewResultHandler(scoringService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", handlers.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.DELETE("/:id", middleware.AdminAuth(authService), quizHandler.DeleteQuiz)
			quizzes.GET("/:id/questions", questionHandler.GetQuizQuestions)
			quizzes.POST("/:id/results", resultHandler.CreateResult)
			quizzes.GET("/:id/results/:resultId", resultHandler.GetResult)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
