package main

import (
	"log"
	"net/http"

	"github.com/UttkarrshhPal/questa-quiz/internal/config"
	"github.com/UttkarrshhPal/questa-quiz/internal/database"
	"github.com/UttkarrshhPal/questa-quiz/internal/handlers"
	"github.com/UttkarrshhPal/questa-quiz/internal/middleware"
	"github.com/UttkarrshhPal/questa-quiz/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Questa Quiz API
// @version         1.0
// @description     Quiz authoring and response collection API
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
	quizService := services.NewQuizService(db)
	responseService := services.NewResponseService(db)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	responseHandler := handlers.NewResponseHandler(responseService, quizService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AppURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public surface: share-link fetch and anonymous submission.
		api.GET("/quiz/:id", quizHandler.GetQuiz)
		api.POST("/response", responseHandler.SubmitResponse)

		owned := api.Group("")
		owned.Use(middleware.JWTAuth(authService))
		{
			owned.POST("/quiz", quizHandler.CreateQuiz)
			owned.GET("/quiz", quizHandler.ListQuizzes)
			owned.PATCH("/quiz/:id", quizHandler.ReplaceQuiz)
			owned.DELETE("/quiz/:id", quizHandler.DeleteQuiz)
			owned.GET("/quiz/:id/has-responses", quizHandler.HasResponses)
			owned.GET("/quiz/:id/responses", responseHandler.ListResponses)
			owned.GET("/quiz/:id/responses/export", responseHandler.ExportResponses)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
