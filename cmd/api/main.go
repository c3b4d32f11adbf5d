package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/webhook"
	ws "github.com/yourusername/quiz-api/internal/websocket"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	trackerRepo := pgRepo.NewTrackerRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	webhookRepo := pgRepo.NewWebhookRepo(db)

	// Live event feed
	hub := ws.NewHub()
	go hub.Run()

	// Webhook delivery, fed by every create operation
	dispatcher := webhook.NewHTTPDispatcher(webhookRepo,
		time.Duration(cfg.Webhook.TimeoutSec)*time.Second, hub)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	questionService := service.NewQuestionService(questionRepo, dispatcher)
	quizService := service.NewQuizService(quizRepo, questionRepo, trackerRepo, dispatcher)
	trackerService := service.NewTrackerService(trackerRepo, answerRepo, quizRepo, questionRepo, dispatcher)
	resultService := service.NewResultService(trackerRepo, answerRepo)
	webhookService := service.NewWebhookService(webhookRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	quizHandler := handler.NewQuizHandler(quizService)
	trackerHandler := handler.NewTrackerHandler(trackerService)
	answerHandler := handler.NewAnswerHandler(trackerService)
	resultHandler := handler.NewResultHandler(resultService)
	webhookHandler := handler.NewWebhookHandler(webhookService)
	wsHandler := handler.NewWSHandler(hub, jwtService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.POST("/api/token-auth",
		rateLimiter.Limit(middleware.TokenAuthRateLimitConfig()),
		authHandler.ObtainToken)

	api := router.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/question", questionHandler.CreateQuestion)
		api.GET("/question", questionHandler.ListQuestions)
		api.GET("/question/:id", middleware.ExtractUUIDParam("id", "questionID"), questionHandler.GetQuestion)
		api.PATCH("/question/:id", middleware.ExtractUUIDParam("id", "questionID"), questionHandler.UpdateQuestion)
		api.PUT("/question/:id", middleware.ExtractUUIDParam("id", "questionID"), questionHandler.UpdateQuestion)

		api.POST("/quiz", quizHandler.CreateQuiz)
		api.GET("/quiz", quizHandler.ListQuizzes)
		api.GET("/quiz/untaken", quizHandler.UntakenQuizzes)
		api.GET("/quiz/:id", middleware.ExtractUUIDParam("id", "quizID"), quizHandler.GetQuiz)
		api.PATCH("/quiz/:id", middleware.ExtractUUIDParam("id", "quizID"), quizHandler.UpdateQuiz)
		api.PUT("/quiz/:id", middleware.ExtractUUIDParam("id", "quizID"), quizHandler.UpdateQuiz)

		api.POST("/tracker", trackerHandler.CreateTracker)
		api.GET("/tracker", trackerHandler.ListTrackers)
		api.GET("/tracker/:id", middleware.ExtractUUIDParam("id", "trackerID"), trackerHandler.GetTracker)
		api.PATCH("/tracker/:id", middleware.ExtractUUIDParam("id", "trackerID"), trackerHandler.UpdateTracker)
		api.PUT("/tracker/:id", middleware.ExtractUUIDParam("id", "trackerID"), trackerHandler.UpdateTracker)

		api.POST("/answer", answerHandler.CreateAnswer)
		api.GET("/answer", answerHandler.ListAnswers)
		api.GET("/answer/:id", middleware.ExtractUUIDParam("id", "answerID"), answerHandler.GetAnswer)

		api.GET("/quiz-results", resultHandler.QuizResults)
		api.GET("/stats", resultHandler.Stats)

		admin := api.Group("")
		admin.Use(authMiddleware.AdminOnly())
		{
			admin.POST("/webhook", webhookHandler.CreateWebhook)
			admin.GET("/webhook", webhookHandler.ListWebhooks)
		}
	}

	router.GET("/ws/events", wsHandler.HandleConnection)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
