package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/config"
	"github.com/lshigami/analyquiz/database"
	_ "github.com/lshigami/analyquiz/docs" // Swagger docs - auto-generated
	"github.com/lshigami/analyquiz/internal/controller"
	"github.com/lshigami/analyquiz/internal/logger"
	"github.com/lshigami/analyquiz/internal/middleware"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
	"github.com/lshigami/analyquiz/internal/service"
	"github.com/lshigami/analyquiz/internal/storage"
)

// @title AnalyQuiz API
// @version 1.0
// @description Syllabus-driven quiz generation with AI-powered personalized feedback.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			storage.NewLocalStore,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSyllabusRepository,
			repository.NewQuizRepository,
			repository.NewQuizResultRepository,
			repository.NewFeedbackRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewPDFService,
			service.NewGeminiService,
			service.NewQuizGeneratorService,
			service.NewFeedbackGeneratorService,
			service.NewSyllabusService,
			service.NewQuizService,
			service.NewFeedbackService,
		),

		// API Controllers Layer
		fx.Provide(
			middleware.NewAuthMiddleware,
			controller.NewAuthController,
			controller.NewSyllabusController,
			controller.NewQuizController,
			controller.NewFeedbackController,
			controller.NewHealthController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authCtrl *controller.AuthController,
	syllabusCtrl *controller.SyllabusController,
	quizCtrl *controller.QuizController,
	feedbackCtrl *controller.FeedbackController,
	healthCtrl *controller.HealthController,
) {
	router.GET("/", healthCtrl.Root)
	router.GET("/health", healthCtrl.Health)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authCtrl.Signup)
			authGroup.POST("/login", authCtrl.Login)
			authGroup.GET("/me", authMiddleware.RequireAuth(), authCtrl.Me)
		}

		syllabusGroup := api.Group("/syllabus", authMiddleware.RequireAuth())
		{
			syllabusGroup.POST("/upload", syllabusCtrl.Upload)
			syllabusGroup.GET("/list", syllabusCtrl.List)
			syllabusGroup.GET("/:id", syllabusCtrl.Get)
			syllabusGroup.DELETE("/:id", syllabusCtrl.Delete)
		}

		quizGroup := api.Group("/quiz", authMiddleware.RequireAuth())
		{
			quizGroup.POST("/generate", quizCtrl.Generate)
			quizGroup.POST("/submit", quizCtrl.Submit)
			quizGroup.GET("/list/results", quizCtrl.ListResults)
			quizGroup.GET("/results/:id", quizCtrl.GetResult)
			quizGroup.GET("/:id", quizCtrl.Get)
		}

		feedbackGroup := api.Group("/feedback", authMiddleware.RequireAuth())
		{
			feedbackGroup.POST("/generate", feedbackCtrl.Generate)
			feedbackGroup.GET("/:id", feedbackCtrl.Get)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("AnalyQuiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Syllabus{},
		&model.Quiz{},
		&model.QuizResult{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
