package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/config"
	"github.com/ndthang/edubot/database"
	"github.com/ndthang/edubot/internal/controller"
	"github.com/ndthang/edubot/internal/logger"
	"github.com/ndthang/edubot/internal/middleware"
	"github.com/ndthang/edubot/internal/model"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/ndthang/edubot/internal/service"
	"github.com/ndthang/edubot/internal/store"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EduBot API
// @version 1.0
// @description Educational guidance backend: auth, majors catalog, psychometric tests and chat assistant.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			store.NewRedisClient,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewUserRepository,
			repository.NewMajorRepository,
			repository.NewConversationRepository,
			store.NewOTPStore,
		),

		fx.Provide(
			service.NewScoringService,
			service.NewTestService,
			service.NewResultService,
			service.NewTokenService,
			service.NewAuthService,
			service.NewMajorService,
			service.NewGeminiLLMService,
			service.NewChatService,
		),

		fx.Provide(
			controller.NewTestController,
			controller.NewAuthController,
			controller.NewMajorController,
			controller.NewChatController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(database.Seed),
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

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	testCtrl *controller.TestController,
	authCtrl *controller.AuthController,
	majorCtrl *controller.MajorController,
	chatCtrl *controller.ChatController,
) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/forgot-password", authCtrl.ForgotPassword)
		authGroup.POST("/verify-otp", authCtrl.VerifyOtp)
		authGroup.POST("/reset-password", authCtrl.ResetPassword)

		authed := authGroup.Group("", middleware.RequireAuth(tokens))
		authed.GET("/profile", authCtrl.Profile)
		authed.PUT("/update", authCtrl.UpdateProfile)
		authed.PUT("/change-password", authCtrl.ChangePassword)
		authed.POST("/logout", authCtrl.Logout)
	}

	majorGroup := api.Group("/majors")
	{
		majorGroup.GET("", majorCtrl.ListMajors)
		majorGroup.GET("/:id", majorCtrl.GetMajor)
	}

	testGroup := api.Group("/test")
	{
		testGroup.GET("/", testCtrl.GetAllTests)
		testGroup.GET("/:id", testCtrl.GetTestDetails)
		testGroup.POST("/:id/submit", middleware.RequireAuth(tokens), testCtrl.SubmitTest)
	}
	// Result routes live beside /test so the static segments never share a
	// level with the :id wildcard above.
	api.GET("/my-results", middleware.RequireAuth(tokens), testCtrl.GetMyResults)
	api.GET("/test-results/:id", middleware.RequireAuth(tokens), testCtrl.GetResultByID)

	chatGroup := api.Group("/chat", middleware.RequireAuth(tokens))
	{
		chatGroup.POST("/", chatCtrl.SendMessage)
		chatGroup.POST("/new", chatCtrl.NewConversation)
		chatGroup.GET("/history", chatCtrl.GetHistory)
		chatGroup.GET("/c/:id", chatCtrl.GetConversation)
		chatGroup.DELETE("/c/:id", chatCtrl.DeleteConversation)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EduBot API server starting on port %s", cfg.Server.Port)
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
		&model.Test{},
		&model.Question{},
		&model.Option{},
		&model.TestResult{},
		&model.ResultScore{},
		&model.Major{},
		&model.Conversation{},
		&model.Message{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}
