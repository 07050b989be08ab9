package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/config"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/http/handlers"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/http/middleware"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	AuthService *services.AuthService
	Media       handlers.MediaStore
	Logger      *slog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Media, deps.Config, deps.Logger)
	profileHandler := handlers.NewProfileHandler(deps.AuthService, deps.Media, deps.Logger)

	router.GET("/healthz", handlers.Health)

	user := router.Group("/api/v1/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.GET("/logout", authHandler.Logout)
		user.POST("/forgot-password", authHandler.ForgotPassword)
		user.POST("/reset-password/:token", authHandler.ResetPassword)
		user.GET("/verify-email/:token", authHandler.VerifyEmail)

		protected := user.Group("")
		protected.Use(middleware.SessionAuth(middleware.AuthConfig{Secret: deps.Config.JWTSecret}))
		protected.POST("/profile/update", profileHandler.Update)
	}

	return router
}
