package app

import (
	"database/sql"
	"fmt"
	"log"

	"ycsmatch/internal/auth"
	"ycsmatch/internal/config"
	"ycsmatch/internal/handlers"
	"ycsmatch/internal/middleware"
	"ycsmatch/internal/repositories"
	"ycsmatch/internal/routes"
	"ycsmatch/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	_ "ycsmatch/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to DB: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close DB: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)

	// === Services ===
	codec := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authService := services.NewAuthService(userRepo, codec)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.SiteURL,
	)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService)
	proxyService := services.NewProxyService(cfg.Upstream.BaseURL, cfg.Upstream.Timeout())

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	proxyHandler := handlers.NewProxyHandler(proxyService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, resetHandler, proxyHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
