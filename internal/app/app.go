package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"accountd/internal/config"
	"accountd/internal/handlers"
	"accountd/internal/middleware"
	"accountd/internal/repositories"
	"accountd/internal/routes"
	"accountd/internal/security"
	"accountd/internal/services"
	"accountd/internal/storage"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	txRunner := storage.NewTxRunner(db)

	// === Repos ===
	userRepo := repositories.NewUserRepository()
	resetRepo := repositories.NewPasswordResetRepository()
	verificationRepo := repositories.NewEmailVerificationRepository()
	emailLogRepo := repositories.NewEmailLogRepository()

	// === Services ===
	issuer := security.NewTokenIssuer(
		cfg.JWT.SecretKey,
		time.Duration(cfg.JWT.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenMinutes)*time.Minute,
	)
	mailer := services.NewSMTPMailer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	emailService := services.NewEmailService(mailer, cfg.Email.FromEmail, emailLogRepo)
	authService := services.NewAuthService(txRunner, userRepo, resetRepo, emailService, issuer, cfg.ResetPassword)
	verificationService := services.NewVerificationService(txRunner, verificationRepo, emailService, cfg.Verification)
	userService := services.NewUserService(txRunner, userRepo)

	// === Rate limiter (optional) ===
	var limiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMin, time.Minute)
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	userHandler := handlers.NewUserHandler(userService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router, issuer, limiter, authHandler, verificationHandler, userHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server exited: ", err)
	}
}
