package main

import (
	"log"
	"net/http"

	_ "mentorconnect/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mentorconnect/internal/auth"
	"mentorconnect/internal/cache"
	"mentorconnect/internal/config"
	"mentorconnect/internal/db"
	"mentorconnect/internal/handler"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
	"mentorconnect/internal/router"
	"mentorconnect/internal/service"
)

// @title MentorConnect API
// @version 1.0
// @description Student mentorship platform with mentor directory, session requests, messaging, and reviews.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.MentorProfile{},
		&model.Availability{},
		&model.SessionRequest{},
		&model.Message{},
		&model.Review{},
		&model.Notification{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	sessionRepo := repository.NewSessionRequestRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo)
	authService := service.NewAuthService(userRepo, profileRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(profileRepo, cacheClient)
	directoryService := service.NewDirectoryService(profileRepo, userRepo, reviewRepo, cacheClient)
	sessionService := service.NewSessionService(sessionRepo, userRepo, notificationService)
	messageService := service.NewMessageService(messageRepo, sessionRepo, userRepo, notificationService)
	reviewService := service.NewReviewService(reviewRepo, sessionRepo, cacheClient, notificationService)
	paymentService := service.NewPaymentService(paymentRepo, sessionRepo, profileRepo, notificationService)
	adminService := service.NewAdminService(userRepo, sessionRepo, reviewRepo, messageRepo, paymentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	mentorHandler := handler.NewMentorHandler(directoryService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	messageHandler := handler.NewMessageHandler(messageService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		mentorHandler,
		sessionHandler,
		messageHandler,
		reviewHandler,
		paymentHandler,
		notificationHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
