package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medigate/config"
	"medigate/delivery"
	"medigate/middleware"
	"medigate/repository"
	"medigate/service"
	"medigate/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	// Register custom validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	// Boot DB
	db, err := config.BootDB()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// JWT secret validation
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not found in env")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters. Generate one with: openssl rand -base64 32")
	}

	// Redis is only used for rate limiting; without it the limiter is off.
	var limiter *middleware.RateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := config.InitRedisDB(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		limiter = middleware.NewRateLimiter(redisClient)
	} else {
		log.Println("REDIS_ADDR not set, rate limiting disabled")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads/verifications"
	}
	docStore, err := repository.NewLocalDocumentStore(uploadDir)
	if err != nil {
		log.Fatal("Failed to init document storage: ", err)
	}

	// Init repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)

	// Init services
	notifier := utils.NewSMTPMailer()
	authService := service.NewAuthService(userRepo, otpRepo, notifier, jwtSecret)
	verificationService := service.NewVerificationService(userRepo, notifier)

	// Init Gin
	app := gin.New()
	config.InitMiddleware(app)

	delivery.NewAuthHandler(app, authService, limiter)
	delivery.NewVerificationHandler(app, verificationService, docStore, authService.Tokens())
	delivery.NewAdminHandler(app, verificationService, authService.Tokens(), userRepo)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server running at http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
