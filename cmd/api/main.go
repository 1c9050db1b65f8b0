package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edubridge/lms-backend/api/routes"
	"github.com/edubridge/lms-backend/internal/config"
	"github.com/edubridge/lms-backend/internal/handlers"
	"github.com/edubridge/lms-backend/internal/jobs"
	"github.com/edubridge/lms-backend/internal/repositories"
	mongorepo "github.com/edubridge/lms-backend/internal/repositories/mongodb"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/edubridge/lms-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; containers and hosting platforms set real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	settingsRepoImpl := mongorepo.NewPlatformSettingsRepository(db)
	notificationRepoImpl := mongorepo.NewNotificationRepository(db)

	var settingsRepo repositories.PlatformSettingsRepository = settingsRepoImpl
	var notificationRepo repositories.NotificationRepository = notificationRepoImpl
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var courseRepo repositories.CourseRepository = mongorepo.NewCourseRepository(db)
	var chatRepo repositories.ChatRepository = mongorepo.NewChatRepository(db)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	if err := notificationRepoImpl.EnsureIndexes(startupCtx); err != nil {
		log.Fatalf("Failed to create notification indexes: %v", err)
	}
	// The settings document must exist before any request path touches it.
	if _, err := settingsRepo.Bootstrap(startupCtx); err != nil {
		log.Fatalf("Failed to bootstrap platform settings: %v", err)
	}
	cancelStartup()

	// Services
	notificationService := services.NewNotificationService(notificationRepo)
	settingsService := services.NewSettingsService(settingsRepo, notificationService)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	courseService := services.NewCourseService(courseRepo)
	chatService := services.NewChatService(chatRepo)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService),
		CourseHandler:       handlers.NewCourseHandler(courseService),
		ChatHandler:         handlers.NewChatHandler(chatService, userService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService, userService),
		SettingsHandler:     handlers.NewSettingsHandler(settingsService),
		AssistantHandler:    handlers.NewAssistantHandler(settingsService, userService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Periodic auto-expire sweep for both promotion features
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweeper := jobs.NewPromotionSweeper(
		settingsService,
		time.Duration(cfg.Sweep.IntervalSeconds)*time.Second,
		time.Duration(cfg.Sweep.TimeoutSeconds)*time.Second,
	)
	sweeper.Start(sweepCtx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
