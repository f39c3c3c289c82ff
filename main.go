package main

import (
	api "gitfeed/cmd/api"
	authdomain "gitfeed/internal/auth/domain"
	authRepo "gitfeed/internal/auth/repository"
	authUsecase "gitfeed/internal/auth/usecase"
	feeddomain "gitfeed/internal/feed/domain"
	feedRepo "gitfeed/internal/feed/repository"
	feedUsecase "gitfeed/internal/feed/usecase"
	"gitfeed/internal/metrics"
	"gitfeed/pkg/config"
	"gitfeed/pkg/database"
	"gitfeed/pkg/github"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
		logrus.Fatal("Set GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET in .env or environment variables")
	}

	metrics.Init()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &feeddomain.SnoozedEvent{}); err != nil {
		logrus.Fatal("Failed to migrate database: ", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	eventRepository := feedRepo.NewSnoozedEventRepository(db)

	// Initialize GitHub client
	gh := github.NewService(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.OAuthRedirectURL)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, gh)
	feedUsecaseInstance := feedUsecase.NewFeedUsecase(eventRepository, gh, cfg.DefaultUser)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, feedUsecaseInstance, cfg)

	logrus.Info("Server starting on port ", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}
