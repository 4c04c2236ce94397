// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"log"

	"padeltour/internal/apperrors"
	"padeltour/internal/config"
	"padeltour/internal/database"
	"padeltour/internal/repositories"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth         *AuthService
	User         *UserService
	Tournament   *TournamentService
	Leaderboard  *LeaderboardService
	Notification *NotificationService
	Cache        *CacheService
	Analytics    *AnalyticsService
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	// Initialize repositories
	repos := repositories.NewContainer(db)

	// Initialize cache service
	cache := NewCacheService(db.Redis, logger)

	// Initialize notification service
	notification := NewNotificationService(cfg, logger)

	// Initialize services with their dependencies
	auth := NewAuthService(repos.User, cfg.Auth, cache, logger)
	user := NewUserService(repos.User, repos.UserPreferences, repos.Rating, repos.Result, logger)
	tournament := NewTournamentService(repos, cfg.Rating, cache, notification, logger)
	leaderboard := NewLeaderboardService(repos.Rating, repos.Result, repos.Player, cache, logger)
	analytics := NewAnalyticsService(db.MongoDB, cache, logger)

	return &Container{
		Auth:         auth,
		User:         user,
		Tournament:   tournament,
		Leaderboard:  leaderboard,
		Notification: notification,
		Cache:        cache,
		Analytics:    analytics,
	}
}

// Sentinel errors used by AuthService, retained by Kind for errors.Is
// compatibility while the rest of the module reports through apperrors.Error.
var (
	ErrEmailAlreadyExists = apperrors.New(apperrors.Conflict, "email already exists")
	ErrInvalidCredentials = apperrors.New(apperrors.AuthorizationFailed, "invalid credentials")
	ErrInvalidToken       = apperrors.New(apperrors.AuthorizationFailed, "invalid token")
)
