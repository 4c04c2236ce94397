// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"padeltour/internal/middleware"
	"padeltour/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(services.Auth))
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.POST("/forgot-password", HandleForgotPassword(services.Auth))
		auth.POST("/reset-password", HandleResetPassword(services.Auth))
		auth.POST("/verify-email", HandleVerifyEmail(services.Auth))
	}
}

// RegisterUserRoutes registers user-related routes
func RegisterUserRoutes(router *gin.RouterGroup, services *services.Container) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth(services.Auth))
	{
		users.GET("/me", HandleGetCurrentUser(services.User))
		users.PUT("/me", HandleUpdateProfile(services.User))
		users.PUT("/me/password", HandleChangePassword(services.Auth))
		users.GET("/me/preferences", HandleGetPreferences(services.User))
		users.PUT("/me/preferences", HandleUpdatePreferences(services.User))
		users.GET("/me/tournaments", HandleGetUserTournaments(services.User))
		users.GET("/me/statistics", HandleGetUserStatistics(services.User))
	}
}

// RegisterTournamentRoutes registers the Americano tournament lifecycle
// surface: creation, roster management, the pending -> active ->
// completed state machine, and result recording.
func RegisterTournamentRoutes(router *gin.RouterGroup, services *services.Container) {
	tournaments := router.Group("/tournaments")
	{
		// Public read routes
		tournaments.GET("", HandleListTournaments(services.Tournament))
		tournaments.GET("/:id", HandleGetTournament(services.Tournament))
		tournaments.GET("/:id/rounds/current", HandleCurrentRound(services.Tournament))
		tournaments.GET("/:id/rounds", HandleAllRounds(services.Tournament))
		tournaments.GET("/:id/results", HandleTournamentResults(services.Leaderboard))

		// Authenticated routes
		tournaments.Use(middleware.RequireAuth(services.Auth))
		tournaments.POST("", HandleCreateTournament(services.Tournament))
		tournaments.POST("/:id/players", HandleJoinTournament(services.Tournament))
		tournaments.DELETE("/:id/players/:playerId", HandleLeaveTournament(services.Tournament))
		tournaments.POST("/join/:code", HandleJoinByCode(services.Tournament))

		// Organizer-only routes
		tournaments.GET("/:id/join-code", middleware.RequireTournamentOwner(services), HandleGetJoinCode(services.Tournament))
		tournaments.POST("/:id/roster", middleware.RequireTournamentOwner(services), HandleAddPlayer(services.Tournament))
		tournaments.DELETE("/:id/roster/:playerId", middleware.RequireTournamentOwner(services), HandleRemovePlayer(services.Tournament))
		tournaments.POST("/:id/start", middleware.RequireTournamentOwner(services), HandleStartTournament(services.Tournament))
		tournaments.POST("/:id/matches/:matchId/result", middleware.RequireTournamentOwner(services), HandleRecordResult(services.Tournament))
		tournaments.POST("/:id/finish", middleware.RequireTournamentOwner(services), HandleFinishTournament(services.Tournament))
	}
}

// RegisterLeaderboardRoutes registers the global, cross-tournament
// read-side projections.
func RegisterLeaderboardRoutes(router *gin.RouterGroup, services *services.Container) {
	leaderboard := router.Group("/leaderboard")
	{
		leaderboard.GET("", HandleLeaderboard(services.Leaderboard))
		leaderboard.GET("/players/:id", HandlePlayerStatistics(services.Leaderboard))
	}
}

// RegisterAdminRoutes registers admin-only routes
func RegisterAdminRoutes(router *gin.RouterGroup, services *services.Container) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(services.Auth))
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/stats", HandleGetPlatformStats(services.Analytics))
		admin.GET("/users", HandleListUsers(services.User))
		admin.PUT("/users/:id/role", HandleUpdateUserRole(services.User))
		admin.GET("/tournaments", HandleListAllTournaments(services.Tournament))
		admin.DELETE("/tournaments/:id", HandleForceDeleteTournament(services.Tournament))
		admin.GET("/tournaments/:id/audit-log", HandleTournamentAuditLog(services.Tournament))
	}
}
