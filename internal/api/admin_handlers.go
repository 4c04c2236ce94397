// internal/api/admin_handlers.go
// Admin-only HTTP handlers

package api

import (
	"net/http"
	"strconv"

	"padeltour/internal/repositories"
	"padeltour/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetPlatformStats retrieves platform-wide statistics
func HandleGetPlatformStats(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analyticsService.GetPlatformStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statistics": stats,
		})
	}
}

// HandleListUsers is the admin user-listing endpoint; it lists no users
// and always responds 501 Not Implemented.
func HandleListUsers(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// TODO: Implement user listing with pagination
		c.JSON(http.StatusNotImplemented, gin.H{"error": "User listing not implemented yet"})
	}
}

// HandleUpdateUserRole validates a role-change request (400 on a bad
// body) and then responds 501 Not Implemented; no role is changed.
func HandleUpdateUserRole(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")

		var req struct {
			Role string `json:"role" binding:"required,oneof=user organizer admin"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		// TODO: Implement role update
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Role update not implemented yet"})
	}
}

// HandleListAllTournaments lists all tournaments regardless of organizer (admin only)
func HandleListAllTournaments(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		tournaments, total, err := tournamentService.List(c.Request.Context(), repositories.ListFilter{Page: page, Limit: limit})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournaments": tournaments, "total": total})
	}
}

// HandleForceDeleteTournament is the admin force-delete endpoint; it
// deletes nothing and always responds 501 Not Implemented.
func HandleForceDeleteTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// TODO: hard delete with cascade across matches/ratings/results is
		// intentionally not exposed yet; organizers rely on the lifecycle
		// state machine instead of deletion.
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Force delete not implemented yet"})
	}
}

// HandleTournamentAuditLog returns the organizer-action history for a tournament.
func HandleTournamentAuditLog(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil || limit <= 0 {
			limit = 100
		}

		records, err := tournamentService.AuditTrail(c.Request.Context(), tournamentID, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"audit_log": records})
	}
}
