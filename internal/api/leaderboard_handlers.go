// internal/api/leaderboard_handlers.go
// Read-side projection HTTP handlers: global leaderboard, per-player
// statistics, and per-tournament final standings.

package api

import (
	"net/http"
	"strconv"

	"padeltour/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleLeaderboard returns the top-N global leaderboard.
func HandleLeaderboard(leaderboardService *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit <= 0 {
			limit = 50
		}

		rows, err := leaderboardService.TopRatings(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
	}
}

// HandlePlayerStatistics returns one player's rating snapshot and recent
// rating history.
func HandlePlayerStatistics(leaderboardService *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Param("id")

		stats, err := leaderboardService.PlayerStatistics(c.Request.Context(), playerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"statistics": stats})
	}
}

// HandleTournamentResults returns the final standings of a finished tournament.
func HandleTournamentResults(leaderboardService *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		results, err := leaderboardService.TournamentResults(c.Request.Context(), tournamentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
