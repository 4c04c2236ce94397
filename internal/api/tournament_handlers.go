// internal/api/tournament_handlers.go
// Tournament lifecycle HTTP handlers: creation, roster management, and
// the pending -> active -> completed state transitions.

package api

import (
	"net/http"
	"strconv"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
	"padeltour/internal/repositories"
	"padeltour/internal/services"
	"padeltour/internal/utils"

	"github.com/gin-gonic/gin"
)

// HandleCreateTournament handles tournament creation
func HandleCreateTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID := c.GetString("user_id")

		var req services.CreateTournamentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		tournament, err := tournamentService.Create(c.Request.Context(), organizerID, req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"tournament": tournament})
	}
}

// HandleGetTournament retrieves a single tournament
func HandleGetTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		tournament, err := tournamentService.GetByID(c.Request.Context(), tournamentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleListTournaments lists tournaments with filters
func HandleListTournaments(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		filter := repositories.ListFilter{
			Page:        page,
			Limit:       limit,
			OrganizerID: c.Query("organizer_id"),
			Status:      models.TournamentStatus(c.Query("status")),
		}

		tournaments, total, err := tournamentService.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"tournaments": tournaments,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": (total + limit - 1) / limit,
			},
		})
	}
}

// HandleGetJoinCode returns the tournament's join code, generating one on
// first call. Organizer only.
func HandleGetJoinCode(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		code, err := tournamentService.JoinCode(c.Request.Context(), tournamentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"join_code": code})
	}
}

// rosterRequest describes the player being added to a tournament roster.
// PlayerID may reference an existing player (rejoining under the same
// identity, preserving their rating) or be left blank to mint a new one.
type rosterRequest struct {
	PlayerID      string  `json:"player_id"`
	DisplayName   string  `json:"display_name"`
	ContactHandle *string `json:"contact_handle"`
}

func (r rosterRequest) toPlayer() (*models.Player, error) {
	if r.PlayerID == "" && r.DisplayName == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "player_id or display_name is required")
	}
	id := r.PlayerID
	if id == "" {
		id = utils.GenerateUUID()
	}
	return &models.Player{
		ID:            id,
		DisplayName:   r.DisplayName,
		ContactHandle: r.ContactHandle,
	}, nil
}

// HandleJoinByCode adds the caller to a pending tournament's roster using
// a join code, without needing to already know the tournament's ID.
func HandleJoinByCode(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		var req rosterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		player, err := req.toPlayer()
		if err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.JoinByCode(c.Request.Context(), code, player)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleJoinTournament adds a player to a pending tournament's roster
// directly by tournament ID.
func HandleJoinTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		var req rosterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		player, err := req.toPlayer()
		if err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.Join(c.Request.Context(), tournamentID, player)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleAddPlayer is the organizer-initiated equivalent of HandleJoinTournament.
func HandleAddPlayer(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		organizerID := c.GetString("user_id")

		var req rosterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		player, err := req.toPlayer()
		if err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.AddPlayer(c.Request.Context(), tournamentID, organizerID, player)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleLeaveTournament removes the player named in the path from a
// pending roster; it does not check that the player belongs to the caller.
func HandleLeaveTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		playerID := c.Param("playerId")

		if err := tournamentService.Leave(c.Request.Context(), tournamentID, playerID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "left tournament"})
	}
}

// HandleRemovePlayer is the organizer-initiated equivalent of HandleLeaveTournament.
func HandleRemovePlayer(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		playerID := c.Param("playerId")
		organizerID := c.GetString("user_id")

		if err := tournamentService.RemovePlayer(c.Request.Context(), tournamentID, organizerID, playerID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "player removed"})
	}
}

// HandleStartTournament generates the round schedule and activates the tournament.
func HandleStartTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		organizerID := c.GetString("user_id")

		tournament, err := tournamentService.Start(c.Request.Context(), tournamentID, organizerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleCurrentRound returns the matches of the tournament's active round.
func HandleCurrentRound(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		matches, err := tournamentService.CurrentRoundMatches(c.Request.Context(), tournamentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

// HandleAllRounds returns every match generated for the tournament.
func HandleAllRounds(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")

		matches, err := tournamentService.AllRounds(c.Request.Context(), tournamentID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

// HandleRecordResult records a match's final score.
func HandleRecordResult(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		matchID := c.Param("matchId")

		var req struct {
			Score1 int `json:"score1" binding:"min=0"`
			Score2 int `json:"score2" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		match, err := tournamentService.RecordResult(c.Request.Context(), tournamentID, matchID, req.Score1, req.Score2)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"match": match})
	}
}

// HandleFinishTournament freezes final standings and podium counters.
func HandleFinishTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID := c.Param("id")
		organizerID := c.GetString("user_id")

		tournament, err := tournamentService.Finish(c.Request.Context(), tournamentID, organizerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}
