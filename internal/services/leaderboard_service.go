// internal/services/leaderboard_service.go
// Read-side projections (C5): global leaderboard, per-player statistics
// with skill-band labeling, and a tournament's final standings.
//
// Grounded on original_source/app/services/elo_service.py::get_leaderboard
// (min 5 matches played to appear) and get_player_statistics.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"padeltour/internal/models"
	"padeltour/internal/repositories"
)

// LeaderboardService exposes read-only projections over ratings and results.
type LeaderboardService struct {
	ratingRepo *repositories.RatingRepository
	resultRepo *repositories.ResultRepository
	playerRepo *repositories.PlayerRepository
	cache      *CacheService
	logger     *log.Logger
}

func NewLeaderboardService(
	ratingRepo *repositories.RatingRepository,
	resultRepo *repositories.ResultRepository,
	playerRepo *repositories.PlayerRepository,
	cache *CacheService,
	logger *log.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		ratingRepo: ratingRepo,
		resultRepo: resultRepo,
		playerRepo: playerRepo,
		cache:      cache,
		logger:     logger,
	}
}

// minLeaderboardMatches is the floor below which a player's rating is
// still too uncertain to publish on the global leaderboard.
const minLeaderboardMatches = 5

// ratingHistoryLimit caps how many past rating-history entries accompany
// a player statistics response.
const ratingHistoryLimit = 10

// RatingRow is one ranked leaderboard row, joined with player display data.
type RatingRow struct {
	Rank           int              `json:"rank"`
	PlayerID       string           `json:"player_id"`
	DisplayName    string           `json:"display_name"`
	Rating         float64          `json:"rating"`
	MatchesPlayed  int              `json:"matches_played"`
	Wins           int              `json:"wins"`
	Losses         int              `json:"losses"`
	SkillBand      models.SkillBand `json:"skill_band"`
	ExternalScale  float64          `json:"external_scale"`
}

// PlayerStatisticsView combines a rating snapshot with recent history:
// the player's latest rating-history entries, one per rated match,
// newest first, capped at ratingHistoryLimit. Entries are not collapsed
// to one per tournament.
type PlayerStatisticsView struct {
	RatingRow
	RecentHistory []models.RatingHistoryEntry `json:"recent_history"`
}

// TopRatings returns the global leaderboard, capped at limit rows and
// restricted to players with at least minLeaderboardMatches played.
func (s *LeaderboardService) TopRatings(ctx context.Context, limit int) ([]RatingRow, error) {
	cacheKey := fmt.Sprintf("leaderboard_top_%d", limit)
	var rows []RatingRow
	if err := s.cache.Get(cacheKey, &rows); err == nil {
		return rows, nil
	}

	ratings, err := s.ratingRepo.TopRatings(ctx, minLeaderboardMatches, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ratings))
	for i, r := range ratings {
		ids[i] = r.PlayerID
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.DisplayName
	}

	rows = make([]RatingRow, len(ratings))
	for i, r := range ratings {
		band, scale := models.BandFor(r.Rating)
		rows[i] = RatingRow{
			Rank:          i + 1,
			PlayerID:      r.PlayerID,
			DisplayName:   names[r.PlayerID],
			Rating:        r.Rating,
			MatchesPlayed: r.MatchesPlayed,
			Wins:          r.Wins,
			Losses:        r.Losses,
			SkillBand:     band,
			ExternalScale: scale,
		}
	}

	if err := s.cache.Set(cacheKey, rows, 30*time.Second); err != nil {
		s.logger.Printf("failed to cache leaderboard: %v", err)
	}
	return rows, nil
}

// PlayerStatistics returns one player's rating snapshot, skill band, and
// recent rating-history trail, regardless of whether they meet the
// leaderboard's minimum-match floor.
func (s *LeaderboardService) PlayerStatistics(ctx context.Context, playerID string) (*PlayerStatisticsView, error) {
	rating, err := s.ratingRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	history, err := s.ratingRepo.GetHistoryByPlayerID(ctx, playerID, ratingHistoryLimit)
	if err != nil {
		return nil, err
	}
	band, scale := models.BandFor(rating.Rating)
	return &PlayerStatisticsView{
		RatingRow: RatingRow{
			PlayerID:      rating.PlayerID,
			DisplayName:   player.DisplayName,
			Rating:        rating.Rating,
			MatchesPlayed: rating.MatchesPlayed,
			Wins:          rating.Wins,
			Losses:        rating.Losses,
			SkillBand:     band,
			ExternalScale: scale,
		},
		RecentHistory: history,
	}, nil
}

// TournamentResults returns the final standings of a finished tournament.
func (s *LeaderboardService) TournamentResults(ctx context.Context, tournamentID string) ([]models.TournamentResult, error) {
	return s.resultRepo.GetByTournamentID(ctx, tournamentID)
}
