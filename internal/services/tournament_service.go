// internal/services/tournament_service.go
// Tournament lifecycle state machine (pending -> active -> completed):
// roster management, start, result recording, and finish. Every
// mutating operation acquires the tournament row's exclusive lock and
// runs inside a single transaction, retried on transient store failure,
// mirroring the teacher's BeginTx + defer Rollback shape.

package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"padeltour/internal/apperrors"
	"padeltour/internal/config"
	"padeltour/internal/models"
	"padeltour/internal/pairing"
	"padeltour/internal/rating"
	"padeltour/internal/repositories"
	"padeltour/internal/scoring"
	"padeltour/internal/utils"
)

const lifecycleRetryAttempts = 3

// TournamentService orchestrates the pairing, scoring and rating engines
// against the persistence layer.
type TournamentService struct {
	repos        *repositories.Container
	ratingCfg    rating.Config
	cache        *CacheService
	notification *NotificationService
	logger       *log.Logger
}

func NewTournamentService(
	repos *repositories.Container,
	ratingCfg config.RatingConfig,
	cache *CacheService,
	notification *NotificationService,
	logger *log.Logger,
) *TournamentService {
	return &TournamentService{
		repos: repos,
		ratingCfg: rating.Config{
			InitialRating:        ratingCfg.InitialRating,
			KNewPlayer:           ratingCfg.KNewPlayer,
			KNormal:              ratingCfg.KNormal,
			KExperienced:         ratingCfg.KExperienced,
			NewPlayerThreshold:   ratingCfg.NewPlayerThreshold,
			ExperiencedThreshold: ratingCfg.ExperiencedThreshold,
			MarginScale:          ratingCfg.MarginScale,
			SplitTilt:            ratingCfg.SplitTilt,
			RatingGapCap:         ratingCfg.RatingGapCap,
		},
		cache:        cache,
		notification: notification,
		logger:       logger,
	}
}

// CreateTournamentRequest is the data needed to create a tournament shell.
// The roster is populated afterward via Join/JoinByCode/AddPlayer.
type CreateTournamentRequest struct {
	Name          string `json:"name" binding:"required,min=3,max=255"`
	CourtCount    int    `json:"court_count" binding:"required,min=1"`
	PointsPerGame int    `json:"points_per_game" binding:"required,min=4"`
}

// Create creates a new tournament in the pending state with an empty roster.
func (s *TournamentService) Create(ctx context.Context, organizerID string, req CreateTournamentRequest) (*models.Tournament, error) {
	now := time.Now()
	tournament := &models.Tournament{
		ID:            utils.GenerateUUID(),
		OrganizerID:   organizerID,
		Name:          req.Name,
		Status:        models.StatusPending,
		CourtCount:    req.CourtCount,
		PointsPerGame: req.PointsPerGame,
		Roster:        models.PlayerIDList{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repos.Tournament.Create(ctx, tournament); err != nil {
		return nil, err
	}

	s.cache.Delete(fmt.Sprintf("organizer_tournaments_%s", organizerID))
	return tournament, nil
}

// GetByID retrieves a tournament, cache-aside.
func (s *TournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	cacheKey := fmt.Sprintf("tournament_%s", id)
	var tournament models.Tournament
	if err := s.cache.Get(cacheKey, &tournament); err == nil {
		return &tournament, nil
	}

	t, err := s.repos.Tournament.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, t, 1*time.Minute); err != nil {
		s.logger.Printf("failed to cache tournament %s: %v", id, err)
	}
	return t, nil
}

// List retrieves tournaments with pagination and filters.
func (s *TournamentService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Tournament, int, error) {
	return s.repos.Tournament.List(ctx, filter)
}

// IsOwner checks whether userID organizes tournamentID.
func (s *TournamentService) IsOwner(ctx context.Context, tournamentID, userID string) (bool, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return false, err
	}
	return tournament.OrganizerID == userID, nil
}

// JoinCode returns the tournament's join code, generating and persisting
// one on first call. Subsequent calls return the same value (spec.md's
// join-code idempotence property).
func (s *TournamentService) JoinCode(ctx context.Context, tournamentID string) (string, error) {
	var code string
	err := s.withTournamentLock(ctx, tournamentID, func(tx *sql.Tx, t *models.Tournament) error {
		if t.JoinCode != "" {
			code = t.JoinCode
			return nil
		}
		t.JoinCode = utils.GenerateJoinCode()
		if err := s.repos.Tournament.UpdateWithTx(ctx, tx, t); err != nil {
			return err
		}
		code = t.JoinCode
		return nil
	})
	if err != nil {
		return "", err
	}
	s.invalidateTournamentCache(tournamentID)
	return code, nil
}

// JoinByCode adds a player to a pending tournament's roster by its join code.
func (s *TournamentService) JoinByCode(ctx context.Context, code string, player *models.Player) (*models.Tournament, error) {
	var result *models.Tournament
	err := repositories.WithRetry(ctx, lifecycleRetryAttempts, func() error {
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "begin transaction", err)
		}
		defer tx.Rollback()

		t, err := s.repos.Tournament.GetByJoinCode(ctx, code)
		if err != nil {
			return err
		}
		locked, err := s.repos.Tournament.GetByIDForUpdate(ctx, tx, t.ID)
		if err != nil {
			return err
		}
		if err := s.addPlayerToRosterWithTx(ctx, tx, locked, player); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "commit transaction", err)
		}
		result = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateTournamentCache(result.ID)
	return result, nil
}

// Join adds a player to a pending tournament's roster directly by ID
// (no join code required — e.g. an organizer browsing a public listing).
func (s *TournamentService) Join(ctx context.Context, tournamentID string, player *models.Player) (*models.Tournament, error) {
	var result *models.Tournament
	err := s.withTournamentLock(ctx, tournamentID, func(tx *sql.Tx, t *models.Tournament) error {
		if err := s.addPlayerToRosterWithTx(ctx, tx, t, player); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateTournamentCache(tournamentID)
	return result, nil
}

// AddPlayer is the organizer-initiated equivalent of Join.
func (s *TournamentService) AddPlayer(ctx context.Context, tournamentID, organizerID string, player *models.Player) (*models.Tournament, error) {
	if err := s.requireOwner(ctx, tournamentID, organizerID); err != nil {
		return nil, err
	}
	return s.Join(ctx, tournamentID, player)
}

func (s *TournamentService) addPlayerToRosterWithTx(ctx context.Context, tx *sql.Tx, t *models.Tournament, player *models.Player) error {
	if t.Status != models.StatusPending {
		return apperrors.New(apperrors.WrongStatus, "roster changes are only allowed while the tournament is pending")
	}
	for _, id := range t.Roster {
		if id == player.ID {
			return nil // already rostered, idempotent
		}
	}
	if t.RosterSize > 0 && len(t.Roster) >= t.RosterSize {
		return apperrors.New(apperrors.InvalidRoster, "tournament roster is full")
	}
	if err := s.repos.Player.GetOrCreateByIDWithTx(ctx, tx, player); err != nil {
		return err
	}
	t.Roster = append(t.Roster, player.ID)
	return s.repos.Tournament.UpdateWithTx(ctx, tx, t)
}

// Leave removes a player from a pending tournament's roster.
func (s *TournamentService) Leave(ctx context.Context, tournamentID, playerID string) error {
	return s.withTournamentLock(ctx, tournamentID, func(tx *sql.Tx, t *models.Tournament) error {
		if t.Status != models.StatusPending {
			return apperrors.New(apperrors.WrongStatus, "roster changes are only allowed while the tournament is pending")
		}
		t.Roster = removeID(t.Roster, playerID)
		return s.repos.Tournament.UpdateWithTx(ctx, tx, t)
	})
}

// RemovePlayer is the organizer-initiated equivalent of Leave.
func (s *TournamentService) RemovePlayer(ctx context.Context, tournamentID, organizerID, playerID string) error {
	if err := s.requireOwner(ctx, tournamentID, organizerID); err != nil {
		return err
	}
	if err := s.Leave(ctx, tournamentID, playerID); err != nil {
		return err
	}
	s.invalidateTournamentCache(tournamentID)
	s.recordAudit(ctx, organizerID, "tournament.remove_player", tournamentID, nil, map[string]interface{}{
		"player_id": playerID,
	})
	return nil
}

func removeID(ids models.PlayerIDList, target string) models.PlayerIDList {
	out := make(models.PlayerIDList, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Start generates the full round schedule from the current roster and
// transitions the tournament to active (spec.md §4.4 pending -> active).
func (s *TournamentService) Start(ctx context.Context, tournamentID, organizerID string) (*models.Tournament, error) {
	var result *models.Tournament
	err := repositories.WithRetry(ctx, lifecycleRetryAttempts, func() error {
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "begin transaction", err)
		}
		defer tx.Rollback()

		t, err := s.repos.Tournament.GetByIDForUpdate(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if t.OrganizerID != organizerID {
			return apperrors.New(apperrors.AuthorizationFailed, "only the organizer may start this tournament")
		}
		if t.Status != models.StatusPending {
			return apperrors.New(apperrors.WrongStatus, "tournament has already been started")
		}

		schedule, err := pairing.Generate(t.Roster)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, round := range schedule.Rounds {
			for court, m := range round.Matches {
				match := &models.Match{
					ID:           utils.GenerateUUID(),
					TournamentID: t.ID,
					RoundNumber:  round.Number,
					CourtNumber:  court + 1,
					Team1Player1: m.Team1[0],
					Team1Player2: m.Team1[1],
					Team2Player1: m.Team2[0],
					Team2Player2: m.Team2[1],
					Status:       models.MatchPending,
					CreatedAt:    now,
				}
				if err := s.repos.Match.CreateWithTx(ctx, tx, match); err != nil {
					return err
				}
			}
		}

		if _, err := s.repos.Rating.GetOrCreateManyWithTx(ctx, tx, t.Roster, s.ratingCfg.InitialRating); err != nil {
			return err
		}

		t.RosterSize = len(t.Roster)
		t.TotalRounds = len(schedule.Rounds)
		t.CurrentRound = 1
		t.Status = models.StatusActive
		t.StartedAt = &now
		if err := s.repos.Tournament.UpdateWithTx(ctx, tx, t); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "commit transaction", err)
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTournamentCache(tournamentID)
	s.notification.NotifyTournamentStarted(result)
	s.recordAudit(ctx, organizerID, "tournament.start", tournamentID, nil, map[string]interface{}{
		"total_rounds": result.TotalRounds,
		"roster_size":  result.RosterSize,
	})
	return result, nil
}

// CurrentRoundMatches returns the matches of the tournament's active round.
func (s *TournamentService) CurrentRoundMatches(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	t, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.repos.Match.GetByRound(ctx, tournamentID, t.CurrentRound)
}

// AllRounds returns every match generated for the tournament.
func (s *TournamentService) AllRounds(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	return s.repos.Match.GetByTournamentID(ctx, tournamentID)
}

// AuditTrail returns the organizer-action history for a tournament,
// newest first.
func (s *TournamentService) AuditTrail(ctx context.Context, tournamentID string, limit int64) ([]models.AuditRecord, error) {
	return s.repos.Audit.ListByTarget(ctx, "tournament", tournamentID, limit)
}

// RecordResult records a completed match's score, updates both teams'
// ratings atomically with the match-completion flag, and advances the
// round cursor when every match of the current round is done.
func (s *TournamentService) RecordResult(ctx context.Context, tournamentID, matchID string, score1, score2 int) (*models.Match, error) {
	var result *models.Match
	var advancedTo int
	err := repositories.WithRetry(ctx, lifecycleRetryAttempts, func() error {
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "begin transaction", err)
		}
		defer tx.Rollback()

		t, err := s.repos.Tournament.GetByIDForUpdate(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if t.Status != models.StatusActive {
			return apperrors.New(apperrors.WrongStatus, "tournament is not active")
		}

		match, err := s.repos.Match.GetByIDForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.TournamentID != tournamentID {
			return apperrors.New(apperrors.InvalidInput, "match does not belong to this tournament")
		}
		if match.Status == models.MatchCompleted {
			return apperrors.New(apperrors.AlreadyRecorded, "match result already recorded")
		}
		if err := validateScore(score1, score2, t.PointsPerGame); err != nil {
			return err
		}

		if err := s.repos.Match.RecordScoreWithTx(ctx, tx, matchID, score1, score2); err != nil {
			return err
		}

		if err := s.applyRatingUpdateWithTx(ctx, tx, t, match, score1, score2); err != nil {
			return err
		}

		roundMatches, err := s.repos.Match.GetByRound(ctx, tournamentID, t.CurrentRound)
		if err != nil {
			return err
		}
		if roundComplete(roundMatches, matchID) && t.CurrentRound < t.TotalRounds {
			t.CurrentRound++
			advancedTo = t.CurrentRound
			if err := s.repos.Tournament.UpdateWithTx(ctx, tx, t); err != nil {
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "commit transaction", err)
		}
		match.Team1Score = &score1
		match.Team2Score = &score2
		match.Status = models.MatchCompleted
		result = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTournamentCache(tournamentID)
	s.notification.NotifyMatchResult(result)
	if advancedTo > 0 {
		if t, err := s.repos.Tournament.GetByID(ctx, tournamentID); err == nil {
			s.notification.NotifyRoundGenerated(t, advancedTo)
		}
	}
	return result, nil
}

// validateScore enforces spec.md §4.4's Americano score-validity edge
// case: the two scores must sum to the configured points-per-match and
// must not tie (every match is decisive at the team level).
func validateScore(score1, score2, pointsPerGame int) error {
	if score1 < 0 || score2 < 0 {
		return apperrors.New(apperrors.InvalidScore, "scores must not be negative")
	}
	if score1 == score2 {
		return apperrors.New(apperrors.InvalidScore, "match scores must not tie")
	}
	if score1+score2 != pointsPerGame {
		return apperrors.Newf(apperrors.InvalidScore,
			"scores must sum to %d points, got %d", pointsPerGame, score1+score2)
	}
	return nil
}

// roundComplete reports whether every match of a round now has a
// recorded score, treating justRecorded as already completed since the
// caller observes it before the surrounding transaction commits.
func roundComplete(roundMatches []*models.Match, justRecorded string) bool {
	for _, m := range roundMatches {
		if m.ID == justRecorded {
			continue
		}
		if m.Status != models.MatchCompleted {
			return false
		}
	}
	return true
}

// applyRatingUpdateWithTx loads both teams' pre-match rating state,
// computes the zero-sum delta via the rating engine, and persists the
// new ratings plus one history entry per player in the same
// transaction as the match-completion flag (spec.md §5's ordering
// guarantee: no reader ever observes a completed match without its
// rating history).
func (s *TournamentService) applyRatingUpdateWithTx(ctx context.Context, tx *sql.Tx, t *models.Tournament, match *models.Match, score1, score2 int) error {
	ids := match.Players()
	states := make(map[string]*models.PlayerRating, 4)
	for _, id := range ids {
		r, err := s.repos.Rating.GetOrCreateWithTx(ctx, tx, id, s.ratingCfg.InitialRating)
		if err != nil {
			return err
		}
		states[id] = r
	}

	team1 := [2]rating.PlayerState{toPlayerState(states[match.Team1Player1]), toPlayerState(states[match.Team1Player2])}
	team2 := [2]rating.PlayerState{toPlayerState(states[match.Team2Player1]), toPlayerState(states[match.Team2Player2])}

	deltas := rating.UpdateMatch(s.ratingCfg, team1, team2, score1, score2)
	winner1 := score1 > score2

	for i, delta := range deltas {
		r := states[delta.PlayerID]
		r.Rating = delta.RatingAfter
		r.MatchesPlayed++
		won := (i < 2 && winner1) || (i >= 2 && !winner1)
		if won {
			r.Wins++
		} else {
			r.Losses++
		}
		if err := s.repos.Rating.SaveWithTx(ctx, tx, r); err != nil {
			return err
		}

		opponentAvg := (states[opponentOf(match, delta.PlayerID)[0]].Rating + states[opponentOf(match, delta.PlayerID)[1]].Rating) / 2
		history := &models.RatingHistoryEntry{
			ID:             utils.GenerateUUID(),
			PlayerID:       delta.PlayerID,
			MatchID:        match.ID,
			TournamentID:   t.ID,
			RatingBefore:   delta.RatingBefore,
			RatingAfter:    delta.RatingAfter,
			Delta:          delta.Delta,
			OpponentRating: opponentAvg,
			CreatedAt:      time.Now(),
		}
		if err := s.repos.Rating.InsertHistoryWithTx(ctx, tx, history); err != nil {
			return err
		}
	}
	return nil
}

func toPlayerState(r *models.PlayerRating) rating.PlayerState {
	return rating.PlayerState{PlayerID: r.PlayerID, Rating: r.Rating, MatchesPlayed: r.MatchesPlayed}
}

// opponentOf returns the two players on the opposing team from playerID.
func opponentOf(match *models.Match, playerID string) [2]string {
	if playerID == match.Team1Player1 || playerID == match.Team1Player2 {
		return match.Team2()
	}
	return match.Team1()
}

// Finish freezes final placements (spec.md §4.4 active -> completed).
// Calling Finish on an already-completed tournament is a no-op that
// returns the existing snapshot (PodiumApplied guards double counting).
func (s *TournamentService) Finish(ctx context.Context, tournamentID, organizerID string) (*models.Tournament, error) {
	var result *models.Tournament
	err := repositories.WithRetry(ctx, lifecycleRetryAttempts, func() error {
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "begin transaction", err)
		}
		defer tx.Rollback()

		t, err := s.repos.Tournament.GetByIDForUpdate(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if t.OrganizerID != organizerID {
			return apperrors.New(apperrors.AuthorizationFailed, "only the organizer may finish this tournament")
		}
		if t.Status == models.StatusCompleted || t.PodiumApplied {
			result = t
			return tx.Commit()
		}
		if t.Status != models.StatusActive {
			return apperrors.New(apperrors.WrongStatus, "tournament must be active to finish")
		}

		matches, err := s.repos.Match.GetByTournamentID(ctx, tournamentID)
		if err != nil {
			return err
		}
		completed := make([]models.Match, 0, len(matches))
		for _, m := range matches {
			completed = append(completed, *m)
		}
		stats := scoring.Aggregate(completed)
		standings := scoring.Rank(stats, t.Roster)

		deltaByPlayer, err := s.repos.Rating.SumDeltaByTournamentWithTx(ctx, tx, tournamentID)
		if err != nil {
			return err
		}

		now := time.Now()
		results := make([]models.TournamentResult, 0, len(standings))
		for _, standing := range standings {
			results = append(results, models.TournamentResult{
				TournamentID: tournamentID,
				PlayerID:     standing.PlayerID,
				Rank:         standing.Rank,
				Points:       standing.Points,
				Wins:         standing.Wins,
				Losses:       standing.Losses,
				Ties:         standing.Ties,
				PointDiff:    standing.PointDiff,
				RatingDelta:  deltaByPlayer[standing.PlayerID],
				CreatedAt:    now,
			})
			if err := s.repos.Rating.IncrementTournamentsPlayedWithTx(ctx, tx, standing.PlayerID); err != nil {
				return err
			}
			if err := s.repos.Rating.IncrementPodiumWithTx(ctx, tx, standing.PlayerID, standing.Rank); err != nil {
				return err
			}
		}
		if err := s.repos.Result.InsertAllWithTx(ctx, tx, results); err != nil {
			return err
		}

		t.Status = models.StatusCompleted
		t.PodiumApplied = true
		t.CompletedAt = &now
		if err := s.repos.Tournament.UpdateWithTx(ctx, tx, t); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "commit transaction", err)
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTournamentCache(tournamentID)
	s.notification.NotifyTournamentCompleted(result)
	s.recordAudit(ctx, organizerID, "tournament.finish", tournamentID, nil, map[string]interface{}{
		"podium_applied": result.PodiumApplied,
	})
	return result, nil
}

// withTournamentLock runs fn against a row-locked tournament inside a
// retried transaction — the shared shape behind JoinCode/Join/Leave.
func (s *TournamentService) withTournamentLock(ctx context.Context, tournamentID string, fn func(tx *sql.Tx, t *models.Tournament) error) error {
	return repositories.WithRetry(ctx, lifecycleRetryAttempts, func() error {
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "begin transaction", err)
		}
		defer tx.Rollback()

		t, err := s.repos.Tournament.GetByIDForUpdate(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if err := fn(tx, t); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return apperrors.Wrap(apperrors.TransientStore, "commit transaction", err)
		}
		return nil
	})
}

func (s *TournamentService) requireOwner(ctx context.Context, tournamentID, userID string) error {
	owner, err := s.IsOwner(ctx, tournamentID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return apperrors.New(apperrors.AuthorizationFailed, "only the organizer may perform this action")
	}
	return nil
}

func (s *TournamentService) invalidateTournamentCache(tournamentID string) {
	if err := s.cache.Delete(fmt.Sprintf("tournament_%s", tournamentID)); err != nil {
		s.logger.Printf("failed to invalidate tournament cache %s: %v", tournamentID, err)
	}
}

// recordAudit appends an administrative audit entry for an organizer
// action. Audit logging is best-effort: a write failure is logged, not
// surfaced, since it must never fail the lifecycle operation it describes.
func (s *TournamentService) recordAudit(ctx context.Context, organizerID, action, tournamentID string, oldValues, newValues map[string]interface{}) {
	rec := models.AuditRecord{
		AdminID:    organizerID,
		Action:     action,
		TargetType: "tournament",
		TargetID:   tournamentID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Timestamp:  time.Now(),
	}
	if err := s.repos.Audit.Record(ctx, rec); err != nil {
		s.logger.Printf("failed to record audit entry %s for tournament %s: %v", action, tournamentID, err)
	}
}
