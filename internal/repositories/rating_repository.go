// internal/repositories/rating_repository.go
// Rating and rating-history data access, field layout grounded on
// original_source/app/models/player_rating.py.

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

const ratingColumns = `
	player_id, rating, matches_played, wins, losses,
	tournaments_played, podium_first, podium_second, podium_third,
	created_at, updated_at
`

func scanRating(row interface{ Scan(...interface{}) error }) (*models.PlayerRating, error) {
	var r models.PlayerRating
	err := row.Scan(
		&r.PlayerID, &r.Rating, &r.MatchesPlayed, &r.Wins, &r.Losses,
		&r.TournamentsPlayed, &r.PodiumFirst, &r.PodiumSecond, &r.PodiumThird,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.NotFound, "rating not found")
	}
	if err != nil {
		return nil, classifyDBError(err)
	}
	return &r, nil
}

// GetOrCreateWithTx returns the player's rating row, creating it with
// the configured initial rating if this is their first match.
func (r *RatingRepository) GetOrCreateWithTx(ctx context.Context, tx *sql.Tx, playerID string, initialRating float64) (*models.PlayerRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM player_ratings WHERE player_id = ? FOR UPDATE`
	rating, err := scanRating(tx.QueryRowContext(ctx, query, playerID))
	if apperrors.Is(err, apperrors.NotFound) {
		insert := `
			INSERT INTO player_ratings (` + ratingColumns + `)
			VALUES (?, ?, 0, 0, 0, 0, 0, 0, 0, NOW(), NOW())
		`
		if _, execErr := tx.ExecContext(ctx, insert, playerID, initialRating); execErr != nil {
			return nil, classifyDBError(execErr)
		}
		return scanRating(tx.QueryRowContext(ctx, query, playerID))
	}
	return rating, err
}

// GetOrCreateManyWithTx is GetOrCreateWithTx for a whole roster at once.
// Start calls it so every roster member has a rating row before the
// first match; the returned ratings are not stored on the tournament.
func (r *RatingRepository) GetOrCreateManyWithTx(ctx context.Context, tx *sql.Tx, playerIDs []string, initialRating float64) ([]*models.PlayerRating, error) {
	ratings := make([]*models.PlayerRating, 0, len(playerIDs))
	for _, id := range playerIDs {
		rt, err := r.GetOrCreateWithTx(ctx, tx, id, initialRating)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, nil
}

// IncrementTournamentsPlayedWithTx bumps tournaments_played for every
// roster member once, on tournament finish.
func (r *RatingRepository) IncrementTournamentsPlayedWithTx(ctx context.Context, tx *sql.Tx, playerID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE player_ratings SET tournaments_played = tournaments_played + 1, updated_at = NOW() WHERE player_id = ?`,
		playerID,
	)
	return classifyDBError(err)
}

// IncrementPodiumWithTx bumps the 1st/2nd/3rd counter for a final rank
// of 1, 2, or 3. Any other rank is a no-op.
func (r *RatingRepository) IncrementPodiumWithTx(ctx context.Context, tx *sql.Tx, playerID string, rank int) error {
	var column string
	switch rank {
	case 1:
		column = "podium_first"
	case 2:
		column = "podium_second"
	case 3:
		column = "podium_third"
	default:
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE player_ratings SET `+column+` = `+column+` + 1, updated_at = NOW() WHERE player_id = ?`,
		playerID,
	)
	return classifyDBError(err)
}

// SumDeltaByTournamentWithTx totals each player's rating change across a
// tournament's matches, for populating TournamentResult.RatingDelta.
func (r *RatingRepository) SumDeltaByTournamentWithTx(ctx context.Context, tx *sql.Tx, tournamentID string) (map[string]float64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT player_id, SUM(delta) FROM rating_history WHERE tournament_id = ? GROUP BY player_id`,
		tournamentID,
	)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	deltas := make(map[string]float64)
	for rows.Next() {
		var playerID string
		var total float64
		if err := rows.Scan(&playerID, &total); err != nil {
			return nil, classifyDBError(err)
		}
		deltas[playerID] = total
	}
	return deltas, nil
}

// SaveWithTx writes a rating and its match/win/loss counters as given;
// the caller increments the counters before saving.
func (r *RatingRepository) SaveWithTx(ctx context.Context, tx *sql.Tx, rating *models.PlayerRating) error {
	query := `
		UPDATE player_ratings SET
			rating = ?, matches_played = ?, wins = ?, losses = ?, updated_at = NOW()
		WHERE player_id = ?
	`
	_, err := tx.ExecContext(ctx, query, rating.Rating, rating.MatchesPlayed, rating.Wins, rating.Losses, rating.PlayerID)
	return classifyDBError(err)
}

func (r *RatingRepository) GetByID(ctx context.Context, playerID string) (*models.PlayerRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM player_ratings WHERE player_id = ?`
	return scanRating(r.db.QueryRowContext(ctx, query, playerID))
}

// TopRatings returns the top N players by rating with at least minMatches played.
func (r *RatingRepository) TopRatings(ctx context.Context, minMatches, limit int) ([]*models.PlayerRating, error) {
	query := `
		SELECT ` + ratingColumns + ` FROM player_ratings
		WHERE matches_played >= ?
		ORDER BY rating DESC, player_id ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, minMatches, limit)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	ratings := make([]*models.PlayerRating, 0, limit)
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, nil
}

// InsertHistoryWithTx appends one rating-history row.
func (r *RatingRepository) InsertHistoryWithTx(ctx context.Context, tx *sql.Tx, h *models.RatingHistoryEntry) error {
	query := `
		INSERT INTO rating_history (
			id, player_id, match_id, tournament_id, rating_before, rating_after,
			delta, opponent_rating, created_at
		) VALUES (?,?,?,?,?,?,?,?,?)
	`
	_, err := tx.ExecContext(ctx, query,
		h.ID, h.PlayerID, h.MatchID, h.TournamentID, h.RatingBefore, h.RatingAfter,
		h.Delta, h.OpponentRating, h.CreatedAt,
	)
	return classifyDBError(err)
}

// GetHistoryByPlayerID returns a player's most recent rating-history
// entries, newest first, capped at limit.
func (r *RatingRepository) GetHistoryByPlayerID(ctx context.Context, playerID string, limit int) ([]models.RatingHistoryEntry, error) {
	query := `
		SELECT id, player_id, match_id, tournament_id, rating_before, rating_after,
			delta, opponent_rating, created_at
		FROM rating_history
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	entries := make([]models.RatingHistoryEntry, 0, limit)
	for rows.Next() {
		var h models.RatingHistoryEntry
		if err := rows.Scan(
			&h.ID, &h.PlayerID, &h.MatchID, &h.TournamentID, &h.RatingBefore, &h.RatingAfter,
			&h.Delta, &h.OpponentRating, &h.CreatedAt,
		); err != nil {
			return nil, classifyDBError(err)
		}
		entries = append(entries, h)
	}
	return entries, nil
}
