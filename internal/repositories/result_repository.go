// internal/repositories/result_repository.go
// Final standings storage, written once per tournament on Finish.

package repositories

import (
	"context"
	"database/sql"

	"padeltour/internal/models"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// InsertAllWithTx writes every standing row for a finished tournament.
// Guarded by Tournament.PodiumApplied at the service layer so this
// never runs twice for the same tournament.
func (r *ResultRepository) InsertAllWithTx(ctx context.Context, tx *sql.Tx, results []models.TournamentResult) error {
	query := `
		INSERT INTO tournament_results (
			tournament_id, player_id, rank, points, wins, losses, ties, point_diff, rating_delta, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`
	for _, res := range results {
		if _, err := tx.ExecContext(ctx, query,
			res.TournamentID, res.PlayerID, res.Rank, res.Points, res.Wins, res.Losses, res.Ties,
			res.PointDiff, res.RatingDelta, res.CreatedAt,
		); err != nil {
			return classifyDBError(err)
		}
	}
	return nil
}

// GetByTournamentID retrieves a tournament's final standings, ordered by rank.
func (r *ResultRepository) GetByTournamentID(ctx context.Context, tournamentID string) ([]models.TournamentResult, error) {
	query := `
		SELECT tournament_id, player_id, rank, points, wins, losses, ties, point_diff, rating_delta, created_at
		FROM tournament_results WHERE tournament_id = ? ORDER BY rank ASC
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	results := make([]models.TournamentResult, 0)
	for rows.Next() {
		var res models.TournamentResult
		if err := rows.Scan(
			&res.TournamentID, &res.PlayerID, &res.Rank, &res.Points,
			&res.Wins, &res.Losses, &res.Ties, &res.PointDiff, &res.RatingDelta, &res.CreatedAt,
		); err != nil {
			return nil, classifyDBError(err)
		}
		results = append(results, res)
	}
	return results, nil
}

// GetByPlayerID retrieves every tournament standing a player has earned,
// most recent first.
func (r *ResultRepository) GetByPlayerID(ctx context.Context, playerID string) ([]models.TournamentResult, error) {
	query := `
		SELECT tournament_id, player_id, rank, points, wins, losses, ties, point_diff, rating_delta, created_at
		FROM tournament_results WHERE player_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	results := make([]models.TournamentResult, 0)
	for rows.Next() {
		var res models.TournamentResult
		if err := rows.Scan(
			&res.TournamentID, &res.PlayerID, &res.Rank, &res.Points,
			&res.Wins, &res.Losses, &res.Ties, &res.PointDiff, &res.RatingDelta, &res.CreatedAt,
		); err != nil {
			return nil, classifyDBError(err)
		}
		results = append(results, res)
	}
	return results, nil
}
