// internal/repositories/match_repository.go
// Match data access layer

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
)

// MatchRepository handles match data access
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, round_number, court_number,
	team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
	team1_score, team2_score, status, recorded_at, created_at
`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.RoundNumber, &m.CourtNumber,
		&m.Team1Player1, &m.Team1Player2, &m.Team2Player1, &m.Team2Player2,
		&m.Team1Score, &m.Team2Score, &m.Status, &m.RecordedAt, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.NotFound, "match not found")
	}
	if err != nil {
		return nil, classifyDBError(err)
	}
	return &m, nil
}

// CreateWithTx inserts a match as part of a larger round-generation transaction.
func (r *MatchRepository) CreateWithTx(ctx context.Context, tx *sql.Tx, m *models.Match) error {
	query := `INSERT INTO matches (` + matchColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := tx.ExecContext(ctx, query,
		m.ID, m.TournamentID, m.RoundNumber, m.CourtNumber,
		m.Team1Player1, m.Team1Player2, m.Team2Player1, m.Team2Player2,
		m.Team1Score, m.Team2Score, m.Status, m.RecordedAt, m.CreatedAt,
	)
	return classifyDBError(err)
}

// GetByID retrieves a match by ID.
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = ?`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate locks the match row within tx, guarding against a
// double record-result race for the same match.
func (r *MatchRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = ? FOR UPDATE`
	return scanMatch(tx.QueryRowContext(ctx, query, id))
}

// GetByTournamentID retrieves all matches for a tournament, ordered for display.
func (r *MatchRepository) GetByTournamentID(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = ? ORDER BY round_number, court_number`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// GetByRound retrieves the matches belonging to a single round.
func (r *MatchRepository) GetByRound(ctx context.Context, tournamentID string, round int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = ? AND round_number = ? ORDER BY court_number`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, round)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// RecordScoreWithTx writes a final score and marks the match completed.
func (r *MatchRepository) RecordScoreWithTx(ctx context.Context, tx *sql.Tx, id string, score1, score2 int) error {
	query := `
		UPDATE matches SET team1_score = ?, team2_score = ?, status = ?, recorded_at = NOW()
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query, score1, score2, models.MatchCompleted, id)
	return classifyDBError(err)
}
