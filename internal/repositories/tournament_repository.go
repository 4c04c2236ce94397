// internal/repositories/tournament_repository.go
// Tournament data access layer

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
)

// TournamentRepository handles tournament data access
type TournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *sql.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentColumns = `
	id, organizer_id, name, join_code, status, court_count, points_per_game,
	roster_size, roster, current_round, total_rounds, podium_applied,
	created_at, started_at, completed_at, updated_at
`

func scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID, &t.OrganizerID, &t.Name, &t.JoinCode, &t.Status, &t.CourtCount,
		&t.PointsPerGame, &t.RosterSize, &t.Roster, &t.CurrentRound, &t.TotalRounds,
		&t.PodiumApplied, &t.CreatedAt, &t.StartedAt, &t.CompletedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.NotFound, "tournament not found")
	}
	if err != nil {
		return nil, classifyDBError(err)
	}
	return &t, nil
}

// Create inserts a new tournament.
func (r *TournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `INSERT INTO tournaments (` + tournamentColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.OrganizerID, t.Name, t.JoinCode, t.Status, t.CourtCount, t.PointsPerGame,
		t.RosterSize, t.Roster, t.CurrentRound, t.TotalRounds, t.PodiumApplied,
		t.CreatedAt, t.StartedAt, t.CompletedAt, t.UpdatedAt,
	)
	return classifyDBError(err)
}

// CreateWithTx creates a tournament within a transaction.
func (r *TournamentRepository) CreateWithTx(ctx context.Context, tx *sql.Tx, t *models.Tournament) error {
	query := `INSERT INTO tournaments (` + tournamentColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := tx.ExecContext(ctx, query,
		t.ID, t.OrganizerID, t.Name, t.JoinCode, t.Status, t.CourtCount, t.PointsPerGame,
		t.RosterSize, t.Roster, t.CurrentRound, t.TotalRounds, t.PodiumApplied,
		t.CreatedAt, t.StartedAt, t.CompletedAt, t.UpdatedAt,
	)
	return classifyDBError(err)
}

// GetByID retrieves a tournament by ID.
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ?`
	return scanTournament(r.db.QueryRowContext(ctx, query, id))
}

// GetByJoinCode retrieves a tournament by its public join code.
func (r *TournamentRepository) GetByJoinCode(ctx context.Context, code string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE join_code = ?`
	return scanTournament(r.db.QueryRowContext(ctx, query, code))
}

// GetByIDForUpdate locks the tournament row for the duration of tx, the
// mechanism backing spec.md §5's per-tournament exclusive lock on every
// mutating lifecycle operation.
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ? FOR UPDATE`
	return scanTournament(tx.QueryRowContext(ctx, query, id))
}

// Update persists all mutable tournament fields.
func (r *TournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = ?, status = ?, court_count = ?, points_per_game = ?,
			roster_size = ?, roster = ?, current_round = ?, total_rounds = ?,
			podium_applied = ?, started_at = ?, completed_at = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		t.Name, t.Status, t.CourtCount, t.PointsPerGame, t.RosterSize, t.Roster,
		t.CurrentRound, t.TotalRounds, t.PodiumApplied, t.StartedAt, t.CompletedAt, t.ID,
	)
	return classifyDBError(err)
}

// UpdateWithTx is Update scoped to an existing transaction, used by the
// lifecycle operations that hold the row lock acquired by GetByIDForUpdate.
func (r *TournamentRepository) UpdateWithTx(ctx context.Context, tx *sql.Tx, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = ?, status = ?, court_count = ?, points_per_game = ?,
			roster_size = ?, roster = ?, current_round = ?, total_rounds = ?,
			podium_applied = ?, started_at = ?, completed_at = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		t.Name, t.Status, t.CourtCount, t.PointsPerGame, t.RosterSize, t.Roster,
		t.CurrentRound, t.TotalRounds, t.PodiumApplied, t.StartedAt, t.CompletedAt, t.ID,
	)
	return classifyDBError(err)
}

// ListFilter defines filtering options for tournament queries.
type ListFilter struct {
	Page        int
	Limit       int
	OrganizerID string
	Status      models.TournamentStatus
}

// List retrieves tournaments with pagination and filters.
func (r *TournamentRepository) List(ctx context.Context, filter ListFilter) ([]*models.Tournament, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	if filter.OrganizerID != "" {
		where += " AND organizer_id = ?"
		args = append(args, filter.OrganizerID)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tournaments "+where, args...).Scan(&total); err != nil {
		return nil, 0, classifyDBError(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classifyDBError(err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, 0, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, total, nil
}
