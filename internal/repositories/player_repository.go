// internal/repositories/player_repository.go
// Player data access layer, grounded on the teacher's repository shape
// (raw SQL, Create/CreateWithTx/GetByID) applied to a new entity.

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"padeltour/internal/apperrors"
	"padeltour/internal/models"
)

type PlayerRepository struct {
	db *sql.DB
}

func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, display_name, contact_handle, user_id, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.DisplayName, &p.ContactHandle, &p.UserID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.NotFound, "player not found")
	}
	if err != nil {
		return nil, classifyDBError(err)
	}
	return &p, nil
}

// GetOrCreateByIDWithTx inserts a player row if it does not already
// exist (idempotent join-by-code roster growth, spec.md §4.4).
func (r *PlayerRepository) GetOrCreateByIDWithTx(ctx context.Context, tx *sql.Tx, p *models.Player) error {
	query := `
		INSERT INTO players (` + playerColumns + `) VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE display_name = display_name
	`
	_, err := tx.ExecContext(ctx, query, p.ID, p.DisplayName, p.ContactHandle, p.UserID, p.CreatedAt)
	return classifyDBError(err)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ?`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDs loads multiple players in one round trip, used when hydrating a roster.
func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]byte, 0, len(ids)*2)
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = id
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id IN (` + string(placeholders) + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyDBError(err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0, len(ids))
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}
