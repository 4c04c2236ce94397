// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"

	"padeltour/internal/database"
)

// Container holds all repository instances
type Container struct {
	User            *UserRepository
	UserPreferences *UserPreferencesRepository
	Player          *PlayerRepository
	Tournament      *TournamentRepository
	Match           *MatchRepository
	Rating          *RatingRepository
	Result          *ResultRepository
	Audit           *AuditRepository
	db              *sql.DB
}

// NewContainer creates a new repository container
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		User:            NewUserRepository(conn.MySQL),
		UserPreferences: NewUserPreferencesRepository(conn.MongoDB),
		Player:          NewPlayerRepository(conn.MySQL),
		Tournament:      NewTournamentRepository(conn.MySQL),
		Match:           NewMatchRepository(conn.MySQL),
		Rating:          NewRatingRepository(conn.MySQL),
		Result:          NewResultRepository(conn.MySQL),
		Audit:           NewAuditRepository(conn.MongoDB),
		db:              conn.MySQL,
	}
}

// BeginTx starts a new database transaction
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
