// internal/models/tournament.go
// Domain models representing core business entities

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tournament represents an Americano doubles tournament.
type Tournament struct {
	ID            string           `json:"id" db:"id"`
	OrganizerID   string           `json:"organizer_id" db:"organizer_id"`
	Name          string           `json:"name" db:"name"`
	JoinCode      string           `json:"join_code" db:"join_code"`
	Status        TournamentStatus `json:"status" db:"status"`
	CourtCount    int              `json:"court_count" db:"court_count"`
	PointsPerGame int              `json:"points_per_game" db:"points_per_game"`
	RosterSize    int              `json:"roster_size" db:"roster_size"`
	Roster        PlayerIDList     `json:"roster" db:"roster"`
	CurrentRound  int              `json:"current_round" db:"current_round"`
	TotalRounds   int              `json:"total_rounds" db:"total_rounds"`
	PodiumApplied bool             `json:"podium_applied" db:"podium_applied"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	StartedAt     *time.Time       `json:"started_at,omitempty" db:"started_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// TournamentStatus is the lifecycle state machine from spec.md §4.4.
type TournamentStatus string

const (
	StatusPending   TournamentStatus = "pending"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// PlayerIDList is the JSON-encoded ordered roster stored on a tournament row.
type PlayerIDList []string

func (p *PlayerIDList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into PlayerIDList", value)
	}
	return json.Unmarshal(bytes, p)
}

func (p PlayerIDList) Value() (driver.Value, error) {
	return json.Marshal(p)
}
