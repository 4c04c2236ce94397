// internal/models/match.go
// Match and fixture related models

package models

import "time"

// Match represents a single 4-player Americano game within a round.
// Field names mirror original_source/app/models/round.py (team1/team2
// player pairs + per-team score) under Go naming conventions.
type Match struct {
	ID            string      `json:"id" db:"id"`
	TournamentID  string      `json:"tournament_id" db:"tournament_id"`
	RoundNumber   int         `json:"round_number" db:"round_number"`
	CourtNumber   int         `json:"court_number" db:"court_number"`
	Team1Player1  string      `json:"team1_player1_id" db:"team1_player1_id"`
	Team1Player2  string      `json:"team1_player2_id" db:"team1_player2_id"`
	Team2Player1  string      `json:"team2_player1_id" db:"team2_player1_id"`
	Team2Player2  string      `json:"team2_player2_id" db:"team2_player2_id"`
	Team1Score    *int        `json:"team1_score,omitempty" db:"team1_score"`
	Team2Score    *int        `json:"team2_score,omitempty" db:"team2_score"`
	Status        MatchStatus `json:"status" db:"status"`
	RecordedAt    *time.Time  `json:"recorded_at,omitempty" db:"recorded_at"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchCompleted MatchStatus = "completed"
)

// Team1 and Team2 return the player ids of each partnership.
func (m *Match) Team1() [2]string { return [2]string{m.Team1Player1, m.Team1Player2} }
func (m *Match) Team2() [2]string { return [2]string{m.Team2Player1, m.Team2Player2} }

// Players returns all four participants of the match in a stable order.
func (m *Match) Players() [4]string {
	return [4]string{m.Team1Player1, m.Team1Player2, m.Team2Player1, m.Team2Player2}
}
