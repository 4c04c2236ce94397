// internal/models/result.go
// Tournament-final standings, written once per tournament on Finish.
// Grounded on original_source/app/services/elo_service.py::update_tournament_podium
// and app/services/americano_service.py::get_player_leaderboard.

package models

import "time"

type TournamentResult struct {
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	PlayerID     string    `json:"player_id" db:"player_id"`
	Rank         int       `json:"rank" db:"rank"`
	Points       int       `json:"points" db:"points"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	Ties         int       `json:"ties" db:"ties"`
	PointDiff    int       `json:"point_diff" db:"point_diff"`
	RatingDelta  float64   `json:"rating_delta" db:"rating_delta"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
