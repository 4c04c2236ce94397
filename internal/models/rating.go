// internal/models/rating.go
// Rating state and history, mirroring original_source/app/models/player_rating.py
// field for field (PlayerRating + RatingHistory), adapted to Go struct tags.

package models

import "time"

type PlayerRating struct {
	PlayerID         string    `json:"player_id" db:"player_id"`
	Rating           float64   `json:"rating" db:"rating"`
	MatchesPlayed    int       `json:"matches_played" db:"matches_played"`
	Wins             int       `json:"wins" db:"wins"`
	Losses           int       `json:"losses" db:"losses"`
	TournamentsPlayed int      `json:"tournaments_played" db:"tournaments_played"`
	PodiumFirst      int       `json:"podium_first" db:"podium_first"`
	PodiumSecond     int       `json:"podium_second" db:"podium_second"`
	PodiumThird      int       `json:"podium_third" db:"podium_third"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// RatingHistoryEntry records one rating adjustment, so a player's rating
// trajectory can be reconstructed without replaying every match.
type RatingHistoryEntry struct {
	ID             string    `json:"id" db:"id"`
	PlayerID       string    `json:"player_id" db:"player_id"`
	MatchID        string    `json:"match_id" db:"match_id"`
	TournamentID   string    `json:"tournament_id" db:"tournament_id"`
	RatingBefore   float64   `json:"rating_before" db:"rating_before"`
	RatingAfter    float64   `json:"rating_after" db:"rating_after"`
	Delta          float64   `json:"delta" db:"delta"`
	OpponentRating float64   `json:"opponent_rating" db:"opponent_rating"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SkillBand buckets a rating into a human label for leaderboard display.
type SkillBand string

const (
	SkillBandBeginner           SkillBand = "Beginner"
	SkillBandNovice             SkillBand = "Novice"
	SkillBandImprover           SkillBand = "Improver"
	SkillBandWeakIntermediate   SkillBand = "Weak Intermediate"
	SkillBandIntermediate       SkillBand = "Intermediate"
	SkillBandStrongIntermediate SkillBand = "Strong Intermediate"
	SkillBandWeakAdvanced       SkillBand = "Weak Advanced"
	SkillBandAdvanced           SkillBand = "Advanced"
	SkillBandStrongAdvanced     SkillBand = "Strong Advanced"
	SkillBandWeakExpert         SkillBand = "Weak Expert"
	SkillBandExpert             SkillBand = "Expert"
)

// BandFor buckets a rating into its skill label and external scale,
// per the banded table of spec.md's read-side projections.
func BandFor(rating float64) (SkillBand, float64) {
	switch {
	case rating < 1100:
		return SkillBandBeginner, 1.0
	case rating < 1200:
		return SkillBandNovice, 2.0
	case rating < 1300:
		return SkillBandImprover, 2.5
	case rating < 1400:
		return SkillBandWeakIntermediate, 3.0
	case rating < 1500:
		return SkillBandIntermediate, 3.5
	case rating < 1600:
		return SkillBandStrongIntermediate, 4.0
	case rating < 1700:
		return SkillBandWeakAdvanced, 4.5
	case rating < 1800:
		return SkillBandAdvanced, 5.0
	case rating < 1900:
		return SkillBandStrongAdvanced, 5.5
	case rating < 2000:
		return SkillBandWeakExpert, 6.0
	default:
		return SkillBandExpert, 6.5
	}
}
