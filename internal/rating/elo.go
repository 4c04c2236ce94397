// Package rating implements the doubles Elo-variant engine from
// spec.md §4.3.
//
// Grounded on original_source/app/services/elo_service.py
// (calculate_expected_score, get_k_factor, update_match_ratings) but
// diverges from it in one deliberate way, per spec.md's explicit
// requirement and DESIGN.md's per-part grounding notes: the original
// computes each of the four players' rating delta independently, which
// does not conserve rating across a match. Here the team delta is
// computed exactly once from the two team average ratings and negated
// for the opposing team, so every match is exactly zero-sum at the
// team level; only the split of a team's delta between its two
// players is allowed to be rating-aware and therefore non-equal.
package rating

import "math"

// Config holds the tunable constants, loaded from internal/config at
// wire-up time (see SPEC_FULL.md §6). The Elo scale of 400 and the
// uncertainty bands (1.25/1.10/1.00) are fixed in this package and are
// not part of Config.
type Config struct {
	InitialRating float64

	KNewPlayer   float64
	KNormal      float64
	KExperienced float64

	NewPlayerThreshold   int // matches played strictly below this uses KNewPlayer
	ExperiencedThreshold int // matches played strictly above this uses KExperienced

	MarginScale float64 // λ_margin, weight applied to the score-margin ratio

	SplitTilt    float64 // 0 = always split a team's delta evenly
	RatingGapCap float64 // clamp on the rating gap fed into the expected-score formula
}

// DefaultConfig returns the constants spec.md §6 enumerates.
func DefaultConfig() Config {
	return Config{
		InitialRating:        1000,
		KNewPlayer:           40,
		KNormal:              20,
		KExperienced:         10,
		NewPlayerThreshold:   30,
		ExperiencedThreshold: 100,
		MarginScale:          0.75,
		SplitTilt:            0.25,
		RatingGapCap:         600,
	}
}

// PlayerState is the minimal rating snapshot UpdateMatch needs for one player.
type PlayerState struct {
	PlayerID      string
	Rating        float64
	MatchesPlayed int
}

// PlayerDelta is the outcome of applying a match to one player's rating.
type PlayerDelta struct {
	PlayerID     string
	RatingBefore float64
	RatingAfter  float64
	Delta        float64
}

// UpdateMatch computes the four player-level rating deltas for a single
// completed match. team1Score and team2Score are the final point
// totals; scores must not be equal (padel/Americano matches are always
// decisive at the team level) — callers validate this before calling in.
func UpdateMatch(cfg Config, team1, team2 [2]PlayerState, team1Score, team2Score int) []PlayerDelta {
	teamRating1 := (team1[0].Rating + team1[1].Rating) / 2
	teamRating2 := (team2[0].Rating + team2[1].Rating) / 2

	gap := clamp(teamRating1-teamRating2, -cfg.RatingGapCap, cfg.RatingGapCap)
	expected1 := 1 / (1 + math.Pow(10, -gap/400))

	total := team1Score + team2Score
	actual1 := 0.0
	if total > 0 {
		actual1 = float64(team1Score) / float64(total)
	} else if team1Score > team2Score {
		actual1 = 1.0
	}

	kBase1 := kFactorForTeam(cfg, team1)
	minMatches := team1[0].MatchesPlayed
	if team1[1].MatchesPlayed < minMatches {
		minMatches = team1[1].MatchesPlayed
	}
	margin := marginMultiplier(cfg, team1Score, team2Score, total)
	u := uncertaintyMultiplier(minMatches)
	k1 := kBase1 * margin * u

	// Computed exactly once; team2's delta is the negation, guaranteeing
	// the match is zero-sum across all four participants.
	teamDelta := k1 * (actual1 - expected1)

	d1a, d1b := splitTeamDelta(cfg, team1[0], team1[1], teamDelta)
	d2a, d2b := splitTeamDelta(cfg, team2[0], team2[1], -teamDelta)

	return []PlayerDelta{
		newDelta(team1[0], d1a),
		newDelta(team1[1], d1b),
		newDelta(team2[0], d2a),
		newDelta(team2[1], d2b),
	}
}

func newDelta(p PlayerState, delta float64) PlayerDelta {
	return PlayerDelta{
		PlayerID:     p.PlayerID,
		RatingBefore: p.Rating,
		RatingAfter:  p.Rating + delta,
		Delta:        delta,
	}
}

// kFactorForTeam bands a single team's base K-factor by the *minimum*
// matches-played of its own two players: the team moves conservatively,
// at the pace of its least experienced member.
func kFactorForTeam(cfg Config, team [2]PlayerState) float64 {
	min := team[0].MatchesPlayed
	if team[1].MatchesPlayed < min {
		min = team[1].MatchesPlayed
	}
	return kBaseFor(cfg, min)
}

func kBaseFor(cfg Config, matchesPlayed int) float64 {
	switch {
	case matchesPlayed < cfg.NewPlayerThreshold:
		return cfg.KNewPlayer
	case matchesPlayed > cfg.ExperiencedThreshold:
		return cfg.KExperienced
	default:
		return cfg.KNormal
	}
}

// marginMultiplier scales the delta by how lopsided the result was:
// margin is the score differential as a fraction of total points played.
func marginMultiplier(cfg Config, score1, score2, total int) float64 {
	diff := score1 - score2
	if diff < 0 {
		diff = -diff
	}
	denom := total
	if denom < 1 {
		denom = 1
	}
	margin := float64(diff) / float64(denom)
	return 1 + cfg.MarginScale*margin
}

// uncertaintyMultiplier widens the effective K-factor further when the
// least experienced player on the team has played very few matches,
// since their true rating is still largely unknown.
func uncertaintyMultiplier(minMatches int) float64 {
	switch {
	case minMatches < 5:
		return 1.25
	case minMatches < 15:
		return 1.10
	default:
		return 1.00
	}
}

// splitTeamDelta divides a team's single conserved delta between its
// two players. On a gain, the lower-rated partner is tilted a larger
// share (their result is more informative about their true skill); on
// a loss, they are tilted a smaller share of the loss. The two shares
// always sum to exactly 1, so p1Delta+p2Delta == teamDelta.
func splitTeamDelta(cfg Config, p1, p2 PlayerState, teamDelta float64) (float64, float64) {
	diff := clamp(p1.Rating-p2.Rating, -cfg.RatingGapCap, cfg.RatingGapCap) / 400
	share1 := 0.5 - cfg.SplitTilt*sign(teamDelta)*diff
	if share1 < 0 {
		share1 = 0
	}
	if share1 > 1 {
		share1 = 1
	}
	share2 := 1 - share1
	return share1 * teamDelta, share2 * teamDelta
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
