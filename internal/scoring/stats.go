// Package scoring aggregates recorded match results into per-player
// statistics and a ranked standings table. All functions are pure: they
// take a slice of completed matches and return a value, with no store
// access, so every property in spec.md §8 can be checked directly.
//
// Grounded on original_source/app/services/americano_service.py::
// calculate_player_scores and get_player_leaderboard, rewritten with an
// explicit, total tie-break order instead of relying on Python dict
// iteration order.
package scoring

import (
	"sort"

	"padeltour/internal/models"
)

// PlayerStats is one player's accumulated performance in a tournament.
type PlayerStats struct {
	PlayerID      string
	Points        int // sum of this player's team score across all matches played
	Wins          int
	Losses        int
	Ties          int
	MatchesPlayed int
	PointDiff     int // sum of (own team score - opponent team score)
}

// Aggregate folds a tournament's completed matches into per-player stats.
// Matches without both scores recorded are ignored.
func Aggregate(matches []models.Match) map[string]*PlayerStats {
	stats := map[string]*PlayerStats{}

	ensure := func(id string) *PlayerStats {
		s, ok := stats[id]
		if !ok {
			s = &PlayerStats{PlayerID: id}
			stats[id] = s
		}
		return s
	}

	for _, m := range matches {
		if m.Status != models.MatchCompleted || m.Team1Score == nil || m.Team2Score == nil {
			continue
		}
		s1, s2 := *m.Team1Score, *m.Team2Score
		team1 := [2]string{m.Team1Player1, m.Team1Player2}
		team2 := [2]string{m.Team2Player1, m.Team2Player2}

		applyTeamResult(ensure, team1, s1, s2)
		applyTeamResult(ensure, team2, s2, s1)
	}

	return stats
}

func applyTeamResult(ensure func(string) *PlayerStats, team [2]string, own, opp int) {
	for _, id := range team {
		s := ensure(id)
		s.Points += own
		s.PointDiff += own - opp
		s.MatchesPlayed++
		switch {
		case own > opp:
			s.Wins++
		case own < opp:
			s.Losses++
		default:
			s.Ties++
		}
	}
}

// Standing is one ranked row of a leaderboard.
type Standing struct {
	Rank int
	PlayerStats
}

// Rank orders player stats into a standings table: total_points desc,
// points_difference desc, then roster order. roster gives the input
// order to fall back on, since a map's iteration order is random and
// the tie-break must be stable and deterministic regardless of it
// (spec.md §4.2, §8's seed scenario 6: ties with no point-differential
// gap keep roster order).
func Rank(stats map[string]*PlayerStats, roster []string) []Standing {
	rosterIndex := make(map[string]int, len(roster))
	for i, id := range roster {
		rosterIndex[id] = i
	}

	rows := make([]PlayerStats, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, *s)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		return rosterIndex[a.PlayerID] < rosterIndex[b.PlayerID]
	})

	standings := make([]Standing, len(rows))
	for i, r := range rows {
		standings[i] = Standing{Rank: i + 1, PlayerStats: r}
	}
	return standings
}

// IsTournamentComplete reports whether every match has a recorded score.
func IsTournamentComplete(matches []models.Match) bool {
	for _, m := range matches {
		if m.Status != models.MatchCompleted {
			return false
		}
	}
	return len(matches) > 0
}
