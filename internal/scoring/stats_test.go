package scoring

import (
	"testing"

	"padeltour/internal/models"
)

func scoreOf(v int) *int { return &v }

func sampleMatches() []models.Match {
	return []models.Match{
		{
			Team1Player1: "a", Team1Player2: "b",
			Team2Player1: "c", Team2Player2: "d",
			Team1Score: scoreOf(16), Team2Score: scoreOf(8),
			Status: models.MatchCompleted,
		},
		{
			Team1Player1: "a", Team1Player2: "c",
			Team2Player1: "b", Team2Player2: "d",
			Team1Score: scoreOf(10), Team2Score: scoreOf(14),
			Status: models.MatchCompleted,
		},
		{
			Team1Player1: "a", Team1Player2: "d",
			Team2Player1: "b", Team2Player2: "c",
			Status: models.MatchPending, // unrecorded, must be ignored
		},
	}
}

func TestAggregate_SumsPointsAndWinLoss(t *testing.T) {
	stats := Aggregate(sampleMatches())

	a := stats["a"]
	if a.Points != 26 {
		t.Fatalf("a.Points = %d, want 26", a.Points)
	}
	if a.Wins != 1 || a.Losses != 1 {
		t.Fatalf("a wins/losses = %d/%d, want 1/1", a.Wins, a.Losses)
	}
	if a.MatchesPlayed != 2 {
		t.Fatalf("a.MatchesPlayed = %d, want 2 (pending match excluded)", a.MatchesPlayed)
	}
}

func TestAggregate_TeammatesShareIdenticalOutcome(t *testing.T) {
	// Match 1: a+b beat c+d 16-8. Both teammates on each side must get
	// the same points, point diff and result from it.
	stats := Aggregate([]models.Match{sampleMatches()[0]})
	for _, id := range []string{"a", "b"} {
		if s := stats[id]; s.Points != 16 || s.PointDiff != 8 || s.Wins != 1 {
			t.Fatalf("expected %s (team1) to get 16 points, +8 diff and a win, got %d/%d/%d", id, s.Points, s.PointDiff, s.Wins)
		}
	}
	for _, id := range []string{"c", "d"} {
		if s := stats[id]; s.Points != 8 || s.PointDiff != -8 || s.Losses != 1 {
			t.Fatalf("expected %s (team2) to get 8 points, -8 diff and a loss, got %d/%d/%d", id, s.Points, s.PointDiff, s.Losses)
		}
	}
}

func TestRank_PointDiffBeatsWins(t *testing.T) {
	// m has more wins than z despite equal points, but z has the better
	// point differential: z must rank ahead of m (spec.md §4.2 tie-break
	// is total_points, then points_difference — wins are not a key).
	stats := map[string]*PlayerStats{
		"z": {PlayerID: "z", Points: 10, Wins: 2, PointDiff: 4},
		"m": {PlayerID: "m", Points: 10, Wins: 3, PointDiff: 0},
	}
	standings := Rank(stats, []string{"m", "z"})
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}
	if standings[0].PlayerID != "z" {
		t.Fatalf("expected z first on point differential despite fewer wins, got %s", standings[0].PlayerID)
	}
}

func TestRank_FullTieFallsBackToRosterOrder(t *testing.T) {
	stats := map[string]*PlayerStats{
		"z": {PlayerID: "z", Points: 10, PointDiff: 0},
		"a": {PlayerID: "a", Points: 10, PointDiff: 0},
	}
	// Roster lists z before a; a fully-tied pair must preserve that
	// order rather than falling back to alphabetical player id.
	standings := Rank(stats, []string{"z", "a"})
	if standings[0].PlayerID != "z" || standings[1].PlayerID != "a" {
		t.Fatalf("expected roster order [z, a] on a full tie, got [%s, %s]", standings[0].PlayerID, standings[1].PlayerID)
	}

	reordered := Rank(stats, []string{"a", "z"})
	if reordered[0].PlayerID != "a" || reordered[1].PlayerID != "z" {
		t.Fatalf("expected roster order [a, z] on a full tie, got [%s, %s]", reordered[0].PlayerID, reordered[1].PlayerID)
	}
}

func TestRank_StableAcrossRepeatedCalls(t *testing.T) {
	stats := Aggregate(sampleMatches())
	roster := []string{"a", "b", "c", "d"}
	first := Rank(stats, roster)
	second := Rank(stats, roster)
	for i := range first {
		if first[i].PlayerID != second[i].PlayerID {
			t.Fatalf("ranking not deterministic at index %d: %s vs %s", i, first[i].PlayerID, second[i].PlayerID)
		}
	}
}

func TestAggregate_TracksTies(t *testing.T) {
	tied := []models.Match{
		{
			Team1Player1: "a", Team1Player2: "b",
			Team2Player1: "c", Team2Player2: "d",
			Team1Score: scoreOf(16), Team2Score: scoreOf(16),
			Status: models.MatchCompleted,
		},
	}
	stats := Aggregate(tied)
	if stats["a"].Ties != 1 || stats["a"].Wins != 0 || stats["a"].Losses != 0 {
		t.Fatalf("expected a tie to be counted as neither a win nor a loss, got wins=%d losses=%d ties=%d",
			stats["a"].Wins, stats["a"].Losses, stats["a"].Ties)
	}
	if stats["c"].Ties != 1 {
		t.Fatalf("expected the opposing team to also be credited a tie")
	}
}

func TestIsTournamentComplete(t *testing.T) {
	if IsTournamentComplete(sampleMatches()) {
		t.Fatalf("expected incomplete because one match is pending")
	}
	complete := sampleMatches()[:2]
	if !IsTournamentComplete(complete) {
		t.Fatalf("expected complete when all matches are recorded")
	}
	if IsTournamentComplete(nil) {
		t.Fatalf("expected empty schedule to not count as complete")
	}
}
