package rating

import (
	"math"
	"testing"
)

func ps(id string, r float64, played int) PlayerState {
	return PlayerState{PlayerID: id, Rating: r, MatchesPlayed: played}
}

func TestUpdateMatch_ZeroSumAcrossAllFourPlayers(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("a", 1000, 10), ps("b", 980, 12)}
	team2 := [2]PlayerState{ps("c", 1020, 8), ps("d", 990, 20)}

	deltas := UpdateMatch(cfg, team1, team2, 16, 8)

	var sum float64
	for _, d := range deltas {
		sum += d.Delta
	}
	if math.Abs(sum) > 1e-9 {
		t.Fatalf("expected zero-sum deltas, got total %f", sum)
	}
}

func TestUpdateMatch_TeamDeltaEqualsNegationAcrossTeams(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("a", 1000, 10), ps("b", 1000, 10)}
	team2 := [2]PlayerState{ps("c", 1000, 10), ps("d", 1000, 10)}

	deltas := UpdateMatch(cfg, team1, team2, 16, 10)
	team1Delta := deltas[0].Delta + deltas[1].Delta
	team2Delta := deltas[2].Delta + deltas[3].Delta

	if math.Abs(team1Delta+team2Delta) > 1e-9 {
		t.Fatalf("team deltas should be exact negations, got %f and %f", team1Delta, team2Delta)
	}
	if team1Delta <= 0 {
		t.Fatalf("winning team should gain rating, got %f", team1Delta)
	}
}

func TestUpdateMatch_EvenRatingsSplitEvenly(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("a", 1000, 10), ps("b", 1000, 10)}
	team2 := [2]PlayerState{ps("c", 1000, 10), ps("d", 1000, 10)}

	deltas := UpdateMatch(cfg, team1, team2, 16, 10)
	if math.Abs(deltas[0].Delta-deltas[1].Delta) > 1e-9 {
		t.Fatalf("expected equal split for equally rated teammates, got %f vs %f", deltas[0].Delta, deltas[1].Delta)
	}
}

func TestUpdateMatch_LowerRatedPartnerGainsMoreOnWin(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("strong", 1200, 10), ps("weak", 900, 10)}
	team2 := [2]PlayerState{ps("c", 1050, 10), ps("d", 1050, 10)}

	deltas := UpdateMatch(cfg, team1, team2, 16, 10)
	strongDelta, weakDelta := deltas[0].Delta, deltas[1].Delta
	if !(weakDelta > strongDelta) {
		t.Fatalf("expected weaker partner to gain more on a win, got strong=%f weak=%f", strongDelta, weakDelta)
	}
}

func TestUpdateMatch_NewPlayersMoveFasterThanExperienced(t *testing.T) {
	cfg := DefaultConfig()
	newTeam1 := [2]PlayerState{ps("a", 1000, 0), ps("b", 1000, 0)}
	newTeam2 := [2]PlayerState{ps("c", 1000, 0), ps("d", 1000, 0)}
	expTeam1 := [2]PlayerState{ps("a", 1000, 50), ps("b", 1000, 50)}
	expTeam2 := [2]PlayerState{ps("c", 1000, 50), ps("d", 1000, 50)}

	newDeltas := UpdateMatch(cfg, newTeam1, newTeam2, 16, 10)
	expDeltas := UpdateMatch(cfg, expTeam1, expTeam2, 16, 10)

	if !(math.Abs(newDeltas[0].Delta) > math.Abs(expDeltas[0].Delta)) {
		t.Fatalf("expected new players' ratings to move more: new=%f exp=%f", newDeltas[0].Delta, expDeltas[0].Delta)
	}
}

func TestUpdateMatch_PointsShareActual(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("a", 1000, 10), ps("b", 1000, 10)}
	team2 := [2]PlayerState{ps("c", 1000, 10), ps("d", 1000, 10)}

	deltas := UpdateMatch(cfg, team1, team2, 24, 16)
	blowout := UpdateMatch(cfg, team1, team2, 24, 0)

	teamDelta := deltas[0].Delta + deltas[1].Delta
	blowoutDelta := blowout[0].Delta + blowout[1].Delta
	if !(blowoutDelta > teamDelta) {
		t.Fatalf("expected a 24-0 shutout to gain strictly more than a 24-16 win, got 24-16=%f 24-0=%f", teamDelta, blowoutDelta)
	}
}

func TestUpdateMatch_SeedScenario5_RatingConservation(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("A", 1200, 10), ps("B", 900, 10)}
	team2 := [2]PlayerState{ps("C", 1000, 10), ps("D", 1000, 10)}

	deltas := UpdateMatch(cfg, team1, team2, 24, 16)
	dA, dB, dC, dD := deltas[0].Delta, deltas[1].Delta, deltas[2].Delta, deltas[3].Delta

	if sum := dA + dB + dC + dD; math.Abs(sum) > 1e-9 {
		t.Fatalf("expected conserved deltas, got sum %f", sum)
	}
	if !(dB > dA && dA > 0) {
		t.Fatalf("expected 0 < Δ_A < Δ_B, got Δ_A=%f Δ_B=%f", dA, dB)
	}
	if !(dC < 0 && dD < 0) {
		t.Fatalf("expected both losing players to lose rating, got Δ_C=%f Δ_D=%f", dC, dD)
	}
}

func TestUpdateMatch_BiggerMarginMovesRatingsMore(t *testing.T) {
	cfg := DefaultConfig()
	team1 := [2]PlayerState{ps("a", 1000, 10), ps("b", 1000, 10)}
	team2 := [2]PlayerState{ps("c", 1000, 10), ps("d", 1000, 10)}

	small := UpdateMatch(cfg, team1, team2, 16, 14)
	big := UpdateMatch(cfg, team1, team2, 16, 2)

	if !(big[0].Delta > small[0].Delta) {
		t.Fatalf("expected a larger margin of victory to produce a larger gain: small=%f big=%f", small[0].Delta, big[0].Delta)
	}
}
