package pairing

import (
	"fmt"
	"testing"

	"padeltour/internal/apperrors"
)

func rosterOf(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%02d", i)
	}
	return ids
}

func TestGenerate_RejectsNonMultipleOfFour(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 6, 7, 9, 10} {
		_, err := Generate(rosterOf(n))
		if err == nil {
			t.Fatalf("n=%d: expected error, got nil", n)
		}
		if apperrors.KindOf(err) != apperrors.InvalidRoster {
			t.Fatalf("n=%d: expected InvalidRoster, got %v", n, apperrors.KindOf(err))
		}
	}
}

func TestGenerate_RoundCountAndSize(t *testing.T) {
	for _, n := range []int{4, 8, 12, 16, 20, 24} {
		sched, err := Generate(rosterOf(n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(sched.Rounds) != n-1 {
			t.Fatalf("n=%d: expected %d rounds, got %d", n, n-1, len(sched.Rounds))
		}
		for _, round := range sched.Rounds {
			if len(round.Matches) != n/4 {
				t.Fatalf("n=%d round %d: expected %d matches, got %d", n, round.Number, n/4, len(round.Matches))
			}
			seen := map[string]bool{}
			for _, m := range round.Matches {
				for _, p := range [4]string{m.Team1[0], m.Team1[1], m.Team2[0], m.Team2[1]} {
					if seen[p] {
						t.Fatalf("n=%d round %d: player %s appears twice", n, round.Number, p)
					}
					seen[p] = true
				}
			}
			if len(seen) != n {
				t.Fatalf("n=%d round %d: expected all %d players scheduled, got %d", n, round.Number, n, len(seen))
			}
		}
	}
}

func TestGenerate_PartnershipUniqueness(t *testing.T) {
	for _, n := range []int{4, 8, 12, 16, 20} {
		sched, err := Generate(rosterOf(n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		counts := map[[2]string]int{}
		for _, p := range sched.PartnershipPairs() {
			counts[p]++
		}
		for pair, c := range counts {
			if c != 1 {
				t.Fatalf("n=%d: pair %v partnered %d times, want exactly 1", n, pair, c)
			}
		}
		wantPairs := n * (n - 1) / 2
		if len(counts) != wantPairs {
			t.Fatalf("n=%d: expected %d unique partnerships, got %d", n, wantPairs, len(counts))
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roster := rosterOf(12)
	a, err := Generate(roster)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(roster)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("expected identical schedules for identical input")
	}
}
