// Package pairing generates Americano round schedules: for N players
// (N a positive multiple of 4) it produces N-1 rounds, each a set of
// N/4 four-player matches, such that every player partners with every
// other player exactly once across the tournament (spec.md §4.1).
//
// original_source/app/services/americano_service.py::_generate_americano_rounds
// gets this wrong: it rotates a fixed offset per round without tracking
// which partnerships have already been used, so the same pair of
// players can end up partnered twice while other pairs never partner
// at all. This package replaces that with a one-factorization of the
// complete graph K_N (the circle method), which is a textbook
// construction guaranteeing exactly N-1 perfect matchings with no
// repeated edge, then enumerates every way of pairing up a matching's
// edges into 4-player matches and keeps the one maximizing newly-seen
// opposition pairs (two individual players on opposing teams).
package pairing

import (
	"sort"

	"padeltour/internal/apperrors"
)

// Match is one 4-player game: two partnerships opposing each other.
type Match struct {
	Team1 [2]string
	Team2 [2]string
}

// Round is the set of matches played concurrently across courts.
type Round struct {
	Number  int
	Matches []Match
}

// Schedule is a full tournament's worth of rounds.
type Schedule struct {
	Rounds []Round
}

// Generate builds a deterministic Americano schedule for the given
// player roster. The roster order only affects which players land in
// which match; the partnership guarantee holds for any ordering.
// Opposition coverage is not guaranteed: each round's partition is
// chosen on its own, so some pairs of players may never be placed on
// opposing teams. Generation is a pure function: same input always
// yields the same schedule, satisfying spec.md §8's determinism property.
func Generate(playerIDs []string) (Schedule, error) {
	n := len(playerIDs)
	if n == 0 || n%4 != 0 {
		return Schedule{}, apperrors.Newf(apperrors.InvalidRoster,
			"roster size must be a positive multiple of 4, got %d", n)
	}

	factorization := oneFactorization(n)

	seenOpposition := make(map[[2]string]bool)
	rounds := make([]Round, 0, len(factorization))

	for i, perfectMatching := range factorization {
		edges := make([][2]string, len(perfectMatching))
		for j, e := range perfectMatching {
			edges[j] = [2]string{playerIDs[e[0]], playerIDs[e[1]]}
		}
		matches := pairEdgesIntoMatches(edges, seenOpposition)
		for _, m := range matches {
			for _, key := range oppositionPairs(m) {
				seenOpposition[key] = true
			}
		}
		rounds = append(rounds, Round{Number: i + 1, Matches: matches})
	}

	return Schedule{Rounds: rounds}, nil
}

// oneFactorization returns n-1 perfect matchings of K_n (n even) using
// the standard circle method: fix player 0, rotate the remaining n-1
// players around a circle, and in round r pair player 0 with the
// player currently opposite it, then pair the remaining symmetric
// positions around the circle.
func oneFactorization(n int) [][][2]int {
	rounds := n - 1
	rest := make([]int, n-1)
	for i := range rest {
		rest[i] = i + 1
	}

	factorization := make([][][2]int, 0, rounds)
	for r := 0; r < rounds; r++ {
		matching := make([][2]int, 0, n/2)
		matching = append(matching, [2]int{0, rest[0]})
		for i, j := 1, len(rest)-1; i < j; i, j = i+1, j-1 {
			matching = append(matching, [2]int{rest[i], rest[j]})
		}
		factorization = append(factorization, matching)
		rotate(rest)
	}
	return factorization
}

// rotate shifts every element of rest one position to the right,
// wrapping the last element to the front — the circle-method step.
func rotate(rest []int) {
	if len(rest) < 2 {
		return
	}
	last := rest[len(rest)-1]
	copy(rest[1:], rest[:len(rest)-1])
	rest[0] = last
}

// pairEdgesIntoMatches groups a perfect matching's edges (partnerships)
// into 4-player matches. Per spec.md §4.1 step B, every way of
// partitioning the m edges into m/2 pairs ((m-1)!! of them) is
// enumerated, and the partition maximizing newly-seen opposition pairs
// this round is kept; ties are broken by recursion order (first edge
// always paired with the lowest-indexed remaining edge first), which is
// fixed for a given input and so stays deterministic across calls.
func pairEdgesIntoMatches(edges [][2]string, seenOpposition map[[2]string]bool) []Match {
	if len(edges) == 0 {
		return nil
	}

	used := make([]bool, len(edges))
	current := make([]Match, 0, len(edges)/2)
	var best []Match
	bestNew := -1

	var recurse func(remaining int)
	recurse = func(remaining int) {
		if remaining == 0 {
			newness := 0
			for _, m := range current {
				for _, key := range oppositionPairs(m) {
					if !seenOpposition[key] {
						newness++
					}
				}
			}
			if newness > bestNew {
				bestNew = newness
				best = append([]Match(nil), current...)
			}
			return
		}

		i := -1
		for k := range edges {
			if !used[k] {
				i = k
				break
			}
		}

		for j := i + 1; j < len(edges); j++ {
			if used[j] {
				continue
			}
			used[i], used[j] = true, true
			current = append(current, Match{Team1: edges[i], Team2: edges[j]})

			recurse(remaining - 2)

			current = current[:len(current)-1]
			used[i], used[j] = false, false
		}
	}

	recurse(len(edges))
	return best
}

// oppositionPairs returns the four unordered player pairs a match puts
// on opposing teams: each Team1 player against each Team2 player.
func oppositionPairs(m Match) [4][2]string {
	var out [4][2]string
	for i, a := range m.Team1 {
		for j, b := range m.Team2 {
			out[i*2+j] = sortedPairKey([2]string{a, b})
		}
	}
	return out
}

func sortedPairKey(pair [2]string) [2]string {
	out := pair
	if out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// PartnershipPairs returns every unordered partnership that occurs
// anywhere in the schedule, used by tests to assert uniqueness.
func (s Schedule) PartnershipPairs() [][2]string {
	var pairs [][2]string
	for _, round := range s.Rounds {
		for _, m := range round.Matches {
			pairs = append(pairs, sortedPairKey(m.Team1), sortedPairKey(m.Team2))
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}
