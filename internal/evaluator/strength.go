package evaluator

import (
	"math"
	"sort"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

// HandStrength produces a rough 5..99 score for the combined hole and
// board cards. It is a fast heuristic for decision weighting, not a
// showdown ranking; use Evaluate for that.
func HandStrength(hole, board []deck.Card) int {
	cards := make([]deck.Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)

	rankCounts := make(map[int]int, len(cards))
	suitCounts := make(map[deck.Suit]int, 4)
	for _, c := range cards {
		rankCounts[c.Value()]++
		suitCounts[c.Suit]++
	}

	frequencies := make([]int, 0, len(rankCounts))
	for _, n := range rankCounts {
		frequencies = append(frequencies, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(frequencies)))

	hi, lo := hole[0].Value(), hole[1].Value()
	if lo > hi {
		hi, lo = lo, hi
	}
	avgHole := float64(hi+lo) / 2

	score := 15 + avgHole*2.2

	if hi == lo {
		score += 18 + float64(hi)*0.8
	} else if hole[0].Suit == hole[1].Suit {
		score += 4
	}

	switch {
	case frequencies[0] == 4:
		score += 45
	case frequencies[0] == 3 && len(frequencies) > 1 && frequencies[1] >= 2:
		score += 35
	case frequencies[0] == 3:
		score += 24
	case frequencies[0] == 2 && len(frequencies) > 1 && frequencies[1] == 2:
		score += 18
	case frequencies[0] == 2:
		score += 11
	}

	maxSuit := 0
	for _, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
	}
	if maxSuit >= 5 {
		score += 30
	} else if maxSuit == 4 {
		score += 9
	}

	score += float64(straightRunScore(cards))

	if len(board) >= 3 {
		topBoard := 0
		for _, c := range board {
			if c.Value() > topBoard {
				topBoard = c.Value()
			}
		}
		if hi > topBoard {
			score += 4
		}
	}

	return clampInt(int(math.Round(score)), 5, 99)
}

// straightRunScore rewards connected cards: 22 for a made straight,
// 9 for an open four-card run, 4 for three in a row. An ace counts
// both high and low.
func straightRunScore(cards []deck.Card) int {
	present := make(map[int]bool, len(cards)+1)
	for _, c := range cards {
		present[c.Value()] = true
	}
	if present[14] {
		present[1] = true
	}

	unique := make([]int, 0, len(present))
	for v := range present {
		unique = append(unique, v)
	}
	sort.Ints(unique)

	run, bestRun := 1, 1
	for i := 1; i < len(unique); i++ {
		if unique[i] == unique[i-1]+1 {
			run++
			if run > bestRun {
				bestRun = run
			}
		} else {
			run = 1
		}
	}

	switch {
	case bestRun >= 5:
		return 22
	case bestRun == 4:
		return 9
	case bestRun == 3:
		return 4
	default:
		return 0
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
