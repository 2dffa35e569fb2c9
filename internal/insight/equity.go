package insight

import (
	"sort"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/evaluator"
)

// estimateEquity runs weighted Monte Carlo showdowns of the hero's hand
// against the range: sample a combo by weight, deal the missing board
// cards at random, compare best hands.
func (e *Estimator) estimateEquity(hole, board []deck.Card, villainRange []WeightedCombo) Equity {
	if len(villainRange) == 0 {
		return Equity{HeroWin: 50, Tie: 0, VillainWin: 50}
	}

	loops := max(simulationFloor, e.simulations)
	var wins, ties, losses int
	pool := make([]deck.Card, 0, 48)
	for i := 0; i < loops; i++ {
		combo := e.sampleCombo(villainRange)

		pool = pool[:0]
		for _, c := range deck.AllCards() {
			if containsCard(hole, c) || containsCard(board, c) || c == combo.Cards[0] || c == combo.Cards[1] {
				continue
			}
			pool = append(pool, c)
		}

		fullBoard := append([]deck.Card{}, board...)
		for len(fullBoard) < 5 {
			k := e.rng.Intn(len(pool))
			fullBoard = append(fullBoard, pool[k])
			pool[k] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}

		heroBest := evaluator.Evaluate(hole, fullBoard)
		villainBest := evaluator.Evaluate(combo.Cards[:], fullBoard)
		switch heroBest.Compare(villainBest) {
		case 1:
			wins++
		case 0:
			ties++
		default:
			losses++
		}
	}

	total := float64(loops)
	return Equity{
		HeroWin:    round2(float64(wins) / total * 100),
		Tie:        round2(float64(ties) / total * 100),
		VillainWin: round2(float64(losses) / total * 100),
	}
}

// sampleCombo draws a combo proportionally to its normalized weight.
func (e *Estimator) sampleCombo(villainRange []WeightedCombo) WeightedCombo {
	roll := e.rng.Float64()
	acc := 0.0
	for _, c := range villainRange {
		acc += c.Weight
		if roll <= acc {
			return c
		}
	}
	return villainRange[len(villainRange)-1]
}

func containsCard(cards []deck.Card, c deck.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

type outsView struct {
	groups  []OutsGroup
	count   int
	oneCard float64
	twoCard float64
}

const outsGroupCardCap = 14

// buildOutsGroups enumerates every unseen card and groups the ones that
// improve the hero's best hand by what they make. Only meaningful on
// the flop and turn where cards are still to come.
func (e *Estimator) buildOutsGroups(hole, board, unseen []deck.Card) outsView {
	if len(board) < 3 || len(board) >= 5 {
		return outsView{}
	}

	current := evaluator.Evaluate(hole, board)
	grouped := map[string][]string{}
	counts := map[string]int{}
	order := []string{}
	outs := 0
	next := make([]deck.Card, len(board)+1)
	copy(next, board)
	for _, c := range unseen {
		next[len(board)] = c
		improved := evaluator.Evaluate(hole, next)
		if improved.Compare(current) != 1 {
			continue
		}
		outs++
		label := "makes " + improved.Category.String()
		if improved.Category == current.Category {
			label = improved.Category.String() + " improves"
		}
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
		if len(grouped[label]) < outsGroupCardCap {
			grouped[label] = append(grouped[label], c.String())
		}
	}

	groups := make([]OutsGroup, 0, len(order))
	for _, label := range order {
		groups = append(groups, OutsGroup{
			Label: label,
			Count: counts[label],
			Cards: grouped[label],
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	oneCard := float64(outs) / float64(len(unseen))
	twoCard := oneCard
	if len(board) == 3 {
		misses := choose2(len(unseen) - outs)
		pairs := choose2(len(unseen))
		if pairs > 0 {
			twoCard = 1 - float64(misses)/float64(pairs)
		}
	}

	return outsView{
		groups:  groups,
		count:   outs,
		oneCard: round2(oneCard * 100),
		twoCard: round2(twoCard * 100),
	}
}
