// Package insight estimates what the focus opponent can hold and how
// the hero's hand fares against it: a weighted range built from the
// opponent's style, leaks and latest action, Monte Carlo equity over
// that range, and outs toward the next card.
package insight

import (
	"fmt"
	"math/rand"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
)

// Bucket coarsely classifies a combo inside the estimated range.
type Bucket string

const (
	BucketValue Bucket = "value"
	BucketMade  Bucket = "made"
	BucketDraw  Bucket = "draw"
	BucketAir   Bucket = "air"
)

func (b Bucket) Label() string {
	switch b {
	case BucketValue:
		return "strong value"
	case BucketMade:
		return "medium made hands"
	case BucketDraw:
		return "draws"
	default:
		return "air / weak showdown"
	}
}

// WeightedCombo is one possible holding with its normalized weight.
type WeightedCombo struct {
	Cards    [2]deck.Card
	Weight   float64
	Strength int
	Bucket   Bucket
}

// Equity is the Monte Carlo result in percent.
type Equity struct {
	HeroWin    float64
	Tie        float64
	VillainWin float64
}

// OutsGroup collects the cards that improve the hero the same way.
type OutsGroup struct {
	Label string
	Count int
	Cards []string
}

// BucketView summarises one range bucket for display.
type BucketView struct {
	Key    Bucket
	Label  string
	Ratio  float64 // percent of range weight
	Combos int
}

// RangeSample is one high-weight combo shown as an example.
type RangeSample struct {
	Text  string
	Ratio float64
}

// SpotInsight is the full range/equity/outs picture for the current spot.
type SpotInsight struct {
	OutsGroups       []OutsGroup
	OutsCount        int
	OneCardHitRate   float64
	TwoCardHitRate   float64
	RangeBuckets     []BucketView
	RangeSamples     []RangeSample
	Equity           Equity
	PotOddsNeed      float64
	CombosConsidered int
	Simulations      int
	Notes            []string
}

// DefaultSimulations is the Monte Carlo sample count when the caller
// does not choose one. Runs never drop below the floor.
const (
	DefaultSimulations = 1400
	simulationFloor    = 350
)

// Estimator owns the randomness and sample budget for equity runs.
type Estimator struct {
	rng         *rand.Rand
	simulations int
}

// NewEstimator builds an estimator. A nil RNG panics; the caller owns
// seeding so insight numbers are reproducible in tests.
func NewEstimator(rng *rand.Rand, simulations int) *Estimator {
	if rng == nil {
		panic("insight: rng must not be nil")
	}
	if simulations <= 0 {
		simulations = DefaultSimulations
	}
	return &Estimator{rng: rng, simulations: simulations}
}

// BuildSpotInsight computes the full insight view for the hero's spot.
func (e *Estimator) BuildSpotInsight(h *game.Hand) SpotInsight {
	hero := h.Hero()
	board := h.RevealedBoard()
	unseen := unseenCards(hero.HoleCards, board)

	villainRange := buildWeightedRange(h, board, unseen)
	outs := e.buildOutsGroups(hero.HoleCards, board, unseen)
	equity := e.estimateEquity(hero.HoleCards, board, villainRange)
	potOddsNeed := 0.0
	if h.ToCall > 0 {
		potOddsNeed = round2(float64(h.ToCall) / float64(max(1, h.Pot+h.ToCall)) * 100)
	}

	notes := []string{
		fmt.Sprintf("Range weighted by opponent style, leak tags and latest action (%d combos kept).", len(villainRange)),
		fmt.Sprintf("Equity is a Monte Carlo estimate (%d runs) over the revealed board only.", e.simulations),
	}
	if len(board) == 3 && outs.count > 0 {
		notes = append(notes, "Flop two-card hit rates are a fixed-outs approximation; the turn will shift them.")
	}

	return SpotInsight{
		OutsGroups:       outs.groups,
		OutsCount:        outs.count,
		OneCardHitRate:   outs.oneCard,
		TwoCardHitRate:   outs.twoCard,
		RangeBuckets:     buildBucketViews(villainRange),
		RangeSamples:     buildRangeSamples(villainRange),
		Equity:           equity,
		PotOddsNeed:      potOddsNeed,
		CombosConsidered: len(villainRange),
		Simulations:      e.simulations,
		Notes:            notes,
	}
}

func unseenCards(hole, board []deck.Card) []deck.Card {
	known := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}
	out := make([]deck.Card, 0, 52-len(known))
	for _, c := range deck.AllCards() {
		if !known[c] {
			out = append(out, c)
		}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func choose2(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
