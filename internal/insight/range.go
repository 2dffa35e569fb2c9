package insight

import (
	"sort"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/evaluator"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
)

// rangeKeep* bound how much of the weighted range survives truncation:
// keep at least the floor, then stop once coverage is reached, never
// exceeding the cap.
const (
	rangeKeepFloor    = 80
	rangeKeepCoverage = 0.93
	rangeKeepCap      = 230
)

// classifyBucket sorts a combo into value/made/draw/air using the same
// strength scale the bot policy reads.
func classifyBucket(cards [2]deck.Card, board []deck.Card, strength int) Bucket {
	if strength >= 76 {
		return BucketValue
	}
	if strength >= 58 {
		return BucketMade
	}
	if len(board) < 5 && (hasFlushDraw(cards, board) || hasStraightDraw(cards, board)) {
		return BucketDraw
	}
	return BucketAir
}

func hasFlushDraw(cards [2]deck.Card, board []deck.Card) bool {
	var counts [4]int
	counts[cards[0].Suit]++
	counts[cards[1].Suit]++
	for _, c := range board {
		counts[c.Suit]++
	}
	for _, n := range counts {
		if n >= 4 {
			return true
		}
	}
	return false
}

// hasStraightDraw reports four distinct ranks inside any five-rank
// window, with the ace also counted low for the wheel.
func hasStraightDraw(cards [2]deck.Card, board []deck.Card) bool {
	present := make(map[int]bool, len(board)+3)
	mark := func(c deck.Card) {
		present[c.Value()] = true
		if c.IsAce() {
			present[1] = true
		}
	}
	mark(cards[0])
	mark(cards[1])
	for _, c := range board {
		mark(c)
	}
	for low := 1; low <= 10; low++ {
		hits := 0
		for v := low; v < low+5; v++ {
			if present[v] {
				hits++
			}
		}
		if hits >= 4 {
			return true
		}
	}
	return false
}

// archetypeMultiplier returns the value/made/draw/air weighting a style
// puts on each bucket. Tight styles concentrate on made hands, loose
// aggressive ones carry far more draws and air.
func archetypeMultiplier(a profile.Archetype, b Bucket) float64 {
	type mix struct{ value, made, draw, air float64 }
	var m mix
	switch a {
	case profile.Nit:
		m = mix{1.45, 1.12, 0.72, 0.45}
	case profile.TAG:
		m = mix{1.25, 1.07, 0.95, 0.72}
	case profile.LAG:
		m = mix{0.98, 1.08, 1.18, 1.22}
	case profile.Maniac:
		m = mix{0.86, 1.03, 1.32, 1.44}
	default:
		m = mix{1, 1, 1, 1}
	}
	switch b {
	case BucketValue:
		return m.value
	case BucketMade:
		return m.made
	case BucketDraw:
		return m.draw
	default:
		return m.air
	}
}

// latestVillainAction finds the focus opponent's most recent voluntary
// action, skipping table markers and forced blinds.
func latestVillainAction(h *game.Hand) (game.Action, bool) {
	for i := len(h.History) - 1; i >= 0; i-- {
		entry := h.History[i]
		if entry.Table || entry.ForcedBlind != "" {
			continue
		}
		if entry.ActorID == h.FocusVillainID {
			return entry.Action, true
		}
	}
	return game.Check, false
}

// comboWeight scores one possible holding given the opponent's style,
// their leaks, their latest action and the current price.
func comboWeight(h *game.Hand, prof *profile.Profile, board []deck.Card, bucket Bucket, strength int) float64 {
	weight := archetypeMultiplier(prof.Archetype, bucket)

	lastAction, acted := latestVillainAction(h)
	if acted {
		aggr := prof.Aggression
		bluff := prof.BluffRate
		switch lastAction {
		case game.Raise:
			switch bucket {
			case BucketValue:
				weight *= 1.22 + aggr*0.35
			case BucketMade:
				weight *= 1.02 + aggr*0.16
			case BucketDraw:
				weight *= 0.84 + bluff*0.52
			default:
				weight *= 0.45 + bluff*0.82
			}
		case game.Call:
			switch bucket {
			case BucketValue:
				weight *= 0.86
			case BucketMade:
				weight *= 1.16
			case BucketDraw:
				weight *= 1.2
			default:
				weight *= 0.78
			}
		case game.Check:
			switch bucket {
			case BucketValue:
				weight *= 0.8
			case BucketMade:
				weight *= 1.04
			case BucketDraw:
				weight *= 1.07
			default:
				weight *= 1.12
			}
		}
	}

	leaks := prof.Leaks
	if leaks.OverFoldToRaise {
		switch bucket {
		case BucketAir:
			weight *= 0.78
		case BucketDraw:
			weight *= 0.88
		}
	}
	if leaks.CallsTooWide {
		switch bucket {
		case BucketMade:
			weight *= 1.08
		case BucketDraw:
			weight *= 1.2
		case BucketAir:
			weight *= 1.1
		}
	}
	if leaks.OverBluffsRiver && h.Street == game.River && bucket == BucketAir {
		weight *= 1.28
	}
	if leaks.CBetsTooMuch && (h.Street == game.Flop || h.Street == game.Turn) && acted && lastAction == game.Raise {
		switch bucket {
		case BucketDraw:
			weight *= 1.1
		case BucketAir:
			weight *= 1.12
		}
	}
	if leaks.MissesThinValue && acted && lastAction == game.Raise && bucket == BucketMade {
		weight *= 0.84
	}

	if h.ToCall > 0 && strength < 42 && (!acted || lastAction != game.Raise) {
		weight *= 0.78
	}
	if len(board) >= 4 {
		weight *= 1.05
	}

	return clampFloat(weight, 0.04, 6)
}

// buildWeightedRange enumerates every unseen two-card combo, weights
// it, then truncates to the high-weight core and renormalizes.
func buildWeightedRange(h *game.Hand, board, unseen []deck.Card) []WeightedCombo {
	prof := h.FocusVillain().Profile
	combos := make([]WeightedCombo, 0, choose2(len(unseen)))
	for i := 0; i < len(unseen); i++ {
		for j := i + 1; j < len(unseen); j++ {
			cards := [2]deck.Card{unseen[i], unseen[j]}
			strength := evaluator.HandStrength(cards[:], board)
			bucket := classifyBucket(cards, board, strength)
			combos = append(combos, WeightedCombo{
				Cards:    cards,
				Weight:   comboWeight(h, prof, board, bucket, strength),
				Strength: strength,
				Bucket:   bucket,
			})
		}
	}
	return normalizeRange(combos)
}

func normalizeRange(combos []WeightedCombo) []WeightedCombo {
	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Weight > combos[j].Weight
	})
	total := 0.0
	for _, c := range combos {
		total += c.Weight
	}
	if total <= 0 {
		return nil
	}

	kept := make([]WeightedCombo, 0, rangeKeepCap)
	coverage := 0.0
	for _, c := range combos {
		kept = append(kept, c)
		coverage += c.Weight / total
		if len(kept) >= rangeKeepFloor && (coverage >= rangeKeepCoverage || len(kept) >= rangeKeepCap) {
			break
		}
	}

	keptTotal := 0.0
	for _, c := range kept {
		keptTotal += c.Weight
	}
	for i := range kept {
		kept[i].Weight /= keptTotal
	}
	return kept
}

func buildBucketViews(villainRange []WeightedCombo) []BucketView {
	order := []Bucket{BucketValue, BucketMade, BucketDraw, BucketAir}
	weight := map[Bucket]float64{}
	count := map[Bucket]int{}
	for _, c := range villainRange {
		weight[c.Bucket] += c.Weight
		count[c.Bucket]++
	}
	views := make([]BucketView, 0, len(order))
	for _, b := range order {
		if count[b] == 0 {
			continue
		}
		views = append(views, BucketView{
			Key:    b,
			Label:  b.Label(),
			Ratio:  round2(weight[b] * 100),
			Combos: count[b],
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Ratio > views[j].Ratio
	})
	return views
}

func buildRangeSamples(villainRange []WeightedCombo) []RangeSample {
	n := min(8, len(villainRange))
	samples := make([]RangeSample, 0, n)
	for _, c := range villainRange[:n] {
		samples = append(samples, RangeSample{
			Text:  c.Cards[0].String() + " " + c.Cards[1].String(),
			Ratio: round2(c.Weight * 100),
		})
	}
	return samples
}
