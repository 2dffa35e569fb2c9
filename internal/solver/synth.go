package solver

import (
	"sync"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

// Built-in tables approximate solved play from starting-hand percentiles
// and bucket heuristics. They share the exact schema of real CFR dumps,
// so dropping solved JSON files in their place changes nothing else.

var (
	defaultOnce     sync.Once
	defaultPreflop  *PreflopTable
	defaultPostflop *PostflopTable
)

// DefaultPreflopTable returns the built-in preflop table, solved-ish at
// 20, 40 and 100 big blinds.
func DefaultPreflopTable() *PreflopTable {
	buildDefaults()
	return defaultPreflop
}

// DefaultPostflopTable returns the built-in postflop abstraction with
// no exact-board overrides.
func DefaultPostflopTable() *PostflopTable {
	buildDefaults()
	return defaultPostflop
}

func buildDefaults() {
	defaultOnce.Do(func() {
		pre, err := NewPreflopTable(map[int]*PreflopDataset{
			20:  synthPreflopDataset(20),
			40:  synthPreflopDataset(40),
			100: synthPreflopDataset(100),
		})
		if err != nil {
			panic(err)
		}
		defaultPreflop = pre

		post, err := NewPostflopTable(synthPostflopDataset(), nil, nil)
		if err != nil {
			panic(err)
		}
		defaultPostflop = post
	})
}

// cellPercentile reconstructs the starting hand behind a chart cell and
// returns its percentile rank.
func cellPercentile(row, col int) float64 {
	if row == col {
		return deck.GetHandPercentile([]deck.Card{
			deck.NewCard(deck.Spades, deck.Rank(row+2)),
			deck.NewCard(deck.Hearts, deck.Rank(col+2)),
		})
	}

	suited := row < col
	high, low := row, col
	if low > high {
		high, low = low, high
	}
	second := deck.NewCard(deck.Hearts, deck.Rank(low+2))
	if suited {
		second = deck.NewCard(deck.Spades, deck.Rank(low+2))
	}
	return deck.GetHandPercentile([]deck.Card{
		deck.NewCard(deck.Spades, deck.Rank(high+2)),
		second,
	})
}

// synthPreflopDataset generates root plus every depth-one facing state.
// Deeper lines intentionally stay missing so the fallback depth guard
// keeps doing its job.
func synthPreflopDataset(stackBB int) *PreflopDataset {
	states := map[string]PreflopState{
		"root": synthPreflopState(stackBB, 0),
	}
	for code := 1; code <= CodeAllIn; code++ {
		states[buildStateKey([]int{code})] = synthPreflopState(stackBB, code)
	}

	return &PreflopDataset{
		Meta: PreflopMeta{
			Source:  "built-in percentile chart",
			License: "n/a",
			StackBB: stackBB,
		},
		States: states,
	}
}

// synthPreflopState fills a 7-action node. facing is the opponent's
// action code, 0 for the unopened root.
func synthPreflopState(stackBB, facing int) PreflopState {
	const numActions = 7
	probs := make([][][]int, numActions)
	for code := range probs {
		probs[code] = make([][]int, 13)
		for row := range probs[code] {
			probs[code][row] = make([]int, 13)
		}
	}

	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			p := cellPercentile(row, col)
			weights := preflopCellWeights(p, stackBB, facing)
			norm := normalize(weights)
			for code := 0; code < numActions; code++ {
				probs[code][row][col] = int(norm[code]*10000 + 0.5)
			}
		}
	}

	return PreflopState{NumActions: numActions, ProbsBP: probs}
}

func preflopCellWeights(p float64, stackBB, facing int) []float64 {
	weights := make([]float64, 7)

	if facing == 0 || facing == CodeCall {
		// Unopened or over a limp: raise-or-fold with a thin calling band.
		weights[CodeFold] = clamp01(0.8 - p*1.3)
		weights[CodeCall] = clamp01(0.3 - abs(p-0.55)*0.45)
		weights[3] = clamp01((p - 0.4) * 1.5)
		weights[5] = clamp01((p-0.85)*1.2) * 0.5
		if stackBB <= 25 {
			weights[CodeAllIn] = clamp01((p - 0.78) * 1.8)
		} else {
			weights[CodeAllIn] = clamp01((p - 0.94) * 1.5)
		}
		return weights
	}

	// Facing a raise: tighter continues, escalation for the top of range.
	aggression := float64(facing-1) / 5 // 0.2 for min-raise, 1 for all-in
	weights[CodeFold] = clamp01(1.0 - p*1.45 + aggression*0.2)
	weights[CodeCall] = clamp01((p-0.3)*0.9) * (1 - aggression*0.5)
	weights[3] = clamp01((p - 0.75) * 1.6)
	weights[CodeAllIn] = clamp01((p - 0.88) * 2)
	if stackBB <= 25 {
		weights[CodeAllIn] += clamp01((p - 0.8) * 1.2)
	}
	return weights
}

// synthPostflopDataset covers every bucket combination, so heads-up
// postflop lookups never miss on the built-in table.
func synthPostflopDataset() *PostflopDataset {
	data := &PostflopDataset{States: make(map[string]PostflopState)}
	data.Meta.Name = "built-in postflop buckets"
	data.Meta.Model = "heuristic"
	data.Meta.Version = 1

	for _, street := range []string{StreetFlop, StreetTurn, StreetRiver} {
		for s := 0; s <= 7; s++ {
			for p := 0; p <= 4; p++ {
				for r := 0; r <= 3; r++ {
					for w := 0; w <= 3; w++ {
						for i := 0; i <= 1; i++ {
							for a := 0; a <= 2; a++ {
								key := StateKeyWithContext(street, s, p, r, w, i, a)
								data.States[key] = synthPostflopState(street, s, p, r, w, i, a)
							}
						}
					}
				}
			}
		}
	}
	return data
}

func synthPostflopState(street string, s, p, r, w, i, a int) PostflopState {
	sn := float64(s) / 7
	pn := float64(p) / 4

	raise := 0.12 + sn*0.72 - pn*0.32 + float64(w)*0.02
	if i == 1 {
		raise += 0.03
	}
	switch a {
	case 1:
		raise += 0.04
	case 2:
		raise -= 0.05
	}
	// Short stacks shove their strong hands sooner.
	raise += float64(3-r) / 3 * sn * 0.08
	// Air on dynamic boards keeps a bluffing tail.
	if sn < 0.2 && w >= 2 && street != StreetFlop {
		raise += 0.08
	}
	raise = clamp01(raise)

	fold := 0.0
	if p > 0 {
		fold = clamp01(pn*1.05 - sn*1.3)
	}
	call := clamp01(1 - raise - fold)

	norm := normalize([]float64{fold, call, raise})
	return PostflopState{MixBP: []int{
		int(norm[0]*10000 + 0.5),
		int(norm[1]*10000 + 0.5),
		int(norm[2]*10000 + 0.5),
	}}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
