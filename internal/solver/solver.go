// Package solver exposes precomputed strategy tables as a black box:
// callers hand it a spot, it answers with an action mix or reports the
// spot as not covered. Tables load from JSON dumps; a built-in synthetic
// table backs everything else.
package solver

import "fmt"

// Decision is the solver's view of an action, decoupled from the
// betting engine's own action type.
type Decision string

const (
	DecisionFold  Decision = "fold"
	DecisionCheck Decision = "check"
	DecisionCall  Decision = "call"
	DecisionRaise Decision = "raise"
)

// Street names used in state keys.
const (
	StreetPreflop = "preflop"
	StreetFlop    = "flop"
	StreetTurn    = "turn"
	StreetRiver   = "river"
)

// MixEntry is one weighted action in an advice mix.
type MixEntry struct {
	Label    string
	Decision Decision
	Prob     float64
}

// Advice is the solver's answer for a spot. When Found is false the
// caller must fall back to its rule engine; Decision then carries a
// safe default (check or call).
type Advice struct {
	Found    bool
	StateKey string
	Decision Decision
	Amount   int
	BestProb float64
	Mix      []MixEntry
	Source   string
}

// MixText renders the mix for display, e.g. "Raise 3x 62% | Call 30%".
func (a Advice) MixText() string {
	text := ""
	for i, entry := range a.Mix {
		if i > 0 {
			text += " | "
		}
		text += fmt.Sprintf("%s %d%%", entry.Label, int(entry.Prob*100+0.5))
	}
	return text
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func normalize(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	if sum <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / sum
	}
	return out
}
