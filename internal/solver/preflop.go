package solver

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

// Preflop action codes shared with CFR dumps: 0=fold, 1=call/check,
// 2..5 raise sizes from 2.5x to 4x, 6=all-in.
const (
	CodeFold  = 0
	CodeCall  = 1
	CodeAllIn = 6
)

// PreflopState holds one decision node: per action code, a 13x13 hand
// matrix of probabilities in basis points. Row/column encoding follows
// the usual chart convention, resolved by matrixIndex.
type PreflopState struct {
	NumActions int       `json:"num_actions"`
	ProbsBP    [][][]int `json:"probs_bp"`
}

// PreflopMeta describes the provenance of a dataset.
type PreflopMeta struct {
	Source  string `json:"source"`
	License string `json:"license"`
	StackBB int    `json:"stack_bb"`
}

// PreflopDataset is one solved heads-up preflop tree at a fixed stack
// depth, keyed by dash-joined action codes ("root", "3", "3-6", ...).
type PreflopDataset struct {
	Meta   PreflopMeta             `json:"meta"`
	States map[string]PreflopState `json:"states"`
}

// PreflopTable answers preflop spots by interpolating between datasets
// solved at different stack depths.
type PreflopTable struct {
	datasets []stackDataset // sorted by stack depth
}

type stackDataset struct {
	stackBB int
	data    *PreflopDataset
}

// NewPreflopTable builds a table from datasets. At least one dataset
// is required.
func NewPreflopTable(datasets map[int]*PreflopDataset) (*PreflopTable, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("preflop table needs at least one dataset")
	}
	t := &PreflopTable{}
	for stackBB, data := range datasets {
		t.datasets = append(t.datasets, stackDataset{stackBB: stackBB, data: data})
	}
	sort.Slice(t.datasets, func(i, j int) bool { return t.datasets[i].stackBB < t.datasets[j].stackBB })
	return t, nil
}

// LoadPreflopDataset reads a CFR dump from a JSON file.
func LoadPreflopDataset(path string) (*PreflopDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preflop dataset: %w", err)
	}
	var data PreflopDataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode preflop dataset %s: %w", path, err)
	}
	if len(data.States) == 0 {
		return nil, fmt.Errorf("preflop dataset %s has no states", path)
	}
	return &data, nil
}

// PreflopSpot is everything the table needs to answer a preflop query.
type PreflopSpot struct {
	StackBB     float64
	ActionCodes []int
	HoleCards   []deck.Card
	ToCall      int
	MinRaise    int
	Stack       int
}

func buildStateKey(codes []int) string {
	if len(codes) == 0 {
		return "root"
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, "-")
}

type resolvedState struct {
	state         *PreflopState
	stateKey      string
	fallbackDepth int
}

// resolveState finds the deepest available prefix of the action line,
// falling back toward root one action at a time.
func resolveState(data *PreflopDataset, codes []int) *resolvedState {
	for depth := len(codes); depth >= 0; depth-- {
		key := buildStateKey(codes[:depth])
		if state, ok := data.States[key]; ok {
			return &resolvedState{state: &state, stateKey: key, fallbackDepth: len(codes) - depth}
		}
	}
	return nil
}

// matrixIndex maps hole cards onto the 13x13 chart: pairs on the
// diagonal, suited hands above it (row < col), offsuit below.
func matrixIndex(cards []deck.Card) (row, col int) {
	first := int(cards[0].Rank) - 2
	second := int(cards[1].Rank) - 2

	if first == second {
		return first, second
	}
	high, low := first, second
	if low > high {
		high, low = low, high
	}
	if cards[0].Suit == cards[1].Suit {
		return low, high
	}
	return high, low
}

func stateProb(state *PreflopState, code, row, col int) float64 {
	if state == nil || code < 0 || code >= state.NumActions || code >= len(state.ProbsBP) {
		return 0
	}
	matrix := state.ProbsBP[code]
	if row >= len(matrix) || col >= len(matrix[row]) {
		return 0
	}
	return float64(matrix[row][col]) / 10000
}

// CodeLabel names a preflop action code for display.
func CodeLabel(code int) string {
	switch code {
	case CodeFold:
		return "Fold"
	case CodeCall:
		return "Call/Check"
	case 2:
		return "Raise 2.5x"
	case 3:
		return "Raise 3x"
	case 4:
		return "Raise 3.5x"
	case 5:
		return "Raise 4x"
	case CodeAllIn:
		return "All-in"
	default:
		return fmt.Sprintf("Action %d", code)
	}
}

func codeDecision(code, toCall int) Decision {
	switch {
	case code == CodeFold:
		return DecisionFold
	case code == CodeCall && toCall > 0:
		return DecisionCall
	case code == CodeCall:
		return DecisionCheck
	default:
		return DecisionRaise
	}
}

// CodeRaiseAmount converts a raise code into a chip amount, clamped to
// the legal window.
func CodeRaiseAmount(code, toCall, minRaise, stack int) int {
	if code <= CodeCall {
		return 0
	}

	base := toCall + minRaise
	if base < 2 {
		base = 2
	}

	suggested := base
	switch code {
	case 2:
		suggested = int(math.Round(float64(base) * 1.1))
	case 3:
		suggested = int(math.Round(float64(base) * 1.25))
	case 4:
		suggested = int(math.Round(float64(base) * 1.4))
	case 5:
		suggested = int(math.Round(float64(base) * 1.7))
	default:
		suggested = stack
	}

	return clampInt(suggested, toCall+minRaise, stack)
}

// RaiseAmountToCode buckets a raise amount into the nearest action code.
func RaiseAmountToCode(raiseAmount, toCall, minRaise, stack int) int {
	if stack <= 0 {
		return CodeAllIn
	}
	if float64(raiseAmount) >= float64(stack)*0.95 {
		return CodeAllIn
	}

	minAllowed := toCall + minRaise
	if minAllowed < 1 {
		minAllowed = 1
	}
	ratio := float64(raiseAmount) / float64(minAllowed)

	switch {
	case ratio < 1.16:
		return 2
	case ratio < 1.33:
		return 3
	case ratio < 1.55:
		return 4
	default:
		return 5
	}
}

// ActionToCode maps a taken action onto the solver's code alphabet, for
// recording the preflop line.
func ActionToCode(decision Decision, toCall, raiseAmount, minRaise, stack int) int {
	switch decision {
	case DecisionFold:
		return CodeFold
	case DecisionCall, DecisionCheck:
		return CodeCall
	default:
		return RaiseAmountToCode(raiseAmount, toCall, minRaise, stack)
	}
}

// Advise answers a preflop spot. Misses and over-deep fallbacks return
// Found=false with a passive default so the caller's rule engine takes
// over.
func (t *PreflopTable) Advise(spot PreflopSpot) Advice {
	lower, upper, upperWeight := t.pickDatasets(spot.StackBB)
	requestedKey := buildStateKey(spot.ActionCodes)

	passive := DecisionCheck
	if spot.ToCall > 0 {
		passive = DecisionCall
	}

	lowerState := resolveState(lower.data, spot.ActionCodes)
	upperState := resolveState(upper.data, spot.ActionCodes)
	if lowerState == nil && upperState == nil {
		return Advice{
			StateKey: requestedKey,
			Decision: passive,
			Source:   "preflop table miss",
		}
	}

	minFallback := math.MaxInt
	if lowerState != nil {
		minFallback = lowerState.fallbackDepth
	}
	if upperState != nil && upperState.fallbackDepth < minFallback {
		minFallback = upperState.fallbackDepth
	}
	if minFallback >= 2 && len(spot.ActionCodes) >= 2 {
		return Advice{
			StateKey: requestedKey,
			Decision: passive,
			Source:   "preflop table fallback too deep",
		}
	}

	row, col := matrixIndex(spot.HoleCards)
	actionCount := 0
	if lowerState != nil {
		actionCount = lowerState.state.NumActions
	}
	if upperState != nil && upperState.state.NumActions > actionCount {
		actionCount = upperState.state.NumActions
	}

	raw := make([]float64, actionCount)
	for code := 0; code < actionCount; code++ {
		var lowerProb float64
		if lowerState != nil {
			lowerProb = stateProb(lowerState.state, code, row, col)
		}
		upperProb := lowerProb
		if upperState != nil {
			upperProb = stateProb(upperState.state, code, row, col)
		}

		if lower.stackBB == upper.stackBB {
			raw[code] = lowerProb
		} else {
			raw[code] = lowerProb*(1-upperWeight) + upperProb*upperWeight
		}
	}
	probs := normalize(raw)

	bestCode, bestProb := CodeCall, -1.0
	for code, prob := range probs {
		if prob > bestProb {
			bestProb = prob
			bestCode = code
		}
	}

	decision := codeDecision(bestCode, spot.ToCall)
	amount := 0
	if decision == DecisionRaise {
		amount = CodeRaiseAmount(bestCode, spot.ToCall, spot.MinRaise, spot.Stack)
	}

	mix := make([]MixEntry, 0, 4)
	type codedProb struct {
		code int
		prob float64
	}
	ordered := make([]codedProb, 0, len(probs))
	for code, prob := range probs {
		if prob > 0.01 {
			ordered = append(ordered, codedProb{code: code, prob: prob})
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].prob > ordered[j].prob })
	if len(ordered) > 4 {
		ordered = ordered[:4]
	}
	for _, item := range ordered {
		mix = append(mix, MixEntry{
			Label:    CodeLabel(item.code),
			Decision: codeDecision(item.code, spot.ToCall),
			Prob:     item.prob,
		})
	}

	stateKey := requestedKey
	source := "preflop cfr table"
	if lowerState != nil {
		stateKey = lowerState.stateKey
	} else if upperState != nil {
		stateKey = upperState.stateKey
	}
	if stateKey != requestedKey {
		source = "preflop cfr table (state fallback)"
	}

	return Advice{
		Found:    true,
		StateKey: stateKey,
		Decision: decision,
		Amount:   amount,
		BestProb: bestProb,
		Mix:      mix,
		Source:   source,
	}
}

// pickDatasets selects the datasets bracketing the stack depth and the
// interpolation weight of the upper one.
func (t *PreflopTable) pickDatasets(stackBB float64) (lower, upper stackDataset, upperWeight float64) {
	first := t.datasets[0]
	last := t.datasets[len(t.datasets)-1]

	if stackBB <= float64(first.stackBB) {
		return first, first, 0
	}
	if stackBB >= float64(last.stackBB) {
		return last, last, 0
	}

	for i := 0; i < len(t.datasets)-1; i++ {
		left, right := t.datasets[i], t.datasets[i+1]
		if stackBB >= float64(left.stackBB) && stackBB <= float64(right.stackBB) {
			span := float64(right.stackBB - left.stackBB)
			if span == 0 {
				return left, right, 0
			}
			return left, right, (stackBB - float64(left.stackBB)) / span
		}
	}
	return last, last, 0
}
