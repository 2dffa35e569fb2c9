package solver

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

// Aggressor says who put in the last raise before this spot.
type Aggressor string

const (
	AggressorNone     Aggressor = "none"
	AggressorSelf     Aggressor = "self"
	AggressorOpponent Aggressor = "opponent"
)

// PostflopState is one abstraction bucket: a fold/call/raise mix in
// basis points.
type PostflopState struct {
	MixBP []int `json:"mix_bp"`
}

// PostflopDataset is the bucketed postflop abstraction, keyed by
// street|sN|pN|rN|wN|iN|aN state keys.
type PostflopDataset struct {
	Meta struct {
		Name    string `json:"name"`
		Model   string `json:"model"`
		Version int    `json:"version"`
	} `json:"meta"`
	States map[string]PostflopState `json:"states"`
}

// OverrideProfile is a per-seat strategy inside an override spot,
// with optional per-node mixes keyed by slash-joined action paths.
type OverrideProfile struct {
	RootKey   string           `json:"root_key,omitempty"`
	RootMixBP []int            `json:"root_mix_bp"`
	NodeMixBP map[string][]int `json:"node_mix_bp,omitempty"`
}

// OverrideSpot is a solved subgame for an exact board, used to refine
// river and multiway play beyond the bucketed abstraction.
type OverrideSpot struct {
	Street         string                     `json:"street,omitempty"`
	Board          []string                   `json:"board"`
	ActivePlayers  int                        `json:"active_players,omitempty"`
	PressureBucket int                        `json:"pressure_bucket"`
	SPRBucket      int                        `json:"spr_bucket"`
	PositionBucket int                        `json:"position_bucket"`
	Profiles       map[string]OverrideProfile `json:"profiles,omitempty"`
	RootKey        string                     `json:"root_key,omitempty"`
	RootMixBP      []int                      `json:"root_mix_bp,omitempty"`
	NodeMixBP      map[string][]int           `json:"node_mix_bp,omitempty"`
}

// OverrideDataset maps spot keys to solved subgames.
type OverrideDataset struct {
	Spots map[string]OverrideSpot `json:"spots"`
}

// PostflopTable serves postflop advice from the bucketed abstraction
// plus optional exact-board override datasets.
type PostflopTable struct {
	dataset  *PostflopDataset
	river    *OverrideDataset
	multiway *OverrideDataset
}

// NewPostflopTable builds a table. Override datasets may be nil.
func NewPostflopTable(dataset *PostflopDataset, river, multiway *OverrideDataset) (*PostflopTable, error) {
	if dataset == nil || len(dataset.States) == 0 {
		return nil, fmt.Errorf("postflop table needs a populated abstraction dataset")
	}
	if river == nil {
		river = &OverrideDataset{}
	}
	if multiway == nil {
		multiway = &OverrideDataset{}
	}
	return &PostflopTable{dataset: dataset, river: river, multiway: multiway}, nil
}

// LoadPostflopDataset reads a bucketed abstraction dump from JSON.
func LoadPostflopDataset(path string) (*PostflopDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read postflop dataset: %w", err)
	}
	var data PostflopDataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode postflop dataset %s: %w", path, err)
	}
	return &data, nil
}

// LoadOverrideDataset reads an exact-board override dump from JSON.
func LoadOverrideDataset(path string) (*OverrideDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read override dataset: %w", err)
	}
	var data OverrideDataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode override dataset %s: %w", path, err)
	}
	return &data, nil
}

// StrengthBucket buckets a 5..99 hand strength into 0..7.
func StrengthBucket(strength int) int {
	thresholds := []int{20, 32, 44, 56, 68, 80, 90}
	bucket := 0
	for i, threshold := range thresholds {
		if strength >= threshold {
			bucket = i + 1
		}
	}
	return clampInt(bucket, 0, 7)
}

// PressureBucket buckets the price being faced into 0..4, 0 meaning
// nothing to call.
func PressureBucket(toCall, pot int) int {
	if toCall <= 0 {
		return 0
	}
	denom := pot + toCall
	if denom < 1 {
		denom = 1
	}
	pressure := float64(toCall) / float64(denom)
	switch {
	case pressure < 0.12:
		return 1
	case pressure < 0.24:
		return 2
	case pressure < 0.42:
		return 3
	default:
		return 4
	}
}

// SPRBucket buckets the stack-to-pot ratio into 0..3.
func SPRBucket(effectiveStack, pot int) int {
	denom := pot
	if denom < 1 {
		denom = 1
	}
	spr := float64(effectiveStack) / float64(denom)
	switch {
	case spr < 1.4:
		return 0
	case spr < 3:
		return 1
	case spr < 6:
		return 2
	default:
		return 3
	}
}

// WetnessBucket scores board texture 0..3: suits, connectivity, pairing.
func WetnessBucket(board []deck.Card) int {
	if len(board) < 3 {
		return 1
	}

	suitCount := make(map[deck.Suit]int, 4)
	present := make(map[int]bool, len(board))
	for _, c := range board {
		suitCount[c.Suit]++
		present[c.Value()] = true
	}
	maxSuit := 0
	for _, n := range suitCount {
		if n > maxSuit {
			maxSuit = n
		}
	}

	ranks := make([]int, 0, len(present))
	for v := range present {
		ranks = append(ranks, v)
	}
	sort.Ints(ranks)

	closeGaps := 0
	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] <= 2 {
			closeGaps++
		}
	}
	paired := len(ranks) < len(board)

	score := 0
	if maxSuit >= 4 {
		score += 2
	} else if maxSuit == 3 {
		score++
	}
	if closeGaps >= 2 {
		score++
	}
	if paired {
		score++
	}
	return clampInt(score, 0, 3)
}

func positionBucket(inPosition bool) int {
	if inPosition {
		return 1
	}
	return 0
}

func aggressorBucket(a Aggressor) int {
	switch a {
	case AggressorSelf:
		return 1
	case AggressorOpponent:
		return 2
	default:
		return 0
	}
}

// StateKey builds the bucketed abstraction key without seat context.
func StateKey(street string, strength, pressure, spr, wetness int) string {
	return fmt.Sprintf("%s|s%d|p%d|r%d|w%d", street, strength, pressure, spr, wetness)
}

// StateKeyWithContext appends position and aggressor buckets.
func StateKeyWithContext(street string, strength, pressure, spr, wetness, position, aggressor int) string {
	return fmt.Sprintf("%s|i%d|a%d", StateKey(street, strength, pressure, spr, wetness), position, aggressor)
}

func boardCodeKey(board []deck.Card) string {
	codes := make([]string, len(board))
	for i, c := range board {
		codes[i] = c.Code()
	}
	sort.Strings(codes)
	return strings.Join(codes, "-")
}

func riverSpotKey(board []deck.Card, pressure, spr, position, aggressor int) string {
	return fmt.Sprintf("river|b%s|p%d|r%d|i%d|a%d", boardCodeKey(board), pressure, spr, position, aggressor)
}

func multiwaySpotKey(street string, board []deck.Card, activePlayers, pressure, spr, position, aggressor int) string {
	return fmt.Sprintf("%s|b%s|n%d|p%d|r%d|i%d|a%d", street, boardCodeKey(board), activePlayers, pressure, spr, position, aggressor)
}

// PostflopSpot is a postflop query.
type PostflopSpot struct {
	Street        string
	Strength      int // rough 5..99 strength of the actor's hand
	ToCall        int
	Pot           int
	MinRaise      int
	Stack         int
	OpponentStack int
	Board         []deck.Card
	InPosition    bool
	ActivePlayers int
	ProfileKey    string // seat profile inside override spots
	Aggressor     Aggressor
	ActionPath    []string // slash-joined node path for subgame overrides
}

func passiveDecision(toCall int) Decision {
	if toCall > 0 {
		return DecisionCall
	}
	return DecisionCheck
}

// Advise answers a postflop spot from overrides first, then the
// bucketed abstraction. A multiway turn/river spot with no override
// coverage reports Found=false rather than guessing from the heads-up
// abstraction.
func (t *PostflopTable) Advise(spot PostflopSpot) Advice {
	if spot.Street != StreetFlop && spot.Street != StreetTurn && spot.Street != StreetRiver {
		return Advice{
			StateKey: "n/a",
			Decision: passiveDecision(spot.ToCall),
			Source:   "postflop abstraction unavailable",
		}
	}

	strength := StrengthBucket(spot.Strength)
	pressure := PressureBucket(spot.ToCall, spot.Pot)
	effective := spot.Stack
	if spot.OpponentStack < effective {
		effective = spot.OpponentStack
	}
	spr := SPRBucket(effective, spot.Pot)
	wetness := WetnessBucket(spot.Board)
	position := positionBucket(spot.InPosition)
	aggressor := aggressorBucket(spot.Aggressor)

	activePlayers := spot.ActivePlayers
	if activePlayers < 2 {
		activePlayers = 2
	}

	if activePlayers > 2 {
		if key, mix, suffix, ok := t.resolveMultiwayOverride(spot, pressure, spr, position, aggressor); ok {
			return t.buildAdvice(spot, mix, strength, key, "multiway subgame override"+suffix)
		}
		if spot.Street == StreetRiver {
			if key, mix, suffix, ok := t.resolveRiverOverride(spot, pressure, spr, position, aggressor); ok {
				return t.buildAdvice(spot, mix, strength, key, "river subgame override (multiway fallback)"+suffix)
			}
		}

		missKey := StateKeyWithContext(spot.Street, strength, pressure, spr, wetness, position, aggressor)
		source := "postflop multiway abstraction covers turn/river overrides only"
		if spot.Street == StreetTurn || spot.Street == StreetRiver {
			missKey = multiwaySpotKey(spot.Street, spot.Board, activePlayers, pressure, spr, position, aggressor)
			source = "postflop multiway override missing state"
		}
		return Advice{
			StateKey: missKey,
			Decision: passiveDecision(spot.ToCall),
			Source:   source,
		}
	}

	if key, mix, suffix, ok := t.resolveRiverOverride(spot, pressure, spr, position, aggressor); ok {
		return t.buildAdvice(spot, mix, strength, key, "river subgame override"+suffix)
	}

	fullKey := StateKeyWithContext(spot.Street, strength, pressure, spr, wetness, position, aggressor)
	if state, ok := t.dataset.States[fullKey]; ok {
		return t.buildAdvice(spot, bpToMix(state.MixBP), strength, fullKey, "postflop mccfr abstraction")
	}

	neutralKey := StateKeyWithContext(spot.Street, strength, pressure, spr, wetness, position, 0)
	if state, ok := t.dataset.States[neutralKey]; ok {
		return t.buildAdvice(spot, bpToMix(state.MixBP), strength, neutralKey, "postflop mccfr abstraction (aggressor fallback)")
	}

	legacyKey := StateKey(spot.Street, strength, pressure, spr, wetness)
	if state, ok := t.dataset.States[legacyKey]; ok {
		return t.buildAdvice(spot, bpToMix(state.MixBP), strength, legacyKey, "postflop mccfr abstraction (legacy key)")
	}

	return Advice{
		StateKey: fullKey,
		Decision: passiveDecision(spot.ToCall),
		Source:   "postflop abstraction missing state",
	}
}

func bpToMix(bp []int) []float64 {
	mix := make([]float64, len(bp))
	for i, v := range bp {
		mix[i] = float64(v) / 10000
	}
	return mix
}

// normalizeOverrideMix clips an override mix to the three-way alphabet
// and renormalizes.
func normalizeOverrideMix(bp []int) []float64 {
	if len(bp) == 0 {
		return []float64{0, 0, 0}
	}
	values := make([]float64, 3)
	for i := 0; i < 3 && i < len(bp); i++ {
		if bp[i] > 0 {
			values[i] = float64(bp[i])
		}
	}
	return normalize(values)
}

// resolveProfile picks the strategy for the acting seat: an explicit
// profile key first, then positional p1/p0, then any profile, then the
// legacy single-profile schema.
func resolveProfile(spot OverrideSpot, inPosition bool, profileKey string) (OverrideProfile, string, bool, bool) {
	candidates := []string{}
	if key := strings.TrimSpace(profileKey); key != "" {
		candidates = append(candidates, key, strings.ToUpper(key), strings.ToLower(key))
	}
	if inPosition {
		candidates = append(candidates, "p1")
	} else {
		candidates = append(candidates, "p0")
	}

	for _, candidate := range candidates {
		if profile, ok := spot.Profiles[candidate]; ok {
			return profile, candidate, false, true
		}
	}

	if len(spot.Profiles) > 0 {
		keys := make([]string, 0, len(spot.Profiles))
		for k := range spot.Profiles {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, candidate := range candidates {
			for _, k := range keys {
				if strings.EqualFold(k, candidate) {
					return spot.Profiles[k], k, true, true
				}
			}
		}
		return spot.Profiles[keys[0]], keys[0], true, true
	}

	if len(spot.RootMixBP) > 0 {
		return OverrideProfile{
			RootKey:   spot.RootKey,
			RootMixBP: spot.RootMixBP,
			NodeMixBP: spot.NodeMixBP,
		}, "legacy", false, true
	}

	return OverrideProfile{}, "", false, false
}

func overrideMixForPath(profile OverrideProfile, actionPath []string) ([]float64, string, bool) {
	nodeKey := profile.RootKey
	if nodeKey == "" {
		nodeKey = "root"
	}
	if len(actionPath) > 0 {
		nodeKey = strings.Join(actionPath, "/")
	}
	if bp, ok := profile.NodeMixBP[nodeKey]; ok {
		return normalizeOverrideMix(bp), nodeKey, true
	}
	return normalizeOverrideMix(profile.RootMixBP), nodeKey, false
}

func (t *PostflopTable) resolveRiverOverride(spot PostflopSpot, pressure, spr, position, aggressor int) (string, []float64, string, bool) {
	if spot.Street != StreetRiver || len(t.river.Spots) == 0 {
		return "", nil, "", false
	}

	for _, agg := range []int{aggressor, 0} {
		key := riverSpotKey(spot.Board, pressure, spr, position, agg)
		override, ok := t.river.Spots[key]
		if !ok {
			continue
		}
		profile, profileKey, profileFallback, ok := resolveProfile(override, spot.InPosition, spot.ProfileKey)
		if !ok {
			return "", nil, "", false
		}
		mix, nodeKey, nodeHit := overrideMixForPath(profile, spot.ActionPath)

		suffix := ""
		if agg != aggressor {
			suffix += " (aggressor fallback)"
		}
		if profileFallback {
			suffix += " (profile fallback)"
		}
		if !nodeHit {
			suffix += " (node fallback to root)"
		}
		return fmt.Sprintf("%s#%s:%s", key, profileKey, nodeKey), mix, suffix, true
	}
	return "", nil, "", false
}

func (t *PostflopTable) resolveMultiwayOverride(spot PostflopSpot, pressure, spr, position, aggressor int) (string, []float64, string, bool) {
	if (spot.Street != StreetTurn && spot.Street != StreetRiver) || len(t.multiway.Spots) == 0 {
		return "", nil, "", false
	}

	for _, agg := range []int{aggressor, 0} {
		key := multiwaySpotKey(spot.Street, spot.Board, spot.ActivePlayers, pressure, spr, position, agg)
		override, ok := t.multiway.Spots[key]
		if !ok {
			continue
		}
		profile, profileKey, profileFallback, ok := resolveProfile(override, spot.InPosition, spot.ProfileKey)
		if !ok {
			return "", nil, "", false
		}
		mix, nodeKey, nodeHit := overrideMixForPath(profile, spot.ActionPath)

		suffix := ""
		if agg != aggressor {
			suffix += " (aggressor fallback)"
		}
		if profileFallback {
			suffix += " (profile fallback)"
		}
		if !nodeHit {
			suffix += " (node fallback to root)"
		}
		return fmt.Sprintf("%s#%s:%s", key, profileKey, nodeKey), mix, suffix, true
	}
	return "", nil, "", false
}

// RaiseAmountForStreet sizes a solver raise by street, adjusted for
// strength bucket, position and initiative, clamped to the legal window.
func RaiseAmountForStreet(street string, pot, minRaise, stack, strengthBucket int, inPosition bool, aggressor Aggressor) int {
	baseFactor := 0.65
	switch street {
	case StreetTurn:
		baseFactor = 0.72
	case StreetRiver:
		baseFactor = 0.8
	}

	strengthBoost := (float64(strengthBucket)/7 - 0.5) * 0.18
	positionBoost := -0.02
	if inPosition {
		positionBoost = 0.04
	}
	aggressorBoost := 0.0
	switch aggressor {
	case AggressorSelf:
		aggressorBoost = 0.03
	case AggressorOpponent:
		aggressorBoost = -0.03
	}

	factor := clampFloat(baseFactor+strengthBoost+positionBoost+aggressorBoost, 0.48, 1.08)
	raw := int(math.Round(float64(pot) * factor))
	if raw < minRaise {
		raw = minRaise
	}
	return clampInt(raw, minRaise, stack)
}

// buildAdvice converts an action mix into a recommendation. Facing no
// bet, the fold slot is zeroed and the mix renormalized.
func (t *PostflopTable) buildAdvice(spot PostflopSpot, mixInput []float64, strengthBucket int, stateKey, source string) Advice {
	mix := make([]float64, len(mixInput))
	copy(mix, mixInput)
	if spot.ToCall == 0 && len(mix) > 0 {
		mix[0] = 0
		mix = normalize(mix)
	}

	bestIndex, bestProb := 0, -1.0
	for i, prob := range mix {
		if prob > bestProb {
			bestProb = prob
			bestIndex = i
		}
	}

	decision := mixIndexDecision(bestIndex, spot.ToCall)
	amount := 0
	if decision == DecisionRaise {
		amount = RaiseAmountForStreet(spot.Street, spot.Pot, spot.MinRaise, spot.Stack, strengthBucket, spot.InPosition, spot.Aggressor)
	}

	type indexedProb struct {
		index int
		prob  float64
	}
	ordered := make([]indexedProb, 0, len(mix))
	for i, prob := range mix {
		if prob > 0.01 {
			ordered = append(ordered, indexedProb{index: i, prob: prob})
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].prob > ordered[j].prob })

	entries := make([]MixEntry, 0, len(ordered))
	for _, item := range ordered {
		d := mixIndexDecision(item.index, spot.ToCall)
		entries = append(entries, MixEntry{Label: decisionLabel(d), Decision: d, Prob: item.prob})
	}

	return Advice{
		Found:    true,
		StateKey: stateKey,
		Decision: decision,
		Amount:   amount,
		BestProb: clamp01(bestProb),
		Mix:      entries,
		Source:   source,
	}
}

func mixIndexDecision(index, toCall int) Decision {
	switch {
	case index == 0 && toCall > 0:
		return DecisionFold
	case index == 0:
		return DecisionCheck
	case index == 1 && toCall > 0:
		return DecisionCall
	case index == 1:
		return DecisionCheck
	default:
		return DecisionRaise
	}
}

func decisionLabel(d Decision) string {
	switch d {
	case DecisionFold:
		return "Fold"
	case DecisionCall:
		return "Call"
	case DecisionRaise:
		return "Raise"
	default:
		return "Check"
	}
}
