package game

import (
	"fmt"
	"strings"
)

// Position is a seat name at a seven-handed table.
type Position string

const (
	PositionUTG Position = "UTG"
	PositionLJ  Position = "LJ"
	PositionHJ  Position = "HJ"
	PositionCO  Position = "CO"
	PositionBTN Position = "BTN"
	PositionSB  Position = "SB"
	PositionBB  Position = "BB"
)

// TableOrder lists seats clockwise. Blinds sit after the button, so this
// is also the preflop acting order starting from UTG.
var TableOrder = []Position{
	PositionUTG, PositionLJ, PositionHJ, PositionCO,
	PositionBTN, PositionSB, PositionBB,
}

// PostflopOrder is the acting order from the flop onward.
var PostflopOrder = []Position{
	PositionSB, PositionBB, PositionUTG, PositionLJ,
	PositionHJ, PositionCO, PositionBTN,
}

// PositionTier groups seats for range and exploit heuristics.
type PositionTier string

const (
	TierEarly  PositionTier = "early"
	TierMiddle PositionTier = "middle"
	TierLate   PositionTier = "late"
	TierBlind  PositionTier = "blind"
)

func (p Position) Tier() PositionTier {
	switch p {
	case PositionUTG, PositionLJ:
		return TierEarly
	case PositionHJ:
		return TierMiddle
	case PositionCO, PositionBTN:
		return TierLate
	default:
		return TierBlind
	}
}

// DisplayName is the label shown at the table for this seat.
func (p Position) DisplayName() string {
	switch p {
	case PositionUTG:
		return "UTG"
	case PositionLJ:
		return "UTG+1"
	case PositionHJ:
		return "UTG+2"
	case PositionCO:
		return "Cutoff"
	case PositionBTN:
		return "Dealer"
	default:
		return string(p)
	}
}

func tableIndex(p Position) int {
	for i, pos := range TableOrder {
		if pos == p {
			return i
		}
	}
	return -1
}

func postflopIndex(p Position) int {
	for i, pos := range PostflopOrder {
		if pos == p {
			return i
		}
	}
	return -1
}

// NextPosition returns the seat clockwise from p.
func NextPosition(p Position) Position {
	idx := tableIndex(p)
	if idx < 0 {
		return TableOrder[0]
	}
	return TableOrder[(idx+1)%len(TableOrder)]
}

// RelativeToButton maps a seat to its canonical name given where the
// button actually sits this hand. With the button on CO, the seat one
// to its left plays as SB no matter what its table label says.
func RelativeToButton(p, button Position) Position {
	posIdx := tableIndex(p)
	btnIdx := tableIndex(button)
	canonicalBtn := tableIndex(PositionBTN)
	if posIdx < 0 || btnIdx < 0 {
		return p
	}
	shifted := (posIdx - btnIdx + canonicalBtn + len(TableOrder)) % len(TableOrder)
	return TableOrder[shifted]
}

// HeroInPositionPostflop reports whether hero acts after the villain
// once the flop is dealt.
func HeroInPositionPostflop(hero, villain Position) bool {
	return postflopIndex(hero) > postflopIndex(villain)
}

// PreflopOrderHint renders the route from the villain's seat to the
// hero's in preflop acting order, e.g. "UTG → BTN".
func PreflopOrderHint(hero, villain Position) string {
	start := tableIndex(villain)
	end := tableIndex(hero)
	if start < 0 || end < 0 {
		return ""
	}
	route := []string{string(villain)}
	for i := start; i != end; {
		i = (i + 1) % len(TableOrder)
		route = append(route, string(TableOrder[i]))
	}
	return strings.Join(route, " → ")
}

// PositionContext summarises the hero/villain seating for coaching copy.
type PositionContext struct {
	HeroPosition       Position
	VillainPosition    Position
	HeroTier           PositionTier
	VillainTier        PositionTier
	HeroInPosition     bool
	SituationLabel     string
	PreflopOrderHint   string
	HeroDisplayName    string
	VillainDisplayName string
}

// BuildPositionContext derives the seating summary for a hero/villain pair.
func BuildPositionContext(hero, villain Position) PositionContext {
	return PositionContext{
		HeroPosition:       hero,
		VillainPosition:    villain,
		HeroTier:           hero.Tier(),
		VillainTier:        villain.Tier(),
		HeroInPosition:     HeroInPositionPostflop(hero, villain),
		SituationLabel:     fmt.Sprintf("%s vs %s", hero, villain),
		PreflopOrderHint:   PreflopOrderHint(hero, villain),
		HeroDisplayName:    hero.DisplayName(),
		VillainDisplayName: villain.DisplayName(),
	}
}
