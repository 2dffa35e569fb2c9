package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeToButton(t *testing.T) {
	// Canonical button: identity.
	assert.Equal(t, PositionSB, RelativeToButton(PositionSB, PositionBTN))
	// Button on CO shifts every seat one spot.
	assert.Equal(t, PositionSB, RelativeToButton(PositionBTN, PositionCO))
	assert.Equal(t, PositionBB, RelativeToButton(PositionSB, PositionCO))
	assert.Equal(t, PositionBTN, RelativeToButton(PositionCO, PositionCO))
}

func TestPositionContext(t *testing.T) {
	ctx := BuildPositionContext(PositionBTN, PositionUTG)
	assert.True(t, ctx.HeroInPosition)
	assert.Equal(t, TierLate, ctx.HeroTier)
	assert.Equal(t, TierEarly, ctx.VillainTier)
	assert.Equal(t, "BTN vs UTG", ctx.SituationLabel)
	assert.Equal(t, "UTG → LJ → HJ → CO → BTN", ctx.PreflopOrderHint)
	assert.Equal(t, "Dealer", ctx.HeroDisplayName)

	oop := BuildPositionContext(PositionSB, PositionBB)
	assert.False(t, oop.HeroInPosition)
	assert.Equal(t, TierBlind, oop.HeroTier)
}

func TestStreetProgression(t *testing.T) {
	assert.Equal(t, Flop, Preflop.Next())
	assert.Equal(t, Showdown, Showdown.Next())
	assert.Equal(t, 0, Preflop.BoardCount())
	assert.Equal(t, 3, Flop.BoardCount())
	assert.Equal(t, 5, River.BoardCount())
	assert.Equal(t, "turn", Turn.String())
}
