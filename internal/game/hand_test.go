package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

func testProfile(name string) *profile.Profile {
	return &profile.Profile{
		ID:         name,
		Name:       name,
		Archetype:  profile.TAG,
		Skill:      0.6,
		Aggression: 0.5,
		BluffRate:  0.3,
	}
}

// headsUpHand rigs a heads-up hand: hero on the button with aces,
// villain in the UTG seat with seven-deuce, dry board.
func headsUpHand(t *testing.T, heroStack, villainStack int) *Hand {
	t.Helper()
	cards := deck.MustParseCards("7c2d AhAd 3c8d9hJcQs")
	h := NewHand(randutil.New(1),
		WithHero("You", PositionBTN, heroStack),
		WithVillain(testProfile("rocky"), PositionUTG, villainStack),
		WithDeck(deck.NewStackedDeck(cards)),
	)
	return h
}

func totalChips(h *Hand) int {
	total := h.Pot
	for _, p := range h.Players {
		total += p.Stack
	}
	// Pot already includes committed chips, which were deducted from
	// stacks, so stack+pot is the whole bankroll.
	return total
}

func TestNewHandPostsBlindsHeadsUp(t *testing.T) {
	h := headsUpHand(t, 200, 200)

	// Button posts the small blind heads-up.
	assert.Equal(t, PositionBTN, h.SmallBlindPosition)
	assert.Equal(t, PositionUTG, h.BigBlindPosition)
	assert.Equal(t, 3, h.Pot)
	assert.Equal(t, 2, h.CurrentBet)
	assert.Equal(t, 2, h.MinRaise)

	hero := h.Hero()
	require.NotNil(t, hero)
	assert.Equal(t, 199, hero.Stack)
	assert.Equal(t, 1, hero.CommittedStreet)
	assert.Equal(t, deck.MustParseCards("AhAd"), hero.HoleCards)

	// Button acts first preflop heads-up.
	assert.Equal(t, h.HeroID, h.ActingID)
	assert.Equal(t, 1, h.ToCall)
	assert.Equal(t, 400, totalChips(h))
}

func TestHeroFoldEndsHand(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Fold, 0))

	assert.True(t, h.IsOver)
	assert.Equal(t, WinnerVillain, h.Winner)
	assert.Equal(t, 199, h.Hero().Stack)
	assert.Equal(t, 201, h.FocusVillain().Stack)
	assert.Equal(t, Showdown, h.Street)
}

func TestOutOfTurnActionRejected(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	err := h.ApplyAction(h.FocusVillainID, Check, 0)
	require.Error(t, err)
}

func TestCheckFacingBetNormalizesToCall(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Check, 0))

	hero := h.Hero()
	assert.Equal(t, 2, hero.CommittedStreet)
	assert.Equal(t, Call, h.History[len(h.History)-1].Action)

	// Big blind still has the option.
	assert.Equal(t, h.FocusVillainID, h.ActingID)
	require.NoError(t, h.ApplyAction(h.FocusVillainID, Check, 0))

	assert.Equal(t, Flop, h.Street)
	assert.Equal(t, 3, h.RevealedBoardCount)
	assert.Equal(t, 0, h.CurrentBet)
	assert.Equal(t, 2, h.MinRaise)
	// Out of position first from the flop on.
	assert.Equal(t, h.FocusVillainID, h.ActingID)
}

func TestRaiseReopensActionAndBumpsMinRaise(t *testing.T) {
	h := NewHand(randutil.New(2),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("ana"), PositionUTG, 200),
		WithVillain(testProfile("bea"), PositionCO, 200),
	)
	// Three-handed with the button on the hero: UTG posts the small
	// blind, CO the big blind, hero opens.
	require.Equal(t, PositionUTG, h.SmallBlindPosition)
	require.Equal(t, PositionCO, h.BigBlindPosition)
	require.Equal(t, h.HeroID, h.ActingID)

	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 6))
	assert.Equal(t, 6, h.CurrentBet)
	assert.Equal(t, 4, h.MinRaise)
	assert.Equal(t, []string{"villain-1", "villain-2"}, h.PendingActors)

	// A re-raise below the minimum is lifted to it.
	require.NoError(t, h.ApplyAction("villain-1", Call, 0))
	require.NoError(t, h.ApplyAction("villain-2", Raise, 5))
	v2 := h.Player("villain-2")
	assert.Equal(t, 10, v2.CommittedStreet)
	assert.Equal(t, 10, h.CurrentBet)
	assert.Equal(t, []string{"hero", "villain-1"}, h.PendingActors)
	assert.Equal(t, 600, totalChips(h))
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	h := NewHand(randutil.New(3),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("shorty"), PositionUTG, 5),
		WithVillain(testProfile("deep"), PositionCO, 200),
	)
	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 6))

	// Shorty cannot cover a full raise: the shove plays as a call and
	// neither the bet level nor the raise window moves.
	require.NoError(t, h.ApplyAction("villain-1", Raise, 100))
	shorty := h.Player("villain-1")
	assert.True(t, shorty.AllIn)
	assert.Equal(t, 0, shorty.Stack)
	assert.Equal(t, Call, h.History[len(h.History)-1].Action)
	assert.Equal(t, 6, h.CurrentBet)
	assert.Equal(t, 4, h.MinRaise)
	assert.Equal(t, []string{"villain-2"}, h.PendingActors)
}

func TestAllInRunoutDealsFullBoard(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 199))
	require.NoError(t, h.ApplyAction(h.FocusVillainID, Call, 0))

	assert.True(t, h.IsOver)
	assert.Equal(t, Showdown, h.Street)
	assert.Equal(t, 5, h.RevealedBoardCount)
	assert.Equal(t, WinnerHero, h.Winner)
	assert.Equal(t, 400, h.Hero().Stack)
	assert.Equal(t, 0, h.FocusVillain().Stack)
	assert.Contains(t, h.BustedBotNames, "rocky")
}

func TestPreflopSolverLineHeadsUpOnly(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.True(t, h.PreflopSolverEligible)

	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 5))
	require.Len(t, h.PreflopActionCodes, 1)
	require.NoError(t, h.ApplyAction(h.FocusVillainID, Call, 0))
	assert.Len(t, h.PreflopActionCodes, 2)
	assert.True(t, h.PreflopSolverEligible)

	multi := NewHand(randutil.New(4),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("ana"), PositionUTG, 200),
		WithVillain(testProfile("bea"), PositionCO, 200),
	)
	assert.False(t, multi.PreflopSolverEligible)
	assert.Empty(t, multi.PreflopActionCodes)
}

func TestBigBlindOptionClosesStreet(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Call, 0))
	// Limp does not close the street: the big blind keeps the option.
	assert.Equal(t, Preflop, h.Street)
	assert.Equal(t, h.FocusVillainID, h.ActingID)

	require.NoError(t, h.ApplyAction(h.FocusVillainID, Raise, 6))
	assert.Equal(t, Preflop, h.Street)
	assert.Equal(t, h.HeroID, h.ActingID)
	assert.Equal(t, 6, h.ToCall)
}

func TestAggressorAndPositionHelpers(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 5))

	assert.Equal(t, "self", string(h.AggressorFor(h.HeroID)))
	assert.Equal(t, "opponent", string(h.AggressorFor(h.FocusVillainID)))
	// Button closes the action postflop.
	assert.True(t, h.ActorInPositionPostflop(h.HeroID))
	assert.False(t, h.ActorInPositionPostflop(h.FocusVillainID))
}

func TestRiverActionPathTokens(t *testing.T) {
	h := headsUpHand(t, 200, 200)
	require.NoError(t, h.ApplyAction(h.HeroID, Call, 0))
	require.NoError(t, h.ApplyAction(h.FocusVillainID, Check, 0))
	for h.Street != River {
		require.NoError(t, h.ApplyAction(h.ActingID, Check, 0))
	}
	assert.Empty(t, h.RiverActionPath())

	require.NoError(t, h.ApplyAction(h.FocusVillainID, Check, 0))
	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 10))
	assert.Equal(t, []string{"check", "bet"}, h.RiverActionPath())
}

func TestEffectiveStackFloorsAtFiveBB(t *testing.T) {
	h := NewHand(randutil.New(5),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("shorty"), PositionUTG, 4),
	)
	assert.Equal(t, 5.0, h.EffectiveStackBB(h.HeroID))
	assert.InDelta(t, 5.0, h.EffectiveStackBB("villain-1"), 0.01)
}

func TestFocusMovesToNextLiveBotAfterFold(t *testing.T) {
	h := NewHand(randutil.New(6),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("ana"), PositionUTG, 200),
		WithVillain(testProfile("bea"), PositionCO, 200),
	)
	require.Equal(t, "villain-1", h.FocusVillainID)

	require.NoError(t, h.ApplyAction(h.HeroID, Raise, 6))
	require.NoError(t, h.ApplyAction("villain-1", Fold, 0))

	assert.Equal(t, "villain-2", h.FocusVillainID)
	assert.Equal(t, "bea", h.FocusVillain().Name)
}
