package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
	"github.com/AllenPeng0209/poker-god-sub001/internal/solver"
)

func TestHeuristicWeightsFacingBet(t *testing.T) {
	bp := DefaultBotPolicy()
	h := &Hand{Pot: 40, Street: Flop, ButtonPosition: PositionBTN, BigBlind: 2, MinRaise: 4}
	bot := &Player{Position: PositionCO, Profile: testProfile("bot"), Stack: 100}

	strong := bp.heuristicWeights(h, bot, 92, 10, true, true)
	weak := bp.heuristicWeights(h, bot, 18, 10, true, true)

	assert.Greater(t, strong.raise, strong.fold)
	assert.Greater(t, weak.fold, weak.raise)
	// Facing a bet there is no check in the mix.
	assert.Zero(t, strong.check)
}

func TestHeuristicWeightsLeaksShift(t *testing.T) {
	bp := DefaultBotPolicy()
	h := &Hand{Pot: 40, Street: Flop, ButtonPosition: PositionBTN, BigBlind: 2, MinRaise: 4}

	tight := testProfile("tight")
	tight.Leaks.OverFoldToRaise = true
	station := testProfile("station")
	station.Leaks.CallsTooWide = true

	base := &Player{Position: PositionCO, Profile: testProfile("bot"), Stack: 100}
	tightSeat := &Player{Position: PositionCO, Profile: tight, Stack: 100}
	stationSeat := &Player{Position: PositionCO, Profile: station, Stack: 100}

	baseline := bp.heuristicWeights(h, base, 45, 30, true, true)
	folds := bp.heuristicWeights(h, tightSeat, 45, 30, true, true)
	calls := bp.heuristicWeights(h, stationSeat, 45, 30, true, true)

	assert.Greater(t, folds.fold, baseline.fold)
	assert.Greater(t, calls.call, baseline.call)
}

func TestBlendWeightsPullsTowardSolver(t *testing.T) {
	base := actionWeights{fold: 0.8, call: 0.1, raise: 0.1}
	advice := solver.Advice{
		Found: true,
		Mix: []solver.MixEntry{
			{Decision: solver.DecisionRaise, Prob: 0.9},
			{Decision: solver.DecisionFold, Prob: 0.1},
		},
	}
	blended := blendWeights(base, advice, 0.8, 10)
	assert.Greater(t, blended.raise, blended.fold)
}

func TestRaiseAmountStaysInsideWindow(t *testing.T) {
	bp := DefaultBotPolicy()
	h := NewHand(randutil.New(21),
		WithHero("You", PositionBTN, 200),
		WithVillain(testProfile("bot"), PositionUTG, 200),
	)
	bot := h.FocusVillain()
	for strength := 10; strength <= 95; strength += 5 {
		amount := bp.raiseAmount(h, bot, strength, 4, solver.Advice{}, false)
		assert.GreaterOrEqual(t, amount, 4+h.MinRaise)
		assert.LessOrEqual(t, amount, bot.Stack)
	}
}

// Drive full hands with the hero flat-calling everything: the hand must
// terminate and chips must be conserved whatever the bots do.
func TestRunBotsPlaysHandsToCompletion(t *testing.T) {
	policy := DefaultBotPolicy()
	zones := profile.DefaultConfig()
	bots := zones.Zones[0].Opponents

	for seed := int64(1); seed <= 10; seed++ {
		h := NewHand(randutil.New(seed),
			WithHero("You", PositionBTN, 200),
			WithVillain(&bots[0], PositionUTG, 200),
			WithVillain(&bots[1], PositionCO, 120),
		)
		h.RunBots(policy)
		for steps := 0; !h.IsOver && steps < 100; steps++ {
			action := Check
			if h.ToCall > 0 {
				action = Call
			}
			require.NoError(t, h.ApplyAction(h.HeroID, action, 0))
			h.RunBots(policy)
			assert.Equal(t, 520, totalChips(h))
		}
		require.True(t, h.IsOver, "seed %d did not finish", seed)
		assert.Equal(t, 520, totalChips(h))
	}
}
