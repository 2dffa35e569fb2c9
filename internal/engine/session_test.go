package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenPeng0209/poker-god-sub001/internal/analysis"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	return NewSession(profile.DefaultConfig(), randutil.New(42), opts...)
}

func TestStartHandDefaultsToZoneOpponent(t *testing.T) {
	s := newTestSession(t)
	h, err := s.StartHand()
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "basement", s.Zone().Name)
	assert.Equal(t, "rocky", h.FocusVillain().Profile.ID)
	assert.Len(t, h.Players, 2)
	assert.Empty(t, s.Records())

	// The first button sits with the hero, so the hero owes the small
	// blind and acts first preflop.
	assert.Equal(t, game.PositionBTN, h.ButtonPosition)
	assert.Equal(t, h.HeroID, h.ActingID)
	require.NotNil(t, s.AnalyzeCurrentSpot())
}

func TestStartHandRejectsUnknownOpponent(t *testing.T) {
	s := newTestSession(t)
	_, err := s.StartHand("nobody")
	assert.ErrorContains(t, err, "unknown opponent")
}

func TestStartHandSeatsMultipleOpponents(t *testing.T) {
	s := newTestSession(t)
	h, err := s.StartHand("rocky", "callie")
	require.NoError(t, err)
	assert.Len(t, h.Players, 3)
	assert.Equal(t, game.PositionUTG, h.Player("villain-1").Position)
	assert.Equal(t, game.PositionLJ, h.Player("villain-2").Position)
}

func TestHeroFoldSettlesBankrollAndProgress(t *testing.T) {
	s := newTestSession(t)
	h, err := s.StartHand()
	require.NoError(t, err)
	require.Equal(t, h.HeroID, h.ActingID)

	res, err := s.ApplyHeroAction(game.Fold, 0)
	require.NoError(t, err)
	require.True(t, res.Hand.IsOver)
	require.NotNil(t, res.Analysis)

	// Hero posted the small blind on the button and surrendered it.
	assert.Equal(t, 199, s.Bankroll(HeroBankrollKey))
	assert.Equal(t, 201, s.Bankroll("rocky"))
	assert.Equal(t, 1, s.Progress().HandsPlayed)
	assert.Positive(t, s.Progress().XP)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, game.Fold, s.Records()[0].Chosen)
	assert.Equal(t, game.Preflop, s.Records()[0].Street)
}

func TestButtonRotatesBetweenHands(t *testing.T) {
	s := newTestSession(t)
	h1, err := s.StartHand()
	require.NoError(t, err)
	require.Equal(t, game.PositionBTN, h1.ButtonPosition)
	if !h1.IsOver {
		_, err = s.ApplyHeroAction(game.Fold, 0)
		require.NoError(t, err)
	}

	h2, err := s.StartHand()
	require.NoError(t, err)
	assert.Equal(t, game.PositionUTG, h2.ButtonPosition)
	// With the button on the opponent, either the bots already acted to
	// the hero or the hand settled before the hero's turn.
	assert.True(t, h2.IsOver || h2.ActingID == h2.HeroID)
}

func TestPracticeModeScalesXPAndKeepsBankroll(t *testing.T) {
	s := newTestSession(t, WithMode(ModePractice))
	_, err := s.StartHand()
	require.NoError(t, err)

	_, err = s.ApplyHeroAction(game.Fold, 0)
	require.NoError(t, err)

	// Practice never touches the persisted stacks.
	assert.Equal(t, game.DefaultStartingStack, s.Bankroll(HeroBankrollKey))
	assert.Equal(t, game.DefaultStartingStack, s.Bankroll("rocky"))

	career := newTestSession(t)
	_, err = career.StartHand()
	require.NoError(t, err)
	_, err = career.ApplyHeroAction(game.Fold, 0)
	require.NoError(t, err)

	assert.Positive(t, s.Progress().XP)
	assert.Less(t, s.Progress().XP, career.Progress().XP)
}

func TestScaleXPRounding(t *testing.T) {
	s := newTestSession(t, WithMode(ModePractice))
	s.progress.XP = 100
	s.progress.XP += 14
	s.scaleXP(100)
	assert.Equal(t, 105, s.progress.XP) // round(14 * 0.35) = 5
}

func TestApplyHeroActionWithoutHand(t *testing.T) {
	s := newTestSession(t)
	_, err := s.ApplyHeroAction(game.Check, 0)
	assert.ErrorContains(t, err, "no hand in play")
}

func TestSpotInsightRequiresHand(t *testing.T) {
	s := newTestSession(t, WithSimulations(400))
	_, err := s.SpotInsight()
	assert.Error(t, err)

	_, err = s.StartHand()
	require.NoError(t, err)
	si, err := s.SpotInsight()
	require.NoError(t, err)
	assert.Equal(t, 400, si.Simulations)
	assert.InDelta(t, 100, si.Equity.HeroWin+si.Equity.Tie+si.Equity.VillainWin, 0.1)
}

func TestNormalizeHeroAction(t *testing.T) {
	assert.Equal(t, game.Call, normalizeHeroAction(game.Check, 5))
	assert.Equal(t, game.Check, normalizeHeroAction(game.Call, 0))
	assert.Equal(t, game.Raise, normalizeHeroAction(game.Raise, 5))
}

func TestInferHeroLeak(t *testing.T) {
	result := func(best game.Action, strength int) *analysis.Result {
		return &analysis.Result{
			Best:         analysis.Advice{Action: best},
			HeroStrength: strength,
		}
	}

	assert.Equal(t, profile.LeakTag(""), inferHeroLeak(game.Call, result(game.Call, 50), 10))
	assert.Equal(t, profile.LeakOverFold, inferHeroLeak(game.Fold, result(game.Call, 50), 10))
	assert.Equal(t, profile.LeakOverFold, inferHeroLeak(game.Fold, result(game.Raise, 50), 10))
	assert.Equal(t, profile.LeakOverCall, inferHeroLeak(game.Call, result(game.Fold, 30), 10))
	assert.Equal(t, profile.LeakOverBluff, inferHeroLeak(game.Raise, result(game.Fold, 30), 10))
	assert.Equal(t, profile.LeakOverBluff, inferHeroLeak(game.Raise, result(game.Call, 40), 10))
	assert.Equal(t, profile.LeakTag(""), inferHeroLeak(game.Raise, result(game.Call, 70), 10))
	assert.Equal(t, profile.LeakMissedValue, inferHeroLeak(game.Check, result(game.Raise, 70), 0))
	assert.Equal(t, profile.LeakPassiveCheck, inferHeroLeak(game.Check, result(game.Call, 60), 0))
	assert.Equal(t, profile.LeakTag(""), inferHeroLeak(game.Check, result(game.Raise, 40), 5))
}

func TestCareerRefusesBustedHero(t *testing.T) {
	s := newTestSession(t)
	s.bankroll[HeroBankrollKey] = 0
	_, err := s.StartHand()
	assert.ErrorContains(t, err, "bankroll is empty")

	s.ResetBankroll()
	_, err = s.StartHand()
	assert.NoError(t, err)
}
