package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

func villainProfile(mutate func(*profile.Profile)) *profile.Profile {
	p := &profile.Profile{
		ID:         "bot",
		Name:       "bot",
		Archetype:  profile.TAG,
		Skill:      0.6,
		Aggression: 0.5,
		BluffRate:  0.3,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func acesHand(t *testing.T, mutate func(*profile.Profile)) *game.Hand {
	t.Helper()
	cards := deck.MustParseCards("7c2d AhAd 3c8d9hJcQs")
	return game.NewHand(randutil.New(1),
		game.WithHero("You", game.PositionBTN, 200),
		game.WithVillain(villainProfile(mutate), game.PositionUTG, 200),
		game.WithDeck(deck.NewStackedDeck(cards)),
	)
}

func TestAnalyzePreflopUsesTables(t *testing.T) {
	a := New(nil, nil)
	h := acesHand(t, nil)

	result := a.Analyze(h)
	assert.Equal(t, SourcePreflopCFR, result.GTO.Source)
	assert.Equal(t, game.Raise, result.GTO.Action)
	assert.GreaterOrEqual(t, result.GTO.Confidence, 0.5)
	assert.LessOrEqual(t, result.GTO.Confidence, 0.95)
	assert.InDelta(t, 0.25, result.PotOdds, 0.01)
	assert.NotEmpty(t, result.GTO.Rationale)
}

func TestAnalyzeMultiwayFlopFallsBackToHeuristics(t *testing.T) {
	a := New(nil, nil)
	h := game.NewHand(randutil.New(7),
		game.WithHero("You", game.PositionBTN, 200),
		game.WithVillain(villainProfile(nil), game.PositionUTG, 200),
		game.WithVillain(villainProfile(nil), game.PositionCO, 200),
	)
	require.NoError(t, h.ApplyAction(h.HeroID, game.Call, 0))
	require.NoError(t, h.ApplyAction("villain-1", game.Call, 0))
	require.NoError(t, h.ApplyAction("villain-2", game.Check, 0))
	require.Equal(t, game.Flop, h.Street)

	result := a.Analyze(h)
	assert.Equal(t, SourceHeuristic, result.GTO.Source)
	assert.NotZero(t, result.HeroStrength)
}

func TestExploitTargetsOverFolder(t *testing.T) {
	a := New(nil, nil)
	h := acesHand(t, func(p *profile.Profile) {
		p.Skill = 0.3
		p.Leaks.OverFoldToRaise = true
	})

	result := a.Analyze(h)
	assert.Equal(t, LeakLabelOverFolds, result.TargetLeak)
	assert.Equal(t, game.Raise, result.Exploit.Action)
	assert.NotZero(t, result.Exploit.Amount)
}

func TestExploitShadowsBaselineWithoutLeaks(t *testing.T) {
	a := New(nil, nil)
	h := acesHand(t, nil)

	result := a.Analyze(h)
	assert.Empty(t, result.TargetLeak)
	assert.Equal(t, ModeGTO, result.BestMode)
	assert.Equal(t, result.GTO.Action, result.Exploit.Action)
	assert.InDelta(t, result.GTO.Confidence-0.04, result.Exploit.Confidence, 0.001)
}

func TestExploitBluffCatchesRiverOverBluffer(t *testing.T) {
	a := New(nil, nil)
	h := acesHand(t, func(p *profile.Profile) {
		p.Leaks.OverBluffsRiver = true
	})
	// Walk to the river, then face a bet.
	require.NoError(t, h.ApplyAction(h.HeroID, game.Call, 0))
	require.NoError(t, h.ApplyAction(h.FocusVillainID, game.Check, 0))
	for h.Street != game.River {
		require.NoError(t, h.ApplyAction(h.ActingID, game.Check, 0))
	}
	require.NoError(t, h.ApplyAction(h.FocusVillainID, game.Raise, 10))

	result := a.Analyze(h)
	assert.Equal(t, LeakLabelOverBluffRiver, result.TargetLeak)
	assert.Equal(t, game.Call, result.Exploit.Action)
}

func TestPreflopHoleScore(t *testing.T) {
	aces := deck.MustParseCards("AhAd")
	sevenDeuce := deck.MustParseCards("7c2d")
	suitedConnector := deck.MustParseCards("9h8h")

	assert.Equal(t, 99, preflopHoleScore(aces))
	assert.Less(t, preflopHoleScore(sevenDeuce), 30)
	score := preflopHoleScore(suitedConnector)
	assert.Greater(t, score, preflopHoleScore(sevenDeuce))
	assert.Less(t, score, preflopHoleScore(aces))
}

func TestPremiumGuard(t *testing.T) {
	assert.True(t, premiumNoFold(deck.MustParseCards("AhAd")))
	assert.True(t, premiumNoFold(deck.MustParseCards("AsKs")))
	assert.True(t, premiumNoFold(deck.MustParseCards("AcKd")))
	assert.False(t, premiumNoFold(deck.MustParseCards("QhJh")))
	assert.False(t, premiumNoFold(deck.MustParseCards("JdJc")))
}

func TestConfidenceClamp(t *testing.T) {
	a := newAdvice(game.Call, 1.4, "s", nil, 0, SourceHeuristic)
	assert.Equal(t, 0.95, a.Confidence)
	b := newAdvice(game.Fold, 0.1, "s", nil, 0, SourceHeuristic)
	assert.Equal(t, 0.5, b.Confidence)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := New(nil, nil)
	h := acesHand(t, func(p *profile.Profile) {
		p.Leaks.OverFoldToRaise = true
	})

	first := a.Analyze(h)
	second := a.Analyze(h)
	assert.Equal(t, first, second)
}
