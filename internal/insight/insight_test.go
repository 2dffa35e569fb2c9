package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

func testVillain(mutate func(*profile.Profile)) *profile.Profile {
	p := &profile.Profile{
		ID:         "bot",
		Name:       "bot",
		Archetype:  profile.TAG,
		Skill:      0.55,
		Aggression: 0.5,
		BluffRate:  0.3,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func flopHand(t *testing.T, mutate func(*profile.Profile)) *game.Hand {
	t.Helper()
	cards := deck.MustParseCards("7c2d AhKh Qh7h2c8dJs")
	h := game.NewHand(randutil.New(3),
		game.WithHero("You", game.PositionBTN, 200),
		game.WithVillain(testVillain(mutate), game.PositionUTG, 200),
		game.WithDeck(deck.NewStackedDeck(cards)),
	)
	require.NoError(t, h.ApplyAction(h.HeroID, game.Call, 0))
	require.NoError(t, h.ApplyAction(h.FocusVillainID, game.Check, 0))
	require.Equal(t, game.Flop, h.Street)
	return h
}

func TestClassifyBucket(t *testing.T) {
	board := deck.MustParseCards("Qh7h2c")
	flushDraw := [2]deck.Card{deck.MustParseCards("Ah")[0], deck.MustParseCards("Kh")[0]}
	openEnder := [2]deck.Card{deck.MustParseCards("9s")[0], deck.MustParseCards("Td")[0]}
	trash := [2]deck.Card{deck.MustParseCards("3d")[0], deck.MustParseCards("8s")[0]}

	assert.Equal(t, BucketValue, classifyBucket(flushDraw, board, 80))
	assert.Equal(t, BucketMade, classifyBucket(flushDraw, board, 60))
	assert.Equal(t, BucketDraw, classifyBucket(flushDraw, board, 40))
	assert.Equal(t, BucketDraw, classifyBucket(openEnder, board, 30))
	assert.Equal(t, BucketAir, classifyBucket(trash, board, 20))

	// River boards never classify as draws.
	river := deck.MustParseCards("Qh7h2c8dJs")
	assert.Equal(t, BucketAir, classifyBucket(flushDraw, river, 40))
}

func TestStraightDrawIncludesWheel(t *testing.T) {
	board := deck.MustParseCards("3c4dKs")
	wheel := [2]deck.Card{deck.MustParseCards("Ah")[0], deck.MustParseCards("2d")[0]}
	assert.True(t, hasStraightDraw(wheel, board))

	blank := [2]deck.Card{deck.MustParseCards("9h")[0], deck.MustParseCards("Td")[0]}
	assert.False(t, hasStraightDraw(blank, board))
}

func TestArchetypeMultiplierOrdering(t *testing.T) {
	assert.Greater(t, archetypeMultiplier(profile.Nit, BucketValue), archetypeMultiplier(profile.Maniac, BucketValue))
	assert.Greater(t, archetypeMultiplier(profile.Maniac, BucketAir), archetypeMultiplier(profile.Nit, BucketAir))
	assert.Greater(t, archetypeMultiplier(profile.LAG, BucketDraw), archetypeMultiplier(profile.TAG, BucketDraw))
}

func TestNormalizeRangeTruncatesAndRenormalizes(t *testing.T) {
	combos := make([]WeightedCombo, 300)
	for i := range combos {
		combos[i] = WeightedCombo{Weight: 1}
	}
	kept := normalizeRange(combos)
	assert.Len(t, kept, rangeKeepCap)
	sum := 0.0
	for _, c := range kept {
		sum += c.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// A dominant head reaches coverage right at the keep floor.
	combos = make([]WeightedCombo, 120)
	for i := range combos {
		w := 0.001
		if i < 70 {
			w = 1
		}
		combos[i] = WeightedCombo{Weight: w}
	}
	kept = normalizeRange(combos)
	assert.Len(t, kept, rangeKeepFloor)
}

func TestComboWeightStaysClamped(t *testing.T) {
	h := flopHand(t, func(p *profile.Profile) {
		p.Archetype = profile.Maniac
		p.Aggression = 1
		p.BluffRate = 1
		p.Leaks.CallsTooWide = true
	})
	prof := h.FocusVillain().Profile
	board := h.RevealedBoard()

	for _, bucket := range []Bucket{BucketValue, BucketMade, BucketDraw, BucketAir} {
		w := comboWeight(h, prof, board, bucket, 30)
		assert.GreaterOrEqual(t, w, 0.04)
		assert.LessOrEqual(t, w, 6.0)
	}
}

func TestLatestVillainActionSkipsBlinds(t *testing.T) {
	cards := deck.MustParseCards("7c2d AhKh Qh7h2c8dJs")
	h := game.NewHand(randutil.New(3),
		game.WithHero("You", game.PositionBTN, 200),
		game.WithVillain(testVillain(nil), game.PositionUTG, 200),
		game.WithDeck(deck.NewStackedDeck(cards)),
	)
	_, acted := latestVillainAction(h)
	assert.False(t, acted, "forced blinds are not a read")

	require.NoError(t, h.ApplyAction(h.HeroID, game.Call, 0))
	require.NoError(t, h.ApplyAction(h.FocusVillainID, game.Raise, 8))
	action, acted := latestVillainAction(h)
	assert.True(t, acted)
	assert.Equal(t, game.Raise, action)
}

func TestEstimateEquityLockedBoard(t *testing.T) {
	e := NewEstimator(randutil.New(9), 400)
	hole := deck.MustParseCards("AhAd")
	board := deck.MustParseCards("3c8d9hJcQs")
	villainRange := []WeightedCombo{{
		Cards:  [2]deck.Card{deck.MustParseCards("7s")[0], deck.MustParseCards("2h")[0]},
		Weight: 1,
	}}

	eq := e.estimateEquity(hole, board, villainRange)
	assert.Equal(t, 100.0, eq.HeroWin)
	assert.Equal(t, 0.0, eq.VillainWin)
}

func TestEstimateEquityEmptyRange(t *testing.T) {
	e := NewEstimator(randutil.New(9), 400)
	eq := e.estimateEquity(deck.MustParseCards("AhAd"), nil, nil)
	assert.Equal(t, Equity{HeroWin: 50, Tie: 0, VillainWin: 50}, eq)
}

func TestBuildOutsGroupsFlushDraw(t *testing.T) {
	e := NewEstimator(randutil.New(5), 400)
	hole := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("Qh7h2c")
	unseen := unseenCards(hole, board)
	require.Len(t, unseen, 47)

	outs := e.buildOutsGroups(hole, board, unseen)
	assert.NotZero(t, outs.count)

	var flushGroup *OutsGroup
	for i := range outs.groups {
		if outs.groups[i].Label == "makes Flush" {
			flushGroup = &outs.groups[i]
		}
	}
	require.NotNil(t, flushGroup, "nine hearts complete the flush")
	assert.Equal(t, 9, flushGroup.Count)

	assert.InDelta(t, float64(outs.count)/47*100, outs.oneCard, 0.01)
	assert.Greater(t, outs.twoCard, outs.oneCard, "two cards to come beat one")
}

func TestBuildOutsGroupsOnlyWithCardsToCome(t *testing.T) {
	e := NewEstimator(randutil.New(5), 400)
	hole := deck.MustParseCards("AhKh")
	river := deck.MustParseCards("Qh7h2c8dJs")
	outs := e.buildOutsGroups(hole, river, unseenCards(hole, river))
	assert.Zero(t, outs.count)
	assert.Empty(t, outs.groups)

	preflop := e.buildOutsGroups(hole, nil, unseenCards(hole, nil))
	assert.Zero(t, preflop.count)
}

func TestBuildSpotInsight(t *testing.T) {
	h := flopHand(t, nil)
	e := NewEstimator(randutil.New(11), 400)

	s := e.BuildSpotInsight(h)
	assert.GreaterOrEqual(t, s.CombosConsidered, rangeKeepFloor)
	assert.LessOrEqual(t, s.CombosConsidered, rangeKeepCap)
	assert.InDelta(t, 100, s.Equity.HeroWin+s.Equity.Tie+s.Equity.VillainWin, 0.1)
	assert.Equal(t, 400, s.Simulations)
	assert.LessOrEqual(t, len(s.RangeSamples), 8)
	assert.NotEmpty(t, s.RangeBuckets)
	assert.NotEmpty(t, s.Notes)
	assert.Zero(t, s.PotOddsNeed, "no bet pending on this flop")

	bucketSum := 0.0
	for _, b := range s.RangeBuckets {
		bucketSum += b.Ratio
	}
	assert.InDelta(t, 100, bucketSum, 1.5)
}

func TestBuildSpotInsightPotOddsNeed(t *testing.T) {
	h := flopHand(t, nil)
	require.NoError(t, h.ApplyAction(h.FocusVillainID, game.Raise, 4))
	require.Equal(t, 4, h.ToCall)

	e := NewEstimator(randutil.New(11), 400)
	s := e.BuildSpotInsight(h)
	// 4 to call into a pot of 8 needs 33.33%.
	assert.InDelta(t, 33.33, s.PotOddsNeed, 0.01)
}
