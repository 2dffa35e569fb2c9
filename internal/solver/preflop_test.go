package solver

import (
	"testing"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreflopAdviseRootPremium(t *testing.T) {
	t.Parallel()

	table := DefaultPreflopTable()
	advice := table.Advise(PreflopSpot{
		StackBB:   100,
		HoleCards: deck.MustParseCards("AsAh"),
		ToCall:    1,
		MinRaise:  2,
		Stack:     200,
	})

	require.True(t, advice.Found)
	assert.Equal(t, "root", advice.StateKey)
	assert.Equal(t, DecisionRaise, advice.Decision)
	assert.Greater(t, advice.Amount, 0)
	assert.NotEmpty(t, advice.Mix)
	assert.NotEmpty(t, advice.MixText())
}

func TestPreflopAdviseRootTrash(t *testing.T) {
	t.Parallel()

	table := DefaultPreflopTable()
	advice := table.Advise(PreflopSpot{
		StackBB:     100,
		ActionCodes: []int{3}, // facing a 3x open
		HoleCards:   deck.MustParseCards("7c2d"),
		ToCall:      4,
		MinRaise:    4,
		Stack:       200,
	})

	require.True(t, advice.Found)
	assert.Equal(t, DecisionFold, advice.Decision)
}

func TestPreflopAdviseStackInterpolation(t *testing.T) {
	t.Parallel()

	table := DefaultPreflopTable()
	advice := table.Advise(PreflopSpot{
		StackBB:   30, // between the 20bb and 40bb tables
		HoleCards: deck.MustParseCards("AsKs"),
		ToCall:    1,
		MinRaise:  2,
		Stack:     60,
	})
	require.True(t, advice.Found)
	assert.NotEmpty(t, advice.Mix)

	total := 0.0
	for _, m := range advice.Mix {
		total += m.Prob
	}
	// sub-1% entries are filtered out of the mix
	assert.InDelta(t, 1.0, total, 0.1)
}

func TestPreflopAdviseDepthGuard(t *testing.T) {
	t.Parallel()

	table := DefaultPreflopTable()
	advice := table.Advise(PreflopSpot{
		StackBB:     100,
		ActionCodes: []int{3, 5, 3}, // built-in table only covers depth one
		HoleCards:   deck.MustParseCards("QdQc"),
		ToCall:      30,
		MinRaise:    20,
		Stack:       150,
	})

	assert.False(t, advice.Found)
	assert.Equal(t, DecisionCall, advice.Decision, "not-found fallback must stay passive")
}

func TestPreflopAdviseMissWithEmptyTable(t *testing.T) {
	t.Parallel()

	table, err := NewPreflopTable(map[int]*PreflopDataset{
		100: {States: map[string]PreflopState{"9-9": {NumActions: 7}}},
	})
	require.NoError(t, err)

	advice := table.Advise(PreflopSpot{
		StackBB:   100,
		HoleCards: deck.MustParseCards("AsAd"),
		ToCall:    0,
		MinRaise:  2,
		Stack:     200,
	})
	assert.False(t, advice.Found)
	assert.Equal(t, DecisionCheck, advice.Decision)
}

func TestCodeRaiseAmountWindow(t *testing.T) {
	t.Parallel()

	// base is toCall+minRaise = 6; sizes scale off it and clamp to stack
	assert.Equal(t, 7, CodeRaiseAmount(2, 2, 4, 200))
	assert.Equal(t, 10, CodeRaiseAmount(5, 2, 4, 200))
	assert.Equal(t, 200, CodeRaiseAmount(CodeAllIn, 2, 4, 200))
	assert.Equal(t, 8, CodeRaiseAmount(5, 2, 4, 8), "raise capped at stack")
	assert.Equal(t, 0, CodeRaiseAmount(CodeCall, 2, 4, 200))
}

func TestRaiseAmountToCodeBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount, toCall, minRaise, stack int
		want                            int
	}{
		{6, 2, 4, 200, 2},     // min raise
		{7, 2, 4, 200, 3},     // ~1.17x
		{9, 2, 4, 200, 4},     // ~1.5x
		{12, 2, 4, 200, 5},    // 2x
		{195, 2, 4, 200, 6},   // near stack is a jam
		{10, 2, 4, 0, CodeAllIn},
	}
	for _, tt := range tests {
		got := RaiseAmountToCode(tt.amount, tt.toCall, tt.minRaise, tt.stack)
		assert.Equalf(t, tt.want, got, "RaiseAmountToCode(%d,%d,%d,%d)", tt.amount, tt.toCall, tt.minRaise, tt.stack)
	}
}

func TestActionToCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeFold, ActionToCode(DecisionFold, 2, 0, 2, 200))
	assert.Equal(t, CodeCall, ActionToCode(DecisionCall, 2, 0, 2, 200))
	assert.Equal(t, CodeCall, ActionToCode(DecisionCheck, 0, 0, 2, 200))
	assert.Equal(t, CodeAllIn, ActionToCode(DecisionRaise, 2, 200, 2, 200))
}
