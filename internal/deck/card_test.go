package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "royal flush", input: "AsKsQsJsTs", want: "AsKsQsJsTs"},
		{name: "mixed suits", input: "AhKdQcJs9s", want: "AhKdQcJs9s"},
		{name: "case insensitive", input: "asKHqDjc", want: "AsKhQdJc"},
		{name: "empty string", input: "", want: ""},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			codes := ""
			for _, c := range got {
				codes += c.Code()
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestMustParseCardsPanicsOnGarbage(t *testing.T) {
	cards := MustParseCards("AsKs")
	require.Len(t, cards, 2)
	assert.Equal(t, Ace, cards[0].Rank)

	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardFormatting(t *testing.T) {
	c := Card{Suit: Spades, Rank: Ace}
	assert.Equal(t, "A♠", c.String())
	assert.Equal(t, "As", c.Code())
	assert.True(t, c.IsAce())
	assert.False(t, c.Suit.IsRed())

	h := Card{Suit: Hearts, Rank: Ten}
	assert.Equal(t, "T♥", h.String())
	assert.True(t, h.Suit.IsRed())
	assert.Equal(t, "h", h.Suit.Letter())
}

func TestCardValueOrdersAceHigh(t *testing.T) {
	assert.Equal(t, 14, Card{Suit: Clubs, Rank: Ace}.Value())
	assert.Equal(t, 2, Card{Suit: Clubs, Rank: Two}.Value())
	assert.Greater(t, Card{Suit: Clubs, Rank: King}.Value(), Card{Suit: Spades, Rank: Queen}.Value())
}

func TestCardsString(t *testing.T) {
	cards := MustParseCards("Qh7h2c")
	assert.Equal(t, "Qh7h2c", CardsString(cards))
	assert.Empty(t, CardsString(nil))
}

func TestAllCardsIsAFullDistinctDeck(t *testing.T) {
	all := AllCards()
	require.Len(t, all, 52)
	seen := make(map[Card]bool, 52)
	for _, c := range all {
		require.False(t, seen[c], "duplicate card %s", c.Code())
		seen[c] = true
	}
}
