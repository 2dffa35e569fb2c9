package deck

import (
	"testing"

	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(1))
	if d.CardsRemaining() != 52 {
		t.Fatalf("CardsRemaining() = %d, want 52", d.CardsRemaining())
	}

	seen := make(map[Card]bool)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		if seen[card] {
			t.Fatalf("duplicate card dealt: %s", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Fatalf("dealt %d unique cards, want 52", len(seen))
	}
}

func TestNewDeckDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	for i := 0; i < 52; i++ {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatalf("card %d differs: %s vs %s", i, ca, cb)
		}
	}
}

func TestNewDeckExcluding(t *testing.T) {
	t.Parallel()

	dead := MustParseCards("AhKh7d")
	d := NewDeckExcluding(randutil.New(7), dead)
	if d.CardsRemaining() != 49 {
		t.Fatalf("CardsRemaining() = %d, want 49", d.CardsRemaining())
	}
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		for _, dc := range dead {
			if card == dc {
				t.Fatalf("dead card %s dealt", card)
			}
		}
	}
}

func TestDealN(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(3))
	cards := d.DealN(5)
	if len(cards) != 5 {
		t.Fatalf("DealN(5) returned %d cards", len(cards))
	}
	if d.CardsRemaining() != 47 {
		t.Fatalf("CardsRemaining() = %d, want 47", d.CardsRemaining())
	}
}

func TestHandKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		want  string
	}{
		{"AsKs", "AKs"},
		{"KdAh", "AKo"},
		{"7c2d", "72o"},
		{"TsTd", "TT"},
		{"5h4h", "54s"},
	}
	for _, tt := range tests {
		if got := HandKey(MustParseCards(tt.cards)); got != tt.want {
			t.Errorf("HandKey(%s) = %q, want %q", tt.cards, got, tt.want)
		}
	}
}

func TestGetHandPercentileOrdering(t *testing.T) {
	t.Parallel()

	aces := GetHandPercentile(MustParseCards("AsAd"))
	trash := GetHandPercentile(MustParseCards("7c2d"))
	if aces != 1.0 {
		t.Errorf("GetHandPercentile(AA) = %v, want 1.0", aces)
	}
	if trash != 0.0 {
		t.Errorf("GetHandPercentile(72o) = %v, want 0.0", trash)
	}
}
