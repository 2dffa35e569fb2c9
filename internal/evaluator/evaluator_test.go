package evaluator

import (
	"testing"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hole  string
		board string
		want  Category
	}{
		{"straight flush", "9h8h", "7h6h5h2cKd", StraightFlush},
		{"four of a kind", "AsAh", "AdAcKh7s2d", FourOfAKind},
		{"full house", "KsKh", "Kd7c7h2s9d", FullHouse},
		{"flush", "AhTh", "7h4h2hKsQd", Flush},
		{"broadway straight", "AsKd", "QhJcTs4d2h", Straight},
		{"wheel straight", "As4d", "2h3c5s9dKh", Straight},
		{"three of a kind", "QsQh", "Qd7c2h9sJd", ThreeOfAKind},
		{"two pair", "JsJh", "7d7c2hQs4d", TwoPair},
		{"one pair", "TsTh", "7d4c2hQs9d", OnePair},
		{"high card", "AsJh", "7d4c2h9sQd", HighCard},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(deck.MustParseCards(tt.hole), deck.MustParseCards(tt.board))
			if got.Category != tt.want {
				t.Errorf("Evaluate() category = %v, want %v", got.Category, tt.want)
			}
			if len(got.Cards) != 5 {
				t.Errorf("Evaluate() returned %d cards, want 5", len(got.Cards))
			}
		})
	}
}

func TestEvaluateWheelIsFiveHigh(t *testing.T) {
	t.Parallel()

	wheel := Evaluate(deck.MustParseCards("As4d"), deck.MustParseCards("2h3c5s9dKh"))
	sixHigh := Evaluate(deck.MustParseCards("6s4d"), deck.MustParseCards("2h3c5s9dKh"))

	if wheel.Category != Straight || sixHigh.Category != Straight {
		t.Fatalf("both hands should be straights, got %v and %v", wheel.Category, sixHigh.Category)
	}
	if wheel.Compare(sixHigh) >= 0 {
		t.Errorf("wheel should lose to six-high straight: %v vs %v", wheel.Vector, sixHigh.Vector)
	}
	// wheel displays with the ace last
	last := wheel.Cards[len(wheel.Cards)-1]
	if !last.IsAce() {
		t.Errorf("wheel display order = %s, want ace last", wheel)
	}
}

func TestEvaluatePicksBestFiveOfSeven(t *testing.T) {
	t.Parallel()

	// Two pair on the board plus a pocket pair must find the full house.
	got := Evaluate(deck.MustParseCards("7s7h"), deck.MustParseCards("KdKc7d2s9h"))
	if got.Category != FullHouse {
		t.Fatalf("category = %v, want FullHouse", got.Category)
	}
	if got.Vector[1] != 7 || got.Vector[2] != 13 {
		t.Errorf("vector = %v, want sevens full of kings", got.Vector)
	}
}

func TestCompareKickers(t *testing.T) {
	t.Parallel()

	board := deck.MustParseCards("KdQc7d2s3h")
	aceKicker := Evaluate(deck.MustParseCards("KsAh"), board)
	jackKicker := Evaluate(deck.MustParseCards("KhJs"), board)

	if aceKicker.Compare(jackKicker) <= 0 {
		t.Errorf("ace kicker should win: %v vs %v", aceKicker.Vector, jackKicker.Vector)
	}
	if jackKicker.Compare(aceKicker) >= 0 {
		t.Errorf("comparison should be antisymmetric")
	}
}

func TestCompareChop(t *testing.T) {
	t.Parallel()

	board := deck.MustParseCards("AhKdQc JsTs")
	a := Evaluate(deck.MustParseCards("2h3d"), board)
	b := Evaluate(deck.MustParseCards("4c5s"), board)
	if a.Compare(b) != 0 {
		t.Errorf("board plays for both, want chop: %v vs %v", a.Vector, b.Vector)
	}
}

func TestEvaluateShortPool(t *testing.T) {
	t.Parallel()

	got := Evaluate(deck.MustParseCards("AsKs"), nil)
	if got.Category != HighCard || len(got.Cards) != 0 {
		t.Errorf("preflop evaluation should be an empty high-card result, got %v %v", got.Category, got.Cards)
	}
}

func TestHandStrengthBounds(t *testing.T) {
	t.Parallel()

	quads := HandStrength(deck.MustParseCards("AsAh"), deck.MustParseCards("AdAcKh"))
	if quads != 99 {
		t.Errorf("quad aces strength = %d, want clamp at 99", quads)
	}

	trash := HandStrength(deck.MustParseCards("7c2d"), nil)
	if trash < 5 || trash > 99 {
		t.Errorf("strength %d outside [5,99]", trash)
	}

	premium := HandStrength(deck.MustParseCards("AsAh"), nil)
	if premium <= trash {
		t.Errorf("pocket aces (%d) should outscore 72o (%d)", premium, trash)
	}
}

func TestHandStrengthRewardsDraws(t *testing.T) {
	t.Parallel()

	flushDraw := HandStrength(deck.MustParseCards("Ah9h"), deck.MustParseCards("7h4h2c"))
	noDraw := HandStrength(deck.MustParseCards("Ah9d"), deck.MustParseCards("7h4s2c"))
	if flushDraw <= noDraw {
		t.Errorf("four to a flush (%d) should outscore no draw (%d)", flushDraw, noDraw)
	}
}
