package deck

import (
	"math/rand"
)

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a shuffled 52-card deck using the given random source.
// Panics if rng is nil: the caller owns seeding so hands are replayable.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng must not be nil")
	}

	deck := &Deck{
		cards: AllCards(),
		rng:   rng,
	}
	deck.Shuffle()
	return deck
}

// NewDeckExcluding creates a shuffled deck with the given cards removed,
// for simulating runouts against known hole and board cards.
func NewDeckExcluding(rng *rand.Rand, dead []Card) *Deck {
	if rng == nil {
		panic("deck: rng must not be nil")
	}

	used := make(map[Card]bool, len(dead))
	for _, c := range dead {
		used[c] = true
	}

	deck := &Deck{
		cards: make([]Card, 0, 52-len(dead)),
		rng:   rng,
	}
	for _, c := range AllCards() {
		if !used[c] {
			deck.cards = append(deck.cards, c)
		}
	}
	deck.Shuffle()
	return deck
}

// NewStackedDeck deals the given cards in order, for rigging known
// deals and runouts. The deck cannot be reshuffled.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// AllCards returns a fresh ordered 52-card slice.
func AllCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		if card, ok := d.Deal(); ok {
			cards[i] = card
		}
	}

	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
