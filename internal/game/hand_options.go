package game

import (
	"math/rand"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
)

// Defaults for a fresh hand.
const (
	DefaultStartingStack = 200
	DefaultSmallBlind    = 1
	DefaultBigBlind      = 2
)

// VillainSeat places one bot at the table.
type VillainSeat struct {
	Profile  *profile.Profile
	Position Position
	Stack    int
}

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	rng *rand.Rand

	heroName     string
	heroPosition Position
	heroStack    int
	villains     []VillainSeat
	button       Position
	buttonSet    bool
	smallBlind   int
	bigBlind     int
	deck         *deck.Deck
}

// WithHero names the human seat and places it.
func WithHero(name string, position Position, stack int) HandOption {
	return func(c *handConfig) {
		if name != "" {
			c.heroName = name
		}
		c.heroPosition = position
		c.heroStack = stack
	}
}

// WithVillain seats one bot. Stack <= 0 falls back to the default stack;
// a zero-stack bust-out is expressed with a negative marker via
// WithVillainBusted instead so the common case stays simple.
func WithVillain(p *profile.Profile, position Position, stack int) HandOption {
	return func(c *handConfig) {
		if stack <= 0 {
			stack = DefaultStartingStack
		}
		c.villains = append(c.villains, VillainSeat{Profile: p, Position: position, Stack: stack})
	}
}

// WithVillainBusted seats a bot with no chips. The seat is dealt out of
// the hand but keeps its place at the table for display continuity.
func WithVillainBusted(p *profile.Profile, position Position) HandOption {
	return func(c *handConfig) {
		c.villains = append(c.villains, VillainSeat{Profile: p, Position: position, Stack: 0})
	}
}

// WithButton pins the dealer button to a seat. Defaults to the hero's seat.
func WithButton(position Position) HandOption {
	return func(c *handConfig) {
		c.button = position
		c.buttonSet = true
	}
}

// WithBlinds overrides the blind sizes.
func WithBlinds(smallBlind, bigBlind int) HandOption {
	return func(c *handConfig) {
		c.smallBlind = smallBlind
		c.bigBlind = bigBlind
	}
}

// WithDeck deals from a prepared deck instead of shuffling a fresh one.
// The RNG is still required for the bot policy.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}

func buildConfig(rng *rand.Rand, opts []HandOption) *handConfig {
	cfg := &handConfig{
		rng:          rng,
		heroName:     "Hero",
		heroPosition: PositionBTN,
		heroStack:    DefaultStartingStack,
		smallBlind:   DefaultSmallBlind,
		bigBlind:     DefaultBigBlind,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.heroStack < 0 {
		cfg.heroStack = 0
	}
	if !cfg.buttonSet {
		cfg.button = cfg.heroPosition
	}
	return cfg
}
