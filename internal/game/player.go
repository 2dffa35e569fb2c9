package game

import (
	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
)

// Role distinguishes the human seat from the bots.
type Role int

const (
	RoleHero Role = iota
	RoleBot
)

func (r Role) String() string {
	if r == RoleHero {
		return "hero"
	}
	return "bot"
}

// Player represents one seat in a hand.
type Player struct {
	ID              string
	Name            string
	Position        Position
	Role            Role
	Profile         *profile.Profile // nil for the hero
	HoleCards       []deck.Card
	StartingStack   int
	Stack           int
	CommittedStreet int // chips committed on the current street
	TotalCommitted  int // chips committed over the whole hand
	InHand          bool
	Folded          bool
	AllIn           bool
}

// CanAct reports whether the player still has a decision to make.
func (p *Player) CanAct() bool {
	return p.InHand && !p.Folded && !p.AllIn && p.Stack > 0
}

// Alive reports whether the player still contests the pot.
func (p *Player) Alive() bool {
	return p.InHand && !p.Folded
}
