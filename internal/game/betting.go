package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Next returns the street that follows s. Showdown is terminal.
func (s Street) Next() Street {
	if s >= Showdown {
		return Showdown
	}
	return s + 1
}

// BoardCount returns how many board cards are revealed on this street.
func (s Street) BoardCount() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Winner identifies who took the hand from the hero's point of view.
type Winner string

const (
	WinnerNone    Winner = ""
	WinnerHero    Winner = "hero"
	WinnerVillain Winner = "villain"
	WinnerChop    Winner = "tie"
)

// LogEntry records one event in the hand history. Forced blinds are
// recorded as raises with the blind marker set so that replay and the
// solver action path can tell them apart from voluntary bets.
type LogEntry struct {
	ActorID     string
	ActorName   string
	Action      Action
	Amount      int
	AllIn       bool
	ForcedBlind string // "sb", "bb" or empty
	Street      Street
	Table       bool // street-advance marker, no actor
	Text        string
}
