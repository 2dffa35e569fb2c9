package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	funk "github.com/thoas/go-funk"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/solver"
)

// Hand is the full state of one hand. All five board cards are dealt up
// front; RevealedBoardCount controls how many the current street shows.
//
// Betting runs on a pending-actors queue: every raise rebuilds the queue
// with the players still owed a decision, and a street ends when the
// queue drains.
type Hand struct {
	ID      string
	Players []*Player

	HeroID         string
	FocusVillainID string

	SmallBlind         int
	BigBlind           int
	ButtonPosition     Position
	SmallBlindPosition Position
	BigBlindPosition   Position

	Street             Street
	Board              []deck.Card
	RevealedBoardCount int

	Pot               int
	CurrentBet        int
	MinRaise          int
	ToCall            int // hero's price to continue, mirrored after every action
	PendingActors     []string
	ActingID          string
	StreetActionCount int

	History []LogEntry

	// Preflop action line tracked for the strategy tables. The line is
	// only meaningful while the hand stays heads-up between the hero and
	// the focus villain; any other action poisons it for good.
	PreflopActionCodes    []int
	PreflopSolverEligible bool

	Position PositionContext

	Winner         Winner
	ResultText     string
	IsOver         bool
	BustedBotNames []string

	rng *rand.Rand
}

// NewHand deals a fresh hand. The RNG is required so shuffles and bot
// decisions stay reproducible under test.
func NewHand(rng *rand.Rand, opts ...HandOption) *Hand {
	if rng == nil {
		panic("rng is required for hand creation")
	}
	cfg := buildConfig(rng, opts)
	if len(cfg.villains) == 0 {
		panic("at least one villain seat required")
	}

	h := &Hand{
		ID:                    uuid.NewString(),
		SmallBlind:            cfg.smallBlind,
		BigBlind:              cfg.bigBlind,
		ButtonPosition:        cfg.button,
		Street:                Preflop,
		MinRaise:              cfg.bigBlind,
		PreflopSolverEligible: true,
		rng:                   rng,
	}

	hero := &Player{
		ID:            "hero",
		Name:          cfg.heroName,
		Position:      cfg.heroPosition,
		Role:          RoleHero,
		StartingStack: cfg.heroStack,
		Stack:         cfg.heroStack,
		InHand:        cfg.heroStack > 0,
		Folded:        cfg.heroStack <= 0,
		AllIn:         cfg.heroStack <= 0,
	}
	h.Players = append(h.Players, hero)
	h.HeroID = hero.ID

	for i, seat := range cfg.villains {
		p := &Player{
			ID:            fmt.Sprintf("villain-%d", i+1),
			Name:          seat.Profile.Name,
			Position:      seat.Position,
			Role:          RoleBot,
			Profile:       seat.Profile,
			StartingStack: seat.Stack,
			Stack:         seat.Stack,
			InHand:        seat.Stack > 0,
			Folded:        seat.Stack <= 0,
			AllIn:         seat.Stack <= 0,
		}
		h.Players = append(h.Players, p)
		if h.FocusVillainID == "" && p.InHand {
			h.FocusVillainID = p.ID
		}
	}
	if h.FocusVillainID == "" {
		h.FocusVillainID = h.Players[1].ID
	}

	h.deal(cfg.deck)
	h.postBlinds()
	h.PendingActors = h.buildStreetQueue()
	if len(h.PendingActors) > 0 {
		h.ActingID = h.PendingActors[0]
	}
	h.syncFocus()
	return h
}

func (h *Hand) deal(d *deck.Deck) {
	if d == nil {
		d = deck.NewDeck(h.rng)
	}
	for _, pos := range TableOrder {
		if p := h.playerAt(pos); p != nil && p.InHand {
			p.HoleCards = d.DealN(2)
		}
	}
	h.Board = d.DealN(5)
	h.RevealedBoardCount = 0
}

func (h *Hand) postBlinds() {
	if h.headsUp() {
		// Heads-up the button posts the small blind.
		h.SmallBlindPosition = h.nextOccupied(h.ButtonPosition, true)
		h.BigBlindPosition = h.nextOccupied(h.SmallBlindPosition, false)
	} else {
		h.SmallBlindPosition = h.nextOccupied(h.ButtonPosition, false)
		h.BigBlindPosition = h.nextOccupied(h.SmallBlindPosition, false)
	}

	h.postBlind(h.playerAt(h.SmallBlindPosition), h.SmallBlind, "sb")
	bbPosted := h.postBlind(h.playerAt(h.BigBlindPosition), h.BigBlind, "bb")
	h.CurrentBet = bbPosted
	h.MinRaise = h.BigBlind
}

func (h *Hand) postBlind(p *Player, blind int, marker string) int {
	if p == nil || !p.InHand {
		return 0
	}
	posted := min(blind, p.Stack)
	p.Stack -= posted
	p.CommittedStreet += posted
	p.TotalCommitted += posted
	h.Pot += posted
	if p.Stack <= 0 {
		p.AllIn = true
	}
	h.History = append(h.History, LogEntry{
		ActorID:     p.ID,
		ActorName:   p.Name,
		Action:      Raise,
		Amount:      posted,
		AllIn:       p.AllIn,
		ForcedBlind: marker,
		Street:      Preflop,
		Text:        fmt.Sprintf("%s posts %d", p.Name, posted),
	})
	return posted
}

// Player returns the seat with the given id, or nil.
func (h *Hand) Player(id string) *Player {
	for _, p := range h.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Hero returns the human seat.
func (h *Hand) Hero() *Player { return h.Player(h.HeroID) }

// FocusVillain returns the bot the coaching views are tracking.
func (h *Hand) FocusVillain() *Player { return h.Player(h.FocusVillainID) }

func (h *Hand) playerAt(pos Position) *Player {
	for _, p := range h.Players {
		if p.Position == pos {
			return p
		}
	}
	return nil
}

// ActivePlayers returns everyone still contesting the pot.
func (h *Hand) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(h.Players))
	for _, p := range h.Players {
		if p.Alive() {
			active = append(active, p)
		}
	}
	return active
}

func (h *Hand) headsUp() bool {
	dealt := 0
	for _, p := range h.Players {
		if p.StartingStack > 0 {
			dealt++
		}
	}
	return dealt == 2
}

// nextOccupied walks clockwise from pos to the next seated live player.
// When includeSelf is set, pos itself is considered first.
func (h *Hand) nextOccupied(pos Position, includeSelf bool) Position {
	cursor := pos
	if !includeSelf {
		cursor = NextPosition(cursor)
	}
	for i := 0; i < len(TableOrder); i++ {
		if p := h.playerAt(cursor); p != nil && p.InHand {
			return cursor
		}
		cursor = NextPosition(cursor)
	}
	return pos
}

// actionOrderFrom rotates the table order starting at a seat and keeps
// the players who still owe a decision.
func (h *Hand) actionOrderFrom(start Position) []string {
	var out []string
	idx := tableIndex(start)
	if idx < 0 {
		idx = 0
	}
	for i := 0; i < len(TableOrder); i++ {
		pos := TableOrder[(idx+i)%len(TableOrder)]
		if p := h.playerAt(pos); p != nil && p.CanAct() {
			out = append(out, p.ID)
		}
	}
	return out
}

func (h *Hand) buildStreetQueue() []string {
	canAct := 0
	for _, p := range h.Players {
		if p.CanAct() {
			canAct++
		}
	}
	if canAct <= 1 {
		return nil
	}
	start := NextPosition(h.ButtonPosition)
	if h.Street == Preflop {
		start = NextPosition(h.BigBlindPosition)
	}
	return h.actionOrderFrom(start)
}

// buildReopenQueue is the queue after a raise: everyone left of the
// raiser who can still act, excluding the raiser.
func (h *Hand) buildReopenQueue(raiser *Player) []string {
	order := h.actionOrderFrom(NextPosition(raiser.Position))
	return funk.FilterString(order, func(id string) bool { return id != raiser.ID })
}

// normalizeAction repairs impossible inputs instead of rejecting them:
// a check facing a bet becomes a call, a call with nothing owed a check.
func normalizeAction(action Action, toCall int) Action {
	if action == Check && toCall > 0 {
		return Call
	}
	if action == Call && toCall <= 0 {
		return Check
	}
	return action
}

// ApplyAction applies an action for the player whose turn it is.
// raiseAmount is the additional chips the raiser wants to put in with
// this action, blind to what they already committed this street.
func (h *Hand) ApplyAction(playerID string, action Action, raiseAmount int) error {
	if h.IsOver {
		return fmt.Errorf("hand is over")
	}
	p := h.Player(playerID)
	if p == nil {
		return fmt.Errorf("unknown player %q", playerID)
	}
	if h.ActingID != playerID {
		return fmt.Errorf("not %s's turn", p.Name)
	}
	h.applyAction(p, action, raiseAmount)
	return nil
}

func (h *Hand) applyAction(p *Player, action Action, raiseAmount int) {
	// Pop the actor; raises rebuild the queue below.
	if len(h.PendingActors) > 0 && h.PendingActors[0] == p.ID {
		h.PendingActors = h.PendingActors[1:]
	}

	previousToCall := max(0, h.CurrentBet-p.CommittedStreet)
	minRaiseBefore := h.MinRaise
	stackBefore := p.Stack
	action = normalizeAction(action, previousToCall)

	spent := 0
	switch action {
	case Fold:
		p.Folded = true
		p.InHand = false
	case Check:
		// nothing owed
	case Call:
		spent = min(previousToCall, p.Stack)
	case Raise:
		minAmount := previousToCall + h.MinRaise
		if p.Stack < minAmount {
			// Short of a full raise. The action becomes a call and the
			// betting does not reopen.
			action = normalizeAction(Call, previousToCall)
			if action == Call {
				spent = min(previousToCall, p.Stack)
			}
		} else {
			spent = clampInt(raiseAmount, minAmount, p.Stack)
			if spent <= previousToCall {
				action = normalizeAction(Call, previousToCall)
				spent = min(previousToCall, p.Stack)
			}
		}
	}

	p.Stack -= spent
	p.CommittedStreet += spent
	p.TotalCommitted += spent
	h.Pot += spent
	if p.Stack <= 0 {
		p.AllIn = true
	}
	allInAction := action != Fold && spent > 0 && spent >= stackBefore

	if action == Raise {
		newBet := p.CommittedStreet
		raiseDelta := max(0, newBet-h.CurrentBet)
		h.CurrentBet = newBet
		if raiseDelta > 0 {
			h.MinRaise = max(h.BigBlind, raiseDelta)
		}
		h.PendingActors = h.buildReopenQueue(p)
		h.StreetActionCount++
	}

	h.History = append(h.History, LogEntry{
		ActorID:   p.ID,
		ActorName: p.Name,
		Action:    action,
		Amount:    spent,
		AllIn:     allInAction,
		Street:    h.Street,
		Text:      actionText(p, action, spent),
	})

	h.trackPreflopCode(p, action, spent, previousToCall, minRaiseBefore, stackBefore)
	h.syncFocus()
	h.finalizeRound()
}

func actionText(p *Player, action Action, spent int) string {
	switch action {
	case Fold:
		return fmt.Sprintf("%s folds", p.Name)
	case Check:
		return fmt.Sprintf("%s checks", p.Name)
	case Call:
		return fmt.Sprintf("%s calls %d", p.Name, spent)
	default:
		return fmt.Sprintf("%s raises to %d", p.Name, p.CommittedStreet)
	}
}

// trackPreflopCode extends the solver action line, or poisons it when
// the hand leaves the heads-up hero-versus-focus-villain shape.
func (h *Hand) trackPreflopCode(p *Player, action Action, spent, toCall, minRaise, stackBefore int) {
	if h.Street != Preflop || !h.PreflopSolverEligible {
		return
	}
	isTracked := p.ID == h.HeroID || p.ID == h.FocusVillainID
	if !isTracked || len(h.ActivePlayers()) > 2 {
		h.PreflopSolverEligible = false
		h.PreflopActionCodes = nil
		return
	}
	code := solver.ActionToCode(actionDecision(action, toCall), toCall, spent, minRaise, stackBefore)
	h.PreflopActionCodes = append(h.PreflopActionCodes, code)
}

func actionDecision(action Action, toCall int) solver.Decision {
	switch action {
	case Fold:
		return solver.DecisionFold
	case Check:
		return solver.DecisionCheck
	case Call:
		return solver.DecisionCall
	default:
		return solver.DecisionRaise
	}
}

// finalizeRound settles or advances the hand once the current action has
// been absorbed. All-in runouts fall through street by street until the
// board is complete.
func (h *Hand) finalizeRound() {
	if h.IsOver {
		return
	}
	alive := h.ActivePlayers()
	if len(alive) <= 1 {
		if len(alive) == 1 {
			h.settleSingleWinner(alive[0])
		} else {
			h.settleShowdown()
		}
		return
	}

	h.PendingActors = funk.FilterString(h.PendingActors, func(id string) bool {
		p := h.Player(id)
		return p != nil && p.CanAct()
	})
	if len(h.PendingActors) > 0 {
		h.ActingID = h.PendingActors[0]
		return
	}

	h.ActingID = ""
	if h.Street == River {
		h.settleShowdown()
		return
	}
	h.beginNextStreet()
	if !h.IsOver && len(h.PendingActors) == 0 {
		h.finalizeRound()
	}
}

func (h *Hand) beginNextStreet() {
	h.Street = h.Street.Next()
	if h.Street == Showdown {
		h.RevealedBoardCount = 5
		h.PendingActors = nil
		return
	}
	h.RevealedBoardCount = h.Street.BoardCount()
	for _, p := range h.Players {
		p.CommittedStreet = 0
	}
	h.CurrentBet = 0
	h.ToCall = 0
	h.MinRaise = h.BigBlind
	h.StreetActionCount = 0
	h.PendingActors = h.buildStreetQueue()
	h.ActingID = ""
	if len(h.PendingActors) > 0 {
		h.ActingID = h.PendingActors[0]
	}
	h.History = append(h.History, LogEntry{
		Street: h.Street,
		Table:  true,
		Text:   fmt.Sprintf("--- %s ---", h.Street),
	})
	h.syncFocus()
}

// RevealedBoard returns the board cards visible on the current street.
func (h *Hand) RevealedBoard() []deck.Card {
	if h.RevealedBoardCount > len(h.Board) {
		return h.Board
	}
	return h.Board[:h.RevealedBoardCount]
}

// StreetLogs returns the non-marker history entries for a street.
func (h *Hand) StreetLogs(street Street) []LogEntry {
	var out []LogEntry
	for _, entry := range h.History {
		if entry.Street == street && !entry.Table {
			out = append(out, entry)
		}
	}
	return out
}

// syncFocus refreshes the hero-facing mirrors: the price to continue,
// the tracked villain, and the seating context. Losing the focus villain
// mid-line or going multiway kills preflop solver eligibility.
func (h *Hand) syncFocus() {
	focus := h.FocusVillain()
	if focus == nil || !focus.Alive() {
		for _, pos := range TableOrder {
			if p := h.playerAt(pos); p != nil && p.Role == RoleBot && p.Alive() {
				if p.ID != h.FocusVillainID && len(h.PreflopActionCodes) > 0 {
					h.PreflopSolverEligible = false
					h.PreflopActionCodes = nil
				}
				h.FocusVillainID = p.ID
				focus = p
				break
			}
		}
	}
	if hero := h.Hero(); hero != nil {
		h.ToCall = max(0, h.CurrentBet-hero.CommittedStreet)
		if focus != nil {
			h.Position = BuildPositionContext(hero.Position, focus.Position)
		}
	}
	if h.Street == Preflop && !h.headsUp() {
		h.PreflopSolverEligible = false
		h.PreflopActionCodes = nil
	}
}

// ActorInPositionPostflop reports whether the player closes the action
// postflop, i.e. sits last in postflop order among live players.
func (h *Hand) ActorInPositionPostflop(playerID string) bool {
	p := h.Player(playerID)
	if p == nil {
		return false
	}
	best := -1
	for _, other := range h.ActivePlayers() {
		if idx := postflopIndex(other.Position); idx > best {
			best = idx
		}
	}
	return postflopIndex(p.Position) == best
}

// AggressorFor says who put in the last voluntary raise, seen from the
// given player.
func (h *Hand) AggressorFor(playerID string) solver.Aggressor {
	for i := len(h.History) - 1; i >= 0; i-- {
		entry := h.History[i]
		if entry.Table || entry.ForcedBlind != "" {
			continue
		}
		if entry.Action == Raise && entry.Amount > 0 {
			if entry.ActorID == playerID {
				return solver.AggressorSelf
			}
			return solver.AggressorOpponent
		}
	}
	return solver.AggressorNone
}

// OpponentEffectiveStack is the shortest live opposing stack, measured
// as chips behind plus chips already out front this street.
func (h *Hand) OpponentEffectiveStack(playerID string) int {
	best := 0
	for _, p := range h.ActivePlayers() {
		if p.ID == playerID {
			continue
		}
		total := p.Stack + p.CommittedStreet
		if best == 0 || total < best {
			best = total
		}
	}
	return max(1, best)
}

// EffectiveStackBB is the preflop effective stack in big blinds, floored
// at the shallowest depth the strategy tables cover.
func (h *Hand) EffectiveStackBB(playerID string) float64 {
	p := h.Player(playerID)
	if p == nil {
		return 5
	}
	eff := min(p.Stack+p.CommittedStreet, h.OpponentEffectiveStack(p.ID))
	bb := float64(eff) / float64(max(1, h.BigBlind))
	if bb < 5 {
		return 5
	}
	return bb
}

// RiverActionPath rebuilds the river betting line as solver node tokens.
// Only meaningful heads-up on the river; otherwise empty.
func (h *Hand) RiverActionPath() []string {
	if h.Street != River || len(h.ActivePlayers()) != 2 {
		return nil
	}
	var path []string
	for _, entry := range h.StreetLogs(River) {
		switch entry.Action {
		case Fold:
			path = append(path, "fold")
		case Check:
			path = append(path, "check")
		case Call:
			path = append(path, "call")
		case Raise:
			if len(path) == 0 || path[len(path)-1] == "check" {
				path = append(path, "bet")
			} else {
				path = append(path, "raise")
			}
		}
	}
	return path
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
