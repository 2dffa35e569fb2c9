package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenPeng0209/poker-god-sub001/internal/evaluator"
)

// SidePot is one layer of the pot with the players entitled to it.
type SidePot struct {
	Label       string
	Amount      int
	EligibleIDs []string
}

// BuildSidePots layers the pot by distinct total commitment levels.
// Folded players' chips stay in the layers they paid into but they are
// never eligible to win them.
func (h *Hand) BuildSidePots() []SidePot {
	levels := make([]int, 0, len(h.Players))
	seen := make(map[int]bool)
	for _, p := range h.Players {
		if p.TotalCommitted > 0 && !seen[p.TotalCommitted] {
			seen[p.TotalCommitted] = true
			levels = append(levels, p.TotalCommitted)
		}
	}
	sort.Ints(levels)

	var pots []SidePot
	previous := 0
	for _, level := range levels {
		band := level - previous
		amount := 0
		var eligible []string
		for _, p := range h.Players {
			if p.TotalCommitted >= level {
				amount += band
				if p.Alive() {
					eligible = append(eligible, p.ID)
				}
			}
		}
		if amount > 0 {
			label := "Main pot"
			if len(pots) > 0 {
				label = fmt.Sprintf("Side pot %d", len(pots))
			}
			pots = append(pots, SidePot{Label: label, Amount: amount, EligibleIDs: eligible})
		}
		previous = level
	}
	return pots
}

// payoutOrderFromButton lists seats clockwise starting left of the
// button. Odd chips go to winners earliest in this order.
func (h *Hand) payoutOrderFromButton() []string {
	var out []string
	start := tableIndex(NextPosition(h.ButtonPosition))
	for i := 0; i < len(TableOrder); i++ {
		pos := TableOrder[(start+i)%len(TableOrder)]
		if p := h.playerAt(pos); p != nil {
			out = append(out, p.ID)
		}
	}
	return out
}

func (h *Hand) settleSingleWinner(winner *Player) {
	winner.Stack += h.Pot
	if winner.Role == RoleHero {
		h.Winner = WinnerHero
	} else {
		h.Winner = WinnerVillain
	}
	h.ResultText = fmt.Sprintf("%s wins %d uncontested", winner.Name, h.Pot)
	h.endHand()
}

func (h *Hand) settleShowdown() {
	h.Street = Showdown
	h.RevealedBoardCount = 5
	alive := h.ActivePlayers()
	if len(alive) == 0 {
		h.Winner = WinnerChop
		h.ResultText = "Pot is split"
		h.endHand()
		return
	}

	results := make(map[string]evaluator.HandResult, len(alive))
	for _, p := range alive {
		results[p.ID] = evaluator.Evaluate(p.HoleCards, h.Board)
	}
	order := h.payoutOrderFromButton()
	orderIndex := make(map[string]int, len(order))
	for i, id := range order {
		orderIndex[id] = i
	}

	received := make(map[string]int)
	var potTexts []string
	for _, pot := range h.BuildSidePots() {
		winners := showdownWinners(pot.EligibleIDs, results)
		if len(winners) == 0 {
			continue
		}
		sort.Slice(winners, func(i, j int) bool {
			return orderIndex[winners[i]] < orderIndex[winners[j]]
		})
		base := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, id := range winners {
			share := base
			if i < remainder {
				share++
			}
			h.Player(id).Stack += share
			received[id] += share
		}
		names := make([]string, len(winners))
		for i, id := range winners {
			names[i] = h.Player(id).Name
		}
		potTexts = append(potTexts, fmt.Sprintf("%s (%d): %s", pot.Label, pot.Amount, strings.Join(names, ", ")))
	}

	h.Winner = h.heroOutcome(received)
	best := bestShowdownHand(alive, results)
	if best != nil {
		h.ResultText = fmt.Sprintf("%s shows %s", best.Name, results[best.ID].String())
		if len(potTexts) > 0 {
			h.ResultText += ". " + strings.Join(potTexts, "; ")
		}
	}
	h.endHand()
}

func showdownWinners(eligible []string, results map[string]evaluator.HandResult) []string {
	var winners []string
	for _, id := range eligible {
		result, ok := results[id]
		if !ok {
			continue
		}
		if len(winners) == 0 {
			winners = []string{id}
			continue
		}
		switch result.Compare(results[winners[0]]) {
		case 1:
			winners = []string{id}
		case 0:
			winners = append(winners, id)
		}
	}
	return winners
}

func bestShowdownHand(alive []*Player, results map[string]evaluator.HandResult) *Player {
	var best *Player
	for _, p := range alive {
		if best == nil || results[p.ID].Compare(results[best.ID]) == 1 {
			best = p
		}
	}
	return best
}

// heroOutcome grades the hand from the hero's side: sole top receiver
// wins it, tied top chops, anything else is a loss.
func (h *Hand) heroOutcome(received map[string]int) Winner {
	top := 0
	for _, amount := range received {
		if amount > top {
			top = amount
		}
	}
	if top == 0 {
		return WinnerVillain
	}
	heroShare := received[h.HeroID]
	if heroShare < top {
		return WinnerVillain
	}
	for id, amount := range received {
		if id != h.HeroID && amount == top {
			return WinnerChop
		}
	}
	return WinnerHero
}

// endHand closes the hand and marks busted seats.
func (h *Hand) endHand() {
	h.Street = Showdown
	h.RevealedBoardCount = 5
	h.PendingActors = nil
	h.ActingID = ""
	h.IsOver = true
	for _, p := range h.Players {
		if p.StartingStack > 0 && p.Stack <= 0 {
			p.Stack = 0
			p.InHand = false
			p.Folded = true
			p.AllIn = true
			if p.Role == RoleBot {
				h.BustedBotNames = append(h.BustedBotNames, p.Name)
			}
		}
	}
	if h.ResultText != "" {
		h.History = append(h.History, LogEntry{Street: Showdown, Table: true, Text: h.ResultText})
	}
	h.syncFocus()
}
