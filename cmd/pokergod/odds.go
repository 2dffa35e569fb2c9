package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/evaluator"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/insight"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

// OddsCmd analyzes one spot without playing a session: what the named
// opponent can hold, the hero's equity against it, and the outs.
type OddsCmd struct {
	Hole        string `arg:"" help:"Hero hole cards, e.g. 'AhKh'"`
	Board       string `kong:"short='b',help='Board cards: none, 3, 4 or 5'"`
	Opponent    string `kong:"default='vera',help='Opponent id whose style weights the range'"`
	Config      string `kong:"default='pokergod.hcl',help='Opponent roster file (HCL)'"`
	Simulations int    `kong:"default='1400',help='Monte Carlo runs for equity'"`
	Seed        *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *OddsCmd) Run() error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly two hole cards, got %d", len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return err
		}
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", len(board))
	}
	if err := checkDuplicates(hole, board); err != nil {
		return err
	}

	cfg, err := profile.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	prof, ok := cfg.FindOpponent(c.Opponent)
	if !ok {
		return fmt.Errorf("unknown opponent %q", c.Opponent)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	h, err := buildSpotHand(rng, &prof, hole, board)
	if err != nil {
		return err
	}

	est := insight.NewEstimator(randutil.Fork(rng), c.Simulations)
	si := est.BuildSpotInsight(h)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s (%s)\n",
		headerStyle.Render("Hero "+cardsText(hole)), prof.Name, prof.StyleLabel)
	boardText := "(preflop)"
	if len(board) > 0 {
		boardText = cardsText(board)
	}
	fmt.Fprintf(&sb, "Board: %s\n", boardText)
	fmt.Fprintf(&sb, "Hand strength: %d/99\n", evaluator.HandStrength(hole, board))
	renderInsight(&sb, si)
	fmt.Print(sb.String())
	return nil
}

func checkDuplicates(hole, board []deck.Card) error {
	seen := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range append(append([]deck.Card{}, hole...), board...) {
		if seen[c] {
			return fmt.Errorf("duplicate card %s", c.Code())
		}
		seen[c] = true
	}
	return nil
}

// buildSpotHand rigs a heads-up hand at the street the board implies,
// with checks walking it there so the range weighting sees a quiet
// action line.
func buildSpotHand(rng *rand.Rand, prof *profile.Profile, hole, board []deck.Card) (*game.Hand, error) {
	used := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		used[c] = true
	}
	for _, c := range board {
		used[c] = true
	}

	// Villain placeholder cards and board padding come from whatever is
	// left; insight never looks at them.
	need := 2 + (5 - len(board))
	spare := make([]deck.Card, 0, need)
	for _, c := range deck.AllCards() {
		if len(spare) == need {
			break
		}
		if !used[c] {
			spare = append(spare, c)
		}
	}

	stacked := make([]deck.Card, 0, 9)
	stacked = append(stacked, spare[:2]...)
	stacked = append(stacked, hole...)
	stacked = append(stacked, board...)
	stacked = append(stacked, spare[2:]...)

	h := game.NewHand(rng,
		game.WithHero("Hero", game.PositionBTN, game.DefaultStartingStack),
		game.WithVillain(prof, game.PositionUTG, game.DefaultStartingStack),
		game.WithDeck(deck.NewStackedDeck(stacked)),
	)

	if len(board) >= 3 {
		if err := h.ApplyAction(h.HeroID, game.Call, 0); err != nil {
			return nil, err
		}
		if err := h.ApplyAction(h.FocusVillainID, game.Check, 0); err != nil {
			return nil, err
		}
	}
	for h.RevealedBoardCount < len(board) {
		if err := h.ApplyAction(h.FocusVillainID, game.Check, 0); err != nil {
			return nil, err
		}
		if err := h.ApplyAction(h.HeroID, game.Check, 0); err != nil {
			return nil, err
		}
	}
	return h, nil
}
