package main

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AllenPeng0209/poker-god-sub001/internal/engine"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
	"github.com/AllenPeng0209/poker-god-sub001/internal/statistics"
)

// SimulateCmd plays the advisor against the bots and reports how the
// recommended lines perform.
type SimulateCmd struct {
	Hands    int    `kong:"default='500',help='Number of hands to simulate'"`
	Opponent string `kong:"default='rocky',help='Opponent id from the roster'"`
	Config   string `kong:"default='pokergod.hcl',help='Opponent roster file (HCL)'"`
	Solver   string `kong:"help='Directory of solver table dumps (optional)'"`
	Workers  int    `kong:"default='4',help='Parallel workers'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := profile.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, ok := cfg.FindOpponent(c.Opponent); !ok {
		return fmt.Errorf("unknown opponent %q", c.Opponent)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	master := randutil.New(seed)

	analyzer, err := loadAnalyzer(c.Solver, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Simulating %d hands vs %s with %d workers (seed %d)\n",
		c.Hands, c.Opponent, c.Workers, seed)
	start := time.Now()

	var mu sync.Mutex
	total := &statistics.Statistics{}

	var g errgroup.Group
	perWorker := c.Hands / c.Workers
	remainder := c.Hands % c.Workers
	for w := 0; w < c.Workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}
		if hands == 0 {
			continue
		}
		rng := randutil.Fork(master)
		g.Go(func() error {
			session := engine.NewSession(cfg, rng,
				engine.WithLogger(logger),
				engine.WithMode(engine.ModePractice),
				engine.WithAnalyzer(analyzer),
			)
			stats, err := runWorker(session, c.Opponent, hands)
			if err != nil {
				return err
			}
			mu.Lock()
			total.Merge(stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSimResults(total, time.Since(start))
	return nil
}

// runWorker plays the advisor's best line every time the hero acts.
func runWorker(session *engine.Session, opponent string, hands int) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	for i := 0; i < hands; i++ {
		h, err := session.StartHand(opponent)
		if err != nil {
			return nil, err
		}
		for !h.IsOver {
			advice := session.AnalyzeCurrentSpot()
			if advice == nil {
				break
			}
			amount := 0
			if advice.Best.Action == game.Raise {
				amount = advice.Best.Amount
			}
			if _, err := session.ApplyHeroAction(advice.Best.Action, amount); err != nil {
				return nil, err
			}
		}

		net := h.Hero().Stack - game.DefaultStartingStack
		result := statistics.HandResult{
			NetBB:          float64(net) / float64(h.BigBlind),
			Won:            h.Winner == game.WinnerHero,
			Chopped:        h.Winner == game.WinnerChop,
			WentToShowdown: len(h.ActivePlayers()) > 1,
			FinalPot:       h.Pot,
		}
		for _, r := range session.Records() {
			result.Decisions++
			if r.IsBest {
				result.BestDecisions++
			}
		}
		stats.Add(result)
	}
	return stats, nil
}

func printSimResults(s *statistics.Statistics, elapsed time.Duration) {
	if s.Hands == 0 {
		fmt.Println("no hands played")
		return
	}

	fmt.Printf("\nHands: %d in %s (%.1f hands/sec)\n",
		s.Hands, elapsed.Round(time.Millisecond), float64(s.Hands)/elapsed.Seconds())
	fmt.Printf("Win rate: %.1f%% (%d wins, %d chops; %d at showdown, %d without)\n",
		s.WinRate()*100, s.Wins, s.Chops, s.ShowdownWins, s.NonShowdownWins)
	fmt.Printf("Net: %+.1f bb total, %+.3f bb/hand (±%.3f), median %+.1f\n",
		s.SumBB, s.Mean(), 1.96*s.StdError(), s.Median())
	fmt.Printf("Showdown winnings: %+.1f bb, fold equity: %+.1f bb, biggest pot: %d chips\n",
		s.ShowdownBB, s.NonShowdownBB, s.MaxPotChips)
	if s.Decisions > 0 {
		fmt.Printf("Best-line decisions: %d/%d (%.1f%%)\n",
			s.BestDecisions, s.Decisions, s.BestLineRate()*100)
	}
	if err := s.Validate(); err != nil {
		fmt.Printf("warning: %v\n", err)
	}
}
