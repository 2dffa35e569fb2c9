package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AllenPeng0209/poker-god-sub001/internal/engine"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
	"github.com/AllenPeng0209/poker-god-sub001/internal/store"
)

// PlayCmd runs the interactive training table.
type PlayCmd struct {
	Config    string   `kong:"default='pokergod.hcl',help='Opponent roster file (HCL)'"`
	Data      string   `kong:"default='.pokergod',help='Directory for hand history and progress'"`
	Solver    string   `kong:"help='Directory of solver table dumps (optional, falls back to built-ins)'"`
	Opponents []string `kong:"short='o',help='Opponent ids to seat (default: first playable in your zone)'"`
	Practice  bool     `kong:"help='Practice mode: fresh stacks every hand, reduced XP'"`
	Seed      *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Debug     bool     `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := profile.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := store.Open(c.Data)
	if err != nil {
		return err
	}
	progress, err := db.LoadProgress()
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	mode := engine.ModeCareer
	if c.Practice {
		mode = engine.ModePractice
	}
	analyzer, err := loadAnalyzer(c.Solver, logger)
	if err != nil {
		return err
	}
	session := engine.NewSession(cfg, randutil.New(seed),
		engine.WithLogger(logger),
		engine.WithMode(mode),
		engine.WithProgress(progress),
		engine.WithAnalyzer(analyzer),
	)

	fmt.Printf("Zone: %s (%s). XP %d, win rate %d%%. Type 'help' for commands.\n",
		session.Zone().Name, session.Zone().Subtitle, progress.XP, progress.WinRate())

	if err := c.startHand(session); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			return c.persist(session, db)
		case "help", "?":
			printHelp()
		case "next", "n":
			if err := c.finishAndRecord(session, db); err != nil {
				return err
			}
			if err := c.startHand(session); err != nil {
				fmt.Println(warnStyle.Render(err.Error()))
			}
		case "advice", "a":
			var sb strings.Builder
			renderAdvice(&sb, session.AnalyzeCurrentSpot())
			renderRationale(&sb, session.AnalyzeCurrentSpot())
			fmt.Print(sb.String())
		case "insight", "i":
			si, err := session.SpotInsight()
			if err != nil {
				fmt.Println(warnStyle.Render(err.Error()))
				continue
			}
			var sb strings.Builder
			renderInsight(&sb, si)
			fmt.Print(sb.String())
		case "fold", "f":
			c.heroAction(session, db, game.Fold, 0)
		case "check", "k":
			c.heroAction(session, db, game.Check, 0)
		case "call", "c":
			c.heroAction(session, db, game.Call, 0)
		case "raise", "r", "bet", "b":
			amount := 0
			if len(fields) > 1 {
				amount, err = strconv.Atoi(fields[1])
				if err != nil {
					fmt.Println(warnStyle.Render("raise needs a chip amount, e.g. 'raise 12'"))
					continue
				}
			}
			if amount <= 0 {
				h := session.Hand()
				if h != nil {
					amount = h.ToCall + h.MinRaise
				}
			}
			c.heroAction(session, db, game.Raise, amount)
		default:
			fmt.Println(warnStyle.Render("unknown command; type 'help'"))
		}
	}
}

func (c *PlayCmd) startHand(session *engine.Session) error {
	h, err := session.StartHand(c.Opponents...)
	if err != nil {
		return err
	}
	var sb strings.Builder
	renderHand(&sb, h)
	renderLogs(&sb, h)
	if h.IsOver {
		renderResult(&sb, h)
		sb.WriteString(dimStyle.Render("type 'next' for another hand\n"))
	}
	fmt.Print(sb.String())
	return nil
}

func (c *PlayCmd) heroAction(session *engine.Session, db *store.Store, action game.Action, amount int) {
	res, err := session.ApplyHeroAction(action, amount)
	if err != nil {
		fmt.Println(warnStyle.Render(err.Error()))
		return
	}

	var sb strings.Builder
	if res.Analysis != nil {
		verdict := adviceStyle.Render("Good line: " + res.Analysis.Best.Summary)
		if !res.Best {
			verdict = warnStyle.Render("Better was: " + res.Analysis.Best.Summary)
		}
		fmt.Fprintf(&sb, "%s\n", verdict)
		if res.Leak != "" {
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render("leak noted: "+string(res.Leak)))
		}
	}

	h := res.Hand
	renderHand(&sb, h)
	renderLogs(&sb, h)
	if h.IsOver {
		renderResult(&sb, h)
		if err := c.finishAndRecord(session, db); err != nil {
			fmt.Fprintf(&sb, "%s\n", warnStyle.Render("save failed: "+err.Error()))
		}
		sb.WriteString(dimStyle.Render("type 'next' for another hand\n"))
	}
	fmt.Print(sb.String())
}

// finishAndRecord journals a completed hand and snapshots progress.
func (c *PlayCmd) finishAndRecord(session *engine.Session, db *store.Store) error {
	h := session.Hand()
	if h == nil || !h.IsOver {
		return nil
	}

	decisions := make([]store.DecisionSummary, 0, len(session.Records()))
	for _, r := range session.Records() {
		decisions = append(decisions, store.DecisionSummary{
			Street: r.Street.String(),
			Chosen: r.Chosen.String(),
			Best:   r.Best.String(),
			IsBest: r.IsBest,
		})
	}
	bankroll := map[string]int{engine.HeroBankrollKey: session.Bankroll(engine.HeroBankrollKey)}
	for _, p := range h.Players {
		if p.Role == game.RoleBot && p.Profile != nil {
			bankroll[p.Profile.ID] = session.Bankroll(p.Profile.ID)
		}
	}

	if err := db.AppendHand(store.BuildHandRecord(h, session.Zone().Name, decisions, bankroll)); err != nil {
		return err
	}
	return db.SaveProgress(session.Progress())
}

func (c *PlayCmd) persist(session *engine.Session, db *store.Store) error {
	if err := c.finishAndRecord(session, db); err != nil {
		return err
	}
	return db.SaveProgress(session.Progress())
}

func printHelp() {
	fmt.Println(`Commands:
  fold | check | call | raise <chips>   act when it is your turn
  advice                                show the coach's GTO and exploit lines
  insight                               show opponent range, equity and outs
  next                                  deal the next hand
  quit                                  save and exit`)
}
