// Package engine ties the table, the coaching analysis and the
// player's progression into one training session: it seats opponents
// from the roster, rotates the button, runs the bots, grades every
// human decision against the advised line and pays out XP.
package engine

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/AllenPeng0209/poker-god-sub001/internal/analysis"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/insight"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
	"github.com/AllenPeng0209/poker-god-sub001/internal/randutil"
)

// Mode selects how a session spends and earns.
type Mode string

const (
	// ModeCareer plays for keeps: stacks persist across hands and
	// busted opponents leave the table.
	ModeCareer Mode = "career"
	// ModePractice never touches the career bankroll and earns XP at
	// a reduced rate.
	ModePractice Mode = "practice"
)

// PracticeXPMultiplier scales XP earned in practice mode.
const PracticeXPMultiplier = 0.35

// DecisionRecord is one graded human decision within a hand.
type DecisionRecord struct {
	Street   game.Street
	Chosen   game.Action
	Best     game.Action
	UsedMode analysis.Mode
	IsBest   bool
}

// ActionResolution reports what one human action led to: the advice it
// was graded against, whether it matched, and any leak it showed.
type ActionResolution struct {
	Hand     *game.Hand
	Analysis *analysis.Result
	Best     bool
	Leak     profile.LeakTag
}

// Session is a stateful training run against the configured roster.
type Session struct {
	cfg         *profile.Config
	progress    *profile.Progress
	analyzer    *analysis.Analyzer
	policy      *game.BotPolicy
	rng         *rand.Rand
	logger      *log.Logger
	mode        Mode
	simulations int

	// bankroll persists stacks across hands keyed by profile id, with
	// HeroBankrollKey for the human.
	bankroll map[string]int
	button   game.Position
	haveBtn  bool

	hand    *game.Hand
	last    *analysis.Result
	records []DecisionRecord
}

// HeroBankrollKey indexes the human player's stack in the bankroll map.
const HeroBankrollKey = "hero"

// Option configures a session.
type Option func(*Session)

// WithLogger attaches a logger. Sessions are silent by default.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger.WithPrefix("engine") }
}

// WithMode selects career or practice play.
func WithMode(mode Mode) Option {
	return func(s *Session) { s.mode = mode }
}

// WithAnalyzer swaps in an analyzer backed by on-disk strategy tables.
func WithAnalyzer(a *analysis.Analyzer) Option {
	return func(s *Session) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithBotPolicy overrides the strategy tables the bots consult.
func WithBotPolicy(policy *game.BotPolicy) Option {
	return func(s *Session) { s.policy = policy }
}

// WithSimulations sets the Monte Carlo budget for spot insights.
func WithSimulations(n int) Option {
	return func(s *Session) { s.simulations = n }
}

// WithProgress resumes from saved progression instead of starting
// fresh.
func WithProgress(p *profile.Progress) Option {
	return func(s *Session) {
		if p != nil {
			s.progress = p
		}
	}
}

// NewSession builds a session over the roster. The RNG drives dealing,
// bot behavior and equity sampling; a nil RNG or config panics since
// both are programmer errors.
func NewSession(cfg *profile.Config, rng *rand.Rand, opts ...Option) *Session {
	if cfg == nil {
		panic("engine: config must not be nil")
	}
	if rng == nil {
		panic("engine: rng must not be nil")
	}
	s := &Session{
		cfg:         cfg,
		progress:    profile.NewProgress(),
		analyzer:    analysis.New(nil, nil),
		policy:      game.DefaultBotPolicy(),
		rng:         rng,
		logger:      log.New(io.Discard),
		mode:        ModeCareer,
		simulations: insight.DefaultSimulations,
		bankroll:    map[string]int{HeroBankrollKey: game.DefaultStartingStack},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hand returns the hand in play, or nil between hands.
func (s *Session) Hand() *game.Hand { return s.hand }

// Progress exposes the player's accumulated XP and leak counters.
func (s *Session) Progress() *profile.Progress { return s.progress }

// Records returns the graded decisions of the current hand.
func (s *Session) Records() []DecisionRecord { return s.records }

// Mode reports whether the session is playing for keeps.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches between career and practice for subsequent hands.
func (s *Session) SetMode(mode Mode) { s.mode = mode }

// Zone returns the tier the player is currently training in.
func (s *Session) Zone() profile.Zone {
	idx := min(s.progress.ZoneIndex, len(s.cfg.Zones)-1)
	return s.cfg.Zones[idx]
}

// Bankroll returns the persisted stack for a profile id, defaulting to
// a fresh buy-in for opponents not yet seen.
func (s *Session) Bankroll(id string) int {
	if v, ok := s.bankroll[id]; ok {
		return v
	}
	return game.DefaultStartingStack
}

// ResetBankroll returns every tracked stack to the starting buy-in.
func (s *Session) ResetBankroll() {
	for id := range s.bankroll {
		s.bankroll[id] = game.DefaultStartingStack
	}
}

// villainSeats are filled in table order as opponents join.
var villainSeats = []game.Position{
	game.PositionUTG, game.PositionLJ, game.PositionHJ,
	game.PositionCO, game.PositionSB, game.PositionBB,
}

// StartHand deals a new hand against the named opponents, defaulting
// to the first playable opponent of the current zone. The button moves
// one occupied seat each hand.
func (s *Session) StartHand(opponentIDs ...string) (*game.Hand, error) {
	zone := s.Zone()
	if len(opponentIDs) == 0 {
		id, ok := s.defaultOpponent(zone)
		if !ok {
			return nil, fmt.Errorf("zone %s: no opponent with chips left", zone.Name)
		}
		opponentIDs = []string{id}
	}
	if len(opponentIDs) > len(villainSeats) {
		return nil, fmt.Errorf("too many opponents: %d seats available", len(villainSeats))
	}

	heroStack := s.handStack(HeroBankrollKey)
	if s.mode == ModeCareer && heroStack <= 0 {
		return nil, fmt.Errorf("hero bankroll is empty; reset the zone or switch to practice")
	}

	heroPos := game.PositionBTN
	occupied := []game.Position{heroPos}
	opts := []game.HandOption{game.WithHero("Hero", heroPos, heroStack)}
	for i, id := range opponentIDs {
		prof, ok := s.cfg.FindOpponent(id)
		if !ok {
			return nil, fmt.Errorf("unknown opponent %q", id)
		}
		stack := s.handStack(prof.ID)
		if stack <= 0 {
			return nil, fmt.Errorf("opponent %s is busted", prof.ID)
		}
		pos := villainSeats[i]
		occupied = append(occupied, pos)
		opts = append(opts, game.WithVillain(&prof, pos, stack))
	}

	opts = append(opts, game.WithButton(s.rotateButton(occupied)))

	h := game.NewHand(s.rng, opts...)
	s.hand = h
	s.records = nil
	s.logger.Info("hand started",
		"id", h.ID, "zone", zone.Name, "opponents", len(opponentIDs),
		"button", string(s.button), "mode", string(s.mode))

	h.RunBots(s.policy)
	s.refreshAnalysis()
	if h.IsOver {
		s.finishHand()
	}
	return h, nil
}

// defaultOpponent picks the zone's first opponent still holding chips.
func (s *Session) defaultOpponent(zone profile.Zone) (string, bool) {
	for _, opp := range zone.Opponents {
		if s.mode == ModePractice || s.handStack(opp.ID) > 0 {
			return opp.ID, true
		}
	}
	return "", false
}

// handStack resolves the stack a player brings into the next hand.
// Practice hands always start from a fresh buy-in.
func (s *Session) handStack(id string) int {
	if s.mode == ModePractice {
		return game.DefaultStartingStack
	}
	return s.Bankroll(id)
}

// rotateButton advances the button to the next occupied seat in table
// order, seeding it on the first hand.
func (s *Session) rotateButton(occupied []game.Position) game.Position {
	ordered := make([]game.Position, 0, len(occupied))
	for _, pos := range game.TableOrder {
		for _, occ := range occupied {
			if occ == pos {
				ordered = append(ordered, pos)
			}
		}
	}
	if !s.haveBtn {
		s.haveBtn = true
		s.button = ordered[len(ordered)-1]
		return s.button
	}
	next := ordered[0]
	for i, pos := range ordered {
		if pos == s.button {
			next = ordered[(i+1)%len(ordered)]
			break
		}
	}
	s.button = next
	return next
}

// ApplyHeroAction plays the human's decision, grades it against the
// current advice and advances the bots until the hero acts again or
// the hand ends.
func (s *Session) ApplyHeroAction(action game.Action, raiseAmount int) (ActionResolution, error) {
	h := s.hand
	if h == nil {
		return ActionResolution{}, fmt.Errorf("no hand in play")
	}
	if h.IsOver {
		return ActionResolution{Hand: h, Analysis: s.last, Best: true}, nil
	}
	if h.ActingID != h.HeroID {
		h.RunBots(s.policy)
		s.refreshAnalysis()
		if h.IsOver {
			s.finishHand()
		}
		return ActionResolution{Hand: h, Analysis: s.last, Best: true}, nil
	}

	cur := s.last
	if cur == nil {
		res := s.analyzer.Analyze(h)
		cur = &res
	}

	toCall := h.ToCall
	chosen := normalizeHeroAction(action, toCall)
	leak := inferHeroLeak(chosen, cur, toCall)
	wasBest := chosen == cur.Best.Action
	street := h.Street

	if err := h.ApplyAction(h.HeroID, action, raiseAmount); err != nil {
		return ActionResolution{}, err
	}
	s.records = append(s.records, DecisionRecord{
		Street:   street,
		Chosen:   chosen,
		Best:     cur.Best.Action,
		UsedMode: cur.BestMode,
		IsBest:   wasBest,
	})

	xpBefore := s.progress.XP
	s.progress.RecordDecision(wasBest, leak)
	s.scaleXP(xpBefore)
	s.logger.Debug("decision graded",
		"street", street.String(), "chosen", chosen.String(),
		"best", cur.Best.Action.String(), "leak", string(leak))

	if !h.IsOver {
		h.RunBots(s.policy)
	}
	s.refreshAnalysis()
	if h.IsOver {
		s.finishHand()
	}

	return ActionResolution{Hand: h, Analysis: cur, Best: wasBest, Leak: leak}, nil
}

// AnalyzeCurrentSpot returns the advice for the hero's pending
// decision, refreshing it if needed.
func (s *Session) AnalyzeCurrentSpot() *analysis.Result {
	if s.last == nil && s.hand != nil && !s.hand.IsOver {
		res := s.analyzer.Analyze(s.hand)
		s.last = &res
	}
	return s.last
}

// SpotInsight builds the range, equity and outs view for the current
// hand. Each call forks the session RNG so insight sampling never
// perturbs dealing.
func (s *Session) SpotInsight() (insight.SpotInsight, error) {
	if s.hand == nil {
		return insight.SpotInsight{}, fmt.Errorf("no hand in play")
	}
	est := insight.NewEstimator(randutil.Fork(s.rng), s.simulations)
	return est.BuildSpotInsight(s.hand), nil
}

func (s *Session) refreshAnalysis() {
	h := s.hand
	if h != nil && !h.IsOver && h.ActingID == h.HeroID {
		res := s.analyzer.Analyze(h)
		s.last = &res
		return
	}
	s.last = nil
}

// finishHand settles progression and bankroll for a completed hand.
func (s *Session) finishHand() {
	h := s.hand

	accuracy := 0.0
	if len(s.records) > 0 {
		best := 0
		for _, r := range s.records {
			if r.IsBest {
				best++
			}
		}
		accuracy = float64(best) / float64(len(s.records))
	}

	xpBefore := s.progress.XP
	s.progress.RecordHand(profile.HandOutcome{
		Won:      h.Winner == game.WinnerHero,
		Chopped:  h.Winner == game.WinnerChop,
		Accuracy: accuracy,
	})
	s.scaleXP(xpBefore)
	s.progress.UnlockZones(s.cfg)

	if s.mode == ModeCareer {
		for _, p := range h.Players {
			key := HeroBankrollKey
			if p.Role == game.RoleBot && p.Profile != nil {
				key = p.Profile.ID
			}
			s.bankroll[key] = p.Stack
		}
	}

	s.logger.Info("hand finished",
		"id", h.ID, "winner", string(h.Winner), "pot", h.Pot,
		"accuracy", accuracy, "xp", s.progress.XP)
}

// scaleXP reduces XP earned since before in practice mode.
func (s *Session) scaleXP(before int) {
	if s.mode != ModePractice {
		return
	}
	delta := s.progress.XP - before
	if delta <= 0 {
		return
	}
	s.progress.XP = before + int(math.Round(float64(delta)*PracticeXPMultiplier))
}

func normalizeHeroAction(action game.Action, toCall int) game.Action {
	if action == game.Check && toCall > 0 {
		return game.Call
	}
	if action == game.Call && toCall == 0 {
		return game.Check
	}
	return action
}

// inferHeroLeak names the tendency a non-best decision showed, or ""
// when the deviation is not a tracked leak.
func inferHeroLeak(chosen game.Action, result *analysis.Result, toCall int) profile.LeakTag {
	best := result.Best.Action
	if chosen == best {
		return ""
	}
	if chosen == game.Fold && (best == game.Call || best == game.Raise) {
		return profile.LeakOverFold
	}
	if chosen == game.Call && best == game.Fold {
		return profile.LeakOverCall
	}
	if chosen == game.Raise && (best == game.Fold || (best == game.Call && result.HeroStrength < 58)) {
		return profile.LeakOverBluff
	}
	if chosen == game.Check && best == game.Raise && result.HeroStrength >= 62 {
		return profile.LeakMissedValue
	}
	if toCall == 0 && chosen != game.Raise && result.HeroStrength >= 54 {
		return profile.LeakPassiveCheck
	}
	return ""
}
