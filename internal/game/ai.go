package game

import (
	"math"

	"github.com/AllenPeng0209/poker-god-sub001/internal/evaluator"
	"github.com/AllenPeng0209/poker-god-sub001/internal/solver"
)

// BotPolicy decides for the bot seats. Heuristic weights shaped by the
// opponent profile are blended with solver output in proportion to the
// profile's skill, then sampled with skill-scaled noise so weaker bots
// play less precisely, not just worse on average.
type BotPolicy struct {
	Preflop  *solver.PreflopTable
	Postflop *solver.PostflopTable
}

// DefaultBotPolicy uses the built-in strategy tables.
func DefaultBotPolicy() *BotPolicy {
	return &BotPolicy{
		Preflop:  solver.DefaultPreflopTable(),
		Postflop: solver.DefaultPostflopTable(),
	}
}

// RunBots lets the bot seats act until the hand is over or the action
// reaches the hero.
func (h *Hand) RunBots(policy *BotPolicy) {
	for !h.IsOver {
		if h.ActingID == "" {
			h.finalizeRound()
			if h.ActingID == "" {
				return
			}
		}
		actor := h.Player(h.ActingID)
		if actor == nil || !actor.CanAct() {
			if len(h.PendingActors) > 0 {
				h.PendingActors = h.PendingActors[1:]
			}
			h.ActingID = ""
			h.finalizeRound()
			continue
		}
		if actor.Role == RoleHero {
			return
		}
		action, amount := policy.Choose(h, actor)
		h.applyAction(actor, action, amount)
	}
}

type actionWeights struct {
	fold  float64
	check float64
	call  float64
	raise float64
}

// Choose picks an action and, for raises, a chip amount for a bot seat.
func (bp *BotPolicy) Choose(h *Hand, p *Player) (Action, int) {
	prof := p.Profile
	toCall := max(0, h.CurrentBet-p.CommittedStreet)
	strength := evaluator.HandStrength(p.HoleCards, h.RevealedBoard())

	canRaiseVsBet := p.Stack > toCall+h.MinRaise
	canLead := p.Stack >= h.MinRaise

	weights := bp.heuristicWeights(h, p, strength, toCall, canRaiseVsBet, canLead)

	advice, hasAdvice := bp.solverGuidance(h, p, strength, toCall)
	if hasAdvice && advice.Found {
		trust := prof.SolverTrust(advice.BestProb)
		if trust > 0.01 {
			weights = blendWeights(weights, advice, trust, toCall)
		}
	}

	action := pickWeighted(h, p, weights, toCall)
	if action == Raise {
		if (toCall > 0 && !canRaiseVsBet) || (toCall == 0 && !canLead) {
			if toCall > 0 {
				return Call, 0
			}
			return Check, 0
		}
		return Raise, bp.raiseAmount(h, p, strength, toCall, advice, hasAdvice)
	}
	return action, 0
}

func (bp *BotPolicy) heuristicWeights(h *Hand, p *Player, strength, toCall int, canRaiseVsBet, canLead bool) actionWeights {
	prof := p.Profile
	aggression := prof.Aggression
	skill := prof.Skill
	bluffRate := prof.BluffRate
	leaks := prof.Leaks

	var w actionWeights
	if toCall > 0 {
		potOdds := float64(toCall) / float64(max(1, h.Pot+toCall))
		positionPenalty := 0.0
		seat := RelativeToButton(p.Position, h.ButtonPosition)
		if seat == PositionSB || seat == PositionBB {
			positionPenalty = 4
		}
		defendThreshold := potOdds*100 + 11 + positionPenalty + (0.52-skill)*6
		if leaks.OverFoldToRaise {
			defendThreshold += 8
		}
		if leaks.CallsTooWide {
			defendThreshold -= 7
		}
		valueRaiseThreshold := 67 - skill*9 - aggression*7
		riverBluffBoost := 0.0
		if h.Street == River && leaks.OverBluffsRiver {
			riverBluffBoost = 0.24
		}

		w.fold = (defendThreshold-float64(strength))/18 + 0.14
		if leaks.OverFoldToRaise {
			w.fold += 0.22
		}
		w.fold = clamp01(w.fold)

		w.call = 1 - math.Abs(float64(strength)-defendThreshold)/28 + 0.26
		if leaks.CallsTooWide {
			w.call += 0.22
		}
		if leaks.OverFoldToRaise {
			w.call -= 0.12
		}
		w.call = clamp01(w.call)

		if canRaiseVsBet {
			valueEdge := clamp01((float64(strength) - valueRaiseThreshold) / 21)
			bluffWindow := clamp01((56 - float64(strength)) / 26)
			raise := valueEdge*(0.48+aggression*0.62) + bluffWindow*(0.18+bluffRate*0.58+riverBluffBoost)
			if leaks.CBetsTooMuch && h.Street == Flop {
				raise += 0.04
			}
			w.raise = clamp01(raise)
		}
		return w
	}

	streetAggrBonus := 0.0
	if (h.Street == Flop || h.Street == Turn) && leaks.CBetsTooMuch {
		streetAggrBonus = 0.2
	}
	thinValuePenalty := 0.0
	missesThinHere := leaks.MissesThinValue && strength >= 58 && strength <= 74
	if missesThinHere {
		thinValuePenalty = 0.18
	}
	valueLead := clamp01((float64(strength) - (52 - skill*8)) / 24)
	bluffLead := clamp01((50-float64(strength))/28) * (0.12 + bluffRate*0.5)
	if canLead {
		w.raise = clamp01(valueLead*(0.4+aggression*0.75) + bluffLead + streetAggrBonus - thinValuePenalty)
	}
	check := 0.42 + (1 - w.raise)
	if missesThinHere {
		check += 0.14
	}
	if strength < 42 {
		check += 0.18
	}
	w.check = clamp01(check)
	return w
}

// solverGuidance asks the tables for this spot if it is one they can
// speak to. The preflop action line is only shared with the bot the
// line actually tracks.
func (bp *BotPolicy) solverGuidance(h *Hand, p *Player, strength, toCall int) (solver.Advice, bool) {
	switch h.Street {
	case Preflop:
		if bp.Preflop == nil || !h.headsUp() || !h.PreflopSolverEligible {
			return solver.Advice{}, false
		}
		var codes []int
		if p.ID == h.FocusVillainID {
			codes = append(codes, h.PreflopActionCodes...)
		}
		return bp.Preflop.Advise(solver.PreflopSpot{
			StackBB:     h.EffectiveStackBB(p.ID),
			ActionCodes: codes,
			HoleCards:   p.HoleCards,
			ToCall:      toCall,
			MinRaise:    h.MinRaise,
			Stack:       p.Stack,
		}), true
	case Flop, Turn, River:
		if bp.Postflop == nil {
			return solver.Advice{}, false
		}
		return bp.Postflop.Advise(solver.PostflopSpot{
			Street:        h.Street.String(),
			Strength:      strength,
			ToCall:        toCall,
			Pot:           h.Pot,
			MinRaise:      h.MinRaise,
			Stack:         p.Stack,
			OpponentStack: h.OpponentEffectiveStack(p.ID),
			Board:         h.RevealedBoard(),
			InPosition:    h.ActorInPositionPostflop(p.ID),
			ActivePlayers: len(h.ActivePlayers()),
			Aggressor:     h.AggressorFor(p.ID),
			ActionPath:    h.RiverActionPath(),
		}), true
	}
	return solver.Advice{}, false
}

func blendWeights(base actionWeights, advice solver.Advice, trust float64, toCall int) actionWeights {
	var sw actionWeights
	for _, entry := range advice.Mix {
		switch entry.Decision {
		case solver.DecisionFold:
			sw.fold += entry.Prob
		case solver.DecisionCheck:
			sw.check += entry.Prob
		case solver.DecisionCall:
			sw.call += entry.Prob
		case solver.DecisionRaise:
			sw.raise += entry.Prob
		}
	}
	blend := func(b, s float64) float64 {
		return math.Max(0.001, b*(1-trust)+s*trust)
	}
	if toCall > 0 {
		return actionWeights{
			fold:  blend(base.fold, sw.fold),
			call:  blend(base.call, sw.call+sw.check),
			raise: blend(base.raise, sw.raise),
		}
	}
	return actionWeights{
		check: blend(base.check, sw.check+sw.call+sw.fold),
		raise: blend(base.raise, sw.raise),
	}
}

// pickWeighted samples among the legal actions. Lower skill flattens
// the distribution toward uniform and adds per-action jitter.
func pickWeighted(h *Hand, p *Player, w actionWeights, toCall int) Action {
	type candidate struct {
		action Action
		weight float64
	}
	var candidates []candidate
	if toCall > 0 {
		candidates = []candidate{{Fold, w.fold}, {Call, w.call}, {Raise, w.raise}}
	} else {
		candidates = []candidate{{Check, w.check}, {Raise, w.raise}}
	}

	total := 0.0
	for _, c := range candidates {
		total += c.weight
	}
	if total <= 0 {
		if toCall > 0 {
			return Call
		}
		return Check
	}
	mean := total / float64(len(candidates))

	flatten := p.Profile.FlattenAmount()
	jitter := p.Profile.JitterAmount()
	adjusted := make([]float64, len(candidates))
	sum := 0.0
	for i, c := range candidates {
		v := c.weight*(1-flatten) + mean*flatten
		v *= 1 + (h.rng.Float64()*2-1)*jitter
		if v < 0 {
			v = 0
		}
		adjusted[i] = v
		sum += v
	}
	if sum <= 0 {
		if toCall > 0 {
			return Call
		}
		return Check
	}
	roll := h.rng.Float64() * sum
	for i, c := range candidates {
		roll -= adjusted[i]
		if roll <= 0 {
			return c.action
		}
	}
	return candidates[len(candidates)-1].action
}

// raiseAmount sizes a bot raise from pot pressure and hand strength,
// pulled toward the solver's sizing in proportion to skill.
func (bp *BotPolicy) raiseAmount(h *Hand, p *Player, strength, toCall int, advice solver.Advice, hasAdvice bool) int {
	prof := p.Profile
	minAmount := toCall + h.MinRaise
	pressure := float64(toCall) / float64(max(1, h.Pot+toCall))
	strengthEdge := clampFloat((float64(strength)-58)/45, -0.35, 0.9)
	factor := 0.36 + prof.Aggression*0.34 + strengthEdge*0.24 + pressure*0.18
	if prof.Leaks.OverBluffsRiver && h.Street == River && strength < 45 {
		factor += 0.18
	}
	if prof.Leaks.MissesThinValue && strength >= 58 && strength <= 74 {
		factor -= 0.14
	}
	amount := float64(max(minAmount, int(math.Round(float64(h.Pot)*clampFloat(factor, 0.28, 1.2)))))

	if hasAdvice && advice.Found && advice.Decision == solver.DecisionRaise && advice.Amount > 0 {
		t := clamp01((prof.Skill - 0.45) / 0.5)
		amount = amount*(1-t) + float64(advice.Amount)*t
	}
	amount *= 1 + (h.rng.Float64()*2-1)*prof.SizingNoise()
	return clampInt(int(math.Round(amount)), minAmount, p.Stack)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
