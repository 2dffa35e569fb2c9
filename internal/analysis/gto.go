package analysis

import (
	"fmt"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/solver"
)

// gtoAdvice builds the balanced baseline: strategy tables when the spot
// is covered, threshold heuristics otherwise.
func (a *Analyzer) gtoAdvice(h *game.Hand, hero *game.Player, heroStrength int, potOdds float64) Advice {
	heroIP := h.ActorInPositionPostflop(h.HeroID)
	confShift := -0.02
	if heroIP {
		confShift = 0.02
	}
	context := a.contextLines(h, hero)
	posLine := positionLine(h)
	discLine := disciplineLine(heroIP)
	headsUp := len(h.ActivePlayers()) == 2

	if h.Street == game.Preflop && headsUp && h.PreflopSolverEligible {
		if advice, ok := a.preflopTableAdvice(h, hero, confShift, context, posLine, discLine); ok {
			return advice
		}
	}
	if h.Street == game.Flop || h.Street == game.Turn || h.Street == game.River {
		if advice, ok := a.postflopTableAdvice(h, hero, heroStrength, heroIP, confShift, context, posLine, discLine); ok {
			return advice
		}
	}

	if h.Street == game.Preflop {
		return a.preflopHeuristicAdvice(h, hero, potOdds, confShift, context, posLine, discLine)
	}
	return a.postflopHeuristicAdvice(h, heroStrength, heroIP, potOdds, confShift, context, posLine, discLine)
}

func (a *Analyzer) preflopTableAdvice(h *game.Hand, hero *game.Player, confShift float64, context []string, posLine, discLine string) (Advice, bool) {
	stackBB := h.EffectiveStackBB(h.HeroID)
	advice := a.preflop.Advise(solver.PreflopSpot{
		StackBB:     stackBB,
		ActionCodes: h.PreflopActionCodes,
		HoleCards:   hero.HoleCards,
		ToCall:      h.ToCall,
		MinRaise:    h.MinRaise,
		Stack:       hero.Stack,
	})
	if !advice.Found {
		return Advice{}, false
	}

	mixLine := advice.MixText()
	if mixLine == "" {
		mixLine = "single action near 100%"
	}
	rationale := append(append([]string{}, context...),
		posLine,
		fmt.Sprintf("Preflop acting order: %s.", h.Position.PreflopOrderHint),
		discLine,
		fmt.Sprintf("Table node %s at roughly %dbb effective.", advice.StateKey, int(stackBB+0.5)),
		fmt.Sprintf("Frequency mix: %s.", mixLine),
		"Heads-up preflop uses the precomputed tables; multiway falls back to heuristics.",
		fmt.Sprintf("Data source: %s.", advice.Source),
	)

	// Premium protection: the tables never talk us into folding the top
	// of the range for a reasonable price.
	if advice.Decision == solver.DecisionFold && h.ToCall > 0 &&
		premiumNoFold(hero.HoleCards) && premiumGuardPrice(h, hero) {
		rationale = append(rationale, "Premium guard: AK/QQ+ does not fold outright at this price.")
		return newAdvice(
			game.Call,
			clampFloat(advice.BestProb+confShift*0.25, 0.58, 0.9),
			fmt.Sprintf("Table says fold, but %s triggers premium protection: call.", deck.HandKey(hero.HoleCards)),
			rationale,
			0,
			SourcePreflopCFR,
		), true
	}

	action := decisionAction(advice.Decision)
	return newAdvice(
		action,
		clampFloat(advice.BestProb+confShift*0.5, 0.56, 0.93),
		fmt.Sprintf("Preflop table recommends %s at %d%% frequency.", action, int(advice.BestProb*100+0.5)),
		rationale,
		advice.Amount,
		SourcePreflopCFR,
	), true
}

func (a *Analyzer) postflopTableAdvice(h *game.Hand, hero *game.Player, heroStrength int, heroIP bool, confShift float64, context []string, posLine, discLine string) (Advice, bool) {
	advice := a.postflop.Advise(solver.PostflopSpot{
		Street:        h.Street.String(),
		Strength:      heroStrength,
		ToCall:        h.ToCall,
		Pot:           h.Pot,
		MinRaise:      h.MinRaise,
		Stack:         hero.Stack,
		OpponentStack: h.OpponentEffectiveStack(h.HeroID),
		Board:         h.RevealedBoard(),
		InPosition:    heroIP,
		ActivePlayers: len(h.ActivePlayers()),
		ProfileKey:    string(h.Position.HeroPosition),
		Aggressor:     h.AggressorFor(h.HeroID),
		ActionPath:    h.RiverActionPath(),
	})
	if !advice.Found {
		return Advice{}, false
	}

	mixLine := advice.MixText()
	if mixLine == "" {
		mixLine = "single action near 100%"
	}
	action := decisionAction(advice.Decision)
	rationale := append(append([]string{}, context...),
		posLine,
		discLine,
		fmt.Sprintf("Table node %s.", advice.StateKey),
		fmt.Sprintf("Frequency mix: %s.", mixLine),
		fmt.Sprintf("Data source: %s.", advice.Source),
	)
	return newAdvice(
		action,
		clampFloat(advice.BestProb+confShift, 0.55, 0.9),
		fmt.Sprintf("%s table recommends %s at %d%% frequency.", h.Street, action, int(advice.BestProb*100+0.5)),
		rationale,
		advice.Amount,
		SourcePostflopCFR,
	), true
}

func (a *Analyzer) preflopHeuristicAdvice(h *game.Hand, hero *game.Player, potOdds, confShift float64, context []string, posLine, discLine string) Advice {
	score := preflopHoleScore(hero.HoleCards)
	class := deck.HandKey(hero.HoleCards)
	raiseSize := suggestedRaise(h.Pot, h.MinRaise)
	multiwayTighten := float64(max(0, len(h.ActivePlayers())-2)) * 4
	oopPenalty := 5.0
	if h.Position.HeroInPosition {
		oopPenalty = 0
	}

	if h.ToCall == 0 {
		if score >= 72 {
			return newAdvice(game.Raise, 0.78+confShift*0.4,
				fmt.Sprintf("%s is a strong open: raise and take the lead.", class),
				append(append([]string{}, context...), posLine, discLine,
					fmt.Sprintf("Starting hand score %d/99, above the open threshold.", score),
					"Multiway pots tighten frequencies slightly, but this hand still opens for value."),
				raiseSize, SourceHeuristic)
		}
		return newAdvice(game.Check, 0.66,
			fmt.Sprintf("%s checks to keep the pot small.", class),
			append(append([]string{}, context...), posLine, discLine,
				fmt.Sprintf("Starting hand score %d/99, short of the open threshold.", score)),
			0, SourceHeuristic)
	}

	callThreshold := potOdds*100 + 16 + oopPenalty + multiwayTighten
	raiseBump := 17.0
	if h.Position.HeroInPosition {
		raiseBump = 13
	}
	raiseThreshold := callThreshold + raiseBump

	if float64(score) >= raiseThreshold {
		return newAdvice(game.Raise, 0.74+confShift*0.4,
			fmt.Sprintf("%s is strong enough to raise and punish wide ranges.", class),
			append(append([]string{}, context...), posLine, discLine,
				fmt.Sprintf("Starting hand score %d/99, above the raise threshold of %d.", score, int(raiseThreshold+0.5)),
				fmt.Sprintf("Call threshold sits near %d after multiway adjustment.", int(callThreshold+0.5))),
			raiseSize, SourceHeuristic)
	}
	if float64(score) >= callThreshold {
		return newAdvice(game.Call, 0.71+confShift*0.35,
			fmt.Sprintf("%s defends profitably: call.", class),
			append(append([]string{}, context...), posLine, discLine,
				fmt.Sprintf("Starting hand score %d/99 meets the call threshold of %d.", score, int(callThreshold+0.5)),
				"Keep the defense frequency honest so steals are not free."),
			0, SourceHeuristic)
	}
	if premiumNoFold(hero.HoleCards) && premiumGuardPrice(h, hero) {
		return newAdvice(game.Call, 0.69,
			fmt.Sprintf("%s triggers premium protection: do not fold here.", class),
			append(append([]string{}, context...), posLine, discLine,
				"Below the usual score threshold, but AK/QQ+ does not fold for this price.",
				"Call and keep every later decision open."),
			0, SourceHeuristic)
	}
	return newAdvice(game.Fold, 0.78-confShift*0.2,
		fmt.Sprintf("%s is below the defense threshold: fold and save chips.", class),
		append(append([]string{}, context...), posLine, discLine,
			fmt.Sprintf("Starting hand score %d/99, below the call threshold of %d.", score, int(callThreshold+0.5)),
			"Wait for a higher-EV spot."),
		0, SourceHeuristic)
}

func (a *Analyzer) postflopHeuristicAdvice(h *game.Hand, heroStrength int, heroIP bool, potOdds, confShift float64, context []string, posLine, discLine string) Advice {
	raiseSize := suggestedRaise(h.Pot, h.MinRaise)

	if heroStrength >= 80 {
		return newAdvice(game.Raise, 0.88+confShift*0.5,
			"Top-range strength: bet for value and grow the pot.",
			append(append([]string{}, context...), posLine, discLine,
				"Current strength sits in the top band.",
				"Balanced play still takes value aggressively with strong hands.",
				"Do not hand out free cards."),
			raiseSize, SourceHeuristic)
	}
	if heroStrength >= 62 {
		if h.ToCall == 0 {
			conf := 0.77
			if !heroIP {
				conf -= 0.05
			}
			return newAdvice(game.Raise, conf,
				"Good strength: keep applying pressure.",
				append(append([]string{}, context...), posLine, discLine,
					"This strength can stand being called.",
					"Leading here buys control of the turn and river."),
				raiseSize, SourceHeuristic)
		}
		return newAdvice(game.Call, 0.74+confShift*0.5,
			"Call to keep the range intact and the variance down.",
			append(append([]string{}, context...), posLine, discLine,
				"In this band calling protects against playing too weak."),
			0, SourceHeuristic)
	}
	if h.ToCall == 0 {
		probeThreshold := 50
		if heroIP {
			probeThreshold = 44
		}
		if heroStrength >= probeThreshold {
			return newAdvice(game.Check, 0.68,
				"Middling strength: control the pot.",
				append(append([]string{}, context...), posLine, discLine,
					"No need to inflate the pot with a marginal hand."),
				0, SourceHeuristic)
		}
		return newAdvice(game.Check, 0.64,
			"Weak hand checks for free and keeps its outs.",
			append(append([]string{}, context...), posLine, discLine,
				"Avoid putting in chips without a plan."),
			0, SourceHeuristic)
	}

	positionTighten := 4.0
	if heroIP {
		positionTighten = -3
	}
	callThreshold := potOdds*100 + 12 + positionTighten
	if float64(heroStrength) >= callThreshold {
		return newAdvice(game.Call, 0.71+confShift*0.4,
			"Pot odds justify one more defense.",
			append(append([]string{}, context...), posLine, discLine,
				fmt.Sprintf("Call threshold near %d, current strength %d.", int(callThreshold+0.5), heroStrength),
				"Over-folding here invites constant pressure."),
			0, SourceHeuristic)
	}
	return newAdvice(game.Fold, 0.79-confShift*0.2,
		"Strength is below the defense threshold: cut the loss.",
		append(append([]string{}, context...), posLine, discLine,
			fmt.Sprintf("The pot odds ask for roughly %d strength and this hand has %d.", int(callThreshold+0.5), heroStrength),
			"Save chips for a better spot."),
		0, SourceHeuristic)
}
