package analysis

import (
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
)

// Opponent leak labels surfaced as the exploit target.
const (
	LeakLabelOverFolds      = "opponent over-folds to raises"
	LeakLabelCallsWide      = "opponent calls too wide"
	LeakLabelOverBluffRiver = "opponent over-bluffs rivers"
	LeakLabelCBetsTooMuch   = "opponent c-bets too much"
	LeakLabelMissesThin     = "opponent misses thin value"
)

// exploitAdvice proposes the line that attacks the focus opponent's
// most relevant leak in this spot. With no leak to attack it shadows
// the baseline at a small confidence discount.
func (a *Analyzer) exploitAdvice(h *game.Hand, hero, villain *game.Player, heroStrength int, gto Advice) (Advice, string) {
	context := a.contextLines(h, hero)
	posLine := positionLine(h)
	heroIP := h.ActorInPositionPostflop(h.HeroID)
	discLine := disciplineLine(heroIP)
	raiseSize := suggestedRaise(h.Pot, h.MinRaise)

	var leaks gameLeaks
	readability := 0.0
	if villain != nil && villain.Profile != nil {
		leaks = gameLeaks{
			overFolds:  villain.Profile.Leaks.OverFoldToRaise,
			callsWide:  villain.Profile.Leaks.CallsTooWide,
			bluffRiver: villain.Profile.Leaks.OverBluffsRiver,
			cBets:      villain.Profile.Leaks.CBetsTooMuch,
			missesThin: villain.Profile.Leaks.MissesThinValue,
		}
		readability = 1 - villain.Profile.Skill
	}

	ipShift := func(up, down float64) float64 {
		if heroIP {
			return up
		}
		return down
	}

	if leaks.overFolds && heroStrength >= 34 {
		return newAdvice(game.Raise,
			0.67+readability*0.18+ipShift(0.04, -0.03),
			"Attack the over-folder: raise and take the pot down.",
			append(append([]string{}, context...), posLine, discLine,
				"This opponent defends too little against aggression.",
				"Even medium strength carries fold equity here."),
			raiseSize, SourceHeuristic), LeakLabelOverFolds
	}

	if leaks.callsWide {
		valueThreshold := 68
		if heroIP {
			valueThreshold = 62
		}
		if heroStrength >= valueThreshold {
			return newAdvice(game.Raise,
				0.7+readability*0.15+ipShift(0.02, -0.02),
				"Value-bet the calling station thick.",
				append(append([]string{}, context...), posLine, discLine,
					"This opponent pays off with second-best hands.",
					"Prioritize value and cut the fancy bluffs."),
				raiseSize, SourceHeuristic), LeakLabelCallsWide
		}
		weakThreshold := 45
		if heroIP {
			weakThreshold = 40
		}
		if heroStrength < weakThreshold && h.ToCall > 0 {
			return newAdvice(game.Fold, 0.72,
				"No low-percentage bluffs into a station: fold.",
				append(append([]string{}, context...), posLine, discLine,
					"This opponent rarely folds once committed."),
				0, SourceHeuristic), LeakLabelCallsWide
		}
	}

	if leaks.bluffRiver && h.Street == game.River && h.ToCall > 0 && heroStrength >= 38 {
		return newAdvice(game.Call,
			0.78+ipShift(0.02, 0),
			"Bluff-catch the river against an over-bluffer.",
			append(append([]string{}, context...), posLine, discLine,
				"This is the core spot where the exploit reclaims EV."),
			0, SourceHeuristic), LeakLabelOverBluffRiver
	}

	if leaks.cBets && h.ToCall > 0 && heroStrength >= 44 {
		return newAdvice(game.Call,
			0.71+ipShift(0.03, -0.02),
			"Defend wider against the auto c-bettor.",
			append(append([]string{}, context...), posLine, discLine,
				"Calling down keeps the high-frequency betting from printing."),
			0, SourceHeuristic), LeakLabelCBetsTooMuch
	}

	if leaks.missesThin && h.ToCall == 0 && heroStrength >= 58 {
		return newAdvice(game.Raise,
			0.7+ipShift(0.03, -0.01),
			"Bet thin for value where the opponent would not.",
			append(append([]string{}, context...), posLine, discLine,
				"Out-earning this opponent means cashing medium-strong hands harder."),
			raiseSize, SourceHeuristic), LeakLabelMissesThin
	}

	return newAdvice(gto.Action,
		gto.Confidence-0.04,
		"No leak worth attacking right now: stay balanced.",
		append(append([]string{}, context...), posLine, discLine,
			"When the opponent's leaks are quiet, the baseline is the stronger play."),
		gto.Amount, SourceHeuristic), ""
}

type gameLeaks struct {
	overFolds  bool
	callsWide  bool
	bluffRiver bool
	cBets      bool
	missesThin bool
}
