package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/AllenPeng0209/poker-god-sub001/internal/analysis"
	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/insight"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	potStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	exploitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func cardText(c deck.Card) string {
	if c.Suit.IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

func cardsText(cards []deck.Card) string {
	if len(cards) == 0 {
		return dimStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardText(c)
	}
	return strings.Join(parts, " ")
}

func renderHand(sb *strings.Builder, h *game.Hand) {
	fmt.Fprintf(sb, "\n%s  %s\n",
		headerStyle.Render(strings.ToUpper(h.Street.String())),
		dimStyle.Render(h.Position.SituationLabel))
	fmt.Fprintf(sb, "Board: %s    %s\n", cardsText(h.RevealedBoard()), potStyle.Render(fmt.Sprintf("Pot %d", h.Pot)))
	fmt.Fprintf(sb, "You:   %s\n", cardsText(h.Hero().HoleCards))

	w := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	for _, p := range h.Players {
		status := ""
		switch {
		case p.Folded:
			status = dimStyle.Render("folded")
		case p.AllIn:
			status = warnStyle.Render("all-in")
		case p.ID == h.ActingID:
			status = adviceStyle.Render("to act")
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", p.Position.DisplayName(), p.Name, p.Stack, status)
	}
	w.Flush()

	if h.ToCall > 0 {
		fmt.Fprintf(sb, "To call: %d  (min raise to %d)\n", h.ToCall, h.ToCall+h.MinRaise)
	}
}

func renderLogs(sb *strings.Builder, h *game.Hand) {
	for _, entry := range h.StreetLogs(h.Street) {
		fmt.Fprintf(sb, "  %s\n", dimStyle.Render(entry.Text))
	}
}

func renderResult(sb *strings.Builder, h *game.Hand) {
	fmt.Fprintf(sb, "\n%s\n", headerStyle.Render(h.ResultText))
	for _, name := range h.BustedBotNames {
		fmt.Fprintf(sb, "%s\n", warnStyle.Render(name+" is felted and leaves the table"))
	}
}

func renderAdvice(sb *strings.Builder, result *analysis.Result) {
	if result == nil {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", headerStyle.Render("Coach"))
	gtoMark, exploitMark := " ", " "
	if result.BestMode == analysis.ModeExploit {
		exploitMark = "*"
	} else {
		gtoMark = "*"
	}
	fmt.Fprintf(sb, "%s %s\n", gtoMark, adviceStyle.Render(adviceLine("GTO", result.GTO)))
	fmt.Fprintf(sb, "%s %s\n", exploitMark, exploitStyle.Render(adviceLine("Exploit", result.Exploit)))
	if result.TargetLeak != "" {
		fmt.Fprintf(sb, "  %s\n", dimStyle.Render("targets: "+result.TargetLeak))
	}
}

func adviceLine(label string, a analysis.Advice) string {
	action := a.Action.String()
	if a.Action == game.Raise && a.Amount > 0 {
		action = fmt.Sprintf("raise %d", a.Amount)
	}
	return fmt.Sprintf("%s: %s (%.0f%%) %s", label, action, a.Confidence*100, a.Summary)
}

func renderRationale(sb *strings.Builder, result *analysis.Result) {
	if result == nil {
		return
	}
	for _, line := range result.Best.Rationale {
		fmt.Fprintf(sb, "  %s\n", dimStyle.Render(line))
	}
}

func renderInsight(sb *strings.Builder, si insight.SpotInsight) {
	fmt.Fprintf(sb, "\n%s\n", headerStyle.Render("Opponent range"))
	w := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	for _, b := range si.RangeBuckets {
		fmt.Fprintf(w, "  %s\t%.1f%%\t%d combos\n", b.Label, b.Ratio, b.Combos)
	}
	w.Flush()
	if len(si.RangeSamples) > 0 {
		samples := make([]string, len(si.RangeSamples))
		for i, s := range si.RangeSamples {
			samples[i] = s.Text
		}
		fmt.Fprintf(sb, "  %s\n", dimStyle.Render("e.g. "+strings.Join(samples, ", ")))
	}

	fmt.Fprintf(sb, "\n%s\n", headerStyle.Render("Equity"))
	fmt.Fprintf(sb, "  win %.1f%%  tie %.1f%%  lose %.1f%%  (%d runs over %d combos)\n",
		si.Equity.HeroWin, si.Equity.Tie, si.Equity.VillainWin, si.Simulations, si.CombosConsidered)
	if si.PotOddsNeed > 0 {
		fmt.Fprintf(sb, "  pot odds need %.1f%%\n", si.PotOddsNeed)
	}

	if si.OutsCount > 0 {
		fmt.Fprintf(sb, "\n%s\n", headerStyle.Render(fmt.Sprintf("Outs (%d)", si.OutsCount)))
		for _, g := range si.OutsGroups {
			fmt.Fprintf(sb, "  %s: %s\n", g.Label, strings.Join(g.Cards, " "))
		}
		fmt.Fprintf(sb, "  next card %.1f%%", si.OneCardHitRate)
		if si.TwoCardHitRate > si.OneCardHitRate {
			fmt.Fprintf(sb, ", by the river %.1f%%", si.TwoCardHitRate)
		}
		sb.WriteString("\n")
	}

	for _, note := range si.Notes {
		fmt.Fprintf(sb, "  %s\n", dimStyle.Render(note))
	}
}
